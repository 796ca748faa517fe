package bundle

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
)

// Env modes understood by EnvDefines.
const (
	envInline  = "inline"
	envDisable = "disable"
)

// EnvDefines returns "process.env.KEY" defines for the environment values
// selected by mode:
//
//	"", "disable" → none
//	"inline"      → every variable
//	"PREFIX*"     → variables whose name starts with PREFIX
//
// Values come from envFile (when it exists) overlaid by environ, so the
// process environment wins over the dotenv file.
func EnvDefines(mode, envFile string, environ []string) (map[string]string, error) {
	if mode == "" || mode == envDisable {
		return nil, nil
	}

	vars := map[string]string{}
	if envFile != "" {
		fileVars, err := godotenv.Read(envFile)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("read env file %s: %w", envFile, err)
		}
		for k, v := range fileVars {
			vars[k] = v
		}
	}
	for _, kv := range environ {
		if k, v, ok := strings.Cut(kv, "="); ok && k != "" {
			vars[k] = v
		}
	}

	prefix := ""
	if mode != envInline {
		prefix = strings.TrimSuffix(mode, "*")
	}

	defines := make(map[string]string)
	for k, v := range vars {
		if !strings.HasPrefix(k, prefix) || !isIdentifier(k) {
			continue
		}
		defines["process.env."+k] = jsString(v)
	}
	return defines, nil
}

// Defines assembles the final define table: NODE_ENV and PUBLIC_URL
// first, then environment values, then user defines (which win).
// publicURL is the public path without trailing slashes.
func Defines(publicURL string, env, user map[string]string) map[string]string {
	out := map[string]string{
		"process.env.NODE_ENV":   jsString("production"),
		"process.env.PUBLIC_URL": jsString(publicURL),
	}
	for k, v := range env {
		out[k] = v
	}
	for k, v := range user {
		out[k] = v
	}
	return out
}

func jsString(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}

func isIdentifier(s string) bool {
	for i, r := range s {
		switch {
		case r == '_' || r == '$':
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9' && i > 0:
		default:
			return false
		}
	}
	return s != ""
}
