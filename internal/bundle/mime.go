package bundle

import (
	"mime"
	"path"
	"strings"
)

// knownTypes pins the types of common web outputs so classification does
// not depend on the host's mime.types database.
var knownTypes = map[string]string{
	".js":    "text/javascript;charset=utf-8",
	".mjs":   "text/javascript;charset=utf-8",
	".cjs":   "text/javascript;charset=utf-8",
	".css":   "text/css;charset=utf-8",
	".json":  "application/json;charset=utf-8",
	".map":   "application/json;charset=utf-8",
	".html":  "text/html;charset=utf-8",
	".svg":   "image/svg+xml",
	".png":   "image/png",
	".jpg":   "image/jpeg",
	".jpeg":  "image/jpeg",
	".gif":   "image/gif",
	".webp":  "image/webp",
	".avif":  "image/avif",
	".ico":   "image/x-icon",
	".woff":  "font/woff",
	".woff2": "font/woff2",
	".ttf":   "font/ttf",
	".otf":   "font/otf",
	".wasm":  "application/wasm",
	".txt":   "text/plain;charset=utf-8",
}

// MimeType returns the MIME type for p based on its extension, falling
// back to application/octet-stream.
func MimeType(p string) string {
	ext := strings.ToLower(path.Ext(p))
	if t, ok := knownTypes[ext]; ok {
		return t
	}
	if t := mime.TypeByExtension(ext); t != "" {
		return t
	}
	return "application/octet-stream"
}

func isScript(p string) bool {
	switch strings.ToLower(path.Ext(p)) {
	case ".js", ".mjs", ".cjs":
		return true
	}
	return false
}
