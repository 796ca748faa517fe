// Package sandbox manages throwaway directories for isolated builds:
// create one, copy a project into it, build there, copy results out, and
// destroy it.
package sandbox

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// ExistsPolicy decides what Create does when the path is taken.
type ExistsPolicy string

const (
	ExistsCleanup ExistsPolicy = "cleanup" // remove the old directory first
	ExistsSuffix  ExistsPolicy = "suffix"  // append 2, 3, ... until free
	ExistsError   ExistsPolicy = "error"   // fail with ErrExists
)

const maxSuffix = 1000

var (
	ErrExists       = errors.New("sandbox path already exists")
	ErrNotFound     = errors.New("path does not exist")
	ErrNoFreeSuffix = errors.New("no free sandbox path after many suffix attempts")
	ErrCopyIntoSelf = errors.New("cannot copy a directory into itself")
)

// ParseExistsPolicy accepts the policy names plus "throw" as an alias of
// "error".
func ParseExistsPolicy(s string) (ExistsPolicy, error) {
	switch ExistsPolicy(s) {
	case ExistsCleanup, ExistsSuffix, ExistsError:
		return ExistsPolicy(s), nil
	case "throw":
		return ExistsError, nil
	}
	return "", fmt.Errorf("invalid exists policy %q (want cleanup, suffix or error)", s)
}

// Options configures Create.
type Options struct {
	Exists ExistsPolicy
	// RandomSuffix creates "<path>-<random>" instead of path itself.
	RandomSuffix bool
	// UseTempDir places the sandbox under os.TempDir, keeping only the
	// last element of path.
	UseTempDir bool
}

// DefaultOptions cleans up an existing sandbox and creates it in place.
func DefaultOptions() Options {
	return Options{Exists: ExistsCleanup}
}

// Create makes the sandbox directory and returns its path.
func Create(path string, opts Options) (string, error) {
	used := path
	if exists(path) {
		switch opts.Exists {
		case ExistsCleanup, "":
			if err := Destroy(path); err != nil {
				return "", err
			}
		case ExistsSuffix:
			var err error
			if used, err = freeSuffix(path); err != nil {
				return "", err
			}
		default:
			return "", fmt.Errorf("%w: %s", ErrExists, path)
		}
	}

	if opts.UseTempDir {
		used = filepath.Join(os.TempDir(), filepath.Base(used))
	}
	if opts.RandomSuffix {
		if err := os.MkdirAll(filepath.Dir(used), 0o755); err != nil {
			return "", err
		}
		dir, err := os.MkdirTemp(filepath.Dir(used), filepath.Base(used)+"-*")
		if err != nil {
			return "", fmt.Errorf("create sandbox: %w", err)
		}
		return dir, nil
	}
	if err := os.MkdirAll(used, 0o755); err != nil {
		return "", fmt.Errorf("create sandbox: %w", err)
	}
	return used, nil
}

func freeSuffix(path string) (string, error) {
	for n := 2; n <= maxSuffix; n++ {
		candidate := path + strconv.Itoa(n)
		if !exists(candidate) {
			return candidate, nil
		}
	}
	return "", ErrNoFreeSuffix
}

// Destroy removes the sandbox and everything in it. A missing sandbox is
// not an error.
func Destroy(path string) error {
	if err := os.RemoveAll(path); err != nil {
		return fmt.Errorf("destroy sandbox: %w", err)
	}
	return nil
}

// Import copies from (a file or directory) to sandbox/inSandbox and
// returns the destination.
func Import(from, sandbox, inSandbox string) (string, error) {
	if !exists(from) {
		return "", fmt.Errorf("%w: source %s", ErrNotFound, from)
	}
	if !exists(sandbox) {
		return "", fmt.Errorf("%w: sandbox %s", ErrNotFound, sandbox)
	}
	dst := filepath.Join(sandbox, inSandbox)
	if err := CopyTree(from, dst); err != nil {
		return "", err
	}
	return dst, nil
}

// Export copies sandbox/inSandbox to to and returns to.
func Export(sandbox, inSandbox, to string) (string, error) {
	if !exists(sandbox) {
		return "", fmt.Errorf("%w: sandbox %s", ErrNotFound, sandbox)
	}
	src := filepath.Join(sandbox, inSandbox)
	if !exists(src) {
		return "", fmt.Errorf("%w: %s in sandbox %s", ErrNotFound, inSandbox, sandbox)
	}
	if err := CopyTree(src, to); err != nil {
		return "", err
	}
	return to, nil
}

func exists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}
