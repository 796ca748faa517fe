package naming

import (
	"errors"
	"sort"
	"sync"
)

// ErrCollision is returned by callers that treat renamed-path collisions as
// fatal (see CollisionDetector).
var ErrCollision = errors.New("multiple outputs renamed to the same path")

// Collision describes one renamed path claimed by more than one original.
type Collision struct {
	Path    string
	Sources []string // original paths in claim order
}

// CollisionDetector tracks which original output claimed each renamed path.
// Unlike a resolver it never changes a mapping; it only reports duplicates,
// so the caller decides whether a collision is a warning or an error.
// All methods are goroutine-safe.
type CollisionDetector struct {
	mu     sync.Mutex
	owners map[string]string   // renamed path → first original
	extra  map[string][]string // renamed path → later originals
}

// NewCollisionDetector creates a ready-to-use detector.
func NewCollisionDetector() *CollisionDetector {
	return &CollisionDetector{
		owners: make(map[string]string),
		extra:  make(map[string][]string),
	}
}

// Claim records that original maps to renamed. It returns false when
// renamed is already owned by a different original.
func (cd *CollisionDetector) Claim(original, renamed string) bool {
	cd.mu.Lock()
	defer cd.mu.Unlock()

	owner, exists := cd.owners[renamed]
	if !exists || owner == original {
		cd.owners[renamed] = original
		return true
	}
	cd.extra[renamed] = append(cd.extra[renamed], original)
	return false
}

// Collisions returns every contested path, sorted by path.
func (cd *CollisionDetector) Collisions() []Collision {
	cd.mu.Lock()
	defer cd.mu.Unlock()

	out := make([]Collision, 0, len(cd.extra))
	for p, later := range cd.extra {
		sources := append([]string{cd.owners[p]}, later...)
		out = append(out, Collision{Path: p, Sources: sources})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out
}
