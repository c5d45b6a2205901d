package naming

import (
	"fmt"
	"sync"
)

// CollisionResolver tracks which source file owns each artifact base name and
// resolves duplicates by appending "-dupN". Resolution is deterministic for a
// given processing order, so re-runs produce the same names. All methods are
// goroutine-safe.
type CollisionResolver struct {
	mu     sync.Mutex
	owners map[string]string // base name → source path that owns it
}

// NewCollisionResolver creates a ready-to-use resolver.
func NewCollisionResolver() *CollisionResolver {
	return &CollisionResolver{
		owners: make(map[string]string),
	}
}

// Resolve returns the base name source should write under. If base is
// unclaimed (or already owned by source) it is returned as-is; otherwise the
// lowest free (or already owned) "-dupN" variant is claimed.
func (cr *CollisionResolver) Resolve(source, base string) string {
	cr.mu.Lock()
	defer cr.mu.Unlock()

	owner, exists := cr.owners[base]
	if !exists || owner == source {
		cr.owners[base] = source
		return base
	}

	for counter := 1; ; counter++ {
		candidate := fmt.Sprintf("%s-dup%d", base, counter)
		cOwner, cExists := cr.owners[candidate]
		if !cExists || cOwner == source {
			cr.owners[candidate] = source
			return candidate
		}
	}
}
