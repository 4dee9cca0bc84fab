package stubapi

import (
	"sync"

	"corp-onboarding/internal/onboarding/format"
)

// Registry is the set of corporation numbers the stub reports as valid.
type Registry struct {
	mu      sync.RWMutex
	numbers map[string]struct{}
}

// NewRegistry accepts numbers in display or canonical form; incomplete ones are skipped.
func NewRegistry(numbers ...string) *Registry {
	r := &Registry{numbers: map[string]struct{}{}}
	for _, n := range numbers {
		r.Add(n)
	}
	return r
}

// Add registers a number and reports whether it was complete.
func (r *Registry) Add(number string) bool {
	canonical := format.CanonicalCorporation(number)
	if !format.IsCompleteCorporation(canonical) {
		return false
	}
	r.mu.Lock()
	r.numbers[canonical] = struct{}{}
	r.mu.Unlock()
	return true
}

func (r *Registry) Contains(canonical string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.numbers[canonical]
	return ok
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.numbers)
}
