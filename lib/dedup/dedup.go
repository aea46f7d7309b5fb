// Package dedup remembers which elements have already been seen across
// crawl passes.
package dedup

import (
	"sync"

	"webprobe/lib/element"

	lru "github.com/hashicorp/golang-lru/v2"
)

const DefaultSize = 1 << 16

// Seen is a bounded set of element identity keys, the least recently added
// keys are forgotten first. It is safe for concurrent use.
type Seen struct {
	mu    sync.Mutex
	cache *lru.Cache[string, struct{}]
}

func New(size int) (*Seen, error) {
	if size <= 0 {
		size = DefaultSize
	}
	cache, err := lru.New[string, struct{}](size)
	if err != nil {
		return nil, err
	}
	return &Seen{cache: cache}, nil
}

// Add records e and reports whether it was not seen before.
func (s *Seen) Add(e element.Element) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	found, _ := s.cache.ContainsOrAdd(e.IdentityKey(), struct{}{})
	return !found
}

func (s *Seen) Has(e element.Element) bool {
	return s.cache.Contains(e.IdentityKey())
}

func (s *Seen) Len() int {
	return s.cache.Len()
}

// Filter returns the elements of in that were not seen before and records
// them, duplicates within in are dropped as well.
func (s *Seen) Filter(in []element.Element) []element.Element {
	out := make([]element.Element, 0, len(in))
	for _, e := range in {
		if s.Add(e) {
			out = append(out, e)
		}
	}
	return out
}
