package platform

import (
	"log/slog"
	"net/http"
	"slices"
	"sync"

	"webprobe/lib/urlutil"

	lru "github.com/hashicorp/golang-lru/v2"
)

const DefaultRegistrySize = 4096

// Registry maps normalized resource urls to the platforms seen behind them.
type Registry struct {
	mu    sync.Mutex
	cache *lru.Cache[string, Set]
}

func NewRegistry(size int) (*Registry, error) {
	if size <= 0 {
		size = DefaultRegistrySize
	}
	cache, err := lru.New[string, Set](size)
	if err != nil {
		return nil, err
	}
	return &Registry{cache: cache}, nil
}

func registryKey(rawUrl string) (string, bool) {
	key, _, err := urlutil.StripQuery(rawUrl)
	if err != nil {
		return "", false
	}
	return key, true
}

// Update adds names to the platforms recorded for rawUrl.
func (r *Registry) Update(rawUrl string, names ...Name) {
	key, ok := registryKey(rawUrl)
	if !ok {
		slog.Debug("platform: ignoring unparsable url", "url", rawUrl)
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	current, _ := r.cache.Get(key)
	r.cache.Add(key, current.Add(names...))
}

// Lookup returns the platforms recorded for rawUrl, an unknown url yields an
// empty set.
func (r *Registry) Lookup(rawUrl string) Set {
	key, ok := registryKey(rawUrl)
	if !ok {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	found, _ := r.cache.Get(key)
	return slices.Clone(found)
}

// Observe fingerprints a response and records the result.
func (r *Registry) Observe(rawUrl string, headers http.Header) {
	found := Fingerprint(rawUrl, headers)
	if len(found) == 0 {
		return
	}
	r.Update(rawUrl, found...)
}

func (r *Registry) Len() int {
	return r.cache.Len()
}
