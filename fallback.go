package relative

import "sync"

// FallbackResolver resolves fallback locale chains
type FallbackResolver interface {
	Resolve(locale string) []string
}

// StaticFallbackResolver holds explicit fallback chains per locale
type StaticFallbackResolver struct {
	mu     sync.RWMutex
	chains map[string][]string
}

var _ FallbackResolver = &StaticFallbackResolver{}

func NewStaticFallbackResolver() *StaticFallbackResolver {
	return &StaticFallbackResolver{chains: make(map[string][]string)}
}

// Set replaces the chain for locale. Empty and self references are dropped.
func (r *StaticFallbackResolver) Set(locale string, fallbacks ...string) {
	locale = normalizeLocale(locale)
	if r == nil || locale == "" {
		return
	}

	chain := make([]string, 0, len(fallbacks))
	for _, fallback := range fallbacks {
		fallback = normalizeLocale(fallback)
		if fallback == "" || fallback == locale {
			continue
		}
		chain = append(chain, fallback)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.chains == nil {
		r.chains = make(map[string][]string)
	}
	if len(chain) == 0 {
		delete(r.chains, locale)
		return
	}
	r.chains[locale] = chain
}

func (r *StaticFallbackResolver) Resolve(locale string) []string {
	if r == nil {
		return nil
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	chain := r.chains[normalizeLocale(locale)]
	if len(chain) == 0 {
		return nil
	}
	out := make([]string, len(chain))
	copy(out, chain)
	return out
}
