package relative

import (
	"errors"
	"fmt"
	"sync"
)

// ErrUnknownLocale indicates no phrase table serves a locale or its fallbacks
var ErrUnknownLocale = errors.New("relative: unknown locale")

// Config wires locale data, fallback resolution and formatter options, and
// hands out one compiled Formatter per resolved locale.
type Config struct {
	DefaultLocale string
	Locales       []string
	Loader        Loader
	Store         Store
	Resolver      FallbackResolver

	formatterOptions []Option
	allowed          map[string]struct{}

	mu         sync.Mutex
	formatters map[string]*Formatter
}

// ConfigOption mutates Config during construction
type ConfigOption func(*Config) error

// NewConfig builds Config via supplied options. Without a Store or Loader the
// embedded en and es tables are used.
func NewConfig(opts ...ConfigOption) (*Config, error) {
	cfg := &Config{}

	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	if cfg.Store == nil {
		loader := cfg.Loader
		if loader == nil {
			loader = EmbeddedLoader()
		}
		store, err := NewStaticStoreFromLoader(loader)
		if err != nil {
			return nil, err
		}
		cfg.Store = store
	}

	if cfg.Resolver == nil {
		cfg.Resolver = NewStaticFallbackResolver()
	}

	cfg.Locales = dedupeLocales(normalizeAll(cfg.Locales))
	if len(cfg.Locales) == 0 {
		cfg.Locales = cfg.Store.Locales()
	} else {
		cfg.allowed = make(map[string]struct{}, len(cfg.Locales))
		for _, locale := range cfg.Locales {
			cfg.allowed[locale] = struct{}{}
		}
	}

	cfg.DefaultLocale = normalizeLocale(cfg.DefaultLocale)
	if cfg.DefaultLocale == "" && len(cfg.Locales) > 0 {
		cfg.DefaultLocale = cfg.Locales[0]
	}

	cfg.formatters = make(map[string]*Formatter)

	return cfg, nil
}

func normalizeAll(locales []string) []string {
	out := make([]string, 0, len(locales))
	for _, locale := range locales {
		out = append(out, normalizeLocale(locale))
	}
	return out
}

// WithDefaultLocale sets the locale used when nothing else matches
func WithDefaultLocale(locale string) ConfigOption {
	return func(c *Config) error {
		c.DefaultLocale = locale
		return nil
	}
}

// WithLocales restricts Formatter to the given locales. The first one is the
// default unless WithDefaultLocale is set.
func WithLocales(locales ...string) ConfigOption {
	return func(c *Config) error {
		c.Locales = append(c.Locales, locales...)
		return nil
	}
}

func WithLoader(loader Loader) ConfigOption {
	return func(c *Config) error {
		c.Loader = loader
		return nil
	}
}

func WithStore(store Store) ConfigOption {
	return func(c *Config) error {
		c.Store = store
		return nil
	}
}

func WithFallbackResolver(resolver FallbackResolver) ConfigOption {
	return func(c *Config) error {
		c.Resolver = resolver
		return nil
	}
}

// WithFallback adds an explicit chain to the StaticFallbackResolver. It is a no-op
// when a custom resolver is installed.
func WithFallback(locale string, fallbacks ...string) ConfigOption {
	return func(c *Config) error {
		if locale == "" {
			return nil
		}
		resolver, ok := c.Resolver.(*StaticFallbackResolver)
		if !ok {
			if c.Resolver != nil {
				return nil
			}
			resolver = NewStaticFallbackResolver()
			c.Resolver = resolver
		}
		resolver.Set(locale, fallbacks...)
		return nil
	}
}

// WithFormatterOptions applies opts to every Formatter the Config compiles
func WithFormatterOptions(opts ...Option) ConfigOption {
	return func(c *Config) error {
		c.formatterOptions = append(c.formatterOptions, opts...)
		return nil
	}
}

// Formatter returns the Formatter serving locale, compiling the resolved phrase
// table on first use.
func (cfg *Config) Formatter(locale string) (*Formatter, error) {
	if cfg == nil || cfg.Store == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownLocale, locale)
	}

	for _, candidate := range localeCandidates(locale, cfg.Resolver, cfg.DefaultLocale) {
		if !cfg.supports(candidate) {
			continue
		}
		if f, ok := cfg.cached(candidate); ok {
			return f, nil
		}

		table, ok := cfg.Store.Table(candidate)
		if !ok {
			continue
		}

		return cfg.compile(candidate, table)
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownLocale, locale)
}

// Format resolves the Formatter for locale and formats in
func (cfg *Config) Format(locale string, in Input) (Tokens, error) {
	f, err := cfg.Formatter(locale)
	if err != nil {
		return nil, err
	}
	return f.Format(in)
}

func (cfg *Config) supports(locale string) bool {
	if len(cfg.allowed) == 0 {
		return true
	}
	_, ok := cfg.allowed[locale]
	return ok
}

func (cfg *Config) cached(locale string) (*Formatter, bool) {
	cfg.mu.Lock()
	defer cfg.mu.Unlock()
	f, ok := cfg.formatters[locale]
	return f, ok
}

func (cfg *Config) compile(locale string, table PhraseTable) (*Formatter, error) {
	cfg.mu.Lock()
	defer cfg.mu.Unlock()

	if f, ok := cfg.formatters[locale]; ok {
		return f, nil
	}

	f, err := New(table, locale, cfg.formatterOptions...)
	if err != nil {
		return nil, err
	}
	if cfg.formatters == nil {
		cfg.formatters = make(map[string]*Formatter)
	}
	cfg.formatters[locale] = f
	return f, nil
}
