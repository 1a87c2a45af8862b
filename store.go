package relative

import (
	"sort"
)

// Store exposes read only access to phrase tables
type Store interface {
	// Table returns the phrase table for locale and ok=false if missing
	Table(locale string) (PhraseTable, bool)
	// Locales returns the list of locales known to the store
	Locales() []string
}

// StaticStore is an in memory store, read only after construction
type StaticStore struct {
	tables  Tables
	locales []string
}

var _ Store = &StaticStore{}

// NewStaticStore builds an immutable snapshot from the given tables
func NewStaticStore(data Tables) *StaticStore {
	if len(data) == 0 {
		return &StaticStore{tables: make(Tables)}
	}

	tables := make(Tables, len(data))
	locales := make([]string, 0, len(data))

	for locale, table := range data {
		locale = normalizeLocale(locale)
		if locale == "" {
			continue
		}
		if _, exists := tables[locale]; !exists {
			locales = append(locales, locale)
		}
		tables[locale] = table.Clone()
	}

	// make locales deterministic
	sort.Strings(locales)

	return &StaticStore{
		tables:  tables,
		locales: locales,
	}
}

// NewStaticStoreFromLoader hydrates a StaticStore using the provided loader
func NewStaticStoreFromLoader(loader Loader) (*StaticStore, error) {
	if loader == nil {
		return NewStaticStore(nil), nil
	}

	tables, err := loader.Load()
	if err != nil {
		return nil, err
	}

	return NewStaticStore(tables), nil
}

// Table returns a copy of the phrase table for locale
func (s *StaticStore) Table(locale string) (PhraseTable, bool) {
	if s == nil {
		return PhraseTable{}, false
	}

	table, ok := s.tables[normalizeLocale(locale)]
	if !ok {
		return PhraseTable{}, false
	}

	return table.Clone(), true
}

// Locales returns a slice with all locale codes
func (s *StaticStore) Locales() []string {
	if s == nil || len(s.locales) == 0 {
		return nil
	}
	out := make([]string, len(s.locales))
	copy(out, s.locales)
	return out
}
