package relative

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

//go:embed locales/*.yaml
var localeFS embed.FS

// Tables maps locale codes to their phrase tables
type Tables map[string]PhraseTable

// Loader retrieves the phrase tables used to seed a Store
type Loader interface {
	Load() (Tables, error)
}

// LoaderFunc adapters allow bare functions to implement Loader interface
type LoaderFunc func() (Tables, error)

// Load implements Loader for LoaderFunc
func (fn LoaderFunc) Load() (Tables, error) {
	return fn()
}

// FileLoader reads locale files shaped as {locale: {key: phrase}}, where phrase
// is a string or a map of plural categories. Recognized keys are the unit labels
// (s m h d M y), their "+s" future, "-s" past and "s-" tense free variants,
// "past", "future" and "pluralKey". Later files override earlier keys.
type FileLoader struct {
	fsys  fs.FS
	paths []string
}

func NewFileLoader(paths ...string) *FileLoader {
	return &FileLoader{paths: append([]string(nil), paths...)}
}

// NewFSLoader reads paths from fsys instead of the OS filesystem
func NewFSLoader(fsys fs.FS, paths ...string) *FileLoader {
	return &FileLoader{fsys: fsys, paths: append([]string(nil), paths...)}
}

// EmbeddedLoader loads the bundled en and es tables
func EmbeddedLoader() *FileLoader {
	return NewFSLoader(localeFS, "locales/en.yaml", "locales/es.yaml")
}

func (l *FileLoader) Load() (Tables, error) {
	if l == nil || len(l.paths) == 0 {
		return nil, errors.New("relative: no loader paths configured")
	}

	raw := make(map[string]map[string]any)

	for _, p := range l.paths {
		data, err := l.read(p)
		if err != nil {
			return nil, fmt.Errorf("relative: read %s: %w", p, err)
		}

		src, err := decodeLocaleFile(p, data)
		if err != nil {
			return nil, fmt.Errorf("relative: decode %s: %w", p, err)
		}
		mergeLocaleKeys(raw, src)
	}

	tables := make(Tables, len(raw))
	for locale, entries := range raw {
		table, err := buildPhraseTable(entries)
		if err != nil {
			return nil, fmt.Errorf("relative: %s: %w", locale, err)
		}
		tables[locale] = table
	}

	return tables, nil
}

func (l *FileLoader) read(p string) ([]byte, error) {
	if l.fsys != nil {
		return fs.ReadFile(l.fsys, p)
	}
	return os.ReadFile(p)
}

func decodeLocaleFile(p string, data []byte) (map[string]map[string]any, error) {
	var raw map[string]map[string]any

	ext := strings.ToLower(filepath.Ext(p))
	switch ext {
	case ".json":
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("yaml parse error: %w", err)
		}
	case ".toml":
		if _, err := toml.Decode(string(data), &raw); err != nil {
			return nil, fmt.Errorf("toml parse error: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported extension %s", ext)
	}

	if len(raw) == 0 {
		return nil, errors.New("no locales defined")
	}
	for locale, entries := range raw {
		if locale == "" {
			return nil, fmt.Errorf("empty locale in %s", p)
		}
		if len(entries) == 0 {
			return nil, fmt.Errorf("locale %s has no phrases", locale)
		}
	}

	return raw, nil
}

func mergeLocaleKeys(dst, src map[string]map[string]any) {
	for locale, entries := range src {
		locale = normalizeLocale(locale)
		target := dst[locale]
		if target == nil {
			target = make(map[string]any, len(entries))
			dst[locale] = target
		}
		for key, value := range entries {
			target[key] = value
		}
	}
}

func buildPhraseTable(entries map[string]any) (PhraseTable, error) {
	table := PhraseTable{Units: make(map[Unit]UnitPhrases)}

	// deterministic error reporting
	keys := make([]string, 0, len(entries))
	for key := range entries {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		value := entries[key]

		switch key {
		case "pluralKey", "plural_key":
			name, ok := value.(string)
			if !ok || name == "" {
				return PhraseTable{}, fmt.Errorf("%s must be a non empty string, got %T", key, value)
			}
			table.PluralKey = name
			continue
		}

		tpl, err := buildTemplate(value)
		if err != nil {
			return PhraseTable{}, fmt.Errorf("%s: %w", key, err)
		}

		switch key {
		case "past":
			table.Past = tpl
			continue
		case "future":
			table.Future = tpl
			continue
		}

		label, slot := splitUnitKey(key)
		unit, err := ParseUnit(label)
		if err != nil {
			return PhraseTable{}, fmt.Errorf("unknown key %q", key)
		}

		phrases := table.Units[unit]
		switch slot {
		case '+':
			phrases.Future = tpl
		case '-':
			phrases.Past = tpl
		case '_':
			phrases.Bare = tpl
		default:
			phrases.Any = tpl
		}
		table.Units[unit] = phrases
	}

	return table, nil
}

// splitUnitKey separates "+s", "-s" and "s-" into the label and a slot marker
func splitUnitKey(key string) (string, byte) {
	switch {
	case len(key) > 1 && (key[0] == '+' || key[0] == '-'):
		return key[1:], key[0]
	case len(key) > 1 && key[len(key)-1] == '-':
		return key[:len(key)-1], '_'
	default:
		return key, 0
	}
}

func buildTemplate(value any) (*Template, error) {
	switch v := value.(type) {
	case string:
		if v == "" {
			return nil, errors.New("empty phrase")
		}
		return Text(v), nil
	case map[string]any:
		variants := make(map[PluralCategory]string, len(v))
		for category, phrase := range v {
			cat, err := parsePluralCategory(category)
			if err != nil {
				return nil, err
			}
			text, ok := phrase.(string)
			if !ok {
				return nil, fmt.Errorf("plural variant %s must be a string, got %T", category, phrase)
			}
			variants[cat] = text
		}
		return buildVariants(variants)
	default:
		return nil, fmt.Errorf("unsupported phrase value type: %T", value)
	}
}

func buildVariants(variants map[PluralCategory]string) (*Template, error) {
	if len(variants) == 0 {
		return nil, errors.New("no variants defined")
	}

	if _, ok := variants[PluralOther]; !ok {
		if len(variants) != 1 {
			return nil, fmt.Errorf("missing %q plural form", PluralOther)
		}
		for category, phrase := range variants {
			variants[PluralOther] = phrase
			delete(variants, category)
			break
		}
	}

	return Plural(variants), nil
}

func parsePluralCategory(raw string) (PluralCategory, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "zero":
		return PluralZero, nil
	case "one":
		return PluralOne, nil
	case "two":
		return PluralTwo, nil
	case "few":
		return PluralFew, nil
	case "many":
		return PluralMany, nil
	case "other":
		return PluralOther, nil
	default:
		return "", fmt.Errorf("unknown plural category %q", raw)
	}
}
