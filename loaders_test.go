package relative

import (
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedLoader(t *testing.T) {
	tables, err := EmbeddedLoader().Load()
	require.NoError(t, err)
	require.Len(t, tables, 2)

	en := tables["en"]
	assert.Equal(t, "time", en.PluralKey)
	assert.Equal(t, Text("in {{.time}}"), en.Future)
	assert.Equal(t, Text("{{.time}} ago"), en.Past)
	for _, unit := range Units() {
		assert.True(t, en.Units[unit].Any.usable(), "en %s", unit)
	}

	phrase, ok := en.Units[Hour].Any.Variant(PluralOne)
	require.True(t, ok)
	assert.Equal(t, "an hour", phrase)

	es := tables["es"]
	assert.Empty(t, es.PluralKey)
	assert.Equal(t, Text("hace {{.time}}"), es.Past)
}

func TestFileLoaderJSONTaggedKeys(t *testing.T) {
	tables, err := NewFileLoader(filepath.Join("testdata", "en_tagged.json")).Load()
	require.NoError(t, err)

	s := tables["en"].Units[Second]
	assert.Nil(t, s.Any)
	require.NotNil(t, s.Future)
	require.NotNil(t, s.Past)

	phrase, _ := s.Future.Variant(PluralOne)
	assert.Equal(t, "in a second", phrase)
	phrase, _ = s.Past.Variant(PluralOther)
	assert.Equal(t, "{{.time}} seconds ago", phrase)
}

func TestFileLoaderTOML(t *testing.T) {
	tables, err := NewFileLoader(filepath.Join("testdata", "ru.toml")).Load()
	require.NoError(t, err)

	ru, ok := tables["ru"]
	require.True(t, ok)
	assert.Equal(t, "count", ru.PluralKey)

	f, err := New(ru, "ru")
	require.NoError(t, err)

	tests := []struct {
		diff Seconds
		want Tokens
	}{
		{diff: 180, want: Tokens{"через ", int64(3), " минуты"}},
		{diff: -5 * 3600, want: Tokens{int64(5), " часов", " назад"}},
		{diff: -21 * 31104000, want: Tokens{int64(21), " год", " назад"}},
		{diff: 1, want: Tokens{"через ", int64(1), " секунду"}},
	}
	for _, tc := range tests {
		got, err := f.Format(tc.diff)
		require.NoError(t, err)
		assert.Equal(t, tc.want, got, "Format(%v)", tc.diff)
	}
}

func TestFileLoaderMergesFiles(t *testing.T) {
	base, err := NewFSLoader(localeFS, "locales/en.yaml").Load()
	require.NoError(t, err)

	merged, err := NewFileLoader(
		filepath.Join("locales", "en.yaml"),
		filepath.Join("testdata", "en_override.yaml"),
	).Load()
	require.NoError(t, err)

	en := merged["en"]
	phrase, _ := en.Units[Minute].Any.Variant(PluralOne)
	assert.Equal(t, "one minute", phrase)
	assert.Equal(t, Text("moments"), en.Units[Second].Bare)
	assert.Equal(t, base["en"].Units[Hour], en.Units[Hour])

	f, err := New(en, "en", WithRemoveTense())
	require.NoError(t, err)
	got, err := f.Format(Seconds(-12))
	require.NoError(t, err)
	assert.Equal(t, Tokens{"moments"}, got)
}

func TestFSLoader(t *testing.T) {
	fsys := fstest.MapFS{
		"fr.json": &fstest.MapFile{Data: []byte(`{"fr_FR": {"s": "quelques secondes", "m": {"one": "une minute", "other": "{{.time}} minutes"}}}`)},
	}

	tables, err := NewFSLoader(fsys, "fr.json").Load()
	require.NoError(t, err)

	fr, ok := tables["fr-FR"]
	require.True(t, ok, "locale codes are normalized")
	assert.Equal(t, Text("quelques secondes"), fr.Units[Second].Any)
}

func TestFileLoaderErrors(t *testing.T) {
	tests := map[string]*FileLoader{
		"no paths":    NewFileLoader(),
		"missing":     NewFileLoader(filepath.Join("testdata", "missing.yaml")),
		"unsupported": NewFileLoader(filepath.Join("testdata", "unsupported.txt")),
		"unknown key": NewFileLoader(filepath.Join("testdata", "invalid_key.yaml")),
	}

	for name, loader := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := loader.Load()
			assert.Error(t, err)
		})
	}
}

func TestBuildPhraseTable(t *testing.T) {
	table, err := buildPhraseTable(map[string]any{
		"plural_key": "n",
		"future":     "in {{.n}}",
		"s":          map[string]any{"one": "a second"},
		"+m":         "in a bit",
		"-m":         "a bit ago",
		"h-":         "hours",
	})
	require.NoError(t, err)

	assert.Equal(t, "n", table.PluralKey)
	assert.Nil(t, table.Past)
	assert.Equal(t, Text("a second"), table.Units[Second].Any, "single variant becomes other")
	assert.Equal(t, Text("in a bit"), table.Units[Minute].Future)
	assert.Equal(t, Text("a bit ago"), table.Units[Minute].Past)
	assert.Equal(t, Text("hours"), table.Units[Hour].Bare)

	invalid := []map[string]any{
		{"s": map[string]any{"one": "a", "few": "b"}},
		{"s": map[string]any{"lots": "a"}},
		{"s": 12},
		{"s": ""},
		{"pluralKey": 3},
		{"w": "week"},
	}
	for _, entries := range invalid {
		_, err := buildPhraseTable(entries)
		assert.Error(t, err, "%v", entries)
	}
}
