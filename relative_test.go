package relative

import (
	"math"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func embeddedTable(t *testing.T, locale string) PhraseTable {
	t.Helper()

	tables, err := EmbeddedLoader().Load()
	require.NoError(t, err)

	table, ok := tables[locale]
	require.True(t, ok, "embedded locale %q", locale)
	return table
}

func newEnglish(t *testing.T, opts ...Option) *Formatter {
	t.Helper()

	f, err := New(embeddedTable(t, "en"), "en", opts...)
	require.NoError(t, err)
	return f
}

func TestFormatterEnglish(t *testing.T) {
	f := newEnglish(t)
	require.Equal(t, TenseFull, f.TenseMode())

	tests := []struct {
		diff Seconds
		want Tokens
	}{
		{diff: 1, want: Tokens{"in ", "a second"}},
		{diff: -1, want: Tokens{"a second", " ago"}},
		{diff: 59, want: Tokens{"in ", int64(59), " seconds"}},
		{diff: -59, want: Tokens{int64(59), " seconds", " ago"}},

		{diff: 60, want: Tokens{"in ", "a minute"}},
		{diff: -60, want: Tokens{"a minute", " ago"}},
		{diff: 3599, want: Tokens{"in ", int64(59), " minutes"}},
		{diff: -3599, want: Tokens{int64(59), " minutes", " ago"}},

		{diff: 3600, want: Tokens{"in ", "an hour"}},
		{diff: -3600, want: Tokens{"an hour", " ago"}},
		{diff: 86399, want: Tokens{"in ", int64(23), " hours"}},
		{diff: -86399, want: Tokens{int64(23), " hours", " ago"}},

		{diff: 86400, want: Tokens{"in ", "a day"}},
		{diff: -86400, want: Tokens{"a day", " ago"}},
		{diff: 2591999, want: Tokens{"in ", int64(29), " days"}},
		{diff: -2591999, want: Tokens{int64(29), " days", " ago"}},

		{diff: 2592000, want: Tokens{"in ", "a month"}},
		{diff: -2592000, want: Tokens{"a month", " ago"}},
		{diff: 31103999, want: Tokens{"in ", int64(11), " months"}},
		{diff: -31103999, want: Tokens{int64(11), " months", " ago"}},

		{diff: 31104000, want: Tokens{"in ", "a year"}},
		{diff: -31104000, want: Tokens{"a year", " ago"}},
		{diff: 123456789, want: Tokens{"in ", int64(3), " years"}},
		{diff: -123456789, want: Tokens{int64(3), " years", " ago"}},
	}

	for _, tc := range tests {
		got, err := f.Format(tc.diff)
		require.NoError(t, err, "Format(%v)", tc.diff)
		assert.Equal(t, tc.want, got, "Format(%v)", tc.diff)
	}
}

func TestFormatterZeroIsFuture(t *testing.T) {
	f := newEnglish(t)

	got, err := f.Format(Seconds(0))
	require.NoError(t, err)
	assert.Equal(t, Tokens{"in ", int64(0), " seconds"}, got)
}

func TestFormatterSignSelectsTenseOnly(t *testing.T) {
	f := newEnglish(t)

	for _, d := range []Seconds{1, 45, 61, 7200, 90000, 5000000, 99999999} {
		future, err := f.Format(d)
		require.NoError(t, err)
		past, err := f.Format(-d)
		require.NoError(t, err)

		require.Equal(t, "in ", future[0], "future %v", d)
		require.Equal(t, " ago", past[len(past)-1], "past %v", d)
		assert.Equal(t, future[1:], past[:len(past)-1], "same unit phrase for %v", d)
	}
}

func TestFormatterRemoveTense(t *testing.T) {
	f := newEnglish(t, WithRemoveTense())
	require.Equal(t, TenseForcedOff, f.TenseMode())

	for _, d := range []Seconds{60, -60} {
		got, err := f.Format(d)
		require.NoError(t, err)
		assert.Equal(t, Tokens{"a minute"}, got)
	}

	got, err := f.Format(Seconds(-3599))
	require.NoError(t, err)
	assert.Equal(t, Tokens{int64(59), " minutes"}, got)
}

func TestFormatterTenseAbsentInSource(t *testing.T) {
	table := embeddedTable(t, "en")
	table.Past = nil
	table.Future = nil

	f, err := New(table, "en")
	require.NoError(t, err)
	require.Equal(t, TenseAbsentInSource, f.TenseMode())

	forced := newEnglish(t, WithRemoveTense())

	for _, d := range []Seconds{60, -60, 3599, -86400, 0} {
		got, err := f.Format(d)
		require.NoError(t, err)
		want, err := forced.Format(d)
		require.NoError(t, err)
		assert.Equal(t, want, got, "Format(%v)", d)
	}
}

func TestFormatterCombinedTaggedPhrases(t *testing.T) {
	tables, err := NewFileLoader("testdata/en_tagged.json").Load()
	require.NoError(t, err)

	f, err := New(tables["en"], "en")
	require.NoError(t, err)

	tests := []struct {
		diff Seconds
		want Tokens
	}{
		{diff: 1, want: Tokens{"in a second"}},
		{diff: -1, want: Tokens{"a second ago"}},
		{diff: 30, want: Tokens{"in ", int64(30), " seconds"}},
		{diff: -30, want: Tokens{int64(30), " seconds ago"}},
		{diff: 60, want: Tokens{"in ", "a minute"}},
	}

	for _, tc := range tests {
		got, err := f.Format(tc.diff)
		require.NoError(t, err)
		assert.Equal(t, tc.want, got, "Format(%v)", tc.diff)
	}
}

func TestFormatterParamsInput(t *testing.T) {
	f := newEnglish(t)

	params := Params{"time": -3600, "user": "ana"}
	got, err := f.Format(params)
	require.NoError(t, err)
	assert.Equal(t, Tokens{"an hour", " ago"}, got)
	assert.Equal(t, Params{"time": -3600, "user": "ana"}, params, "caller params must not change")

	got, err = f.Format(Params{"time": 90 * time.Second})
	require.NoError(t, err)
	assert.Equal(t, Tokens{"in ", "a minute"}, got)
}

func TestFormatterMissingParameter(t *testing.T) {
	f := newEnglish(t)

	inputs := []Input{
		nil,
		Params(nil),
		Params{"when": 10},
		Params{"time": "soon"},
	}
	for _, in := range inputs {
		_, err := f.Format(in)
		assert.ErrorIs(t, err, ErrMissingParameter, "Format(%#v)", in)
	}
}

func TestFormatterRejectsNonFinite(t *testing.T) {
	f := newEnglish(t)

	for _, v := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		_, err := f.Format(Seconds(v))
		assert.ErrorIs(t, err, ErrMissingParameter, "Format(%v)", v)
	}
}

func TestFormatterRejectsOverflowingMagnitude(t *testing.T) {
	f := newEnglish(t)

	for _, v := range []float64{1e300, -1e300, math.MaxFloat64, 2.9e26} {
		_, err := f.Format(Seconds(v))
		assert.ErrorIs(t, err, ErrOutOfRange, "Format(%v)", v)
	}

	got, err := f.Format(Seconds(1e19))
	require.NoError(t, err)
	assert.Equal(t, Tokens{"in ", int64(321502057613), " years"}, got)
}

func TestFormatterConvenience(t *testing.T) {
	f := newEnglish(t)
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	got, err := f.FormatTime(now.Add(-2*time.Hour), now)
	require.NoError(t, err)
	assert.Equal(t, Tokens{int64(2), " hours", " ago"}, got)

	got, err = f.FormatDuration(3 * 24 * time.Hour)
	require.NoError(t, err)
	assert.Equal(t, Tokens{"in ", int64(3), " days"}, got)

	text, err := f.FormatString(Seconds(-59))
	require.NoError(t, err)
	assert.Equal(t, "59 seconds ago", text)

	assert.Equal(t, "en", f.Locale())
	assert.Equal(t, DefaultPluralKey, f.PluralKey())
}

func TestFormatterSpanish(t *testing.T) {
	f, err := New(embeddedTable(t, "es"), "es")
	require.NoError(t, err)

	text, err := f.FormatString(Seconds(-7200))
	require.NoError(t, err)
	assert.Equal(t, "hace 2 horas", text)

	text, err = f.FormatString(Seconds(86400))
	require.NoError(t, err)
	assert.Equal(t, "dentro de un día", text)
}

func TestFormatterConcurrentUse(t *testing.T) {
	f := newEnglish(t)

	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(sign Seconds) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				if _, err := f.Format(sign * Seconds(j*37)); err != nil {
					errs <- err
					return
				}
			}
		}(Seconds(1 - 2*(i%2)))
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Fatalf("concurrent Format: %v", err)
	}
}
