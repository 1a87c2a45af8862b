// Package relative turns a signed difference in seconds into localized "in 5
// minutes" / "5 minutes ago" token sequences.
//
// A locale's PhraseTable is compiled once by New into per unit formatters backed
// by a TemplateCompiler (go-i18n by default). The returned Formatter picks the
// unit bucket for each difference, selects the tense and returns a flat Tokens
// sequence of strings and int64 magnitudes, so callers can style the number
// separately from the surrounding text.
//
//	f, err := relative.New(table, "en")
//	tokens, err := f.Format(relative.Seconds(-90)) // ["a minute", " ago"]
package relative

import (
	"fmt"
	"math"
	"time"
)

// Input is either Seconds or Params
type Input interface {
	difference(pluralKey string) (float64, Params, error)
}

// Seconds is a signed difference. Positive values are in the future.
type Seconds float64

func (s Seconds) difference(string) (float64, Params, error) {
	return float64(s), nil, nil
}

// difference reads the signed seconds from the plural key. The remaining
// parameters are forwarded to the phrases.
func (p Params) difference(pluralKey string) (float64, Params, error) {
	value, ok := p[pluralKey]
	if !ok {
		return 0, nil, fmt.Errorf("%w: %q", ErrMissingParameter, pluralKey)
	}
	diff, ok := toSeconds(value)
	if !ok {
		return 0, nil, fmt.Errorf("%w: %q must be a number, got %T", ErrMissingParameter, pluralKey, value)
	}
	return diff, p, nil
}

func toSeconds(value any) (float64, bool) {
	switch v := value.(type) {
	case Seconds:
		return float64(v), true
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int8:
		return float64(v), true
	case int16:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint:
		return float64(v), true
	case uint8:
		return float64(v), true
	case uint16:
		return float64(v), true
	case uint32:
		return float64(v), true
	case uint64:
		return float64(v), true
	case time.Duration:
		return v.Seconds(), true
	default:
		return 0, false
	}
}

// Formatter evaluates differences against a compiled phrase table. It is
// immutable and safe for concurrent use when its TemplateCompiler's phrases are.
type Formatter struct {
	locale    string
	pluralKey string
	limits    []Bucket
	set       *formatterSet
}

// New compiles table for locale. A unit without a usable template for the
// resolved tense mode fails with ErrMissingTemplate.
func New(table PhraseTable, locale string, opts ...Option) (*Formatter, error) {
	o, err := newOptions(table, opts...)
	if err != nil {
		return nil, err
	}

	set, err := compile(table, locale, o)
	if err != nil {
		return nil, err
	}

	return &Formatter{
		locale:    locale,
		pluralKey: o.pluralKey,
		limits:    o.limits,
		set:       set,
	}, nil
}

// Format returns the flattened tokens describing in. A zero difference uses the
// future phrase of the smallest bucket.
func (f *Formatter) Format(in Input) (Tokens, error) {
	if in == nil {
		return nil, fmt.Errorf("%w: no input", ErrMissingParameter)
	}

	diff, caller, err := in.difference(f.pluralKey)
	if err != nil {
		return nil, err
	}
	if math.IsNaN(diff) || math.IsInf(diff, 0) {
		return nil, fmt.Errorf("%w: %q is not finite", ErrMissingParameter, f.pluralKey)
	}

	duration := math.Abs(diff)
	bucket := f.bucket(duration)

	magnitude := math.Floor(duration / bucket.Divisor)
	if magnitude >= math.MaxInt64 {
		return nil, fmt.Errorf("%w: %g %s", ErrOutOfRange, magnitude, bucket.Unit.Label())
	}

	params := caller.clone()
	params[f.pluralKey] = int64(magnitude)

	out, err := f.set.phrase(bucket.Unit, diff >= 0)(params)
	if err != nil {
		return nil, err
	}
	return Flatten(out), nil
}

// bucket returns the first bucket whose inclusive Limit covers duration
func (f *Formatter) bucket(duration float64) Bucket {
	for _, b := range f.limits {
		if b.Limit >= duration {
			return b
		}
	}
	// unreachable: validateLimits requires an unbounded last bucket
	return f.limits[len(f.limits)-1]
}

// FormatString joins the tokens of Format
func (f *Formatter) FormatString(in Input) (string, error) {
	tokens, err := f.Format(in)
	if err != nil {
		return "", err
	}
	return tokens.String(), nil
}

// FormatDuration formats d as a difference from now
func (f *Formatter) FormatDuration(d time.Duration) (Tokens, error) {
	return f.Format(Seconds(d.Seconds()))
}

// FormatTime describes t relative to now: future when t is after now.
func (f *Formatter) FormatTime(t, now time.Time) (Tokens, error) {
	return f.FormatDuration(t.Sub(now))
}

func (f *Formatter) Locale() string {
	return f.locale
}

func (f *Formatter) PluralKey() string {
	return f.pluralKey
}

func (f *Formatter) TenseMode() TenseMode {
	return f.set.mode
}
