package relative

import (
	"fmt"
	"math"
)

// Unit identifies the display granularity of a bucket
type Unit int

const (
	Second Unit = iota
	Minute
	Hour
	Day
	Month
	Year

	numUnits
)

var unitLabels = [numUnits]string{"s", "m", "h", "d", "M", "y"}

// Units returns every unit in ascending order
func Units() []Unit {
	return []Unit{Second, Minute, Hour, Day, Month, Year}
}

// Label returns the locale table key for the unit (s, m, h, d, M, y)
func (u Unit) Label() string {
	if !u.valid() {
		return fmt.Sprintf("Unit(%d)", int(u))
	}
	return unitLabels[u]
}

func (u Unit) String() string {
	return u.Label()
}

func (u Unit) valid() bool {
	return u >= Second && u < numUnits
}

// ParseUnit maps a table key label to its Unit. Labels are case sensitive: "m" is
// minutes and "M" is months.
func ParseUnit(label string) (Unit, error) {
	for i, l := range unitLabels {
		if l == label {
			return Unit(i), nil
		}
	}
	return 0, fmt.Errorf("relative: unknown unit %q", label)
}

type PluralCategory string

const (
	PluralZero  PluralCategory = "zero"
	PluralOne   PluralCategory = "one"
	PluralTwo   PluralCategory = "two"
	PluralFew   PluralCategory = "few"
	PluralMany  PluralCategory = "many"
	PluralOther PluralCategory = "other"
)

// Template is an opaque phrase definition handed to the TemplateCompiler.
// Variants are keyed by CLDR plural category; a tense-invariant phrase without
// plural forms only sets PluralOther.
type Template struct {
	Variants map[PluralCategory]string
}

// Text builds a single form template
func Text(phrase string) *Template {
	return &Template{Variants: map[PluralCategory]string{PluralOther: phrase}}
}

// Plural builds a template from plural variants
func Plural(variants map[PluralCategory]string) *Template {
	t := &Template{Variants: make(map[PluralCategory]string, len(variants))}
	for category, phrase := range variants {
		t.Variants[category] = phrase
	}
	return t
}

// Variant returns the phrase for category, falling back to PluralOther
func (t *Template) Variant(category PluralCategory) (string, bool) {
	if t == nil || t.Variants == nil {
		return "", false
	}
	if phrase, ok := t.Variants[category]; ok {
		return phrase, true
	}
	phrase, ok := t.Variants[PluralOther]
	return phrase, ok
}

// usable reports whether the template carries at least one phrase
func (t *Template) usable() bool {
	if t == nil {
		return false
	}
	for _, phrase := range t.Variants {
		if phrase != "" {
			return true
		}
	}
	return false
}

func (t *Template) Clone() *Template {
	if t == nil {
		return nil
	}
	return Plural(t.Variants)
}

// UnitPhrases holds every form a locale may declare for one unit.
//
//	Any    "s"   tense invariant
//	Future "+s"  future tagged
//	Past   "-s"  past tagged
//	Bare   "s-"  used only when tense is off
type UnitPhrases struct {
	Any    *Template
	Future *Template
	Past   *Template
	Bare   *Template
}

func (p UnitPhrases) Clone() UnitPhrases {
	return UnitPhrases{
		Any:    p.Any.Clone(),
		Future: p.Future.Clone(),
		Past:   p.Past.Clone(),
		Bare:   p.Bare.Clone(),
	}
}

// PhraseTable is the raw phrase data of a single locale
type PhraseTable struct {
	Units map[Unit]UnitPhrases
	// Past and Future wrap the unit phrase, which they receive under the plural key
	Past   *Template
	Future *Template
	// PluralKey overrides DefaultPluralKey for this locale
	PluralKey string
}

func (t PhraseTable) Clone() PhraseTable {
	out := PhraseTable{
		Past:      t.Past.Clone(),
		Future:    t.Future.Clone(),
		PluralKey: t.PluralKey,
	}
	if len(t.Units) > 0 {
		out.Units = make(map[Unit]UnitPhrases, len(t.Units))
		for unit, phrases := range t.Units {
			out.Units[unit] = phrases.Clone()
		}
	}
	return out
}

func (t PhraseTable) phrases(unit Unit) UnitPhrases {
	if t.Units == nil {
		return UnitPhrases{}
	}
	return t.Units[unit]
}

// TenseMode is resolved once per compilation
type TenseMode int

const (
	// TenseFull formats past and future differently
	TenseFull TenseMode = iota
	// TenseForcedOff was requested through WithRemoveTense
	TenseForcedOff
	// TenseAbsentInSource means the table declares neither past nor future wrappers
	TenseAbsentInSource
)

func (m TenseMode) String() string {
	switch m {
	case TenseFull:
		return "full"
	case TenseForcedOff:
		return "forced-off"
	case TenseAbsentInSource:
		return "absent-in-source"
	default:
		return fmt.Sprintf("TenseMode(%d)", int(m))
	}
}

// Active reports whether past and future are formatted differently
func (m TenseMode) Active() bool {
	return m == TenseFull
}

func resolveTenseMode(table PhraseTable, removeTense bool) TenseMode {
	if removeTense {
		return TenseForcedOff
	}
	if !table.Past.usable() && !table.Future.usable() {
		return TenseAbsentInSource
	}
	return TenseFull
}

// Unbounded marks the upper limit of the last bucket
var Unbounded = math.Inf(1)

// Bucket maps durations up to and including Limit to Unit, displayed as
// floor(duration / Divisor).
type Bucket struct {
	Divisor float64
	Limit   float64
	Unit    Unit
}

// DefaultLimits returns the second to year bucket table. Months are 30 days and
// years 360 days.
func DefaultLimits() []Bucket {
	return []Bucket{
		{Divisor: 1, Limit: 59, Unit: Second},
		{Divisor: 60, Limit: 3599, Unit: Minute},
		{Divisor: 3600, Limit: 86399, Unit: Hour},
		{Divisor: 86400, Limit: 2591999, Unit: Day},
		{Divisor: 2592000, Limit: 31103999, Unit: Month},
		{Divisor: 31104000, Limit: Unbounded, Unit: Year},
	}
}

func validateLimits(limits []Bucket) error {
	if len(limits) == 0 {
		return fmt.Errorf("%w: no buckets", ErrInvalidLimits)
	}
	for i, b := range limits {
		if !b.Unit.valid() {
			return fmt.Errorf("%w: bucket %d has unknown unit %d", ErrInvalidLimits, i, int(b.Unit))
		}
		if !(b.Divisor > 0) {
			return fmt.Errorf("%w: bucket %d (%s) divisor must be positive", ErrInvalidLimits, i, b.Unit)
		}
	}
	if last := limits[len(limits)-1]; !math.IsInf(last.Limit, 1) {
		return fmt.Errorf("%w: last bucket (%s) must be unbounded", ErrInvalidLimits, last.Unit)
	}
	return nil
}
