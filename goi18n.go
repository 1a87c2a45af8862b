package relative

import (
	"fmt"
	"strconv"
	"strings"
	"text/template"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

// Parameter values are rendered as private use markers and split back out of the
// localized string, so numbers and nested sequences survive as distinct tokens.
const (
	markerOpen  = "\uE000"
	markerClose = "\uE001"
)

const phraseMessageID = "relative.phrase"

// GoI18nCompiler compiles templates with github.com/nicksnyder/go-i18n. Phrases use
// go-i18n template syntax, e.g. "{{.time}} seconds", and plural forms follow the
// CLDR cardinal rules bundled with go-i18n.
type GoI18nCompiler struct {
	leftDelim  string
	rightDelim string
	funcs      template.FuncMap
}

type GoI18nOption func(*GoI18nCompiler)

// WithDelims overrides the template delimiters
func WithDelims(left, right string) GoI18nOption {
	return func(c *GoI18nCompiler) {
		c.leftDelim = left
		c.rightDelim = right
	}
}

// WithTemplateFuncs exposes extra functions to phrase templates. Functions
// receive parameters as opaque marker strings and must pass them through.
func WithTemplateFuncs(funcs template.FuncMap) GoI18nOption {
	return func(c *GoI18nCompiler) {
		if len(funcs) == 0 {
			return
		}
		if c.funcs == nil {
			c.funcs = make(template.FuncMap, len(funcs))
		}
		for name, fn := range funcs {
			c.funcs[name] = fn
		}
	}
}

func NewGoI18nCompiler(opts ...GoI18nOption) *GoI18nCompiler {
	c := &GoI18nCompiler{}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

var _ TemplateCompiler = &GoI18nCompiler{}

// Compile registers the template in a dedicated bundle for locale and returns a
// PhraseFunc rendering it through a go-i18n Localizer.
func (c *GoI18nCompiler) Compile(tpl *Template, locale string, opts CompileOptions) (PhraseFunc, error) {
	tag, err := language.Parse(normalizeLocale(locale))
	if err != nil {
		return nil, fmt.Errorf("relative: parse locale %q: %w", locale, err)
	}

	msg, err := c.message(tpl)
	if err != nil {
		return nil, fmt.Errorf("relative: compile %q: %w", locale, err)
	}

	bundle := i18n.NewBundle(tag)
	if err := bundle.AddMessages(tag, msg); err != nil {
		return nil, fmt.Errorf("relative: compile %q: %w", locale, err)
	}
	localizer := i18n.NewLocalizer(bundle, tag.String())

	pluralKey := opts.PluralKey
	funcs := c.funcs

	return func(params Params) (Tokens, error) {
		data := make(map[string]any, len(params))
		values := make([]any, 0, len(params))
		for key, value := range params {
			data[key] = markerOpen + strconv.Itoa(len(values)) + markerClose
			values = append(values, value)
		}

		lc := &i18n.LocalizeConfig{
			MessageID:    msg.ID,
			TemplateData: data,
			Funcs:        funcs,
		}
		if count, ok := pluralCount(params[pluralKey]); ok {
			lc.PluralCount = count
		}

		out, err := localizer.Localize(lc)
		if err != nil {
			return nil, fmt.Errorf("relative: localize %q: %w", locale, err)
		}
		return splitMarkers(out, values), nil
	}, nil
}

// message converts tpl into a go-i18n message. Plural forms the template does not
// declare reuse the other form so every CLDR category resolves.
func (c *GoI18nCompiler) message(tpl *Template) (*i18n.Message, error) {
	if !tpl.usable() {
		return nil, fmt.Errorf("empty template")
	}
	other, ok := tpl.Variants[PluralOther]
	if !ok || other == "" {
		return nil, fmt.Errorf("missing %q plural form", PluralOther)
	}

	form := func(category PluralCategory) string {
		phrase, _ := tpl.Variant(category)
		if phrase == "" {
			return other
		}
		return phrase
	}

	return &i18n.Message{
		ID:         phraseMessageID,
		LeftDelim:  c.leftDelim,
		RightDelim: c.rightDelim,
		Zero:       form(PluralZero),
		One:        form(PluralOne),
		Two:        form(PluralTwo),
		Few:        form(PluralFew),
		Many:       form(PluralMany),
		Other:      other,
	}, nil
}

// pluralCount converts a parameter into a value go-i18n accepts as PluralCount.
// Non numeric values (such as a nested unit phrase) select the other form.
func pluralCount(value any) (any, bool) {
	switch v := value.(type) {
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return v, true
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32), true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case Seconds:
		return strconv.FormatFloat(float64(v), 'f', -1, 64), true
	default:
		return nil, false
	}
}

func splitMarkers(s string, values []any) Tokens {
	if s == "" {
		return Tokens{}
	}
	if len(values) == 0 || !strings.Contains(s, markerOpen) {
		return Tokens{s}
	}

	out := make(Tokens, 0, 3)
	var literal strings.Builder
	flush := func() {
		if literal.Len() > 0 {
			out = append(out, literal.String())
			literal.Reset()
		}
	}

	for s != "" {
		start := strings.Index(s, markerOpen)
		if start < 0 {
			literal.WriteString(s)
			break
		}
		literal.WriteString(s[:start])

		rest := s[start+len(markerOpen):]
		end := strings.Index(rest, markerClose)
		if end < 0 {
			literal.WriteString(s[start:])
			break
		}

		idx, err := strconv.Atoi(rest[:end])
		if err != nil || idx < 0 || idx >= len(values) {
			literal.WriteString(s[start : start+len(markerOpen)+end+len(markerClose)])
		} else {
			flush()
			out = append(out, values[idx])
		}
		s = rest[end+len(markerClose):]
	}
	flush()

	return out
}
