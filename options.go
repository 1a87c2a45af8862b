package relative

import (
	"errors"
	"io"
	"log/slog"
)

// DefaultPluralKey is the parameter slot receiving the computed magnitude
const DefaultPluralKey = "time"

type options struct {
	pluralKey   string
	limits      []Bucket
	removeTense bool
	compiler    TemplateCompiler
	logger      *slog.Logger
}

// Option configures a Formatter during New
type Option func(*options) error

func newOptions(table PhraseTable, opts ...Option) (*options, error) {
	o := &options{}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(o); err != nil {
			return nil, err
		}
	}

	if o.pluralKey == "" {
		o.pluralKey = table.PluralKey
	}
	if o.pluralKey == "" {
		o.pluralKey = DefaultPluralKey
	}

	if o.limits == nil {
		o.limits = DefaultLimits()
	}

	if o.compiler == nil {
		o.compiler = NewGoI18nCompiler()
	}

	if o.logger == nil {
		o.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return o, nil
}

// WithPluralKey names the parameter receiving the magnitude, overriding the
// table's PluralKey.
func WithPluralKey(key string) Option {
	return func(o *options) error {
		if key == "" {
			return errors.New("relative: plural key must not be empty")
		}
		o.pluralKey = key
		return nil
	}
}

// WithLimits replaces DefaultLimits. Buckets must be ordered by ascending Limit
// and the last one must be Unbounded.
func WithLimits(limits ...Bucket) Option {
	return func(o *options) error {
		o.limits = append([]Bucket{}, limits...)
		return nil
	}
}

// WithRemoveTense formats past and future identically, ignoring wrapper templates
func WithRemoveTense() Option {
	return func(o *options) error {
		o.removeTense = true
		return nil
	}
}

// WithTemplateCompiler swaps the go-i18n backend
func WithTemplateCompiler(compiler TemplateCompiler) Option {
	return func(o *options) error {
		o.compiler = compiler
		return nil
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(o *options) error {
		o.logger = logger
		return nil
	}
}
