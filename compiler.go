package relative

import (
	"fmt"
	"log/slog"
)

// formatterSet is immutable once compile returns
type formatterSet struct {
	mode   TenseMode
	past   [numUnits]PhraseFunc
	future [numUnits]PhraseFunc
}

func (s *formatterSet) phrase(unit Unit, future bool) PhraseFunc {
	if future || !s.mode.Active() {
		return s.future[unit]
	}
	return s.past[unit]
}

type compiler struct {
	table   PhraseTable
	locale  string
	backend TemplateCompiler
	opts    CompileOptions
	logger  *slog.Logger

	// wrappers are compiled on first use and shared by every unit
	pastWrap   PhraseFunc
	futureWrap PhraseFunc
}

// compile builds the per unit formatters for every unit named by limits, in
// bucket order. The first unit without a usable template aborts compilation.
func compile(table PhraseTable, locale string, o *options) (*formatterSet, error) {
	if err := validateLimits(o.limits); err != nil {
		return nil, err
	}

	c := &compiler{
		table:   table,
		locale:  locale,
		backend: o.compiler,
		opts:    CompileOptions{PluralKey: o.pluralKey},
		logger:  o.logger,
	}

	set := &formatterSet{mode: resolveTenseMode(table, o.removeTense)}
	c.logger.Debug("relative: compiling phrase table",
		"locale", locale,
		"tense", set.mode.String(),
		"plural_key", o.pluralKey,
	)

	var done [numUnits]bool
	for _, bucket := range o.limits {
		if done[bucket.Unit] {
			continue
		}
		done[bucket.Unit] = true

		var err error
		if set.mode.Active() {
			err = c.compileTensed(set, bucket.Unit)
		} else {
			err = c.compileTenseless(set, bucket.Unit)
		}
		if err != nil {
			return nil, err
		}
	}

	return set, nil
}

func (c *compiler) compileTensed(set *formatterSet, unit Unit) error {
	phrases := c.table.phrases(unit)

	switch {
	case c.table.Past.usable() && c.table.Future.usable() && phrases.Any.usable():
		fn, err := c.compileTemplate(unit, phrases.Any)
		if err != nil {
			return err
		}
		if err := c.compileWrappers(); err != nil {
			return err
		}
		set.past[unit] = wrap(fn, c.pastWrap, c.opts.PluralKey)
		set.future[unit] = wrap(fn, c.futureWrap, c.opts.PluralKey)
		c.logDecision(unit, "wrapped")

	case phrases.Any.usable():
		fn, err := c.compileTemplate(unit, phrases.Any)
		if err != nil {
			return err
		}
		set.past[unit] = fn
		set.future[unit] = fn
		c.logDecision(unit, "invariant")

	case phrases.Future.usable() && phrases.Past.usable():
		future, err := c.compileTemplate(unit, phrases.Future)
		if err != nil {
			return err
		}
		past, err := c.compileTemplate(unit, phrases.Past)
		if err != nil {
			return err
		}
		set.past[unit] = past
		set.future[unit] = future
		c.logDecision(unit, "tagged")

	default:
		return &MissingTemplateError{Unit: unit, Locale: c.locale}
	}

	return nil
}

func (c *compiler) compileTenseless(set *formatterSet, unit Unit) error {
	phrases := c.table.phrases(unit)

	tpl := phrases.Bare
	if !tpl.usable() {
		tpl = phrases.Any
	}
	if !tpl.usable() {
		return &MissingTemplateError{Unit: unit, Locale: c.locale}
	}

	fn, err := c.compileTemplate(unit, tpl)
	if err != nil {
		return err
	}
	set.past[unit] = fn
	set.future[unit] = fn
	c.logDecision(unit, "tenseless")

	return nil
}

func (c *compiler) compileWrappers() error {
	if c.pastWrap != nil && c.futureWrap != nil {
		return nil
	}

	past, err := c.backend.Compile(c.table.Past, c.locale, c.opts)
	if err != nil {
		return fmt.Errorf("relative: compile past for %q: %w", c.locale, err)
	}
	future, err := c.backend.Compile(c.table.Future, c.locale, c.opts)
	if err != nil {
		return fmt.Errorf("relative: compile future for %q: %w", c.locale, err)
	}

	c.pastWrap = past
	c.futureWrap = future
	return nil
}

func (c *compiler) compileTemplate(unit Unit, tpl *Template) (PhraseFunc, error) {
	fn, err := c.backend.Compile(tpl, c.locale, c.opts)
	if err != nil {
		return nil, fmt.Errorf("relative: compile %q for %q: %w", unit.Label(), c.locale, err)
	}
	if fn == nil {
		return nil, fmt.Errorf("relative: compile %q for %q: backend returned no formatter", unit.Label(), c.locale)
	}
	return fn, nil
}

func (c *compiler) logDecision(unit Unit, path string) {
	c.logger.Debug("relative: unit compiled", "locale", c.locale, "unit", unit.Label(), "path", path)
}

// wrap evaluates the unit phrase and hands its tokens to the tense wrapper under key
func wrap(unit, tense PhraseFunc, key string) PhraseFunc {
	return func(params Params) (Tokens, error) {
		inner, err := unit(params)
		if err != nil {
			return nil, err
		}

		wrapped := params.clone()
		wrapped[key] = inner

		out, err := tense(wrapped)
		if err != nil {
			return nil, err
		}
		return Flatten(out), nil
	}
}
