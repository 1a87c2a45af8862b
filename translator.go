package relative

// Params is the parameter mapping handed to compiled phrases
type Params map[string]any

// clone returns a fresh mapping with room for one more key
func (p Params) clone() Params {
	out := make(Params, len(p)+1)
	for k, v := range p {
		out[k] = v
	}
	return out
}

// PhraseFunc evaluates a compiled template
type PhraseFunc func(params Params) (Tokens, error)

// CompileOptions is passed through to the TemplateCompiler unchanged
type CompileOptions struct {
	// PluralKey names the parameter that drives plural selection
	PluralKey string
}

// TemplateCompiler is the pluralization backend. It owns template syntax and
// plural rules; the returned PhraseFunc must be safe for concurrent use if the
// Formatter is shared.
type TemplateCompiler interface {
	Compile(tpl *Template, locale string, opts CompileOptions) (PhraseFunc, error)
}

// TemplateCompilerFunc adapts a bare function to TemplateCompiler
type TemplateCompilerFunc func(tpl *Template, locale string, opts CompileOptions) (PhraseFunc, error)

// Compile implements TemplateCompiler
func (fn TemplateCompilerFunc) Compile(tpl *Template, locale string, opts CompileOptions) (PhraseFunc, error) {
	return fn(tpl, locale, opts)
}
