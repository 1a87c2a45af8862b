package relative

import (
	"fmt"
	"time"
)

// HelperConfig configures template helper exports
type HelperConfig struct {
	// LocaleKey is read from map contexts passed as the first helper argument
	LocaleKey string
	// Now defaults to time.Now
	Now func() time.Time
	// OnError renders failures, defaulting to an empty string
	OnError func(locale string, err error) string
}

// TemplateHelpers exposes relative time helpers for text/template and html/template:
//
//	{{relative_time "en" -90}}          a minute ago
//	{{time_ago . .CreatedAt}}           locale read from LocaleKey
//	{{range relative_tokens "en" 300}}  raw tokens for custom styling
func TemplateHelpers(cfg *Config, helperCfg HelperConfig) map[string]any {
	if helperCfg.LocaleKey == "" {
		helperCfg.LocaleKey = "locale"
	}
	now := helperCfg.Now
	if now == nil {
		now = time.Now
	}
	onError := helperCfg.OnError
	if onError == nil {
		onError = func(string, error) string { return "" }
	}

	tokens := func(localeOrCtx any, diff any) (Tokens, string, error) {
		locale := templateLocale(localeOrCtx, helperCfg.LocaleKey)
		seconds, ok := toSeconds(diff)
		if !ok {
			return nil, locale, fmt.Errorf("%w: %T is not a difference", ErrMissingParameter, diff)
		}
		out, err := cfg.Format(locale, Seconds(seconds))
		return out, locale, err
	}

	return map[string]any{
		"relative_time": func(localeOrCtx any, diff any) string {
			out, locale, err := tokens(localeOrCtx, diff)
			if err != nil {
				return onError(locale, err)
			}
			return out.String()
		},
		"time_ago": func(localeOrCtx any, t time.Time) string {
			out, locale, err := tokens(localeOrCtx, t.Sub(now()))
			if err != nil {
				return onError(locale, err)
			}
			return out.String()
		},
		"relative_tokens": func(localeOrCtx any, diff any) Tokens {
			out, locale, err := tokens(localeOrCtx, diff)
			if err != nil {
				return Tokens{onError(locale, err)}
			}
			return out
		},
	}
}

func templateLocale(value any, key string) string {
	switch v := value.(type) {
	case string:
		return v
	case map[string]any:
		if locale, ok := v[key].(string); ok {
			return locale
		}
	case map[string]string:
		return v[key]
	case interface{ Locale() string }:
		return v.Locale()
	}
	return ""
}
