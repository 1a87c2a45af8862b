package relative

import (
	"strings"

	"golang.org/x/text/language"
)

// normalizeLocale replaces underscores with hyphens and trims whitespace
func normalizeLocale(locale string) string {
	return strings.ReplaceAll(strings.TrimSpace(locale), "_", "-")
}

// localeParentChain returns the parents of locale from closest to root, e.g.
// "es-MX" yields "es-419", "es". Unparseable codes are truncated at hyphens.
func localeParentChain(locale string) []string {
	locale = normalizeLocale(locale)
	if locale == "" {
		return nil
	}

	var chain []string

	tag, err := language.Parse(locale)
	if err != nil {
		for idx := strings.LastIndex(locale, "-"); idx > 0; idx = strings.LastIndex(locale, "-") {
			locale = locale[:idx]
			chain = append(chain, locale)
		}
		return chain
	}

	for parent := tag.Parent(); parent != language.Und; parent = parent.Parent() {
		value := parent.String()
		if value == "" || value == "und" {
			break
		}
		chain = append(chain, value)
	}

	// x/text skips the bare language for some scripts and regions
	if base, conf := tag.Base(); conf != language.No {
		if value := base.String(); value != "" && value != "und" && value != locale {
			chain = append(chain, value)
		}
	}

	return dedupeLocales(chain)
}

// localeCandidates lists, in lookup order, the locales whose phrase table may
// serve locale: itself, its explicit fallbacks, its derived parents and finally
// the default locale with its parents.
func localeCandidates(locale string, resolver FallbackResolver, defaultLocale string) []string {
	locale = normalizeLocale(locale)

	candidates := make([]string, 0, 6)
	if locale != "" {
		candidates = append(candidates, locale)
		if resolver != nil {
			candidates = append(candidates, resolver.Resolve(locale)...)
		}
		candidates = append(candidates, localeParentChain(locale)...)
	}
	if defaultLocale != "" {
		candidates = append(candidates, normalizeLocale(defaultLocale))
		candidates = append(candidates, localeParentChain(defaultLocale)...)
	}

	return dedupeLocales(candidates)
}

func dedupeLocales(locales []string) []string {
	if len(locales) == 0 {
		return nil
	}

	seen := make(map[string]struct{}, len(locales))
	result := locales[:0]
	for _, locale := range locales {
		if locale == "" {
			continue
		}
		if _, exists := seen[locale]; exists {
			continue
		}
		seen[locale] = struct{}{}
		result = append(result, locale)
	}
	return result
}
