package taxonomy

import (
	"context"

	"golang.org/x/text/language"
)

// Locale selects the language of catalog copy.
type Locale string

const (
	English Locale = "en"
	Korean  Locale = "ko"
)

// supportedLocales is ordered so that the matcher's index maps onto locales.
var (
	supportedLocales = []Locale{English, Korean}
	localeMatcher    = language.NewMatcher([]language.Tag{language.English, language.Korean})
)

// MatchLocale picks the best supported locale for the given preferences.
// Each value may be a single tag ("ko", "ko-KR") or an Accept-Language header.
// Earlier values win; English is the fallback.
func MatchLocale(prefs ...string) Locale {
	_, index := language.MatchStrings(localeMatcher, prefs...)
	if index < 0 || index >= len(supportedLocales) {
		return English
	}
	return supportedLocales[index]
}

type localeKey struct{}

// ContextWithLocale returns a copy of ctx carrying loc.
func ContextWithLocale(ctx context.Context, loc Locale) context.Context {
	return context.WithValue(ctx, localeKey{}, loc)
}

// LocaleFromContext returns the locale stored in ctx, or English.
func LocaleFromContext(ctx context.Context) Locale {
	if loc, ok := ctx.Value(localeKey{}).(Locale); ok {
		return loc
	}
	return English
}
