package domain

import "strings"

// Locale is one of the languages the site publishes in.
type Locale string

const (
	LocaleEnglish   Locale = "en"
	LocaleHungarian Locale = "hu"
	LocaleGerman    Locale = "de"

	// DefaultLocale is used when nothing better is known.
	DefaultLocale = LocaleEnglish
)

// Locales lists every supported locale in display order.
var Locales = []Locale{LocaleEnglish, LocaleHungarian, LocaleGerman}

// ParseLocale normalizes tags such as "de-AT" or " HU " to a supported
// locale. The second result is false when the tag is not supported.
func ParseLocale(raw string) (Locale, bool) {
	trimmed := strings.ToLower(strings.TrimSpace(raw))
	if trimmed == "" {
		return DefaultLocale, false
	}

	for _, l := range Locales {
		if trimmed == string(l) || strings.HasPrefix(trimmed, string(l)+"-") || strings.HasPrefix(trimmed, string(l)+"_") {
			return l, true
		}
	}

	return DefaultLocale, false
}

// LocaleFromAcceptLanguage picks the first supported language of an
// Accept-Language header, ignoring quality weights.
func LocaleFromAcceptLanguage(header string) (Locale, bool) {
	for _, part := range strings.Split(header, ",") {
		tag, _, _ := strings.Cut(part, ";")
		if l, ok := ParseLocale(tag); ok {
			return l, true
		}
	}

	return DefaultLocale, false
}

// LocalizedText holds one string per locale.
type LocalizedText map[Locale]string

// Text builds an English-only LocalizedText.
func Text(en string) LocalizedText {
	return LocalizedText{LocaleEnglish: en}
}

// Get returns the text for l, falling back to English and then to any
// non-empty translation.
func (t LocalizedText) Get(l Locale) string {
	if v := t[l]; v != "" {
		return v
	}

	if v := t[DefaultLocale]; v != "" {
		return v
	}

	for _, loc := range Locales {
		if v := t[loc]; v != "" {
			return v
		}
	}

	return ""
}

// Joined concatenates every translation in Locales order, space separated.
func (t LocalizedText) Joined() string {
	parts := make([]string, 0, len(t))
	for _, l := range Locales {
		if v := t[l]; v != "" {
			parts = append(parts, v)
		}
	}

	return strings.Join(parts, " ")
}

// IsEmpty reports whether no translation has content.
func (t LocalizedText) IsEmpty() bool {
	return t.Get(DefaultLocale) == ""
}
