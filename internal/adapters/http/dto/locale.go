package dto

import "github.com/polyworks/site-api/internal/domain"

// ResolveLocale picks the display locale: an explicit lang parameter, then
// Accept-Language, then English. Unsupported values fall through.
func ResolveLocale(lang, acceptLanguage string) domain.Locale {
	if l, ok := domain.ParseLocale(lang); ok {
		return l
	}

	if l, ok := domain.LocaleFromAcceptLanguage(acceptLanguage); ok {
		return l
	}

	return domain.DefaultLocale
}

// Localized is the JSON form of domain.LocalizedText: {"en": ..., "hu": ...}.
type Localized map[string]string

// NewLocalized drops empty translations. It returns nil for empty text.
func NewLocalized(t domain.LocalizedText) Localized {
	if len(t) == 0 {
		return nil
	}

	out := make(Localized, len(t))
	for l, v := range t {
		if v != "" {
			out[string(l)] = v
		}
	}

	if len(out) == 0 {
		return nil
	}

	return out
}

// ToDomain rejects locale keys the site does not publish in.
func (l Localized) ToDomain(field string) (domain.LocalizedText, error) {
	if len(l) == 0 {
		return nil, nil
	}

	out := make(domain.LocalizedText, len(l))
	for k, v := range l {
		loc := domain.Locale(k)
		if !validLocale(loc) {
			return nil, domain.NewValidationError(field, "unsupported locale "+k)
		}

		if v != "" {
			out[loc] = v
		}
	}

	return out, nil
}

func validLocale(l domain.Locale) bool {
	for _, known := range domain.Locales {
		if l == known {
			return true
		}
	}

	return false
}
