package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/polyworks/site-api/internal/domain"
)

func TestResolveLocale(t *testing.T) {
	tests := []struct {
		name   string
		lang   string
		accept string
		want   domain.Locale
	}{
		{"lang wins", "hu", "de-DE,de;q=0.9", domain.LocaleHungarian},
		{"accept language", "", "fr-FR, de-AT;q=0.8", domain.LocaleGerman},
		{"unsupported lang falls through", "fr", "hu", domain.LocaleHungarian},
		{"default", "", "", domain.LocaleEnglish},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveLocale(tt.lang, tt.accept))
		})
	}
}

func TestNewLocalized(t *testing.T) {
	assert.Nil(t, NewLocalized(nil))
	assert.Nil(t, NewLocalized(domain.LocalizedText{domain.LocaleGerman: ""}))
	assert.Equal(t, Localized{"hu": "Fröccsöntés"},
		NewLocalized(domain.LocalizedText{domain.LocaleHungarian: "Fröccsöntés", domain.LocaleEnglish: ""}))
}

func TestLocalized_ToDomain(t *testing.T) {
	got, err := Localized{"en": "Extrusion", "de": ""}.ToDomain("title")
	require.NoError(t, err)
	assert.Equal(t, domain.Text("Extrusion"), got)

	got, err = Localized(nil).ToDomain("title")
	require.NoError(t, err)
	assert.Nil(t, got)

	_, err = Localized{"EN": "Extrusion"}.ToDomain("title")
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "title", verr.Field)
}
