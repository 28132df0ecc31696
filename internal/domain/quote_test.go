package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContact_Validate(t *testing.T) {
	tests := []struct {
		name    string
		contact Contact
		field   string
	}{
		{"valid", Contact{Name: "Réka Tóth", Email: "reka@example.hu"}, ""},
		{"missing name", Contact{Email: "reka@example.hu"}, "name"},
		{"bad email", Contact{Name: "Réka", Email: "not-an-email"}, "email"},
		{"empty email", Contact{Name: "Réka"}, "email"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.contact.Validate()
			if tt.field == "" {
				require.NoError(t, err)

				return
			}

			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}

func TestNewQuoteRequest(t *testing.T) {
	now := time.Date(2024, 6, 1, 8, 30, 0, 0, time.UTC)
	cart := NewCart("c-1", now)
	require.NoError(t, cart.Add("crate", 200, now))
	require.NoError(t, cart.Add("preform", 20000, now))

	contact := Contact{Name: "Jonas Weber", Email: "jonas@example.de", Company: "Weber Logistik"}

	q, err := NewQuoteRequest("q-1", cart, sampleProducts(), contact, "  Need delivery in Q3 ", LocaleGerman, now)
	require.NoError(t, err)

	assert.Equal(t, "q-1", q.ID)
	assert.Equal(t, QuoteStatusReceived, q.Status)
	assert.Equal(t, "Need delivery in Q3", q.Message)
	assert.Equal(t, LocaleGerman, q.Locale)
	assert.Equal(t, now, q.CreatedAt)
	require.Len(t, q.Items, 2)
	assert.Equal(t, QuoteLine{ProductID: "crate", SKU: "PP-CR-600", Name: "Stapelkiste", Quantity: 200}, q.Items[0])
	assert.Equal(t, "Bottle preform", q.Items[1].Name)
}

func TestNewQuoteRequest_EmptyCart(t *testing.T) {
	_, err := NewQuoteRequest("q-1", NewCart("c", time.Now()), sampleProducts(), Contact{}, "", LocaleEnglish, time.Now())
	assert.True(t, IsValidation(err))

	_, err = NewQuoteRequest("q-1", nil, sampleProducts(), Contact{}, "", LocaleEnglish, time.Now())
	assert.True(t, IsValidation(err))
}

func TestNewQuoteRequest_UnknownProduct(t *testing.T) {
	cart := NewCart("c", time.Now())
	require.NoError(t, cart.Add("discontinued", 1, time.Now()))

	_, err := NewQuoteRequest("q-1", cart, sampleProducts(), Contact{}, "", LocaleEnglish, time.Now())
	assert.True(t, IsNotFound(err))
}
