package dto

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBindAndValidate_SubmitQuote(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		errType error
		field   string
	}{
		{
			name: "valid",
			body: `{"name":"Réka Tóth","email":"reka@example.hu","country":"HU","locale":"hu"}`,
		},
		{
			name:    "invalid JSON",
			body:    `{"name":`,
			errType: ErrBinding,
		},
		{
			name:    "blank name",
			body:    `{"name":"   ","email":"reka@example.hu"}`,
			errType: ErrValidation,
			field:   "name",
		},
		{
			name:    "bad email",
			body:    `{"name":"Réka","email":"reka-at-example"}`,
			errType: ErrValidation,
			field:   "email",
		},
		{
			name:    "unknown country",
			body:    `{"name":"Réka","email":"reka@example.hu","country":"XX"}`,
			errType: ErrValidation,
			field:   "country",
		},
		{
			name: "lower case country",
			body: `{"name":"Réka Tóth","email":"reka@example.hu","country":"de"}`,
		},
		{
			name:    "unknown lower case country",
			body:    `{"name":"Réka","email":"reka@example.hu","country":"xx"}`,
			errType: ErrValidation,
			field:   "country",
		},
		{
			name:    "unsupported locale",
			body:    `{"name":"Réka","email":"reka@example.hu","locale":"fr"}`,
			errType: ErrValidation,
			field:   "locale",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			c.Request.Header.Set("Content-Type", "application/json")

			var input SubmitQuoteRequest
			err := BindAndValidate(c, &input)

			if tt.errType == nil {
				require.NoError(t, err)
				assert.Equal(t, "Réka Tóth", input.Contact().Name)

				return
			}

			require.ErrorIs(t, err, tt.errType)

			if tt.field != "" {
				assert.Contains(t, ValidationErrors(err), tt.field)
			}
		})
	}
}

func TestBindQueryAndValidate_ContentQuery(t *testing.T) {
	tests := []struct {
		name    string
		query   string
		errType error
		check   func(t *testing.T, q *ContentQuery)
	}{
		{
			name:  "filters and paging",
			query: "?tag=PET&featured=true&limit=5&page=2&sort=oldest&debug=true",
			check: func(t *testing.T, q *ContentQuery) {
				assert.Equal(t, "PET", q.Tag)
				require.NotNil(t, q.Featured)
				assert.True(t, *q.Featured)
				assert.Equal(t, 5, q.Limit)
				assert.Equal(t, 2, q.Page)
				assert.True(t, q.Debug)
			},
		},
		{
			name:  "featured absent stays nil",
			query: "",
			check: func(t *testing.T, q *ContentQuery) {
				assert.Nil(t, q.Featured)
			},
		},
		{name: "non numeric limit", query: "?limit=ten", errType: ErrBinding},
		{name: "negative offset", query: "?offset=-1", errType: ErrValidation},
		{name: "unknown sort", query: "?sort=popular", errType: ErrValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest(http.MethodGet, "/api/combined-news"+tt.query, http.NoBody)

			var q ContentQuery
			err := BindQueryAndValidate(c, &q)

			if tt.errType != nil {
				require.ErrorIs(t, err, tt.errType)
				return
			}

			require.NoError(t, err)
			tt.check(t, &q)
		})
	}
}

func TestValidationErrors_Messages(t *testing.T) {
	type sample struct {
		Name     string `json:"name"     validate:"required"`
		Code     string `json:"code"     validate:"max=3"`
		Quantity int    `json:"quantity" validate:"gte=1"`
		Ref      string `json:"ref"      validate:"uuid"`
		Sort     string `json:"sort"     validate:"oneof=newest oldest"`
	}

	err := Validate(&sample{Code: "ABCD", Ref: "nope", Sort: "x"})
	require.ErrorIs(t, err, ErrValidation)
	assert.True(t, IsValidationError(err))

	got := ValidationErrors(err)

	assert.Equal(t, "this field is required", got["name"])
	assert.Equal(t, "must be at most 3 characters", got["code"])
	assert.Equal(t, "must be greater than or equal to 1", got["quantity"])
	assert.Equal(t, "must be a valid UUID", got["ref"])
	assert.Equal(t, "must be one of: newest oldest", got["sort"])
}

func TestValidationErrors_NotValidatorError(t *testing.T) {
	assert.Empty(t, ValidationErrors(assert.AnError))
	assert.False(t, IsValidationError(assert.AnError))
}

func TestSubmitQuoteRequest_ContactUpperCasesCountry(t *testing.T) {
	req := SubmitQuoteRequest{Name: "Jonas", Email: "jonas@example.de", Country: "de"}

	require.NoError(t, ValidateAll(&req))
	assert.Equal(t, "DE", req.Contact().Country)
}

func TestMinMaxMessage(t *testing.T) {
	type sample struct {
		Items []string `json:"items" validate:"min=1"`
	}

	err := Validate(&sample{})
	require.Error(t, err)
	assert.Equal(t, "must be at least 1", ValidationErrors(err)["items"])
}

func TestValidationMessageUnknownTag(t *testing.T) {
	type sample struct {
		Site string `json:"site" validate:"hostname"`
	}

	err := Validate(&sample{Site: "not a host"})
	require.Error(t, err)
	assert.Equal(t, "failed validation: hostname", ValidationErrors(err)["site"])
}

func TestValidateUUIDAllowsEmpty(t *testing.T) {
	type sample struct {
		Ref string `json:"ref" validate:"uuid"`
	}

	require.NoError(t, Validate(&sample{}))
	require.NoError(t, Validate(&sample{Ref: "550e8400-e29b-41d4-a716-446655440000"}))
}
