package dto

import (
	"strings"
	"time"

	"github.com/polyworks/site-api/internal/domain"
)

// SubmitQuoteRequest is the body of POST /api/v1/quotes. The products come
// from the session cart.
type SubmitQuoteRequest struct {
	Name    string `json:"name"    validate:"required,notempty,max=200"`
	Email   string `json:"email"   validate:"required,email,max=254"`
	Company string `json:"company" validate:"max=200"`
	Phone   string `json:"phone"   validate:"max=50"`
	Country string `json:"country" validate:"omitempty,country"`
	Message string `json:"message" validate:"max=5000"`
	Locale  string `json:"locale"  validate:"omitempty,locale"`
}

// Contact normalises the submitted details. Country codes are accepted in
// any case and stored upper case.
func (r *SubmitQuoteRequest) Contact() domain.Contact {
	return domain.Contact{
		Name:    strings.TrimSpace(r.Name),
		Email:   strings.TrimSpace(r.Email),
		Company: strings.TrimSpace(r.Company),
		Phone:   strings.TrimSpace(r.Phone),
		Country: strings.ToUpper(strings.TrimSpace(r.Country)),
	}
}

// QuoteReceiptResponse is what the visitor gets back after submitting.
type QuoteReceiptResponse struct {
	ID        string    `json:"id"`
	Status    string    `json:"status"`
	ItemCount int       `json:"itemCount"`
	CreatedAt time.Time `json:"createdAt"`
}

func NewQuoteReceiptResponse(q *domain.QuoteRequest) QuoteReceiptResponse {
	return QuoteReceiptResponse{
		ID:        q.ID,
		Status:    string(q.Status),
		ItemCount: len(q.Items),
		CreatedAt: q.CreatedAt.UTC(),
	}
}

// ContactResponse is the contact block of an archived quote.
type ContactResponse struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Company string `json:"company,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Country string `json:"country,omitempty"`
}

// QuoteLineResponse is one product snapshot of an archived quote.
type QuoteLineResponse struct {
	ProductID string `json:"productId"`
	SKU       string `json:"sku"`
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
}

// QuoteResponse is an archived quote request as sales sees it.
type QuoteResponse struct {
	ID        string              `json:"id"`
	Status    string              `json:"status"`
	Contact   ContactResponse     `json:"contact"`
	Items     []QuoteLineResponse `json:"items"`
	Message   string              `json:"message,omitempty"`
	Locale    string              `json:"locale"`
	CreatedAt time.Time           `json:"createdAt"`
}

func NewQuoteResponse(q *domain.QuoteRequest) QuoteResponse {
	items := make([]QuoteLineResponse, 0, len(q.Items))
	for _, l := range q.Items {
		items = append(items, QuoteLineResponse(l))
	}

	return QuoteResponse{
		ID:        q.ID,
		Status:    string(q.Status),
		Contact:   ContactResponse(q.Contact),
		Items:     items,
		Message:   q.Message,
		Locale:    string(q.Locale),
		CreatedAt: q.CreatedAt.UTC(),
	}
}

func NewQuoteResponses(quotes []domain.QuoteRequest) []QuoteResponse {
	out := make([]QuoteResponse, 0, len(quotes))
	for i := range quotes {
		out = append(out, NewQuoteResponse(&quotes[i]))
	}

	return out
}
