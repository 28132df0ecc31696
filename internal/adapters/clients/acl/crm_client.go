package acl

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/polyworks/site-api/internal/adapters/clients"
	"github.com/polyworks/site-api/internal/domain"
	"github.com/polyworks/site-api/internal/platform/logging"
	"github.com/polyworks/site-api/internal/ports"
)

const (
	leadsPath  = "/leads"
	healthPath = "/health"

	// leadSource tags leads created from the website quote cart.
	leadSource = "website-quote"
)

// CRMClient forwards quote requests to the sales CRM as leads.
type CRMClient struct {
	BaseAdapter

	logger *slog.Logger
}

var (
	_ ports.QuoteForwarder = (*CRMClient)(nil)
	_ ports.HealthChecker  = (*CRMClient)(nil)
)

// NewCRMClient panics if client is nil.
func NewCRMClient(client *clients.Client, logger *slog.Logger) *CRMClient {
	if client == nil {
		panic("acl: CRMClient requires a client")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &CRMClient{
		BaseAdapter: NewBaseAdapter(client, client.ServiceName()),
		logger:      logger,
	}
}

// BearerAuth returns a clients.Config AuthFunc sending apiKey as a bearer
// token, or nil when apiKey is empty.
func BearerAuth(apiKey string) func(*http.Request) {
	if apiKey == "" {
		return nil
	}

	return func(r *http.Request) {
		r.Header.Set("Authorization", "Bearer "+apiKey)
	}
}

type leadContact struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Company  string `json:"company,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Country  string `json:"country,omitempty"`
}

type leadItem struct {
	ProductCode string `json:"productCode"`
	ProductName string `json:"productName"`
	Quantity    int    `json:"quantity"`
}

type leadRequest struct {
	ExternalID  string      `json:"externalId"`
	Source      string      `json:"source"`
	Language    string      `json:"language"`
	Contact     leadContact `json:"contact"`
	Message     string      `json:"message,omitempty"`
	Items       []leadItem  `json:"items"`
	SubmittedAt string      `json:"submittedAt"`
}

type leadResponse struct {
	LeadID string `json:"leadId"`
	Status string `json:"status"`
}

// Forward implements ports.QuoteForwarder. A duplicate-lead answer means an
// earlier attempt already got through and counts as success.
func (c *CRMClient) Forward(ctx context.Context, quote *domain.QuoteRequest) error {
	lead, err := translateQuote(quote)
	if err != nil {
		return err
	}

	c.logger.Log(ctx, logging.LevelTrace, "posting lead",
		slog.String("quote_id", quote.ID),
		slog.Int("items", len(lead.Items)),
	)

	body, err := c.PostJSON(ctx, leadsPath, lead, "create lead", quote.ID)
	if domain.IsConflict(err) {
		c.logger.InfoContext(ctx, "lead already exists in CRM", slog.String("quote_id", quote.ID))
		return nil
	}

	if err != nil {
		return err
	}

	resp, err := DecodeResponse[leadResponse](body)
	if err != nil {
		return domain.NewUnavailableError(c.ServiceName(), err.Error())
	}

	if resp.LeadID == "" {
		return domain.NewUnavailableError(c.ServiceName(), "response is missing leadId")
	}

	c.logger.InfoContext(ctx, "quote forwarded to CRM",
		slog.String("quote_id", quote.ID),
		slog.String("lead_id", resp.LeadID),
		slog.String("lead_status", resp.Status),
	)

	return nil
}

// Check implements ports.HealthChecker.
func (c *CRMClient) Check(ctx context.Context) error {
	body, err := c.Get(ctx, healthPath, "health check")
	if err != nil {
		return err
	}

	return body.Close()
}

// Name implements ports.HealthChecker.
func (c *CRMClient) Name() string {
	return c.ServiceName()
}

func translateQuote(q *domain.QuoteRequest) (*leadRequest, error) {
	if err := ValidateRequired(q.ID, "id"); err != nil {
		return nil, err
	}

	if err := ValidateRequired(q.Contact.Email, "contact.email"); err != nil {
		return nil, err
	}

	items, err := TranslateSlice(q.Items, translateLine)
	if err != nil {
		return nil, err
	}

	return &leadRequest{
		ExternalID: q.ID,
		Source:     leadSource,
		Language:   string(q.Locale),
		Contact: leadContact{
			FullName: q.Contact.Name,
			Email:    q.Contact.Email,
			Company:  q.Contact.Company,
			Phone:    q.Contact.Phone,
			Country:  q.Contact.Country,
		},
		Message:     q.Message,
		Items:       items,
		SubmittedAt: q.CreatedAt.UTC().Format(time.RFC3339),
	}, nil
}

func translateLine(l *domain.QuoteLine) (*leadItem, error) {
	if err := ValidateRequired(l.SKU, "sku"); err != nil {
		return nil, fmt.Errorf("product %q: %w", l.ProductID, err)
	}

	if err := ValidatePositive(l.Quantity, "quantity"); err != nil {
		return nil, fmt.Errorf("product %q: %w", l.ProductID, err)
	}

	return &leadItem{ProductCode: l.SKU, ProductName: l.Name, Quantity: l.Quantity}, nil
}
