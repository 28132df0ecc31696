package sqlite

import (
	"time"

	"github.com/polyworks/site-api/internal/domain"
)

// entryRow is a custom content override.
type entryRow struct {
	Kind           string               `gorm:"primaryKey;size:32"`
	ID             string               `gorm:"primaryKey;size:128"`
	Slug           string               `gorm:"index;size:160"`
	Title          domain.LocalizedText `gorm:"serializer:json"`
	Excerpt        domain.LocalizedText `gorm:"serializer:json"`
	Body           domain.LocalizedText `gorm:"serializer:json"`
	Category       string
	Tags           []string `gorm:"serializer:json"`
	AuthorName     string
	AuthorRole     string
	AuthorAvatar   string
	Featured       bool
	PublishedAt    time.Time `gorm:"index"`
	ImageURL       string
	ReadingMinutes int
	Client         string
	Industry       string
	Results        domain.LocalizedText `gorm:"serializer:json"`
	UpdatedAt      time.Time
}

func (entryRow) TableName() string { return "custom_entries" }

func newEntryRow(e *domain.Entry) *entryRow {
	return &entryRow{
		Kind:           string(e.Kind),
		ID:             e.ID,
		Slug:           e.Slug,
		Title:          e.Title,
		Excerpt:        e.Excerpt,
		Body:           e.Body,
		Category:       e.Category,
		Tags:           e.Tags,
		AuthorName:     e.Author.Name,
		AuthorRole:     e.Author.Role,
		AuthorAvatar:   e.Author.AvatarURL,
		Featured:       e.Featured,
		PublishedAt:    e.PublishedAt.UTC(),
		ImageURL:       e.ImageURL,
		ReadingMinutes: e.ReadingMinutes,
		Client:         e.Client,
		Industry:       e.Industry,
		Results:        e.Results,
	}
}

func (r *entryRow) toDomain() domain.Entry {
	return domain.Entry{
		ID:       r.ID,
		Kind:     domain.Kind(r.Kind),
		Slug:     r.Slug,
		Title:    r.Title,
		Excerpt:  r.Excerpt,
		Body:     r.Body,
		Category: r.Category,
		Tags:     r.Tags,
		Author: domain.Author{
			Name:      r.AuthorName,
			Role:      r.AuthorRole,
			AvatarURL: r.AuthorAvatar,
		},
		Featured:       r.Featured,
		PublishedAt:    r.PublishedAt.UTC(),
		ImageURL:       r.ImageURL,
		ReadingMinutes: r.ReadingMinutes,
		Client:         r.Client,
		Industry:       r.Industry,
		Results:        r.Results,
	}
}

type cartItemJSON struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// cartRow is a visitor's quote cart. UpdatedAt is owned by the domain.
type cartRow struct {
	ID        string         `gorm:"primaryKey;size:64"`
	Items     []cartItemJSON `gorm:"serializer:json"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime:false;index"`
}

func (cartRow) TableName() string { return "carts" }

func newCartRow(c *domain.Cart) *cartRow {
	items := make([]cartItemJSON, 0, len(c.Items))
	for _, it := range c.Items {
		items = append(items, cartItemJSON{ProductID: it.ProductID, Quantity: it.Quantity})
	}

	return &cartRow{ID: c.ID, Items: items, UpdatedAt: c.UpdatedAt.UTC()}
}

func (r *cartRow) toDomain() *domain.Cart {
	items := make([]domain.CartItem, 0, len(r.Items))
	for _, it := range r.Items {
		items = append(items, domain.CartItem{ProductID: it.ProductID, Quantity: it.Quantity})
	}

	return &domain.Cart{ID: r.ID, Items: items, UpdatedAt: r.UpdatedAt.UTC()}
}

type quoteLineJSON struct {
	ProductID string `json:"productId"`
	SKU       string `json:"sku"`
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
}

// quoteRow is an archived quote request.
type quoteRow struct {
	ID             string `gorm:"primaryKey;size:64"`
	ContactName    string
	ContactEmail   string `gorm:"index"`
	ContactCompany string
	ContactPhone   string
	ContactCountry string
	Items          []quoteLineJSON `gorm:"serializer:json"`
	Message        string
	Locale         string    `gorm:"size:8"`
	Status         string    `gorm:"size:32;index"`
	CreatedAt      time.Time `gorm:"autoCreateTime:false;index"`
}

func (quoteRow) TableName() string { return "quote_requests" }

func newQuoteRow(q *domain.QuoteRequest) *quoteRow {
	lines := make([]quoteLineJSON, 0, len(q.Items))
	for _, l := range q.Items {
		lines = append(lines, quoteLineJSON{ProductID: l.ProductID, SKU: l.SKU, Name: l.Name, Quantity: l.Quantity})
	}

	return &quoteRow{
		ID:             q.ID,
		ContactName:    q.Contact.Name,
		ContactEmail:   q.Contact.Email,
		ContactCompany: q.Contact.Company,
		ContactPhone:   q.Contact.Phone,
		ContactCountry: q.Contact.Country,
		Items:          lines,
		Message:        q.Message,
		Locale:         string(q.Locale),
		Status:         string(q.Status),
		CreatedAt:      q.CreatedAt.UTC(),
	}
}

func (r *quoteRow) toDomain() domain.QuoteRequest {
	lines := make([]domain.QuoteLine, 0, len(r.Items))
	for _, l := range r.Items {
		lines = append(lines, domain.QuoteLine{ProductID: l.ProductID, SKU: l.SKU, Name: l.Name, Quantity: l.Quantity})
	}

	return domain.QuoteRequest{
		ID: r.ID,
		Contact: domain.Contact{
			Name:    r.ContactName,
			Email:   r.ContactEmail,
			Company: r.ContactCompany,
			Phone:   r.ContactPhone,
			Country: r.ContactCountry,
		},
		Items:     lines,
		Message:   r.Message,
		Locale:    domain.Locale(r.Locale),
		Status:    domain.QuoteStatus(r.Status),
		CreatedAt: r.CreatedAt.UTC(),
	}
}
