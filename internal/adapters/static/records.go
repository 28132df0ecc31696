package static

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/polyworks/site-api/internal/domain"
)

// dateLayouts are accepted for the date field of a content record.
var dateLayouts = []string{time.DateOnly, time.RFC3339}

// localized is a YAML mapping of locale tag to text.
type localized map[string]string

type authorRecord struct {
	Name      string `yaml:"name"`
	Role      string `yaml:"role"`
	AvatarURL string `yaml:"avatar"`
}

// entryRecord is the on-disk shape of a blog post, news article or case study.
type entryRecord struct {
	ID             string       `yaml:"id"`
	Slug           string       `yaml:"slug"`
	Title          localized    `yaml:"title"`
	Excerpt        localized    `yaml:"excerpt"`
	Body           localized    `yaml:"body"`
	Category       string       `yaml:"category"`
	Tags           []string     `yaml:"tags"`
	Author         authorRecord `yaml:"author"`
	Featured       bool         `yaml:"featured"`
	Date           string       `yaml:"date"`
	Image          string       `yaml:"image"`
	ReadingMinutes int          `yaml:"readingTime"`
	Client         string       `yaml:"client"`
	Industry       string       `yaml:"industry"`
	Results        localized    `yaml:"results"`
}

type entryFile struct {
	Entries []entryRecord `yaml:"entries"`
}

type productRecord struct {
	ID          string    `yaml:"id"`
	SKU         string    `yaml:"sku"`
	Name        localized `yaml:"name"`
	Description localized `yaml:"description"`
	Category    string    `yaml:"category"`
	Material    string    `yaml:"material"`
	Process     string    `yaml:"process"`
	Tags        []string  `yaml:"tags"`
	Featured    bool      `yaml:"featured"`
	MinOrderQty int       `yaml:"minOrderQty"`
	UnitPrice   *int64    `yaml:"unitPriceCents"`
	Image       string    `yaml:"image"`
}

type productFile struct {
	Products []productRecord `yaml:"products"`
}

// DecodeEntries reads a content file of the given kind. Every record is
// validated and ids must be unique within the file.
func DecodeEntries(r io.Reader, kind domain.Kind) ([]domain.Entry, error) {
	var file entryFile
	if err := decode(r, &file); err != nil {
		return nil, err
	}

	entries := make([]domain.Entry, 0, len(file.Entries))
	for i, rec := range file.Entries {
		entry, err := rec.toDomain(kind)
		if err != nil {
			return nil, fmt.Errorf("entry %d (%q): %w", i, rec.ID, err)
		}

		entries = append(entries, entry)
	}

	if err := domain.ValidateUniqueIDs(entries); err != nil {
		return nil, err
	}

	return entries, nil
}

// DecodeProducts reads the product catalog file.
func DecodeProducts(r io.Reader) ([]domain.Product, error) {
	var file productFile
	if err := decode(r, &file); err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(file.Products))
	products := make([]domain.Product, 0, len(file.Products))

	for i, rec := range file.Products {
		p, err := rec.toDomain()
		if err != nil {
			return nil, fmt.Errorf("product %d (%q): %w", i, rec.ID, err)
		}

		if _, dup := seen[p.ID]; dup {
			return nil, domain.NewConflictError("product", fmt.Sprintf("duplicate id %q", p.ID))
		}

		seen[p.ID] = struct{}{}
		products = append(products, p)
	}

	return products, nil
}

func decode(r io.Reader, out any) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	if err := dec.Decode(out); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("decoding yaml: %w", err)
	}

	return nil
}

func (r *entryRecord) toDomain(kind domain.Kind) (domain.Entry, error) {
	published, err := parseDate(r.Date)
	if err != nil {
		return domain.Entry{}, err
	}

	title, err := r.Title.toDomain("title")
	if err != nil {
		return domain.Entry{}, err
	}

	excerpt, err := r.Excerpt.toDomain("excerpt")
	if err != nil {
		return domain.Entry{}, err
	}

	body, err := r.Body.toDomain("body")
	if err != nil {
		return domain.Entry{}, err
	}

	results, err := r.Results.toDomain("results")
	if err != nil {
		return domain.Entry{}, err
	}

	entry := domain.Entry{
		ID:       strings.TrimSpace(r.ID),
		Kind:     kind,
		Slug:     r.Slug,
		Title:    title,
		Excerpt:  excerpt,
		Body:     body,
		Category: r.Category,
		Tags:     r.Tags,
		Author: domain.Author{
			Name:      r.Author.Name,
			Role:      r.Author.Role,
			AvatarURL: r.Author.AvatarURL,
		},
		Featured:       r.Featured,
		PublishedAt:    published,
		ImageURL:       r.Image,
		ReadingMinutes: r.ReadingMinutes,
		Client:         r.Client,
		Industry:       r.Industry,
		Results:        results,
	}

	if entry.Slug == "" {
		entry.Slug = entry.ID
	}

	if err := entry.Validate(); err != nil {
		return domain.Entry{}, err
	}

	return entry, nil
}

func (r *productRecord) toDomain() (domain.Product, error) {
	name, err := r.Name.toDomain("name")
	if err != nil {
		return domain.Product{}, err
	}

	desc, err := r.Description.toDomain("description")
	if err != nil {
		return domain.Product{}, err
	}

	p := domain.Product{
		ID:             strings.TrimSpace(r.ID),
		SKU:            r.SKU,
		Name:           name,
		Description:    desc,
		Category:       r.Category,
		Material:       r.Material,
		Process:        r.Process,
		Tags:           r.Tags,
		Featured:       r.Featured,
		MinOrderQty:    r.MinOrderQty,
		UnitPriceCents: r.UnitPrice,
		ImageURL:       r.Image,
	}

	if err := p.Validate(); err != nil {
		return domain.Product{}, err
	}

	return p, nil
}

func (l localized) toDomain(field string) (domain.LocalizedText, error) {
	if len(l) == 0 {
		return nil, nil
	}

	out := make(domain.LocalizedText, len(l))
	for tag, text := range l {
		locale, ok := domain.ParseLocale(tag)
		if !ok {
			return nil, domain.NewValidationError(field, fmt.Sprintf("unsupported locale %q", tag))
		}

		out[locale] = text
	}

	return out, nil
}

func parseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, domain.NewValidationError("date", "is required")
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC(), nil
		}
	}

	return time.Time{}, domain.NewValidationError("date", fmt.Sprintf("%q is not YYYY-MM-DD or RFC 3339", raw))
}
