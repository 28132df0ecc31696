package dto

import (
	"strconv"
	"strings"
	"time"

	"github.com/polyworks/site-api/internal/domain"
)

// ContentQuery holds the listing parameters shared by the combined endpoints
// and /api/v1/content.
type ContentQuery struct {
	PaginationRequest

	Search   string `form:"search"   json:"search"   validate:"max=200"`
	Tag      string `form:"tag"      json:"tag"      validate:"max=100"`
	Author   string `form:"author"   json:"author"   validate:"max=100"`
	Category string `form:"category" json:"category" validate:"max=100"`
	Featured *bool  `form:"featured" json:"featured"`
	Sort     string `form:"sort"     json:"sort"     validate:"omitempty,oneof=newest oldest desc asc date-desc date-asc"`
	Lang     string `form:"lang"     json:"lang"     validate:"max=35"`
	Debug    bool   `form:"debug"    json:"debug"`
}

// ToDomain builds the domain query; see PaginationRequest.Window for the
// limit rules.
func (q *ContentQuery) ToDomain(defaultLimit, maxLimit int) (domain.Query, error) {
	sort, err := domain.ParseSortOrder(q.Sort)
	if err != nil {
		return domain.Query{}, err
	}

	offset, limit, err := q.Window(defaultLimit, maxLimit)
	if err != nil {
		return domain.Query{}, err
	}

	return domain.Query{
		Search:   strings.TrimSpace(q.Search),
		Tag:      strings.TrimSpace(q.Tag),
		Author:   strings.TrimSpace(q.Author),
		Category: strings.TrimSpace(q.Category),
		Featured: q.Featured,
		Sort:     sort,
		Offset:   offset,
		Limit:    limit,
	}, nil
}

// AppliedFilters echoes the effective query in debug responses.
func AppliedFilters(q domain.Query) map[string]string {
	out := map[string]string{"sort": string(q.Sort)}

	set := func(k, v string) {
		if v != "" {
			out[k] = v
		}
	}

	set("search", q.Search)
	set("tag", q.Tag)
	set("author", q.Author)
	set("category", q.Category)

	if q.Featured != nil {
		out["featured"] = strconv.FormatBool(*q.Featured)
	}

	if q.Offset > 0 {
		out["offset"] = strconv.Itoa(q.Offset)
	}

	if q.Limit > 0 {
		out["limit"] = strconv.Itoa(q.Limit)
	}

	return out
}

// AuthorResponse is an entry byline.
type AuthorResponse struct {
	Name   string `json:"name"`
	Role   string `json:"role,omitempty"`
	Avatar string `json:"avatar,omitempty"`
}

// EntryResponse is a content record as the site front end consumes it,
// with every translation included.
type EntryResponse struct {
	ID          string         `json:"id"`
	Kind        string         `json:"kind"`
	Slug        string         `json:"slug"`
	Title       Localized      `json:"title"`
	Excerpt     Localized      `json:"excerpt,omitempty"`
	Body        Localized      `json:"body,omitempty"`
	Category    string         `json:"category,omitempty"`
	Tags        []string       `json:"tags"`
	Author      AuthorResponse `json:"author"`
	Featured    bool           `json:"featured"`
	Date        string         `json:"date"`
	Image       string         `json:"image,omitempty"`
	ReadingTime int            `json:"readingTime,omitempty"`
	Client      string         `json:"client,omitempty"`
	Industry    string         `json:"industry,omitempty"`
	Results     Localized      `json:"results,omitempty"`
}

// NewEntryResponse converts a domain entry. Dates are rendered as
// YYYY-MM-DD when they fall on midnight UTC and as RFC 3339 otherwise.
func NewEntryResponse(e *domain.Entry) EntryResponse {
	tags := e.Tags
	if tags == nil {
		tags = []string{}
	}

	return EntryResponse{
		ID:       e.ID,
		Kind:     string(e.Kind),
		Slug:     e.Slug,
		Title:    NewLocalized(e.Title),
		Excerpt:  NewLocalized(e.Excerpt),
		Body:     NewLocalized(e.Body),
		Category: e.Category,
		Tags:     tags,
		Author: AuthorResponse{
			Name:   e.Author.Name,
			Role:   e.Author.Role,
			Avatar: e.Author.AvatarURL,
		},
		Featured:    e.Featured,
		Date:        FormatDate(e.PublishedAt),
		Image:       e.ImageURL,
		ReadingTime: e.ReadingMinutes,
		Client:      e.Client,
		Industry:    e.Industry,
		Results:     NewLocalized(e.Results),
	}
}

// NewEntryResponses converts entries; the result is never nil.
func NewEntryResponses(entries []domain.Entry) []EntryResponse {
	out := make([]EntryResponse, 0, len(entries))
	for i := range entries {
		out = append(out, NewEntryResponse(&entries[i]))
	}

	return out
}

// FormatDate renders t as a date when it has no time of day.
func FormatDate(t time.Time) string {
	t = t.UTC()
	if t.Equal(t.Truncate(24 * time.Hour)) {
		return t.Format(time.DateOnly)
	}

	return t.Format(time.RFC3339)
}

// ParseDate accepts YYYY-MM-DD or RFC 3339.
func ParseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if t, err := time.Parse(time.DateOnly, raw); err == nil {
		return t, nil
	}

	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, domain.NewValidationError("date", "must be YYYY-MM-DD or RFC 3339")
	}

	return t.UTC(), nil
}

// EntryDetailResponse is a single entry with its body rendered for Locale.
type EntryDetailResponse struct {
	EntryResponse

	Locale  string          `json:"locale"`
	HTML    string          `json:"html"`
	Related []EntryResponse `json:"related"`
}

// DebugInfo summarizes a collection for the combined endpoints' debug mode.
type DebugInfo struct {
	AvailableTags       []string          `json:"availableTags"`
	AvailableAuthors    []string          `json:"availableAuthors"`
	AvailableCategories []string          `json:"availableCategories"`
	StaticCount         int               `json:"staticCount"`
	CustomCount         int               `json:"customCount"`
	AppliedFilters      map[string]string `json:"appliedFilters"`
}

// CombinedDebugResponse replaces the plain array when debug=true.
type CombinedDebugResponse struct {
	Items []EntryResponse `json:"items"`
	Total int             `json:"total"`
	Debug DebugInfo       `json:"debug"`
}

// FacetsResponse lists the filter values of a collection.
type FacetsResponse struct {
	Tags       []string `json:"tags"`
	Authors    []string `json:"authors"`
	Categories []string `json:"categories"`
}

func NewFacetsResponse(f domain.Facets) FacetsResponse {
	return FacetsResponse{
		Tags:       nonNil(f.Tags),
		Authors:    nonNil(f.Authors),
		Categories: nonNil(f.Categories),
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}

	return s
}

// EntryRequest is the body of PUT /api/v1/admin/content/:kind/:id.
type EntryRequest struct {
	Slug        string        `json:"slug"        validate:"max=200"`
	Title       Localized     `json:"title"       validate:"required"`
	Excerpt     Localized     `json:"excerpt"`
	Body        Localized     `json:"body"`
	Category    string        `json:"category"    validate:"max=100"`
	Tags        []string      `json:"tags"        validate:"max=20,dive,notempty,max=50"`
	Author      AuthorRequest `json:"author"`
	Featured    bool          `json:"featured"`
	Date        string        `json:"date"        validate:"required"`
	Image       string        `json:"image"       validate:"max=500"`
	ReadingTime int           `json:"readingTime" validate:"gte=0,lte=600"`
	Client      string        `json:"client"      validate:"max=200"`
	Industry    string        `json:"industry"    validate:"max=100"`
	Results     Localized     `json:"results"`
}

// AuthorRequest is the optional byline of an EntryRequest.
type AuthorRequest struct {
	Name   string `json:"name"   validate:"omitempty,max=100"`
	Role   string `json:"role"   validate:"max=100"`
	Avatar string `json:"avatar" validate:"max=500"`
}

// Validate implements Validatable.
func (r *EntryRequest) Validate() error {
	if strings.TrimSpace(r.Title[string(domain.LocaleEnglish)]) == "" {
		return domain.NewValidationError("title", "an English title is required")
	}

	return nil
}

// ToDomain builds the entry stored for kind and id.
func (r *EntryRequest) ToDomain(kind domain.Kind, id string) (*domain.Entry, error) {
	date, err := ParseDate(r.Date)
	if err != nil {
		return nil, err
	}

	e := &domain.Entry{
		ID:       id,
		Kind:     kind,
		Slug:     strings.TrimSpace(r.Slug),
		Category: strings.TrimSpace(r.Category),
		Tags:     r.Tags,
		Author: domain.Author{
			Name:      strings.TrimSpace(r.Author.Name),
			Role:      r.Author.Role,
			AvatarURL: r.Author.Avatar,
		},
		Featured:       r.Featured,
		PublishedAt:    date,
		ImageURL:       r.Image,
		ReadingMinutes: r.ReadingTime,
		Client:         r.Client,
		Industry:       r.Industry,
	}

	fields := []struct {
		name string
		src  Localized
		dst  *domain.LocalizedText
	}{
		{"title", r.Title, &e.Title},
		{"excerpt", r.Excerpt, &e.Excerpt},
		{"body", r.Body, &e.Body},
		{"results", r.Results, &e.Results},
	}

	for _, f := range fields {
		if *f.dst, err = f.src.ToDomain(f.name); err != nil {
			return nil, err
		}
	}

	return e, nil
}
