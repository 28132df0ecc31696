package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/polyworks/site-api/internal/adapters/http/dto"
	"github.com/polyworks/site-api/internal/app"
	"github.com/polyworks/site-api/internal/domain"
	"github.com/polyworks/site-api/internal/mocks"
	"github.com/polyworks/site-api/internal/platform/config"
	"github.com/polyworks/site-api/internal/ports"
)

func day(d int) time.Time {
	return time.Date(2024, 4, d, 0, 0, 0, 0, time.UTC)
}

func newsEntries() []domain.Entry {
	return []domain.Entry{
		{
			ID: "n1", Kind: domain.KindNews, Slug: "new-press",
			Title:  domain.LocalizedText{domain.LocaleEnglish: "New press line", domain.LocaleGerman: "Neue Presse"},
			Body:   domain.LocalizedText{domain.LocaleEnglish: "**Hello**", domain.LocaleGerman: "**Hallo**"},
			Tags:   []string{"factory"},
			Author: domain.Author{Name: "Anna Kovács"}, PublishedAt: day(1),
		},
		{
			ID: "n2", Kind: domain.KindNews, Title: domain.Text("Recycling award"),
			Tags: []string{"sustainability", "factory"}, Category: "awards",
			Author: domain.Author{Name: "Péter Nagy"}, Featured: true, PublishedAt: day(3),
		},
		{
			ID: "n3", Kind: domain.KindNews, Title: domain.Text("Trade fair"),
			Tags:   []string{"events"},
			Author: domain.Author{Name: "Anna Kovács"}, PublishedAt: day(2),
		},
	}
}

func newContentEngine(t *testing.T, custom ports.CustomContentStore, flags ports.FeatureFlags) *gin.Engine {
	t.Helper()

	static := mocks.NewMockContentSource(t)
	static.EXPECT().Entries(mock.Anything, domain.KindNews).Return(newsEntries(), nil).Maybe()

	svc := app.NewContentService(app.ContentServiceConfig{
		Static: static,
		Custom: custom,
		Flags:  flags,
		Logger: discardLogger(),
	})

	h := NewContentHandler(svc, &config.ContentConfig{DefaultLimit: 2, MaxLimit: 10})

	engine := gin.New()
	h.RegisterCombinedRoutes(engine.Group("/api"))
	h.RegisterContentRoutes(engine.Group("/api/v1"))

	return engine
}

func entryIDs(items []dto.EntryResponse) []string {
	ids := make([]string, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.ID)
	}

	return ids
}

func TestContentHandler_Combined(t *testing.T) {
	engine := newContentEngine(t, nil, nil)

	tests := []struct {
		name   string
		query  string
		expect []string
	}{
		{"everything newest first", "", []string{"n2", "n3", "n1"}},
		{"oldest first", "?sort=oldest", []string{"n1", "n3", "n2"}},
		{"tag", "?tag=FACTORY", []string{"n2", "n1"}},
		{"author", "?author=anna%20kov%C3%A1cs", []string{"n3", "n1"}},
		{"featured", "?featured=true", []string{"n2"}},
		{"category", "?category=awards", []string{"n2"}},
		{"search across locales", "?search=presse", []string{"n1"}},
		{"limit", "?limit=2", []string{"n2", "n3"}},
		{"offset", "?offset=2", []string{"n1"}},
		{"page", "?limit=1&page=2", []string{"n3"}},
		{"no match", "?tag=none", []string{}},
		{"debug ignored while flag is off", "?debug=true", []string{"n2", "n3", "n1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(engine, http.MethodGet, "/api/combined-news"+tt.query, "")

			require.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, tt.expect, entryIDs(decode[[]dto.EntryResponse](t, w)))
		})
	}
}

func TestContentHandler_Combined_PagesCoverCollection(t *testing.T) {
	engine := newContentEngine(t, nil, nil)

	var seen []string

	for page := 1; page <= 3; page++ {
		w := do(engine, http.MethodGet, "/api/combined-news?limit=1&page="+strconv.Itoa(page), "")
		require.Equal(t, http.StatusOK, w.Code)
		seen = append(seen, entryIDs(decode[[]dto.EntryResponse](t, w))...)
	}

	assert.Equal(t, []string{"n2", "n3", "n1"}, seen)
}

func TestContentHandler_Combined_BadRequests(t *testing.T) {
	engine := newContentEngine(t, nil, nil)

	tests := []struct {
		name  string
		query string
		code  string
	}{
		{"limit above maximum", "?limit=11", dto.ErrorCodeValidation},
		{"limit zero is the default, negative is not", "?limit=-1", dto.ErrorCodeValidation},
		{"page and offset", "?page=2&offset=1", dto.ErrorCodeValidation},
		{"page beyond maximum", "?page=9223372036854775807", dto.ErrorCodeValidation},
		{"unknown sort", "?sort=popular", dto.ErrorCodeValidation},
		{"unparsable featured", "?featured=maybe", dto.ErrorCodeBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(engine, http.MethodGet, "/api/combined-news"+tt.query, "")

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, tt.code, errorCode(t, w))
		})
	}
}

func TestContentHandler_Combined_Debug(t *testing.T) {
	flags := mocks.NewMockFeatureFlags(t)
	flags.EXPECT().IsEnabled(mock.Anything, ports.FlagContentDebug, false).Return(true)

	custom := mocks.NewMockCustomContentStore(t)
	custom.EXPECT().Entries(mock.Anything, domain.KindNews).Return([]domain.Entry{
		{ID: "n3", Kind: domain.KindNews, Title: domain.Text("Trade fair 2024"), Tags: []string{"events"}, PublishedAt: day(2)},
		{ID: "c1", Kind: domain.KindNews, Title: domain.Text("Open day"), Tags: []string{"events"}, PublishedAt: day(4)},
	}, nil)

	engine := newContentEngine(t, custom, flags)

	w := do(engine, http.MethodGet, "/api/combined-news?debug=true&tag=events", "")
	require.Equal(t, http.StatusOK, w.Code)

	resp := decode[dto.CombinedDebugResponse](t, w)

	assert.Equal(t, []string{"c1", "n3"}, entryIDs(resp.Items))
	assert.Equal(t, 2, resp.Total)
	assert.Equal(t, "Trade fair 2024", resp.Items[1].Title["en"])
	assert.Equal(t, 3, resp.Debug.StaticCount)
	assert.Equal(t, 2, resp.Debug.CustomCount)
	assert.Contains(t, resp.Debug.AvailableTags, "sustainability")
	assert.Equal(t, []string{"awards"}, resp.Debug.AvailableCategories)
	assert.Equal(t, map[string]string{"sort": "newest", "tag": "events"}, resp.Debug.AppliedFilters)
}

func TestContentHandler_Combined_CustomSourceDown(t *testing.T) {
	custom := mocks.NewMockCustomContentStore(t)
	custom.EXPECT().Entries(mock.Anything, domain.KindNews).Return(nil, errors.New("database is locked"))

	engine := newContentEngine(t, custom, nil)

	w := do(engine, http.MethodGet, "/api/combined-news", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]dto.EntryResponse](t, w), 3)
}

func TestContentHandler_Combined_StaticSourceDown(t *testing.T) {
	static := mocks.NewMockContentSource(t)
	static.EXPECT().Entries(mock.Anything, domain.KindBlog).
		RunAndReturn(func(context.Context, domain.Kind) ([]domain.Entry, error) {
			return nil, errors.New("seed file unreadable")
		})

	h := NewContentHandler(app.NewContentService(app.ContentServiceConfig{Static: static, Logger: discardLogger()}), nil)
	engine := gin.New()
	h.RegisterCombinedRoutes(engine.Group("/api"))

	w := do(engine, http.MethodGet, "/api/combined-blog-posts", "")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "seed file")
}

func TestContentHandler_Detail(t *testing.T) {
	engine := newContentEngine(t, nil, nil)

	tests := []struct {
		name    string
		target  string
		header  string
		locale  string
		html    string
		related []string
	}{
		{"by id", "/api/combined-news/n1", "", "en", "<strong>Hello</strong>", []string{"n2"}},
		{"by slug", "/api/combined-news/new-press", "", "en", "<strong>Hello</strong>", []string{"n2"}},
		{"lang parameter", "/api/combined-news/n1?lang=de", "", "de", "<strong>Hallo</strong>", []string{"n2"}},
		{"accept language", "/api/v1/content/news/n1", "de-AT,de;q=0.9", "de", "<strong>Hallo</strong>", []string{"n2"}},
		{"missing translation falls back to english", "/api/v1/content/news/n1?lang=hu", "", "hu", "<strong>Hello</strong>", []string{"n2"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptestRequest(http.MethodGet, tt.target)
			if tt.header != "" {
				req.Header.Set("Accept-Language", tt.header)
			}

			w := serveRequest(engine, req)
			require.Equal(t, http.StatusOK, w.Code)

			resp := decode[dto.EntryDetailResponse](t, w)
			assert.Equal(t, "n1", resp.ID)
			assert.Equal(t, tt.locale, resp.Locale)
			assert.Equal(t, tt.locale, w.Header().Get("Content-Language"))
			assert.Contains(t, resp.HTML, tt.html)
			assert.Equal(t, tt.related, entryIDs(resp.Related))
		})
	}
}

func TestContentHandler_Detail_NotFound(t *testing.T) {
	engine := newContentEngine(t, nil, nil)

	w := do(engine, http.MethodGet, "/api/combined-news/missing", "")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, dto.ErrorCodeNotFound, errorCode(t, w))
}

func TestContentHandler_V1List(t *testing.T) {
	engine := newContentEngine(t, nil, nil)

	w := do(engine, http.MethodGet, "/api/v1/content/news", "")
	require.Equal(t, http.StatusOK, w.Code)

	page := decode[dto.PageResponse[dto.EntryResponse]](t, w)
	assert.Equal(t, []string{"n2", "n3"}, entryIDs(page.Items))
	assert.Equal(t, 3, page.Total)
	assert.Equal(t, 2, page.Limit)
	assert.True(t, page.HasMore)

	w = do(engine, http.MethodGet, "/api/v1/content/news?offset=2", "")
	page = decode[dto.PageResponse[dto.EntryResponse]](t, w)
	assert.Equal(t, []string{"n1"}, entryIDs(page.Items))
	assert.False(t, page.HasMore)
}

func TestContentHandler_V1UnknownKind(t *testing.T) {
	engine := newContentEngine(t, nil, nil)

	for _, target := range []string{"/api/v1/content/podcasts", "/api/v1/content/podcasts/x", "/api/v1/content/podcasts/facets"} {
		w := do(engine, http.MethodGet, target, "")
		assert.Equal(t, http.StatusBadRequest, w.Code, target)
	}
}

func TestContentHandler_V1Facets(t *testing.T) {
	engine := newContentEngine(t, nil, nil)

	w := do(engine, http.MethodGet, "/api/v1/content/news/facets", "")
	require.Equal(t, http.StatusOK, w.Code)

	resp := decode[dto.FacetsResponse](t, w)
	assert.Len(t, resp.Tags, 3)
	assert.Len(t, resp.Authors, 2)
	assert.Equal(t, []string{"awards"}, resp.Categories)
}
