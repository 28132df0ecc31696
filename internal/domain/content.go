package domain

import (
	"fmt"
	"strings"
	"time"
)

// Kind identifies a content collection.
type Kind string

const (
	KindBlog      Kind = "blog"
	KindNews      Kind = "news"
	KindCaseStudy Kind = "case-study"
)

// Kinds lists every content collection.
var Kinds = []Kind{KindBlog, KindNews, KindCaseStudy}

// ParseKind accepts the canonical name and the plural path forms used by the
// public routes ("blog-posts", "case-studies").
func ParseKind(raw string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "blog", "blog-posts", "posts":
		return KindBlog, nil
	case "news", "news-articles":
		return KindNews, nil
	case "case-study", "case-studies":
		return KindCaseStudy, nil
	default:
		return "", NewValidationError("kind", fmt.Sprintf("unknown content kind %q", raw))
	}
}

// Entity returns the record name used in errors and logs.
func (k Kind) Entity() string {
	switch k {
	case KindBlog:
		return "blog post"
	case KindNews:
		return "news article"
	case KindCaseStudy:
		return "case study"
	default:
		return "content"
	}
}

// Author is the byline attached to an entry.
type Author struct {
	Name      string
	Role      string
	AvatarURL string
}

// Entry is a blog post, news article or case study.
type Entry struct {
	ID             string
	Kind           Kind
	Slug           string
	Title          LocalizedText
	Excerpt        LocalizedText
	Body           LocalizedText // markdown
	Category       string
	Tags           []string
	Author         Author
	Featured       bool
	PublishedAt    time.Time
	ImageURL       string
	ReadingMinutes int

	// Case study only.
	Client   string
	Industry string
	Results  LocalizedText
}

// Validate checks the fields every entry needs before it can be listed.
func (e *Entry) Validate() error {
	if strings.TrimSpace(e.ID) == "" {
		return NewValidationError("id", "is required")
	}

	if _, err := ParseKind(string(e.Kind)); err != nil {
		return err
	}

	if strings.TrimSpace(e.Title[LocaleEnglish]) == "" {
		return NewValidationError("title", "an English title is required")
	}

	if e.PublishedAt.IsZero() {
		return NewValidationError("publishedAt", "is required")
	}

	return nil
}

// HasTag reports whether the entry carries tag, ignoring case.
func (e *Entry) HasTag(tag string) bool {
	for _, t := range e.Tags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}

	return false
}

// searchText is the haystack for substring search.
func (e *Entry) searchText() string {
	parts := []string{
		e.Title.Joined(),
		e.Excerpt.Joined(),
		e.Body.Joined(),
		e.Results.Joined(),
		e.Author.Name,
		e.Client,
		e.Industry,
		strings.Join(e.Tags, " "),
	}

	return strings.ToLower(strings.Join(parts, " "))
}

// Merge combines the static collection with the custom overrides. A custom
// entry replaces the static entry with the same id in place; custom entries
// without a static counterpart are appended in their own order. Every id
// appears once in the result.
func Merge(static, custom []Entry) []Entry {
	overrides := make(map[string]Entry, len(custom))
	for _, e := range custom {
		overrides[e.ID] = e
	}

	merged := make([]Entry, 0, len(static)+len(custom))
	seen := make(map[string]struct{}, len(static)+len(custom))

	for _, e := range static {
		if _, dup := seen[e.ID]; dup {
			continue
		}

		seen[e.ID] = struct{}{}

		if o, ok := overrides[e.ID]; ok {
			merged = append(merged, o)
			continue
		}

		merged = append(merged, e)
	}

	for _, e := range custom {
		if _, dup := seen[e.ID]; dup {
			continue
		}

		seen[e.ID] = struct{}{}
		merged = append(merged, e)
	}

	return merged
}

// ValidateUniqueIDs returns a conflict error naming the first id that occurs
// more than once.
func ValidateUniqueIDs(entries []Entry) error {
	seen := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		if _, dup := seen[e.ID]; dup {
			return NewConflictError(e.Kind.Entity(), fmt.Sprintf("duplicate id %q", e.ID))
		}

		seen[e.ID] = struct{}{}
	}

	return nil
}

// FindEntry looks an entry up by id, then by slug.
func FindEntry(entries []Entry, idOrSlug string) (Entry, bool) {
	for _, e := range entries {
		if e.ID == idOrSlug {
			return e, true
		}
	}

	for _, e := range entries {
		if e.Slug != "" && e.Slug == idOrSlug {
			return e, true
		}
	}

	return Entry{}, false
}

// Related returns up to limit entries sharing at least one tag with target,
// newest first, excluding target itself.
func Related(entries []Entry, target Entry, limit int) []Entry {
	var related []Entry

	for _, e := range entries {
		if e.ID == target.ID {
			continue
		}

		for _, t := range target.Tags {
			if e.HasTag(t) {
				related = append(related, e)
				break
			}
		}
	}

	SortEntries(related, SortNewest)

	if limit > 0 && len(related) > limit {
		related = related[:limit]
	}

	return related
}
