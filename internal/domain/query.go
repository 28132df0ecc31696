package domain

import (
	"cmp"
	"slices"
	"strings"
)

// SortOrder orders entries by publication date.
type SortOrder string

const (
	SortNewest SortOrder = "newest"
	SortOldest SortOrder = "oldest"
)

// ParseSortOrder maps the accepted spellings to a SortOrder; empty means newest.
func ParseSortOrder(raw string) (SortOrder, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "newest", "desc", "date-desc":
		return SortNewest, nil
	case "oldest", "asc", "date-asc":
		return SortOldest, nil
	default:
		return "", NewValidationError("sort", "must be one of: newest, oldest")
	}
}

// Query narrows and pages a content collection. Zero values disable a filter;
// Limit 0 returns everything after Offset.
type Query struct {
	Search   string
	Tag      string
	Author   string
	Category string
	Featured *bool
	Sort     SortOrder
	Offset   int
	Limit    int
}

// Result is one page of a filtered collection.
type Result struct {
	Items []Entry
	Total int
}

// Matches reports whether e passes every filter of q.
func (q *Query) Matches(e *Entry) bool {
	if q.Tag != "" && !e.HasTag(q.Tag) {
		return false
	}

	if q.Author != "" && !strings.EqualFold(e.Author.Name, q.Author) {
		return false
	}

	if q.Category != "" && !strings.EqualFold(e.Category, q.Category) {
		return false
	}

	if q.Featured != nil && e.Featured != *q.Featured {
		return false
	}

	if s := strings.ToLower(strings.TrimSpace(q.Search)); s != "" {
		if !strings.Contains(e.searchText(), s) {
			return false
		}
	}

	return true
}

// Apply filters, sorts and slices entries. The input slice is not modified.
func (q *Query) Apply(entries []Entry) Result {
	filtered := make([]Entry, 0, len(entries))
	for i := range entries {
		if q.Matches(&entries[i]) {
			filtered = append(filtered, entries[i])
		}
	}

	SortEntries(filtered, q.Sort)

	return Result{
		Items: Page(filtered, q.Offset, q.Limit),
		Total: len(filtered),
	}
}

// SortEntries sorts in place by publication date in the given order. Equal
// dates fall back to ascending id so the order is total.
func SortEntries(entries []Entry, order SortOrder) {
	slices.SortStableFunc(entries, func(a, b Entry) int {
		byDate := a.PublishedAt.Compare(b.PublishedAt)
		if order != SortOldest {
			byDate = -byDate
		}

		if byDate != 0 {
			return byDate
		}

		return cmp.Compare(a.ID, b.ID)
	})
}

// Page returns items[offset:offset+limit] clamped to the slice bounds.
func Page[T any](items []T, offset, limit int) []T {
	if offset < 0 {
		offset = 0
	}

	if offset >= len(items) {
		return []T{}
	}

	end := len(items)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}

	return items[offset:end]
}

// Facets summarizes the values a collection can be filtered by.
type Facets struct {
	Tags       []string
	Authors    []string
	Categories []string
}

// CollectFacets returns the sorted, de-duplicated tags, authors and
// categories of entries. Tags are de-duplicated ignoring case; the first
// spelling seen wins.
func CollectFacets(entries []Entry) Facets {
	tags := newFacetSet()
	authors := newFacetSet()
	categories := newFacetSet()

	for _, e := range entries {
		for _, t := range e.Tags {
			tags.add(t)
		}

		authors.add(e.Author.Name)
		categories.add(e.Category)
	}

	return Facets{
		Tags:       tags.sorted(),
		Authors:    authors.sorted(),
		Categories: categories.sorted(),
	}
}

type facetSet struct {
	seen   map[string]struct{}
	values []string
}

func newFacetSet() *facetSet {
	return &facetSet{seen: make(map[string]struct{})}
}

func (f *facetSet) add(v string) {
	v = strings.TrimSpace(v)
	if v == "" {
		return
	}

	key := strings.ToLower(v)
	if _, ok := f.seen[key]; ok {
		return
	}

	f.seen[key] = struct{}{}
	f.values = append(f.values, v)
}

func (f *facetSet) sorted() []string {
	out := slices.Clone(f.values)
	slices.SortFunc(out, func(a, b string) int {
		return cmp.Compare(strings.ToLower(a), strings.ToLower(b))
	})

	if out == nil {
		return []string{}
	}

	return out
}
