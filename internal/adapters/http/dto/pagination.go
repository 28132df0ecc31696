package dto

import (
	"fmt"

	"github.com/polyworks/site-api/internal/domain"
)

// MaxPage bounds the page query parameter so page*limit cannot overflow.
const MaxPage = 1_000_000

// PaginationRequest holds the paging query parameters. Page is a 1-based
// alternative to Offset; sending both is rejected.
type PaginationRequest struct {
	Limit  int `form:"limit"  json:"limit"`
	Offset int `form:"offset" json:"offset" validate:"gte=0"`
	Page   int `form:"page"   json:"page"   validate:"gte=0,lte=1000000"`
}

// Window resolves the request to an offset and limit. A missing limit
// becomes defaultLimit, which may be 0 for "everything"; an explicit limit
// must lie in 1..maxLimit.
func (p *PaginationRequest) Window(defaultLimit, maxLimit int) (offset, limit int, err error) {
	limit = p.Limit
	switch {
	case limit == 0:
		limit = defaultLimit
	case limit < 1 || limit > maxLimit:
		return 0, 0, domain.NewValidationError("limit", fmt.Sprintf("must be between 1 and %d", maxLimit))
	}

	if p.Page > MaxPage {
		return 0, 0, domain.NewValidationError("page", fmt.Sprintf("must be at most %d", MaxPage))
	}

	if p.Page > 0 {
		if p.Offset > 0 {
			return 0, 0, domain.NewValidationError("page", "cannot be combined with offset")
		}

		size := limit
		if size == 0 {
			size = maxLimit
			limit = size
		}

		return (p.Page - 1) * size, limit, nil
	}

	return p.Offset, limit, nil
}

// PageResponse is the envelope of paginated /api/v1 listings.
type PageResponse[T any] struct {
	Items   []T  `json:"items"`
	Total   int  `json:"total"`
	Offset  int  `json:"offset"`
	Limit   int  `json:"limit"`
	HasMore bool `json:"hasMore"`
}

// NewPageResponse wraps one page of total items. A nil items slice is
// rendered as [].
func NewPageResponse[T any](items []T, total, offset, limit int) *PageResponse[T] {
	if items == nil {
		items = []T{}
	}

	return &PageResponse[T]{
		Items:   items,
		Total:   total,
		Offset:  offset,
		Limit:   limit,
		HasMore: offset+len(items) < total,
	}
}
