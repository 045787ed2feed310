package v1

import (
	"net/http"
	"strconv"

	"github.com/feedpulse/feedpulse/infrastructure/api/v1/dto"
	"github.com/feedpulse/feedpulse/internal/config"
)

// PaginationParams holds pagination parameters parsed from query strings.
type PaginationParams struct {
	limit  int
	offset int
}

// ParsePagination parses limit and offset query parameters.
// Default limit is config.DefaultListLimit, capped at config.DefaultMaxListLimit.
func ParsePagination(r *http.Request) PaginationParams {
	params := PaginationParams{limit: config.DefaultListLimit}

	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if limit, err := strconv.Atoi(limitStr); err == nil && limit >= 1 {
			params.limit = limit
			if params.limit > config.DefaultMaxListLimit {
				params.limit = config.DefaultMaxListLimit
			}
		}
	}
	if offsetStr := r.URL.Query().Get("offset"); offsetStr != "" {
		if offset, err := strconv.Atoi(offsetStr); err == nil && offset >= 0 {
			params.offset = offset
		}
	}
	return params
}

// Limit returns the page size.
func (p PaginationParams) Limit() int { return p.limit }

// Offset returns the page offset.
func (p PaginationParams) Offset() int { return p.offset }

// Meta builds the list meta for a response.
func (p PaginationParams) Meta(total int64) dto.ListMeta {
	return dto.ListMeta{
		Total:  total,
		Limit:  p.limit,
		Offset: p.offset,
	}
}
