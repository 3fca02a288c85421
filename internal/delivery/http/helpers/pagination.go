package helpers

import (
	"net/http"
	"strconv"

	"hospitaladmin/internal/domain"
)

const (
	DefaultPage     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// ParsePagination reads page and page_size from the query string. A request carrying
// neither parameter is unpaged (PageSize 0) and lists every row, which is what the
// dashboard directory views expect. Once either is given, the missing or malformed one
// takes its default and page_size is capped at MaxPageSize.
func ParsePagination(r *http.Request) domain.PaginationParams {
	q := r.URL.Query()
	if !q.Has("page") && !q.Has("page_size") {
		return domain.PaginationParams{Page: DefaultPage}
	}
	params := domain.PaginationParams{
		Page:     positiveInt(q.Get("page"), DefaultPage),
		PageSize: positiveInt(q.Get("page_size"), DefaultPageSize),
	}
	params.PageSize = min(params.PageSize, MaxPageSize)
	return params
}

func positiveInt(raw string, fallback int) int {
	v, err := strconv.Atoi(raw)
	if err != nil || v < 1 {
		return fallback
	}
	return v
}

// PaginationMeta accompanies list responses. PageSize 0 marks an unpaged listing.
// swagger:model PaginationMeta
type PaginationMeta struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

func NewPaginationMeta(page, pageSize, total int) PaginationMeta {
	meta := PaginationMeta{Page: page, PageSize: pageSize, Total: total}
	switch {
	case pageSize > 0:
		meta.TotalPages = (total + pageSize - 1) / pageSize
	case total > 0:
		meta.TotalPages = 1
	}
	return meta
}
