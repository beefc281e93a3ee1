package api

import (
	"time"

	"github.com/inkwellapp/inkwell-server/internal/store"
)

// PageInput contains the shared pagination and sorting query parameters.
// Out-of-range values are clamped rather than rejected.
type PageInput struct {
	Page  int    `query:"page" doc:"1-based page number"`
	Limit int    `query:"limit" doc:"Items per page (maximum 100)"`
	Sort  string `query:"sort" doc:"Sort field, prefix with '-' for descending"`
}

func (p PageInput) params() store.PageParams {
	return store.PageParams{Page: p.Page, Limit: p.Limit, Sort: p.Sort}
}

// PageResponse contains one page of items and pagination metadata.
type PageResponse[T any] struct {
	Items      []T `json:"items" doc:"Items on this page"`
	Page       int `json:"page" doc:"Current page number"`
	Limit      int `json:"limit" doc:"Items per page"`
	Total      int `json:"total" doc:"Total matching items"`
	TotalPages int `json:"total_pages" doc:"Total page count"`
}

// mapPage projects a store page into an API page response.
func mapPage[T, U any](page *store.Page[T], project func(T) U) PageResponse[U] {
	items := make([]U, 0, len(page.Items))
	for _, item := range page.Items {
		items = append(items, project(item))
	}
	return PageResponse[U]{
		Items:      items,
		Page:       page.Page,
		Limit:      page.Limit,
		Total:      page.Total,
		TotalPages: page.TotalPages,
	}
}

// timePtr converts an optional query timestamp to a pointer, nil when the
// parameter was absent.
func timePtr(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

// MessageResponse contains a simple message.
type MessageResponse struct {
	Message string `json:"message" doc:"Status message"`
}

// MessageOutput wraps the message response for Huma.
type MessageOutput struct {
	Body MessageResponse
}
