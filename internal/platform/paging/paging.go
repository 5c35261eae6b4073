// Package paging provides page request parsing and the paginated
// response envelope used by every list endpoint.
package paging

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	// DefaultPage is the page index used when the query parameter is
	// missing or invalid.
	DefaultPage = 0

	// DefaultSize is the page size used when the query parameter is
	// missing or invalid.
	DefaultSize = 20
)

// Request describes one page of a result set. Page is zero-based.
type Request struct {
	Page int
	Size int
}

// ParseRequest reads the page and size query parameters from the gin
// context. Missing, malformed, or out-of-range values fall back to the
// defaults rather than failing the request.
func ParseRequest(c *gin.Context) Request {
	req := Request{Page: DefaultPage, Size: DefaultSize}
	if raw := c.Query("page"); raw != "" {
		if page, err := strconv.Atoi(raw); err == nil && page >= 0 {
			req.Page = page
		}
	}
	if raw := c.Query("size"); raw != "" {
		if size, err := strconv.Atoi(raw); err == nil && size > 0 {
			req.Size = size
		}
	}
	return req
}

// Offset returns the row offset of the page.
func (r Request) Offset() int {
	return r.Page * r.Size
}

// Metadata describes the position of a page within the full result set.
type Metadata struct {
	Page             int   `json:"page"`
	Size             int   `json:"size"`
	TotalElements    int64 `json:"totalElements"`
	TotalPages       int   `json:"totalPages"`
	NumberOfElements int   `json:"numberOfElements"`
}

// Response is the envelope returned by list endpoints.
type Response[T any] struct {
	Content  []T      `json:"content"`
	Metadata Metadata `json:"metadata"`
}

// NewResponse wraps one page of content together with the total element
// count of the fully filtered result set. Content is never serialized
// as null.
func NewResponse[T any](content []T, req Request, totalElements int64) Response[T] {
	if content == nil {
		content = []T{}
	}
	totalPages := 0
	if totalElements > 0 {
		totalPages = int((totalElements + int64(req.Size) - 1) / int64(req.Size))
	}
	return Response[T]{
		Content: content,
		Metadata: Metadata{
			Page:             req.Page,
			Size:             req.Size,
			TotalElements:    totalElements,
			TotalPages:       totalPages,
			NumberOfElements: len(content),
		},
	}
}
