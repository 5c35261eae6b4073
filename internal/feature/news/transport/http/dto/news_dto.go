// Package dto defines the request and response shapes of the news API.
package dto

import (
	commentdto "newsportal/internal/feature/comment/transport/http/dto"
	"newsportal/internal/feature/news/domain/entity"
	"newsportal/internal/feature/news/usecase"
	"newsportal/internal/platform/paging"
)

// NewsRequest is the body of POST /api/news and PUT /api/news/:id.
type NewsRequest struct {
	Title string `json:"title" binding:"required,max=150"`
	Text  string `json:"text" binding:"required,max=2000"`
}

// ToInput maps the request onto a usecase input. Audit fields have no
// request counterpart.
func (r NewsRequest) ToInput() usecase.Input {
	return usecase.Input{Title: r.Title, Text: r.Text}
}

// NewsResponse is the read shape of an article. Comments are attached
// only on the detail endpoint and omitted everywhere else.
type NewsResponse struct {
	ID       uint                                         `json:"id"`
	Title    string                                       `json:"title"`
	Text     string                                       `json:"text"`
	Comments *paging.Response[commentdto.CommentResponse] `json:"comments,omitempty"`
}

// NewNewsResponse maps a news entity to its read shape.
func NewNewsResponse(news entity.News) NewsResponse {
	return NewsResponse{
		ID:    news.ID,
		Title: news.Title,
		Text:  news.Text,
	}
}

// NewNewsResponses maps a slice of news entities.
func NewNewsResponses(news []entity.News) []NewsResponse {
	out := make([]NewsResponse, 0, len(news))
	for _, n := range news {
		out = append(out, NewNewsResponse(n))
	}
	return out
}
