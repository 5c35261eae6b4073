// Package dto defines the request and response shapes of the comment
// API.
package dto

import (
	"newsportal/internal/feature/comment/domain/entity"
)

// CommentRequest is the body of comment create and update calls.
type CommentRequest struct {
	Text string `json:"text" binding:"required,max=300"`
}

// CommentResponse is the read shape of a comment.
type CommentResponse struct {
	ID      uint   `json:"id"`
	Text    string `json:"text"`
	OwnerID uint   `json:"ownerId"`
}

// NewCommentResponse maps a comment entity to its read shape.
func NewCommentResponse(comment entity.Comment) CommentResponse {
	return CommentResponse{
		ID:      comment.ID,
		Text:    comment.Text,
		OwnerID: comment.OwnerID,
	}
}

// NewCommentResponses maps a slice of comment entities.
func NewCommentResponses(comments []entity.Comment) []CommentResponse {
	out := make([]CommentResponse, 0, len(comments))
	for _, comment := range comments {
		out = append(out, NewCommentResponse(comment))
	}
	return out
}
