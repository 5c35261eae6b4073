// Package handler provides the HTTP handlers of the comment feature.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"newsportal/internal/feature/comment/domain/entity"
	"newsportal/internal/feature/comment/transport/http/dto"
	"newsportal/internal/platform/auth"
	"newsportal/internal/platform/httperr"
	"newsportal/internal/platform/paging"
)

// CommentUsecase defines the comment operations the handlers need.
// Defined by the consumer (handler), implemented by the usecase.
type CommentUsecase interface {
	FindByID(ctx context.Context, id uint) (*entity.Comment, error)
	FindAllByUserID(ctx context.Context, userID uint, req paging.Request) ([]entity.Comment, int64, error)
	FindAllByNewsID(ctx context.Context, newsID uint, req paging.Request) ([]entity.Comment, int64, error)
	IsOwner(ctx context.Context, userID, commentID uint) (bool, error)
	Create(ctx context.Context, actorID, newsID uint, text string) (*entity.Comment, error)
	UpdateByID(ctx context.Context, id uint, text string) (*entity.Comment, error)
	DeleteByID(ctx context.Context, id uint) error
}

// CommentHandler handles HTTP requests for comments.
type CommentHandler struct {
	comments CommentUsecase
}

// NewCommentHandler creates a new CommentHandler instance.
func NewCommentHandler(comments CommentUsecase) *CommentHandler {
	return &CommentHandler{comments: comments}
}

// Get handles GET /api/comments/:id. Public.
func (h *CommentHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	comment, err := h.comments.FindByID(c.Request.Context(), id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewCommentResponse(*comment))
}

// ListByUser handles GET /api/users/:id/comments. Public. Comments
// of soft-deleted users stay listed.
func (h *CommentHandler) ListByUser(c *gin.Context) {
	userID, ok := pathID(c, "id")
	if !ok {
		return
	}
	req := paging.ParseRequest(c)

	comments, total, err := h.comments.FindAllByUserID(c.Request.Context(), userID, req)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, paging.NewResponse(dto.NewCommentResponses(comments), req, total))
}

// ListByNews handles GET /api/news/:id/comments. Public.
func (h *CommentHandler) ListByNews(c *gin.Context) {
	newsID, ok := pathID(c, "id")
	if !ok {
		return
	}
	req := paging.ParseRequest(c)

	comments, total, err := h.comments.FindAllByNewsID(c.Request.Context(), newsID, req)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, paging.NewResponse(dto.NewCommentResponses(comments), req, total))
}

// Create handles POST /api/news/:id/comments. The route gate admits
// admins and subscribers; the comment is owned by the caller.
func (h *CommentHandler) Create(c *gin.Context) {
	newsID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	p, _ := auth.CurrentPrincipal(c)
	comment, err := h.comments.Create(c.Request.Context(), p.ID, newsID, req.Text)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	slog.Info("comment created", "id", comment.ID, "news_id", newsID, "owner_id", p.ID)
	c.JSON(http.StatusCreated, dto.NewCommentResponse(*comment))
}

// Update handles PUT /api/comments/:id. Admins may edit anything,
// subscribers only their own comments.
func (h *CommentHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if !h.adminOrOwner(c, id) {
		return
	}

	var req dto.CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	comment, err := h.comments.UpdateByID(c.Request.Context(), id, req.Text)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewCommentResponse(*comment))
}

// Delete handles DELETE /api/comments/:id. Admins may delete anything,
// subscribers only their own comments.
func (h *CommentHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if !h.adminOrOwner(c, id) {
		return
	}

	if err := h.comments.DeleteByID(c.Request.Context(), id); err != nil {
		httperr.Respond(c, err)
		return
	}
	slog.Info("comment deleted", "id", id)
	c.Status(http.StatusNoContent)
}

// adminOrOwner checks the mutation rule before anything is written: a
// missing comment surfaces as 404, a foreign one as 403.
func (h *CommentHandler) adminOrOwner(c *gin.Context, commentID uint) bool {
	p, ok := auth.CurrentPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return false
	}
	if p.IsAdmin() {
		return true
	}

	owner, err := h.comments.IsOwner(c.Request.Context(), p.ID, commentID)
	if err != nil {
		httperr.Respond(c, err)
		return false
	}
	if !owner {
		c.JSON(http.StatusForbidden, gin.H{"error": "permission denied"})
		return false
	}
	return true
}

// pathID parses a numeric path parameter, answering 400 on garbage.
func pathID(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name + " path parameter"})
		return 0, false
	}
	return uint(id), true
}
