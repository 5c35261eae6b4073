// Package handler provides the HTTP handlers of the news feature.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	commententity "newsportal/internal/feature/comment/domain/entity"
	commentdto "newsportal/internal/feature/comment/transport/http/dto"
	"newsportal/internal/feature/news/domain/entity"
	"newsportal/internal/feature/news/transport/http/dto"
	"newsportal/internal/feature/news/usecase"
	"newsportal/internal/platform/auth"
	"newsportal/internal/platform/httperr"
	"newsportal/internal/platform/paging"
)

// NewsUsecase defines the news operations the handlers need. Defined by
// the consumer (handler), implemented by the usecase.
type NewsUsecase interface {
	FindAllByFilter(ctx context.Context, filter usecase.Filter, req paging.Request) ([]entity.News, int64, error)
	FindAllByUserID(ctx context.Context, userID uint, req paging.Request) ([]entity.News, int64, error)
	FindByIDWithComments(ctx context.Context, id uint, req paging.Request) (*entity.News, []commententity.Comment, int64, error)
	IsOwner(ctx context.Context, userID, newsID uint) (bool, error)
	Create(ctx context.Context, actorID uint, in usecase.Input) (*entity.News, error)
	UpdateByID(ctx context.Context, actorID, id uint, in usecase.Input) (*entity.News, error)
	DeleteByID(ctx context.Context, id uint) error
}

// NewsHandler handles HTTP requests for news articles.
type NewsHandler struct {
	news NewsUsecase
}

// NewNewsHandler creates a new NewsHandler instance.
func NewNewsHandler(news NewsUsecase) *NewsHandler {
	return &NewsHandler{news: news}
}

// List handles GET /api/news. Public. The title and text query
// parameters filter case-insensitively by containment and compose with
// AND; leaving both out lists everything.
func (h *NewsHandler) List(c *gin.Context) {
	req := paging.ParseRequest(c)
	filter := usecase.Filter{
		Title: c.Query("title"),
		Text:  c.Query("text"),
	}

	news, total, err := h.news.FindAllByFilter(c.Request.Context(), filter, req)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, paging.NewResponse(dto.NewNewsResponses(news), req, total))
}

// ListByUser handles GET /api/users/:id/news. Public.
func (h *NewsHandler) ListByUser(c *gin.Context) {
	userID, ok := pathID(c, "id")
	if !ok {
		return
	}
	req := paging.ParseRequest(c)

	news, total, err := h.news.FindAllByUserID(c.Request.Context(), userID, req)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, paging.NewResponse(dto.NewNewsResponses(news), req, total))
}

// Get handles GET /api/news/:id. Public. The response carries the
// article and one page of its comments.
func (h *NewsHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	req := paging.ParseRequest(c)

	news, comments, total, err := h.news.FindByIDWithComments(c.Request.Context(), id, req)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	resp := dto.NewNewsResponse(*news)
	page := paging.NewResponse(commentdto.NewCommentResponses(comments), req, total)
	resp.Comments = &page
	c.JSON(http.StatusOK, resp)
}

// Create handles POST /api/news. The route gate admits admins and
// journalists; the article is owned by the caller.
func (h *NewsHandler) Create(c *gin.Context) {
	var req dto.NewsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	p, _ := auth.CurrentPrincipal(c)
	news, err := h.news.Create(c.Request.Context(), p.ID, req.ToInput())
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	slog.Info("news created", "id", news.ID, "owner_id", p.ID)
	c.JSON(http.StatusCreated, dto.NewNewsResponse(*news))
}

// Update handles PUT /api/news/:id. Admins may edit anything,
// journalists only their own articles.
func (h *NewsHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	p, allowed := h.adminOrOwner(c, id)
	if !allowed {
		return
	}

	var req dto.NewsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	news, err := h.news.UpdateByID(c.Request.Context(), p.ID, id, req.ToInput())
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewNewsResponse(*news))
}

// Delete handles DELETE /api/news/:id. Admins may delete anything,
// journalists only their own articles. Comments go with the article.
func (h *NewsHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if _, allowed := h.adminOrOwner(c, id); !allowed {
		return
	}

	if err := h.news.DeleteByID(c.Request.Context(), id); err != nil {
		httperr.Respond(c, err)
		return
	}
	slog.Info("news deleted", "id", id)
	c.Status(http.StatusNoContent)
}

// adminOrOwner resolves the principal and checks the ownership rule for
// mutations. The ownership lookup happens before any write, so a
// missing article surfaces as 404 and a foreign one as 403.
func (h *NewsHandler) adminOrOwner(c *gin.Context, newsID uint) (auth.Principal, bool) {
	p, ok := auth.CurrentPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return p, false
	}
	if p.IsAdmin() {
		return p, true
	}

	owner, err := h.news.IsOwner(c.Request.Context(), p.ID, newsID)
	if err != nil {
		httperr.Respond(c, err)
		return p, false
	}
	if !owner {
		c.JSON(http.StatusForbidden, gin.H{"error": "permission denied"})
		return p, false
	}
	return p, true
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
