package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"newsportal/internal/apperr"
	"newsportal/internal/feature/comment/domain/entity"
	userentity "newsportal/internal/feature/user/domain/entity"
	"newsportal/internal/platform/auth"
	"newsportal/internal/platform/paging"
)

type mockCommentUsecase struct {
	findByID        func(ctx context.Context, id uint) (*entity.Comment, error)
	findAllByUserID func(ctx context.Context, userID uint, req paging.Request) ([]entity.Comment, int64, error)
	findAllByNewsID func(ctx context.Context, newsID uint, req paging.Request) ([]entity.Comment, int64, error)
	isOwner         func(ctx context.Context, userID, commentID uint) (bool, error)
	create          func(ctx context.Context, actorID, newsID uint, text string) (*entity.Comment, error)
	updateByID      func(ctx context.Context, id uint, text string) (*entity.Comment, error)
	deleteByID      func(ctx context.Context, id uint) error
}

func (m *mockCommentUsecase) FindByID(ctx context.Context, id uint) (*entity.Comment, error) {
	return m.findByID(ctx, id)
}

func (m *mockCommentUsecase) FindAllByUserID(ctx context.Context, userID uint, req paging.Request) ([]entity.Comment, int64, error) {
	return m.findAllByUserID(ctx, userID, req)
}

func (m *mockCommentUsecase) FindAllByNewsID(ctx context.Context, newsID uint, req paging.Request) ([]entity.Comment, int64, error) {
	return m.findAllByNewsID(ctx, newsID, req)
}

func (m *mockCommentUsecase) IsOwner(ctx context.Context, userID, commentID uint) (bool, error) {
	return m.isOwner(ctx, userID, commentID)
}

func (m *mockCommentUsecase) Create(ctx context.Context, actorID, newsID uint, text string) (*entity.Comment, error) {
	return m.create(ctx, actorID, newsID, text)
}

func (m *mockCommentUsecase) UpdateByID(ctx context.Context, id uint, text string) (*entity.Comment, error) {
	return m.updateByID(ctx, id, text)
}

func (m *mockCommentUsecase) DeleteByID(ctx context.Context, id uint) error {
	return m.deleteByID(ctx, id)
}

var subscriberPrincipal = auth.Principal{ID: 2, Username: "reader", Role: userentity.RoleSubscriber}

func newCommentRouter(uc CommentUsecase, p *auth.Principal) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewCommentHandler(uc)

	r := gin.New()
	if p != nil {
		principal := *p
		r.Use(func(c *gin.Context) {
			c.Set(auth.ContextPrincipal, principal)
			c.Next()
		})
	}
	r.GET("/api/comments/:id", h.Get)
	r.GET("/api/users/:id/comments", h.ListByUser)
	r.GET("/api/news/:id/comments", h.ListByNews)
	r.POST("/api/news/:id/comments", h.Create)
	r.PUT("/api/comments/:id", h.Update)
	r.DELETE("/api/comments/:id", h.Delete)
	return r
}

func doJSON(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	r.ServeHTTP(w, req)
	return w
}

func TestCommentHandler_Get(t *testing.T) {
	uc := &mockCommentUsecase{
		findByID: func(ctx context.Context, id uint) (*entity.Comment, error) {
			if id != 4 {
				return nil, apperr.NotFoundByID("Comment", id)
			}
			return &entity.Comment{ID: 4, Text: "hello", OwnerID: 2, NewsID: 8}, nil
		},
	}

	w := doJSON(newCommentRouter(uc, nil), http.MethodGet, "/api/comments/4", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"ownerId":2`)

	w = doJSON(newCommentRouter(uc, nil), http.MethodGet, "/api/comments/404", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCommentHandler_Lists(t *testing.T) {
	t.Run("by news", func(t *testing.T) {
		uc := &mockCommentUsecase{
			findAllByNewsID: func(ctx context.Context, newsID uint, req paging.Request) ([]entity.Comment, int64, error) {
				assert.Equal(t, uint(8), newsID)
				return []entity.Comment{{ID: 1, Text: "c", OwnerID: 2, NewsID: 8}}, 1, nil
			},
		}

		w := doJSON(newCommentRouter(uc, nil), http.MethodGet, "/api/news/8/comments", "")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"totalElements":1`)
	})

	t.Run("by missing user is a 404", func(t *testing.T) {
		uc := &mockCommentUsecase{
			findAllByUserID: func(ctx context.Context, userID uint, req paging.Request) ([]entity.Comment, int64, error) {
				return nil, 0, apperr.NotFoundByID("User", userID)
			},
		}

		w := doJSON(newCommentRouter(uc, nil), http.MethodGet, "/api/users/42/comments", "")

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestCommentHandler_Create(t *testing.T) {
	t.Run("attaches the comment to the article in the path", func(t *testing.T) {
		uc := &mockCommentUsecase{
			create: func(ctx context.Context, actorID, newsID uint, text string) (*entity.Comment, error) {
				assert.Equal(t, uint(2), actorID)
				assert.Equal(t, uint(8), newsID)
				return &entity.Comment{ID: 4, Text: text, OwnerID: actorID, NewsID: newsID}, nil
			},
		}

		w := doJSON(newCommentRouter(uc, &subscriberPrincipal), http.MethodPost, "/api/news/8/comments",
			`{"text":"nice read"}`)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), `"id":4`)
	})

	t.Run("commenting a missing article is a 404", func(t *testing.T) {
		uc := &mockCommentUsecase{
			create: func(ctx context.Context, actorID, newsID uint, text string) (*entity.Comment, error) {
				return nil, apperr.NotFoundByID("News", newsID)
			},
		}

		w := doJSON(newCommentRouter(uc, &subscriberPrincipal), http.MethodPost, "/api/news/404/comments",
			`{"text":"into the void"}`)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("empty text is rejected by binding", func(t *testing.T) {
		w := doJSON(newCommentRouter(&mockCommentUsecase{}, &subscriberPrincipal), http.MethodPost, "/api/news/8/comments",
			`{"text":""}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestCommentHandler_Update(t *testing.T) {
	t.Run("the author may edit", func(t *testing.T) {
		uc := &mockCommentUsecase{
			isOwner: func(ctx context.Context, userID, commentID uint) (bool, error) {
				return userID == 2, nil
			},
			updateByID: func(ctx context.Context, id uint, text string) (*entity.Comment, error) {
				return &entity.Comment{ID: id, Text: text, OwnerID: 2, NewsID: 8}, nil
			},
		}

		w := doJSON(newCommentRouter(uc, &subscriberPrincipal), http.MethodPut, "/api/comments/4",
			`{"text":"edited"}`)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"text":"edited"`)
	})

	t.Run("a foreign comment is forbidden", func(t *testing.T) {
		uc := &mockCommentUsecase{
			isOwner: func(ctx context.Context, userID, commentID uint) (bool, error) {
				return false, nil
			},
		}

		w := doJSON(newCommentRouter(uc, &subscriberPrincipal), http.MethodPut, "/api/comments/4",
			`{"text":"edited"}`)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestCommentHandler_Delete(t *testing.T) {
	t.Run("the author may delete", func(t *testing.T) {
		uc := &mockCommentUsecase{
			isOwner: func(ctx context.Context, userID, commentID uint) (bool, error) {
				return true, nil
			},
			deleteByID: func(ctx context.Context, id uint) error {
				assert.Equal(t, uint(4), id)
				return nil
			},
		}

		w := doJSON(newCommentRouter(uc, &subscriberPrincipal), http.MethodDelete, "/api/comments/4", "")

		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("a missing comment is a 404", func(t *testing.T) {
		uc := &mockCommentUsecase{
			isOwner: func(ctx context.Context, userID, commentID uint) (bool, error) {
				return false, apperr.NotFoundByID("Comment", commentID)
			},
		}

		w := doJSON(newCommentRouter(uc, &subscriberPrincipal), http.MethodDelete, "/api/comments/404", "")

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
