package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newsportal/internal/apperr"
	"newsportal/internal/feature/user/domain/entity"
	"newsportal/internal/feature/user/usecase"
	"newsportal/internal/platform/auth"
	"newsportal/internal/platform/paging"
)

type mockUserUsecase struct {
	findAllActive  func(ctx context.Context, req paging.Request) ([]entity.User, int64, error)
	findByID       func(ctx context.Context, id uint) (*entity.User, error)
	create         func(ctx context.Context, in usecase.CreateInput) (*entity.User, error)
	updateByID     func(ctx context.Context, id uint, in usecase.UpdateInput) (*entity.User, error)
	changePassword func(ctx context.Context, id uint, oldPassword, newPassword string) (bool, error)
	deleteByID     func(ctx context.Context, id uint) error
}

func (m *mockUserUsecase) FindAllActive(ctx context.Context, req paging.Request) ([]entity.User, int64, error) {
	return m.findAllActive(ctx, req)
}

func (m *mockUserUsecase) FindByID(ctx context.Context, id uint) (*entity.User, error) {
	return m.findByID(ctx, id)
}

func (m *mockUserUsecase) Create(ctx context.Context, in usecase.CreateInput) (*entity.User, error) {
	return m.create(ctx, in)
}

func (m *mockUserUsecase) UpdateByID(ctx context.Context, id uint, in usecase.UpdateInput) (*entity.User, error) {
	return m.updateByID(ctx, id, in)
}

func (m *mockUserUsecase) ChangePassword(ctx context.Context, id uint, oldPassword, newPassword string) (bool, error) {
	return m.changePassword(ctx, id, oldPassword, newPassword)
}

func (m *mockUserUsecase) DeleteByID(ctx context.Context, id uint) error {
	return m.deleteByID(ctx, id)
}

// asPrincipal injects an authenticated principal the way the
// authentication middleware would.
func asPrincipal(p auth.Principal) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(auth.ContextPrincipal, p)
		c.Next()
	}
}

var (
	adminPrincipal  = auth.Principal{ID: 1, Username: "admin", Role: entity.RoleAdmin}
	readerPrincipal = auth.Principal{ID: 2, Username: "reader", Role: entity.RoleSubscriber}
)

func newUserRouter(uc UserUsecase, p auth.Principal) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewUserHandler(uc)

	r := gin.New()
	r.Use(asPrincipal(p))
	r.GET("/api/users", h.List)
	r.GET("/api/users/:id", h.Get)
	r.POST("/api/users", h.Create)
	r.PUT("/api/users/:id", h.Update)
	r.POST("/api/users/:id/password", h.ChangePassword)
	r.DELETE("/api/users/:id", h.Delete)
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

func TestUserHandler_List(t *testing.T) {
	uc := &mockUserUsecase{
		findAllActive: func(ctx context.Context, req paging.Request) ([]entity.User, int64, error) {
			assert.Equal(t, paging.Request{Page: 1, Size: 2}, req)
			return []entity.User{{ID: 3, Username: "u3", Role: entity.RoleSubscriber}}, 5, nil
		},
	}
	r := newUserRouter(uc, adminPrincipal)

	w := doJSON(r, http.MethodGet, "/api/users?page=1&size=2", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"totalElements":5`)
	assert.Contains(t, w.Body.String(), `"username":"u3"`)
	assert.NotContains(t, w.Body.String(), "password")
}

func TestUserHandler_Get(t *testing.T) {
	uc := &mockUserUsecase{
		findByID: func(ctx context.Context, id uint) (*entity.User, error) {
			if id != 2 {
				return nil, apperr.NotFoundByID("User", id)
			}
			return &entity.User{ID: 2, Username: "reader", Password: "hash", Role: entity.RoleSubscriber}, nil
		},
	}

	t.Run("own account", func(t *testing.T) {
		w := doJSON(newUserRouter(uc, readerPrincipal), http.MethodGet, "/api/users/2", "")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.NotContains(t, w.Body.String(), "hash")
	})

	t.Run("someone else's account is forbidden for non-admins", func(t *testing.T) {
		w := doJSON(newUserRouter(uc, readerPrincipal), http.MethodGet, "/api/users/1", "")

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("admins may read any account", func(t *testing.T) {
		w := doJSON(newUserRouter(uc, adminPrincipal), http.MethodGet, "/api/users/2", "")

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("missing account", func(t *testing.T) {
		w := doJSON(newUserRouter(uc, adminPrincipal), http.MethodGet, "/api/users/404", "")

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("garbage id", func(t *testing.T) {
		w := doJSON(newUserRouter(uc, adminPrincipal), http.MethodGet, "/api/users/abc", "")

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestUserHandler_Create(t *testing.T) {
	t.Run("creates and returns 201", func(t *testing.T) {
		uc := &mockUserUsecase{
			create: func(ctx context.Context, in usecase.CreateInput) (*entity.User, error) {
				assert.Equal(t, entity.RoleJournalist, in.Role)
				return &entity.User{ID: 7, Username: in.Username, Role: in.Role}, nil
			},
		}

		w := doJSON(newUserRouter(uc, adminPrincipal), http.MethodPost, "/api/users",
			`{"username":"jwriter","role":"JOURNALIST"}`)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), `"id":7`)
	})

	t.Run("unknown role is rejected by binding", func(t *testing.T) {
		w := doJSON(newUserRouter(&mockUserUsecase{}, adminPrincipal), http.MethodPost, "/api/users",
			`{"username":"x","role":"OVERLORD"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("duplicate username maps to 400", func(t *testing.T) {
		uc := &mockUserUsecase{
			create: func(ctx context.Context, in usecase.CreateInput) (*entity.User, error) {
				return nil, &apperr.UniqueViolationError{Field: "username", Value: in.Username}
			},
		}

		w := doJSON(newUserRouter(uc, adminPrincipal), http.MethodPost, "/api/users",
			`{"username":"taken","role":"SUBSCRIBER"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "taken")
	})
}

func TestUserHandler_Update(t *testing.T) {
	t.Run("non-admins cannot escalate their role", func(t *testing.T) {
		var got usecase.UpdateInput
		uc := &mockUserUsecase{
			updateByID: func(ctx context.Context, id uint, in usecase.UpdateInput) (*entity.User, error) {
				got = in
				return &entity.User{ID: id, Username: in.Username, Role: *in.Role}, nil
			},
		}

		w := doJSON(newUserRouter(uc, readerPrincipal), http.MethodPut, "/api/users/2",
			`{"username":"reader","role":"ADMIN"}`)

		assert.Equal(t, http.StatusOK, w.Code)
		require.NotNil(t, got.Role)
		assert.Equal(t, entity.RoleSubscriber, *got.Role, "requested role is overridden with the caller's own")
	})

	t.Run("admins may change roles", func(t *testing.T) {
		uc := &mockUserUsecase{
			updateByID: func(ctx context.Context, id uint, in usecase.UpdateInput) (*entity.User, error) {
				require.NotNil(t, in.Role)
				assert.Equal(t, entity.RoleJournalist, *in.Role)
				return &entity.User{ID: id, Username: in.Username, Role: *in.Role}, nil
			},
		}

		w := doJSON(newUserRouter(uc, adminPrincipal), http.MethodPut, "/api/users/2",
			`{"username":"reader","role":"JOURNALIST"}`)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("editing someone else is forbidden for non-admins", func(t *testing.T) {
		w := doJSON(newUserRouter(&mockUserUsecase{}, readerPrincipal), http.MethodPut, "/api/users/1",
			`{"username":"admin"}`)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("username is required", func(t *testing.T) {
		w := doJSON(newUserRouter(&mockUserUsecase{}, readerPrincipal), http.MethodPut, "/api/users/2", `{}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestUserHandler_ChangePassword(t *testing.T) {
	t.Run("success is a 204", func(t *testing.T) {
		uc := &mockUserUsecase{
			changePassword: func(ctx context.Context, id uint, oldPassword, newPassword string) (bool, error) {
				assert.Equal(t, uint(2), id)
				assert.Equal(t, "1111", oldPassword)
				return true, nil
			},
		}

		w := doJSON(newUserRouter(uc, readerPrincipal), http.MethodPost, "/api/users/2/password",
			`{"oldPassword":"1111","newPassword":"9999"}`)

		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("wrong old password is a 400", func(t *testing.T) {
		uc := &mockUserUsecase{
			changePassword: func(ctx context.Context, id uint, oldPassword, newPassword string) (bool, error) {
				return false, nil
			},
		}

		w := doJSON(newUserRouter(uc, readerPrincipal), http.MethodPost, "/api/users/2/password",
			`{"oldPassword":"wrong","newPassword":"9999"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "old password")
	})

	t.Run("someone else's password is forbidden for non-admins", func(t *testing.T) {
		w := doJSON(newUserRouter(&mockUserUsecase{}, readerPrincipal), http.MethodPost, "/api/users/1/password",
			`{"oldPassword":"1111","newPassword":"9999"}`)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestUserHandler_Delete(t *testing.T) {
	t.Run("success is a 204", func(t *testing.T) {
		uc := &mockUserUsecase{
			deleteByID: func(ctx context.Context, id uint) error {
				assert.Equal(t, uint(2), id)
				return nil
			},
		}

		w := doJSON(newUserRouter(uc, adminPrincipal), http.MethodDelete, "/api/users/2", "")

		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("deleting twice reports 404", func(t *testing.T) {
		uc := &mockUserUsecase{
			deleteByID: func(ctx context.Context, id uint) error {
				return apperr.NotFoundByID("User", id)
			},
		}

		w := doJSON(newUserRouter(uc, adminPrincipal), http.MethodDelete, "/api/users/2", "")

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
