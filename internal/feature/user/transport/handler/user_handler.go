// Package handler provides the HTTP handlers of the user feature.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"newsportal/internal/feature/user/domain/entity"
	"newsportal/internal/feature/user/transport/http/dto"
	"newsportal/internal/feature/user/usecase"
	"newsportal/internal/platform/auth"
	"newsportal/internal/platform/httperr"
	"newsportal/internal/platform/paging"
)

// UserUsecase defines the user operations the handlers need. The
// interface is defined by the consumer (handler), not the provider
// (usecase).
type UserUsecase interface {
	FindAllActive(ctx context.Context, req paging.Request) ([]entity.User, int64, error)
	FindByID(ctx context.Context, id uint) (*entity.User, error)
	Create(ctx context.Context, in usecase.CreateInput) (*entity.User, error)
	UpdateByID(ctx context.Context, id uint, in usecase.UpdateInput) (*entity.User, error)
	ChangePassword(ctx context.Context, id uint, oldPassword, newPassword string) (bool, error)
	DeleteByID(ctx context.Context, id uint) error
}

// UserHandler handles HTTP requests for user management.
type UserHandler struct {
	users UserUsecase
}

// NewUserHandler creates a new UserHandler instance.
func NewUserHandler(users UserUsecase) *UserHandler {
	return &UserHandler{users: users}
}

// List handles GET /api/users. Admin only; the route gate enforces the
// role, this handler only shapes the page.
func (h *UserHandler) List(c *gin.Context) {
	req := paging.ParseRequest(c)
	users, total, err := h.users.FindAllActive(c.Request.Context(), req)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, paging.NewResponse(dto.NewUserResponses(users), req, total))
}

// Get handles GET /api/users/:id. Allowed for admins and for the
// account owner.
func (h *UserHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if !h.adminOrSelf(c, id) {
		return
	}

	user, err := h.users.FindByID(c.Request.Context(), id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewUserResponse(*user))
}

// Create handles POST /api/users. Admin only via the route gate. The
// account starts with a random password.
func (h *UserHandler) Create(c *gin.Context) {
	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	user, err := h.users.Create(c.Request.Context(), req.ToInput())
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	slog.Info("user created", "id", user.ID, "username", user.Username)
	c.JSON(http.StatusCreated, dto.NewUserResponse(*user))
}

// Update handles PUT /api/users/:id. Allowed for admins and for the
// account owner; only admins may change the role field, anyone else
// keeps their current one no matter what the body says.
func (h *UserHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if !h.adminOrSelf(c, id) {
		return
	}

	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	in := req.ToInput()
	p, _ := auth.CurrentPrincipal(c)
	if !p.IsAdmin() {
		role := p.Role
		in.Role = &role
	}

	user, err := h.users.UpdateByID(c.Request.Context(), id, in)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewUserResponse(*user))
}

// ChangePassword handles POST /api/users/:id/password. Allowed for
// admins and for the account owner. A wrong old password is a 400, not
// a 404: the resource exists, the input is what is wrong.
func (h *UserHandler) ChangePassword(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if !h.adminOrSelf(c, id) {
		return
	}

	var req dto.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	changed, err := h.users.ChangePassword(c.Request.Context(), id, req.OldPassword, req.NewPassword)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	if !changed {
		c.JSON(http.StatusBadRequest, gin.H{"error": "old password does not match"})
		return
	}
	slog.Info("password changed", "id", id)
	c.Status(http.StatusNoContent)
}

// Delete handles DELETE /api/users/:id. Admin only via the route gate.
// The account is soft-deleted and its news removed.
func (h *UserHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.users.DeleteByID(c.Request.Context(), id); err != nil {
		httperr.Respond(c, err)
		return
	}
	slog.Info("user deleted", "id", id)
	c.Status(http.StatusNoContent)
}

// adminOrSelf aborts with 403 unless the caller is an admin or the
// target account itself. The route group already guarantees a
// principal.
func (h *UserHandler) adminOrSelf(c *gin.Context, id uint) bool {
	p, ok := auth.CurrentPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return false
	}
	if !p.IsAdmin() && p.ID != id {
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
