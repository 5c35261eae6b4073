// Package auth provides request authentication and the authorization
// gates applied in front of the feature handlers.
package auth

import (
	"github.com/gin-gonic/gin"

	"newsportal/internal/feature/user/domain/entity"
)

// ContextPrincipal is the gin context key under which the authenticated
// principal is stored.
const ContextPrincipal = "principal"

// Principal identifies the authenticated caller for the rest of the
// request pipeline. Audit fields are stamped from it, never from the
// request body.
type Principal struct {
	ID       uint
	Username string
	Role     entity.Role
}

// IsAdmin reports whether the principal carries the ADMIN role.
func (p Principal) IsAdmin() bool {
	return p.Role == entity.RoleAdmin
}

// CurrentPrincipal returns the principal resolved by the Authenticate
// middleware, or ok=false for an anonymous request.
func CurrentPrincipal(c *gin.Context) (Principal, bool) {
	v, exists := c.Get(ContextPrincipal)
	if !exists {
		return Principal{}, false
	}
	p, ok := v.(Principal)
	return p, ok
}
