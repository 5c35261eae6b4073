package auth

import (
	"context"
	"encoding/base64"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"newsportal/internal/feature/user/domain/entity"
)

// dummyHash keeps bcrypt comparison time constant when the username
// does not resolve to an active user.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// CredentialStore resolves credentials to user accounts. The interface
// is defined here, by the consumer, and implemented by the user feature
// adapters.
type CredentialStore interface {
	// FindActiveByUsername retrieves a non-deleted user by username.
	FindActiveByUsername(ctx context.Context, username string) (*entity.User, error)

	// FindActiveByID retrieves a non-deleted user by id.
	FindActiveByID(ctx context.Context, id uint) (*entity.User, error)
}

// Authenticate resolves the request's credentials into a Principal and
// stores it in the gin context. Both HTTP Basic and a Bearer JWT issued
// by the login endpoint are accepted. Requests without credentials pass
// through anonymously; the RequireAuth and RequireRoles gates decide
// whether that is acceptable per route.
func Authenticate(users CredentialStore, jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		switch {
		case strings.HasPrefix(header, "Basic "):
			authenticateBasic(c, users, strings.TrimPrefix(header, "Basic "))
		case strings.HasPrefix(header, "Bearer "):
			authenticateBearer(c, users, jwtSecret, strings.TrimPrefix(header, "Bearer "))
		}
		if c.IsAborted() {
			return
		}
		c.Next()
	}
}

func authenticateBasic(c *gin.Context, users CredentialStore, encoded string) {
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		unauthorized(c)
		return
	}
	username, password, ok := strings.Cut(string(raw), ":")
	if !ok {
		unauthorized(c)
		return
	}

	user, err := users.FindActiveByUsername(c.Request.Context(), username)

	// Always run the bcrypt comparison so response timing does not
	// reveal whether the username exists.
	hash := dummyHash
	if err == nil {
		hash = user.Password
	}
	compareErr := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))

	if err != nil || compareErr != nil {
		slog.Warn("basic authentication failed", "username", username, "remote_addr", c.ClientIP())
		unauthorized(c)
		return
	}
	setPrincipal(c, user)
}

func authenticateBearer(c *gin.Context, users CredentialStore, secret, tokenStr string) {
	if secret == "" {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "server misconfigured"})
		return
	}

	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		// Only HMAC is ever issued; reject anything else.
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		unauthorized(c)
		return
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		unauthorized(c)
		return
	}
	sub, ok := claims["sub"].(float64) // JWT numbers are decoded as float64
	if !ok {
		unauthorized(c)
		return
	}

	// The account may have been deleted or re-rolled since the token
	// was issued, so the principal is always rebuilt from the store.
	user, err := users.FindActiveByID(c.Request.Context(), uint(sub))
	if err != nil {
		unauthorized(c)
		return
	}
	setPrincipal(c, user)
}

func setPrincipal(c *gin.Context, user *entity.User) {
	c.Set(ContextPrincipal, Principal{
		ID:       user.ID,
		Username: user.Username,
		Role:     user.Role,
	})
}

func unauthorized(c *gin.Context) {
	c.Header("WWW-Authenticate", `Basic realm="newsportal"`)
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
}

// RequireAuth aborts with 401 unless the request carries a resolved
// principal.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := CurrentPrincipal(c); !ok {
			unauthorized(c)
			return
		}
		c.Next()
	}
}

// RequireRoles aborts with 401 for anonymous callers and 403 for
// authenticated callers whose role is not in the allowed set.
func RequireRoles(roles ...entity.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := CurrentPrincipal(c)
		if !ok {
			unauthorized(c)
			return
		}
		for _, role := range roles {
			if p.Role == role {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "permission denied"})
	}
}
