// Package router builds the gin engine and wires the middleware
// pipeline in its fixed order: CORS, authentication, per-route
// authorization gates, then the handlers.
package router

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	authhandler "newsportal/internal/feature/auth/transport/handler"
	commenthandler "newsportal/internal/feature/comment/transport/handler"
	newshandler "newsportal/internal/feature/news/transport/handler"
	userentity "newsportal/internal/feature/user/domain/entity"
	userhandler "newsportal/internal/feature/user/transport/handler"
	"newsportal/internal/platform/auth"
)

// NewRouter assembles the route table. authenticate resolves Basic or
// Bearer credentials into a principal for every request; the role gates
// below decide who gets past each route.
func NewRouter(authenticate gin.HandlerFunc, authH *authhandler.AuthHandler,
	userH *userhandler.UserHandler, newsH *newshandler.NewsHandler,
	commentH *commenthandler.CommentHandler) *gin.Engine {
	r := gin.Default()
	r.Use(cors.Default())
	r.Use(authenticate)

	api := r.Group("/api")

	adminOnly := auth.RequireRoles(userentity.RoleAdmin)
	newsWriters := auth.RequireRoles(userentity.RoleAdmin, userentity.RoleJournalist)
	commenters := auth.RequireRoles(userentity.RoleAdmin, userentity.RoleSubscriber)

	// Token login for clients that prefer it over Basic credentials.
	api.POST("/login", authH.Login)
	api.POST("/refresh", authH.Refresh)
	api.POST("/logout", authH.Logout)

	// Guest-readable news and comments.
	api.GET("/news", newsH.List)
	api.GET("/news/:id", newsH.Get)
	api.GET("/news/:id/comments", commentH.ListByNews)
	api.GET("/comments/:id", commentH.Get)
	api.GET("/users/:id/news", newsH.ListByUser)
	api.GET("/users/:id/comments", commentH.ListByUser)

	// News mutations: admins, or journalists editing their own work
	// (ownership is checked in the handler).
	api.POST("/news", newsWriters, newsH.Create)
	api.PUT("/news/:id", newsWriters, newsH.Update)
	api.DELETE("/news/:id", newsWriters, newsH.Delete)

	// Comment mutations: admins, or subscribers on their own comments.
	api.POST("/news/:id/comments", commenters, commentH.Create)
	api.PUT("/comments/:id", commenters, commentH.Update)
	api.DELETE("/comments/:id", commenters, commentH.Delete)

	// User management: admin operations plus self-service reads,
	// updates and password changes (self checks in the handler).
	api.GET("/users", adminOnly, userH.List)
	api.POST("/users", adminOnly, userH.Create)
	api.DELETE("/users/:id", adminOnly, userH.Delete)
	api.GET("/users/:id", auth.RequireAuth(), userH.Get)
	api.PUT("/users/:id", auth.RequireAuth(), userH.Update)
	api.POST("/users/:id/password", auth.RequireAuth(), userH.ChangePassword)

	return r
}
