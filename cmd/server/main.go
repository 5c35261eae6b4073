package main

import (
	"log"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"newsportal/internal/app/router"
	authadapters "newsportal/internal/feature/auth/adapters"
	authhandler "newsportal/internal/feature/auth/transport/handler"
	authusecase "newsportal/internal/feature/auth/usecase"
	commentadapters "newsportal/internal/feature/comment/adapters"
	commenthandler "newsportal/internal/feature/comment/transport/handler"
	commentusecase "newsportal/internal/feature/comment/usecase"
	newsadapters "newsportal/internal/feature/news/adapters"
	newshandler "newsportal/internal/feature/news/transport/handler"
	newsusecase "newsportal/internal/feature/news/usecase"
	useradapters "newsportal/internal/feature/user/adapters"
	userhandler "newsportal/internal/feature/user/transport/handler"
	userusecase "newsportal/internal/feature/user/usecase"
	"newsportal/internal/platform/auth"
	"newsportal/internal/platform/config"
	"newsportal/internal/platform/db"
)

func main() {
	cfg := config.Load()

	if cfg.JWTSecret == "" {
		log.Println("[WARN] JWT_SECRET is not set. Set a strong secret in production.")
	}

	conn := db.Open(cfg)

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})
	defer func() {
		if err := rdb.Close(); err != nil {
			slog.Error("failed to close redis client", "error", err)
		}
	}()

	// Repositories
	userRepo := useradapters.NewUserGorm(conn)
	newsRepo := newsadapters.NewNewsGorm(conn)
	commentRepo := commentadapters.NewCommentGorm(conn)
	sessionRepo := authadapters.NewSessionRedis(rdb, "session")

	// Usecases
	tokens := auth.NewGenerator(cfg.JWTSecret, cfg.AccessTokenTTL)
	authUC := authusecase.NewAuthUsecase(userRepo, tokens, sessionRepo, cfg.RefreshTokenTTL)
	userUC := userusecase.NewUserUsecase(userRepo)
	commentUC := commentusecase.NewCommentUsecase(commentRepo, userRepo, newsRepo)
	newsUC := newsusecase.NewNewsUsecase(newsRepo, userRepo, commentRepo)

	// Handlers
	authH := authhandler.NewAuthHandler(authUC)
	userH := userhandler.NewUserHandler(userUC)
	newsH := newshandler.NewNewsHandler(newsUC)
	commentH := commenthandler.NewCommentHandler(commentUC)

	authenticate := auth.Authenticate(userRepo, cfg.JWTSecret)
	engine := router.NewRouter(authenticate, authH, userH, newsH, commentH)

	if err := engine.Run(cfg.ListenAddr); err != nil {
		log.Fatal(err)
	}
}
