package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/d60-Lab/blog-platform/config"
	"github.com/d60-Lab/blog-platform/internal/api"
	"github.com/d60-Lab/blog-platform/internal/api/handler"
	"github.com/d60-Lab/blog-platform/internal/cache"
	"github.com/d60-Lab/blog-platform/internal/model"
	"github.com/d60-Lab/blog-platform/internal/repository"
	"github.com/d60-Lab/blog-platform/internal/service"
	"github.com/d60-Lab/blog-platform/pkg/database"
	"github.com/d60-Lab/blog-platform/pkg/logger"
	"github.com/d60-Lab/blog-platform/pkg/tracing"
)

// @title Blog Platform API
// @version 1.0
// @description Posts, tags, comments and reactions for the blog platform.
// @BasePath /api/v1
func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	if err := logger.Init(cfg.Log.Level); err != nil {
		panic(err)
	}
	defer logger.Sync()

	if cfg.Sentry.DSN != "" {
		if err := sentry.Init(sentry.ClientOptions{Dsn: cfg.Sentry.DSN}); err != nil {
			logger.Fatal("sentry init failed", zap.Error(err))
		}
		defer sentry.Flush(2 * time.Second)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := tracing.Init(ctx, cfg)
	if err != nil {
		logger.Fatal("tracing init failed", zap.Error(err))
	}
	defer shutdownTracing(context.Background())

	db, err := database.InitDB(cfg)
	if err != nil {
		logger.Fatal("database init failed", zap.Error(err))
	}
	defer database.Close(db)

	if err := db.AutoMigrate(
		&model.User{},
		&model.Tag{},
		&model.Post{},
		&model.Comment{},
		&model.Like{},
		&model.Favorite{},
	); err != nil {
		logger.Fatal("migrate failed", zap.Error(err))
	}

	redisClient := cache.NewRedisClient(cfg)
	defer redisClient.Close()

	postRepo := repository.NewPostRepository(db)
	tagRepo := repository.NewTagRepository(db)
	userRepo := repository.NewUserRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	likeRepo := repository.NewLikeRepository(db)
	favoriteRepo := repository.NewFavoriteRepository(db)

	if err := tagRepo.EnsurePreset(ctx, model.PresetTagNames); err != nil {
		logger.Warn("preset tag seed failed", zap.Error(err))
	}

	views := service.NewViewCounter(postRepo, 0, time.Duration(cfg.Scheduler.ViewFlushSec)*time.Second)
	stopViews := views.Start()
	publisher := service.NewScheduledPublisher(db, time.Duration(cfg.Scheduler.PublishIntervalSec)*time.Second)
	stopPublisher := publisher.Start()

	posts := service.NewPostService(db, postRepo, tagRepo, userRepo, likeRepo, commentRepo, redisClient, views)
	tags := service.NewTagService(tagRepo)
	comments := service.NewCommentService(commentRepo, postRepo)
	reactions := service.NewReactionService(db, postRepo, likeRepo, favoriteRepo)
	users := service.NewUserService(userRepo)

	h := handler.New(posts, tags, comments, reactions, users)
	router := api.NewRouter(cfg, h, userRepo)

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	go func() {
		logger.Info("server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http shutdown", zap.Error(err))
	}
	if err := stopPublisher(shutdownCtx); err != nil {
		logger.Error("publisher shutdown", zap.Error(err))
	}
	if err := stopViews(shutdownCtx); err != nil {
		logger.Error("view counter shutdown", zap.Error(err))
	}
	logger.Info("bye")
}
