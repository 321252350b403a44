package api

import (
	"strings"

	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/d60-Lab/blog-platform/config"
	_ "github.com/d60-Lab/blog-platform/docs"
	"github.com/d60-Lab/blog-platform/internal/api/handler"
	"github.com/d60-Lab/blog-platform/internal/api/middleware"
	"github.com/d60-Lab/blog-platform/internal/model"
	"github.com/d60-Lab/blog-platform/internal/repository"
)

// NewRouter assembles the middleware stack and the /api/v1 routes.
func NewRouter(cfg *config.Config, h *handler.Handler, users repository.UserRepository) *gin.Engine {
	gin.SetMode(cfg.Server.Mode)
	registerValidations()

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(sentrygin.New(sentrygin.Options{Repanic: true}))
	r.Use(otelgin.Middleware("blog-platform"))
	r.Use(gzip.Gzip(gzip.DefaultCompression))
	r.Use(middleware.RateLimit(cfg.Server.RateLimitPerSec, cfg.Server.RateLimitBurst))

	r.GET("/healthz", func(c *gin.Context) { c.JSON(200, gin.H{"status": "ok"}) })
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	authRequired := middleware.Auth(cfg.Auth.JWTSecret, users, true)
	authOptional := middleware.Auth(cfg.Auth.JWTSecret, users, false)

	v1 := r.Group("/api/v1")
	{
		// scope=public works anonymously, everything else needs a token
		v1.GET("/posts", authOptional, h.ListPosts)
		v1.GET("/posts/:id", authOptional, h.GetPost)
		v1.POST("/posts", authRequired, h.CreatePost)
		v1.PUT("/posts", authRequired, h.UpdatePost)
		v1.DELETE("/posts", authRequired, h.DeletePost)

		v1.POST("/posts/:id/like", authRequired, h.ToggleLike)
		v1.POST("/posts/:id/favorite", authRequired, h.ToggleFavorite)

		v1.GET("/tags", h.ListTags)
		v1.POST("/tags", authRequired, h.CreateTag)

		v1.GET("/comments", h.ListComments)
		v1.POST("/comments", authRequired, h.CreateComment)

		v1.GET("/users/authors", authRequired, h.ListAuthors)
	}

	return r
}

// registerValidations adds the poststatus rule used by list filters.
func registerValidations() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("poststatus", func(fl validator.FieldLevel) bool {
			return model.IsValidStatus(strings.ToLower(fl.Field().String()))
		})
	}
}
