package app

import (
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/swaggo/swag"

	"github.com/napworks/postboard-api/internal/auth"
	"github.com/napworks/postboard-api/internal/config"
	"github.com/napworks/postboard-api/internal/handlers"
	"github.com/napworks/postboard-api/internal/ratelimit"
	"github.com/napworks/postboard-api/internal/repo"
	"github.com/napworks/postboard-api/internal/service"
)

// Setup registers all routes on the given engine.
func Setup(r *gin.Engine, cfg config.Config, db *pgxpool.Pool, rdb *redis.Client, log *logrus.Logger) {
	r.GET("/health", healthHandler(cfg))
	r.GET("/swagger-doc.json", swaggerDocHandler())
	r.GET("/swagger", func(c *gin.Context) { c.Redirect(302, "/swagger/index.html") })
	r.GET("/swagger/*any", ginSwagger.WrapHandler(
		swaggerFiles.Handler,
		ginSwagger.URL("/swagger-doc.json"),
		ginSwagger.DefaultModelsExpandDepth(-1),
		ginSwagger.PersistAuthorization(true),
	))

	api := r.Group("/api")

	limiter := ratelimit.NewLimiter(rdb, cfg.RateLimit.Window, cfg.RateLimit.Max)
	api.Use(ratelimit.Middleware(limiter, log))

	tokens := auth.NewTokenIssuer(cfg.JWT.Secret, cfg.JWT.TTL)

	userRepo := repo.NewPGUserRepo(db)
	userSvc := service.NewUserService(userRepo, tokens)
	authHandler := handlers.NewAuthHandler(userSvc, log)
	api.POST("/signup", authHandler.Signup)
	api.POST("/login", authHandler.Login)
	// Earlier versions exposed the profile without the token check even though
	// the handler needs the token identity; it is guarded now.
	api.GET("/profile", auth.RequireAuth(tokens), authHandler.Profile)

	postRepo := repo.NewPGPostRepo(db)
	postSvc := service.NewPostService(postRepo)
	postHandler := handlers.NewPostHandler(postSvc, log)
	api.GET("/posts", postHandler.List)
	api.POST("/posts", auth.RequireAuth(tokens), postHandler.Create)
}

func healthHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(200, gin.H{"ok": true, "env": cfg.App.Env, "version": cfg.App.Version})
	}
}

func swaggerDocHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		doc, err := swag.ReadDoc("swagger")
		if err != nil {
			c.JSON(500, gin.H{"error": err.Error()})
			return
		}
		c.Data(200, "application/json; charset=utf-8", []byte(doc))
	}
}
