package app

import (
	"context"
	"errors"
	"net/http"

	"github.com/JulianPasquale/fudo-rack/internal/auth"
	"github.com/JulianPasquale/fudo-rack/internal/cache"
	"github.com/JulianPasquale/fudo-rack/internal/config"
	dom "github.com/JulianPasquale/fudo-rack/internal/domain"
	"github.com/JulianPasquale/fudo-rack/internal/handlers"
	"github.com/JulianPasquale/fudo-rack/internal/repo"
	"github.com/JulianPasquale/fudo-rack/internal/service"
	"github.com/JulianPasquale/fudo-rack/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/swaggo/swag"
	"golang.org/x/crypto/bcrypt"
)

// Setup registers all routes on the given engine. db and rdb may be nil, in
// which case users live in memory and the listing cache is off.
func Setup(r *gin.Engine, cfg config.Config, db *pgxpool.Pool, rdb *redis.Client, st *store.ProductStore, fin *store.Finalizer) error {
	r.GET("/", rootHandler(cfg))
	r.GET("/health", healthHandler(cfg))
	r.GET("/version", versionHandler(cfg))
	r.GET("/swagger-doc.json", swaggerDocHandler())
	r.GET("/swagger", func(c *gin.Context) { c.Redirect(302, "/swagger/index.html") })
	r.GET("/swagger/*any", ginSwagger.WrapHandler(
		swaggerFiles.Handler,
		ginSwagger.URL("/swagger-doc.json"),
		ginSwagger.DefaultModelsExpandDepth(-1),
		ginSwagger.PersistAuthorization(true),
	))

	r.HandleMethodNotAllowed = true
	r.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "Method not allowed"})
	})
	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not Found"})
	})

	api := r.Group("/api/v1")

	var userRepo repo.UserRepo
	if db != nil {
		userRepo = repo.NewPGUserRepo(db)
	} else {
		userRepo = repo.NewMemoryUserRepo()
	}
	if err := seedAdmin(userRepo, cfg.Auth); err != nil {
		return err
	}

	strategy := auth.NewJWTStrategy([]byte(cfg.Auth.JWTSecret), cfg.Auth.TokenTTL.Duration())
	authSvc := auth.NewService(userRepo, strategy)
	authHandler := handlers.NewAuthHandler(authSvc)
	registerAuthRoutes(api, authHandler)

	if db != nil {
		archive := repo.NewPGProductArchive(db)
		st.OnFinalize(func(p dom.Product) {
			if err := archive.Insert(context.Background(), p); err != nil {
				log.Warn().Err(err).Str("id", p.ID).Msg("product archive insert failed")
			}
		})
	}

	var listCache service.ListingCache
	if rdb != nil {
		listCache = cache.NewProductCache(rdb, cfg.Redis.DefaultTTL.Duration())
	}

	protected := api.Group("", auth.RequireToken(authSvc))
	productSvc := service.NewProductService(st, fin, listCache)
	productHandler := handlers.NewProductHandler(productSvc, cfg.Product.FinalizeDelay.Duration())
	registerProductRoutes(protected, productHandler)

	userHandler := handlers.NewUserHandler()
	protected.GET("/users/profile", userHandler.Profile)

	return nil
}

func seedAdmin(users repo.UserRepo, cfg config.AuthConfig) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	_, err = users.Create(context.Background(), cfg.AdminUsername, string(hash))
	if errors.Is(err, repo.ErrUsernameTaken) {
		return nil // already seeded on a previous run
	}
	return err
}

func rootHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(200, gin.H{
			"service": "Product API",
			"version": cfg.App.Version,
			"env":     cfg.App.Env,
			"docs":    "/swagger/index.html",
			"spec":    "/swagger-doc.json",
			"health":  "/health",
			"api":     "/api/v1",
		})
	}
}

func healthHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(200, gin.H{"ok": true, "env": cfg.App.Env})
	}
}

func versionHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(200, gin.H{"version": cfg.App.Version})
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

func registerProductRoutes(api *gin.RouterGroup, h *handlers.ProductHandler) {
	api.POST("/products", h.Create)
	api.GET("/products", h.List)
	api.GET("/products/status", h.Status)
}

func registerAuthRoutes(api *gin.RouterGroup, h *handlers.AuthHandler) {
	api.POST("/auth/login", h.Login)
}
