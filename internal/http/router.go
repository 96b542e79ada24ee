package http

import (
	"database/sql"
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/paguielng/shopisapp/internal/auth"
	"github.com/paguielng/shopisapp/internal/config"
	"github.com/paguielng/shopisapp/internal/http/handlers"
	"github.com/paguielng/shopisapp/internal/http/middlewares"
	"github.com/paguielng/shopisapp/internal/observability"
	"github.com/paguielng/shopisapp/internal/repo/sqlite"
)

const maxBodyBytes = 1 << 20 // 1 MiB

func NewRouter(log *slog.Logger, dbConn *sql.DB, cfg config.Config, metrics *observability.Prom, registry *prometheus.Registry) *gin.Engine {
	if cfg.Env != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	r.Use(gin.Recovery())
	r.Use(otelgin.Middleware("shopisapp"))
	r.Use(middlewares.RequestID())
	r.Use(middlewares.RequestLogger(log))
	r.Use(metrics.GinHandleMiddleware())
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddleware(cfg.CORSOrigins))
	r.Use(middlewares.MaxBodyBytes(maxBodyBytes))
	r.Use(middlewares.RequireJSON())

	ping := func() error {
		if dbConn == nil {
			return nil
		}
		return dbConn.Ping()
	}

	// wire up repositories
	usersRepo := sqlite.NewUsersRepo(dbConn, metrics)
	listsRepo := sqlite.NewListsRepo(dbConn, metrics)
	itemsRepo := sqlite.NewItemsRepo(dbConn, metrics)
	categoriesRepo := sqlite.NewCategoriesRepo(dbConn, metrics)

	jwtManager := auth.NewManager(cfg.JWTSecret, cfg.TokenTTL)
	authMW := middlewares.NewAuthMiddleware(jwtManager)

	// handlers
	healthHandler := handlers.NewHealthHandler(ping)
	authHandler := handlers.NewAuthHandler(usersRepo, usersRepo, jwtManager)
	listsHandler := handlers.NewListsHandler(listsRepo, itemsRepo)
	itemsHandler := handlers.NewItemsHandler(listsRepo, itemsRepo)
	categoriesHandler := handlers.NewCategoriesHandler(categoriesRepo)
	profileHandler := handlers.NewProfileHandler(usersRepo)

	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	api := r.Group("/api")
	api.GET("/health", healthHandler.Health)

	// credential endpoints get a per-IP limiter against stuffing
	authLimiter := middlewares.NewRateLimiter(cfg.RateLimit, cfg.RateWindow)
	authRoutes := api.Group("/auth", authLimiter.RateLimiterMiddleware(middlewares.KeyByIP))
	authRoutes.POST("/register", authHandler.Register)
	authRoutes.POST("/login", authHandler.Login)

	protected := api.Group("", authMW.RequireAuth())

	protected.GET("/lists", listsHandler.ListLists)
	protected.POST("/lists", listsHandler.CreateList)
	protected.GET("/lists/:id", listsHandler.GetList)
	protected.PUT("/lists/:id", listsHandler.UpdateList)
	protected.DELETE("/lists/:id", listsHandler.DeleteList)

	protected.POST("/lists/:id/items", itemsHandler.AddItem)
	protected.PUT("/items/:id", itemsHandler.UpdateItem)
	protected.DELETE("/items/:id", itemsHandler.DeleteItem)

	protected.GET("/categories", categoriesHandler.ListCategories)
	protected.POST("/categories", categoriesHandler.CreateCategory)
	protected.PUT("/categories/:id", categoriesHandler.UpdateCategory)
	protected.DELETE("/categories/:id", categoriesHandler.DeleteCategory)

	protected.GET("/user/profile", profileHandler.GetProfile)

	return r
}
