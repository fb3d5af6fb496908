package http

import (
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/readtrack/readtrack/internal/auth"
)

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	router.Use(auth.SecurityHeadersMiddleware())

	// CSRF must run before session so that the session context built by
	// SessionLoadSave is layered on top of CSRF's request replacement
	if len(cfg.CSRFSecret) > 0 {
		router.Use(auth.CSRFMiddleware(cfg.CSRFSecret, cfg.SecureCookies, cfg.AuthConfig.CSRFTrustedOrigins))
	}

	router.Use(cfg.SessionManager.SessionLoadSave())

	funcMap := template.FuncMap{
		"csrfField": auth.CSRFTokenField,
	}

	tmpl := template.Must(template.New("").Funcs(funcMap).ParseGlob(cfg.TemplatesPath + "/*.html"))
	router.SetHTMLTemplate(tmpl)

	router.Static("/static", cfg.StaticPath)

	// Public routes
	authController := auth.NewAuthController(cfg.AuthService, cfg.SessionManager, cfg.AuthConfig)
	authController.RegisterRoutes(router)

	health := NewHealthController(cfg.Database, cfg.Version)
	router.GET("/health", health.Status)
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	router.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusFound, "/dashboard")
	})

	// Protected routes
	dashboard := NewDashboardController(cfg.BooksService, cfg.SessionManager)

	protected := router.Group("/", cfg.AuthMiddleware.RequireUser())
	protected.GET("/dashboard", dashboard.Dashboard)
	protected.POST("/dashboard", dashboard.CreateBook)
	protected.GET("/edit/:id", dashboard.EditBookPage)
	protected.POST("/edit/:id", dashboard.UpdateBook)

	return router
}
