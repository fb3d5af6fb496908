package auth

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/readtrack/readtrack/internal/config"
	"github.com/readtrack/readtrack/internal/forms"
)

// isLocalPath validates that a redirect path is local to prevent open
// redirect attacks.
func isLocalPath(path string) bool {
	if path == "" {
		return false
	}
	if !strings.HasPrefix(path, "/") {
		return false
	}
	// Protocol-relative URLs (//evil.com)
	if strings.HasPrefix(path, "//") {
		return false
	}
	if strings.Contains(path, "://") {
		return false
	}
	if strings.Contains(path, "\\") {
		return false
	}
	return true
}

// sanitizeRedirectPath returns a safe redirect path, defaulting to the
// dashboard if invalid.
func sanitizeRedirectPath(path string) string {
	if isLocalPath(path) {
		return path
	}
	return "/dashboard"
}

// AuthController handles registration, login, and logout endpoints.
type AuthController struct {
	service        *Service
	sessionManager *SessionManager
	rateLimiter    *RateLimiter
}

// NewAuthController creates a new authentication controller.
func NewAuthController(service *Service, sessionManager *SessionManager, cfg config.Auth) *AuthController {
	rateLimiter := NewRateLimiter(RateLimitConfig{
		MaxAttempts:     cfg.MaxLoginAttempts,
		WindowDuration:  cfg.RateLimitWindow,
		LockoutDuration: cfg.LockoutDuration,
	})

	return &AuthController{
		service:        service,
		sessionManager: sessionManager,
		rateLimiter:    rateLimiter,
	}
}

// RegisterRoutes registers authentication routes on the router.
func (ac *AuthController) RegisterRoutes(router *gin.Engine) {
	router.GET("/register", ac.RegisterPage)
	router.POST("/register", ac.Register)
	router.GET("/login", ac.LoginPage)
	router.POST("/login", ac.Login)
	router.GET("/logout", ac.Logout)
	router.POST("/logout", ac.Logout)
}

// Stop cleans up resources (rate limiter background goroutine).
func (ac *AuthController) Stop() {
	if ac.rateLimiter != nil {
		ac.rateLimiter.Stop()
	}
}

// RegisterPage renders the registration form.
func (ac *AuthController) RegisterPage(c *gin.Context) {
	if ac.sessionManager.IsAuthenticated(c.Request) {
		c.Redirect(http.StatusFound, "/dashboard")
		return
	}

	c.HTML(http.StatusOK, "register.html", gin.H{
		"Title":     "Register",
		"Username":  "",
		"Errors":    forms.Errors{},
		"CSRFToken": GetCSRFToken(c),
		"Flashes":   ac.sessionManager.PopFlashes(c.Request),
	})
}

// Register handles the registration form submission.
func (ac *AuthController) Register(c *gin.Context) {
	form, errs := forms.ParseRegisterForm(c)
	if errs.Any() {
		c.HTML(http.StatusOK, "register.html", gin.H{
			"Title":     "Register",
			"Username":  form.Username,
			"Errors":    errs,
			"CSRFToken": GetCSRFToken(c),
			"Flashes":   ac.sessionManager.PopFlashes(c.Request),
		})
		return
	}

	_, err := ac.service.Register(form.Username, form.Password)
	if err != nil {
		errorMsg := "Failed to create account."
		switch {
		case errors.Is(err, ErrUserExists):
			errorMsg = "Username is already taken."
		case errors.Is(err, ErrPasswordTooLong):
			errorMsg = "Password exceeds maximum length of 72 characters."
		}

		c.HTML(http.StatusOK, "register.html", gin.H{
			"Title":     "Register",
			"Username":  form.Username,
			"Error":     errorMsg,
			"Errors":    forms.Errors{},
			"CSRFToken": GetCSRFToken(c),
			"Flashes":   ac.sessionManager.PopFlashes(c.Request),
		})
		return
	}

	ac.sessionManager.AddFlash(c.Request, "success", "Registered successfully!")
	c.Redirect(http.StatusFound, "/login")
}

// LoginPage renders the login form.
func (ac *AuthController) LoginPage(c *gin.Context) {
	if ac.sessionManager.IsAuthenticated(c.Request) {
		c.Redirect(http.StatusFound, "/dashboard")
		return
	}

	next := sanitizeRedirectPath(c.Query("next"))

	// Point a fresh install at registration
	firstRun := false
	if hasUsers, err := ac.service.HasUsers(); err == nil && !hasUsers {
		firstRun = true
	}

	c.HTML(http.StatusOK, "login.html", gin.H{
		"Title":     "Login",
		"Next":      next,
		"Username":  "",
		"FirstRun":  firstRun,
		"Errors":    forms.Errors{},
		"CSRFToken": GetCSRFToken(c),
		"Flashes":   ac.sessionManager.PopFlashes(c.Request),
	})
}

// Login handles the login form submission.
func (ac *AuthController) Login(c *gin.Context) {
	form, errs := forms.ParseLoginForm(c)
	next := sanitizeRedirectPath(c.PostForm("next"))
	clientIP := c.ClientIP()

	if errs.Any() {
		c.HTML(http.StatusOK, "login.html", gin.H{
			"Title":     "Login",
			"Next":      next,
			"Username":  form.Username,
			"Errors":    errs,
			"CSRFToken": GetCSRFToken(c),
			"Flashes":   ac.sessionManager.PopFlashes(c.Request),
		})
		return
	}

	if allowed, retryAfter := ac.rateLimiter.Allow(clientIP, form.Username); !allowed {
		c.Header("Retry-After", retryAfter.String())
		c.HTML(http.StatusTooManyRequests, "login.html", gin.H{
			"Title":     "Login",
			"Next":      next,
			"Username":  form.Username,
			"Error":     "Too many login attempts. Please try again later.",
			"Errors":    forms.Errors{},
			"CSRFToken": GetCSRFToken(c),
			"Flashes":   ac.sessionManager.PopFlashes(c.Request),
		})
		return
	}

	user, err := ac.service.Authenticate(form.Username, form.Password)
	if err != nil {
		ac.rateLimiter.RecordFailure(clientIP, form.Username)

		c.HTML(http.StatusOK, "login.html", gin.H{
			"Title":     "Login",
			"Next":      next,
			"Username":  form.Username,
			"Error":     "Login failed.",
			"Errors":    forms.Errors{},
			"CSRFToken": GetCSRFToken(c),
			"Flashes":   ac.sessionManager.PopFlashes(c.Request),
		})
		return
	}

	ac.rateLimiter.RecordSuccess(clientIP, form.Username)

	if err := ac.sessionManager.CreateSession(c.Request, user); err != nil {
		c.HTML(http.StatusInternalServerError, "login.html", gin.H{
			"Title":     "Login",
			"Next":      next,
			"Username":  form.Username,
			"Error":     "Failed to create session.",
			"Errors":    forms.Errors{},
			"CSRFToken": GetCSRFToken(c),
			"Flashes":   []Flash{},
		})
		return
	}

	ac.sessionManager.AddFlash(c.Request, "success", "Login successful!")
	c.Redirect(http.StatusFound, next)
}

// Logout destroys the session and redirects to login.
func (ac *AuthController) Logout(c *gin.Context) {
	if !ac.sessionManager.IsAuthenticated(c.Request) {
		c.Redirect(http.StatusFound, "/login")
		return
	}

	_ = ac.sessionManager.DestroySession(c.Request)
	ac.sessionManager.AddFlash(c.Request, "info", "You've been logged out.")
	c.Redirect(http.StatusFound, "/login")
}
