package http

import (
	"github.com/readtrack/readtrack/internal/auth"
	"github.com/readtrack/readtrack/internal/books"
	"github.com/readtrack/readtrack/internal/config"
	"github.com/readtrack/readtrack/internal/database"
)

// RouterConfig carries all dependencies needed to build the router.
type RouterConfig struct {
	Database       *database.Database
	AuthService    *auth.Service
	SessionManager *auth.SessionManager
	AuthMiddleware *auth.Middleware
	BooksService   *books.Service

	AuthConfig    config.Auth
	CSRFSecret    []byte
	SecureCookies bool

	TemplatesPath string
	StaticPath    string
	Version       string
}
