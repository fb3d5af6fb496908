package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/readtrack/readtrack/internal/entities"
)

// Context keys for the resolved user
const (
	ContextKeyUserID = "auth_user_id"
	ContextKeyUser   = "auth_user"
)

// Middleware resolves the session identity into a user once per request.
type Middleware struct {
	service        *Service
	sessionManager *SessionManager
}

// NewMiddleware creates a new authentication middleware.
func NewMiddleware(service *Service, sessionManager *SessionManager) *Middleware {
	return &Middleware{
		service:        service,
		sessionManager: sessionManager,
	}
}

// RequireUser returns a handler that loads the current user from the session
// and aborts with a login redirect when no valid identity exists. A session
// whose user id no longer resolves is destroyed and treated as
// unauthenticated.
func (m *Middleware) RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := m.sessionManager.GetUserID(c.Request)
		if userID == 0 {
			redirectToLogin(c)
			return
		}

		user, err := m.service.GetUserByID(userID)
		if err != nil {
			// Stale session, fail closed
			_ = m.sessionManager.DestroySession(c.Request)
			redirectToLogin(c)
			return
		}

		c.Set(ContextKeyUserID, user.ID)
		c.Set(ContextKeyUser, user)
		c.Next()
	}
}

func redirectToLogin(c *gin.Context) {
	c.Redirect(http.StatusFound, "/login?next="+c.Request.URL.Path)
	c.Abort()
}

// GetUserID retrieves the authenticated user's ID from the context.
// Returns 0 if not authenticated.
func GetUserID(c *gin.Context) uint {
	if id, exists := c.Get(ContextKeyUserID); exists {
		if userID, ok := id.(uint); ok {
			return userID
		}
	}
	return 0
}

// CurrentUser retrieves the resolved user from the context.
// Returns nil when the request is unauthenticated.
func CurrentUser(c *gin.Context) *entities.User {
	if u, exists := c.Get(ContextKeyUser); exists {
		if user, ok := u.(*entities.User); ok {
			return user
		}
	}
	return nil
}
