package auth

import (
	"context"
	"html/template"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/csrf"
)

// contextKeyCSRFToken is the Gin context key the token is stashed under
// for templates.
const contextKeyCSRFToken = "csrf_token"

// CSRFMiddleware creates a Gin middleware for CSRF protection of form
// submissions. Safe methods (GET, HEAD, OPTIONS, TRACE) pass through
// unchecked. When secure is false the request is marked as plaintext HTTP
// so gorilla/csrf does not enforce the HTTPS-only Referer check; cross-host
// form posts can be allowed via trustedOrigins (host[:port] values).
func CSRFMiddleware(secret []byte, secure bool, trustedOrigins []string) gin.HandlerFunc {
	csrfProtect := csrf.Protect(
		secret,
		csrf.Secure(secure),
		csrf.HttpOnly(true),
		csrf.SameSite(csrf.SameSiteStrictMode),
		csrf.Path("/"),
		csrf.TrustedOrigins(trustedOrigins),
		csrf.ErrorHandler(http.HandlerFunc(csrfErrorHandler)),
	)

	return func(c *gin.Context) {
		req := c.Request
		if !secure {
			req = req.WithContext(context.WithValue(req.Context(), csrf.PlaintextHTTPContextKey, true))
		}

		// When the token check fails, gorilla/csrf calls the error handler
		// instead of the wrapped handler. The flag tells us which happened,
		// so a rejected request aborts the Gin chain rather than falling
		// through to the route handler.
		accepted := false
		handler := csrfProtect(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			accepted = true
			// Store the token for templates; session middleware runs after
			// this, so session context is layered on top of CSRF context
			c.Set(contextKeyCSRFToken, csrf.Token(r))
			c.Request = r
			c.Next()
		}))

		handler.ServeHTTP(c.Writer, req)

		if !accepted {
			c.Abort()
		}
	}
}

// csrfErrorHandler redirects failed form submissions back to the referring
// page with an error parameter rather than showing a bare 403.
func csrfErrorHandler(w http.ResponseWriter, r *http.Request) {
	referer := r.Referer()
	if referer != "" {
		separator := "?"
		if strings.Contains(referer, "?") {
			separator = "&"
		}
		http.Redirect(w, r, referer+separator+"error=Session+expired.+Please+try+again.", http.StatusSeeOther)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusForbidden)
	_, _ = w.Write([]byte("<h1>Session Expired</h1><p>Your session has expired or the form submission was invalid.</p>"))
}

// GetCSRFToken retrieves the CSRF token from the Gin context.
func GetCSRFToken(c *gin.Context) string {
	if token, exists := c.Get(contextKeyCSRFToken); exists {
		if t, ok := token.(string); ok {
			return t
		}
	}
	return ""
}

// CSRFTokenField returns an HTML hidden input field with the CSRF token,
// for embedding in form templates.
func CSRFTokenField(token string) template.HTML {
	if token == "" {
		return ""
	}
	return template.HTML(`<input type="hidden" name="gorilla.csrf.Token" value="` + template.HTMLEscapeString(token) + `">`)
}
