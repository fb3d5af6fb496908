// Package auth provides registration, login, and session handling.
//
// Identity lives in a server-side session (alexedwards/scs over sqlite);
// the browser carries only the session token cookie. Passwords are stored
// as bcrypt hashes.
//
// # Usage
//
// Wire up in the entrypoint:
//
//	authService := auth.NewService(usersRepo, cfg.Auth)
//	sessionManager, _ := auth.NewSessionManager(sqlDB, cfg.Auth)
//	authMiddleware := auth.NewMiddleware(authService, sessionManager)
//
// Protect routes with authMiddleware.RequireUser() and read the resolved
// identity in handlers:
//
//	user := auth.CurrentUser(c)
//
// Configuration comes from the environment:
//
//	AUTH_SESSION_SECRET=<hex-32-bytes>  # Auto-generated if empty
//	AUTH_SESSION_LIFETIME=24h           # Session duration
//	AUTH_BCRYPT_COST=12                 # bcrypt cost factor
//	AUTH_SECURE_COOKIES=true            # HTTPS-only cookies
//	AUTH_CSRF_TRUSTED_ORIGINS=          # Extra hosts allowed to post forms
package auth
