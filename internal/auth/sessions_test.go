package auth

import (
	"database/sql"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/readtrack/readtrack/internal/config"
	"github.com/readtrack/readtrack/internal/entities"
)

func setupSessionManager(t *testing.T) *SessionManager {
	t.Helper()

	sqlDB, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	// A single connection keeps the in-memory database alive and shared
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	sm, err := NewSessionManager(sqlDB, config.Auth{SessionLifetime: time.Hour})
	require.NoError(t, err)
	return sm
}

// sessionRequest returns a request whose context carries a loaded session.
func sessionRequest(t *testing.T, sm *SessionManager) *http.Request {
	t.Helper()

	req := httptest.NewRequest("GET", "/", nil)
	ctx, err := sm.Load(req.Context(), "")
	require.NoError(t, err)
	return req.WithContext(ctx)
}

func TestSessionManager_CreateSession(t *testing.T) {
	sm := setupSessionManager(t)
	req := sessionRequest(t, sm)

	user := &entities.User{ID: 7, Username: "alice"}
	require.NoError(t, sm.CreateSession(req, user))

	assert.EqualValues(t, 7, sm.GetUserID(req))
	assert.Equal(t, "alice", sm.GetUsername(req))
	assert.True(t, sm.IsAuthenticated(req))
}

func TestSessionManager_LoginResetsLastBook(t *testing.T) {
	sm := setupSessionManager(t)
	req := sessionRequest(t, sm)

	sm.SetLastBook(req, "Dune")
	_, ok := sm.LastBook(req)
	require.True(t, ok)

	require.NoError(t, sm.CreateSession(req, &entities.User{ID: 1, Username: "alice"}))

	_, ok = sm.LastBook(req)
	assert.False(t, ok, "last book should be reset at login")
}

func TestSessionManager_LastBook(t *testing.T) {
	sm := setupSessionManager(t)
	req := sessionRequest(t, sm)

	_, ok := sm.LastBook(req)
	assert.False(t, ok, "fresh session has no last book")

	sm.SetLastBook(req, "Dune")

	title, ok := sm.LastBook(req)
	assert.True(t, ok)
	assert.Equal(t, "Dune", title)
}

func TestSessionManager_DestroySession(t *testing.T) {
	sm := setupSessionManager(t)
	req := sessionRequest(t, sm)

	require.NoError(t, sm.CreateSession(req, &entities.User{ID: 1, Username: "alice"}))
	sm.SetLastBook(req, "Dune")

	require.NoError(t, sm.DestroySession(req))

	assert.Zero(t, sm.GetUserID(req))
	_, ok := sm.LastBook(req)
	assert.False(t, ok, "transient state cleared at logout")
}

func TestSessionManager_Flashes(t *testing.T) {
	sm := setupSessionManager(t)
	req := sessionRequest(t, sm)

	assert.Empty(t, sm.PopFlashes(req))

	sm.AddFlash(req, "success", "Book progress saved!")
	sm.AddFlash(req, "info", "You've been logged out.")

	flashes := sm.PopFlashes(req)
	require.Len(t, flashes, 2)
	assert.Equal(t, Flash{Category: "success", Message: "Book progress saved!"}, flashes[0])
	assert.Equal(t, Flash{Category: "info", Message: "You've been logged out."}, flashes[1])

	assert.Empty(t, sm.PopFlashes(req), "flashes are one-shot")
}
