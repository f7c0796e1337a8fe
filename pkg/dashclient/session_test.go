package dashclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func authServer(t *testing.T, validToken string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/auth/verify":
			if r.Header.Get("Authorization") == "Bearer "+validToken {
				jsonResponse(w, http.StatusOK, map[string]any{"success": true, "user": testUser()})
				return
			}
			jsonResponse(w, http.StatusForbidden, map[string]any{"success": false, "message": "Invalid or expired token"})
		case "/api/auth/login":
			jsonResponse(w, http.StatusOK, map[string]any{
				"success": true, "message": "Login successful", "user": testUser(), "token": validToken,
			})
		case "/api/auth/signup":
			jsonResponse(w, http.StatusCreated, map[string]any{
				"success": true, "message": "User created successfully", "user": testUser(), "token": validToken,
			})
		default:
			jsonResponse(w, http.StatusNotFound, map[string]any{"success": false, "message": "not found"})
		}
	}))
}

func TestSessionInitHydratesFromStoredToken(t *testing.T) {
	srv := authServer(t, "tok-valid")
	defer srv.Close()

	store := NewMemoryTokenStore()
	require.NoError(t, store.Save("tok-valid"))

	session := NewSession(New(srv.URL), store)
	assert.True(t, session.IsLoading())

	require.NoError(t, session.Init(context.Background()))
	assert.False(t, session.IsLoading())
	assert.True(t, session.IsAuthenticated())
	assert.Equal(t, "a@x.com", session.User().Email)
	assert.Equal(t, "tok-valid", session.Token())
}

func TestSessionInitDiscardsRejectedToken(t *testing.T) {
	srv := authServer(t, "tok-valid")
	defer srv.Close()

	store := NewMemoryTokenStore()
	require.NoError(t, store.Save("tok-stale"))

	session := NewSession(New(srv.URL), store)
	require.NoError(t, session.Init(context.Background()))

	assert.False(t, session.IsAuthenticated())
	stored, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, stored)
}

func TestSessionInitDiscardsTokenOnNetworkFailure(t *testing.T) {
	srv := authServer(t, "tok-valid")
	srv.Close() // server gone before init

	store := NewMemoryTokenStore()
	require.NoError(t, store.Save("tok-valid"))

	session := NewSession(New(srv.URL), store)
	require.NoError(t, session.Init(context.Background()))

	assert.False(t, session.IsAuthenticated())
	stored, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, stored)
}

func TestSessionInitWithoutStoredToken(t *testing.T) {
	srv := authServer(t, "tok-valid")
	defer srv.Close()

	session := NewSession(New(srv.URL), NewMemoryTokenStore())
	require.NoError(t, session.Init(context.Background()))

	assert.False(t, session.IsAuthenticated())
	assert.False(t, session.IsLoading())
}

func TestSessionLoginLogout(t *testing.T) {
	srv := authServer(t, "tok-valid")
	defer srv.Close()

	store := NewMemoryTokenStore()
	session := NewSession(New(srv.URL), store)

	require.NoError(t, session.Login(context.Background(), "a@x.com", "secret1"))
	assert.True(t, session.IsAuthenticated())

	stored, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "tok-valid", stored)

	require.NoError(t, session.Logout())
	assert.False(t, session.IsAuthenticated())
	assert.Nil(t, session.User())

	stored, err = store.Load()
	require.NoError(t, err)
	assert.Empty(t, stored)
}

func TestSessionSignup(t *testing.T) {
	srv := authServer(t, "tok-valid")
	defer srv.Close()

	store := NewMemoryTokenStore()
	session := NewSession(New(srv.URL), store)

	err := session.Signup(context.Background(), SignupData{
		Email: "a@x.com", Password: "secret1", Name: "Alice",
	})
	require.NoError(t, err)
	assert.True(t, session.IsAuthenticated())

	stored, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "tok-valid", stored)
}

func TestFileTokenStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "token")
	store := NewFileTokenStore(path)

	token, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, token, "missing file reads as no token")

	require.NoError(t, store.Save("tok-1"))
	token, err = store.Load()
	require.NoError(t, err)
	assert.Equal(t, "tok-1", token)

	require.NoError(t, store.Clear())
	token, err = store.Load()
	require.NoError(t, err)
	assert.Empty(t, token)

	require.NoError(t, store.Clear(), "clearing twice is fine")
}
