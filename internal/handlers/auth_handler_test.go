package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"thescent/internal/middleware"
	"thescent/internal/repositories"
	"thescent/internal/services"
)

func newAuthTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	auth := services.NewAuthService(repositories.NewMemoryUserRepository())
	sessions := services.NewSessionService(repositories.NewMemorySessionRepository(), time.Hour)
	h := NewAuthHandler(auth, sessions, nil, false)

	r := gin.New()
	r.Use(middleware.Session(sessions))
	r.POST("/api/register", h.Register)
	r.POST("/api/login", h.Login)
	r.POST("/api/logout", h.Logout)
	r.GET("/api/user", h.CurrentUser)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path, body string, cookies []*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func sessionCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range w.Result().Cookies() {
		if c.Name == middleware.SessionCookie {
			return c
		}
	}
	t.Fatal("no session cookie in response")
	return nil
}

const registerBody = `{"email":"aroma@example.com","username":"aromafan","password":"lavender-fields-42"}`

func TestRegisterLoginLogoutFlow(t *testing.T) {
	r := newAuthTestRouter(t)

	// Register signs the user in immediately.
	w := doJSON(t, r, http.MethodPost, "/api/register", registerBody, nil)
	require.Equal(t, http.StatusCreated, w.Code)
	require.NotContains(t, w.Body.String(), "password") // hash never serialized
	cookie := sessionCookie(t, w)
	require.True(t, cookie.HttpOnly)

	w = doJSON(t, r, http.MethodGet, "/api/user", "", []*http.Cookie{cookie})
	require.Equal(t, http.StatusOK, w.Code)
	var me struct {
		Email    string `json:"email"`
		Username string `json:"username"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &me))
	require.Equal(t, "aroma@example.com", me.Email)

	// Logout invalidates the session.
	w = doJSON(t, r, http.MethodPost, "/api/logout", "", []*http.Cookie{cookie})
	require.Equal(t, http.StatusOK, w.Code)
	w = doJSON(t, r, http.MethodGet, "/api/user", "", []*http.Cookie{cookie})
	require.Equal(t, http.StatusUnauthorized, w.Code)

	// Fresh login works again.
	w = doJSON(t, r, http.MethodPost, "/api/login", `{"email":"aroma@example.com","password":"lavender-fields-42"}`, nil)
	require.Equal(t, http.StatusOK, w.Code)
	sessionCookie(t, w)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	r := newAuthTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/register", registerBody, nil)
	require.Equal(t, http.StatusCreated, w.Code)

	// Duplicate registration is a plain 400 with the field named in the body.
	w = doJSON(t, r, http.MethodPost, "/api/register", registerBody, nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), "email already in use")

	w = doJSON(t, r, http.MethodPost, "/api/register", `{"email":"other@example.com","username":"aromafan","password":"lavender-fields-42"}`, nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), "username already exists")
}

func TestRegisterValidation(t *testing.T) {
	r := newAuthTestRouter(t)

	// Short password rejected before touching storage.
	w := doJSON(t, r, http.MethodPost, "/api/register", `{"email":"a@example.com","username":"abc","password":"short"}`, nil)
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/register", `{"email":"not-an-email","username":"abc","password":"long-enough-pass"}`, nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLoginWrongPasswordAndLockout(t *testing.T) {
	r := newAuthTestRouter(t)
	doJSON(t, r, http.MethodPost, "/api/register", registerBody, nil)

	const wrong = `{"email":"aroma@example.com","password":"not-the-password"}`
	for i := 0; i < 4; i++ {
		w := doJSON(t, r, http.MethodPost, "/api/login", wrong, nil)
		require.Equal(t, http.StatusUnauthorized, w.Code)
		require.Contains(t, w.Body.String(), "Invalid email or password")
	}

	// Fifth failure locks the account.
	w := doJSON(t, r, http.MethodPost, "/api/login", wrong, nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Contains(t, w.Body.String(), "Account locked for 30 minutes")

	// The right password is refused while the lock holds.
	w = doJSON(t, r, http.MethodPost, "/api/login", `{"email":"aroma@example.com","password":"lavender-fields-42"}`, nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Contains(t, w.Body.String(), "Account is locked")
}

func TestLoginUnknownEmailSameError(t *testing.T) {
	r := newAuthTestRouter(t)
	w := doJSON(t, r, http.MethodPost, "/api/login", `{"email":"ghost@example.com","password":"whatever-pass"}`, nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Contains(t, w.Body.String(), "Invalid email or password")
}

func TestCurrentUserWithoutSession(t *testing.T) {
	r := newAuthTestRouter(t)
	w := doJSON(t, r, http.MethodGet, "/api/user", "", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/user", "", []*http.Cookie{{Name: middleware.SessionCookie, Value: "forged"}})
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLogoutWithoutSessionIsOK(t *testing.T) {
	r := newAuthTestRouter(t)
	w := doJSON(t, r, http.MethodPost, "/api/logout", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
}
