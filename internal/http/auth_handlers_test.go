package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opsview/dashboard-service/internal/auth"
	"github.com/opsview/dashboard-service/internal/config"
	"github.com/opsview/dashboard-service/internal/http/dto"
)

type stubVerifier struct {
	identity auth.Identity
	err      error
}

func (s stubVerifier) Verify(ctx context.Context, rawToken string) (auth.Identity, error) {
	return s.identity, s.err
}

func testConfig() config.Config {
	return config.Config{
		AllowedEmailDomain: "@example.com",
		LocalDev:           true,
	}
}

func postJSON(path, body string) (*http.Request, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return req, httptest.NewRecorder()
}

func newEchoContext(req *http.Request, rec *httptest.ResponseRecorder) echo.Context {
	e := echo.New()
	e.Binder = StrictJSONBinder{}
	return e.NewContext(req, rec)
}

func TestLoginSuccess(t *testing.T) {
	codec := auth.NewSessionCodec("test-secret", 24*time.Hour, fixedClock{now: time.Now()})
	verifier := stubVerifier{identity: auth.Identity{Email: "alice@example.com", Name: "Alice"}}
	req, rec := postJSON("/api/auth/login", `{"idToken":"provider-token"}`)

	require.NoError(t, Login(verifier, codec, testConfig())(newEchoContext(req, rec)))
	assert.Equal(t, http.StatusOK, rec.Code)

	var out dto.LoginResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.True(t, out.Success)
	assert.Equal(t, "alice@example.com", out.User.Email)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	cookie := cookies[0]
	assert.Equal(t, "auth_token", cookie.Name)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, http.SameSiteStrictMode, cookie.SameSite)
	assert.False(t, cookie.Secure) // local dev
	assert.Equal(t, int((24 * time.Hour).Seconds()), cookie.MaxAge)

	id, err := codec.Verify(cookie.Value)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", id.Email)
}

func TestLoginMissingToken(t *testing.T) {
	codec := auth.NewSessionCodec("test-secret", time.Hour, fixedClock{now: time.Now()})
	req, rec := postJSON("/api/auth/login", `{}`)

	require.NoError(t, Login(stubVerifier{}, codec, testConfig())(newEchoContext(req, rec)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "ID token is required", decodeError(t, rec).Error)
}

func TestLoginVerifierFailure(t *testing.T) {
	codec := auth.NewSessionCodec("test-secret", time.Hour, fixedClock{now: time.Now()})
	verifier := stubVerifier{err: errors.New("upstream says no")}
	req, rec := postJSON("/api/auth/login", `{"idToken":"bad"}`)

	require.NoError(t, Login(verifier, codec, testConfig())(newEchoContext(req, rec)))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	// Upstream detail stays out of the response.
	assert.Equal(t, "Authentication failed", decodeError(t, rec).Error)
}

func TestLoginWrongDomain(t *testing.T) {
	codec := auth.NewSessionCodec("test-secret", time.Hour, fixedClock{now: time.Now()})
	verifier := stubVerifier{identity: auth.Identity{Email: "intruder@elsewhere.com"}}
	req, rec := postJSON("/api/auth/login", `{"idToken":"provider-token"}`)

	require.NoError(t, Login(verifier, codec, testConfig())(newEchoContext(req, rec)))
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Empty(t, rec.Result().Cookies())
}

func TestLogoutClearsCookie(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	rec := httptest.NewRecorder()

	require.NoError(t, Logout(testConfig())(newEchoContext(req, rec)))
	assert.Equal(t, http.StatusOK, rec.Code)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "auth_token", cookies[0].Name)
	assert.Less(t, cookies[0].MaxAge, 0)
}

func TestMeAndPages(t *testing.T) {
	gate, codec := testGate()

	req := sessionRequest(t, codec, "alice@example.com")
	rec := httptest.NewRecorder()
	c := newEchoContext(req, rec)
	require.NoError(t, gate.RequireSession(Me())(c))

	var me dto.MeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &me))
	assert.Equal(t, "alice@example.com", me.User.Email)
	assert.Equal(t, auth.RoleUser, me.User.Role)

	policy := auth.NewPolicy([]string{"admin@example.com"}, nil)
	req = sessionRequest(t, codec, "alice@example.com")
	rec = httptest.NewRecorder()
	c = newEchoContext(req, rec)
	require.NoError(t, gate.RequireSession(Pages(policy))(c))

	var pages dto.PagesResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &pages))
	for _, p := range pages.Pages {
		assert.Contains(t, p.AllowedRoles, auth.RoleUser, "page %s", p.Path)
	}
	// Regular users never see the admin-only pages.
	for _, p := range pages.Pages {
		assert.NotEqual(t, "/automations", p.Path)
	}
}

func TestMeWithoutSession(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	rec := httptest.NewRecorder()
	require.NoError(t, Me()(newEchoContext(req, rec)))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
