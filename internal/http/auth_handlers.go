package http

import (
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/opsview/dashboard-service/internal/auth"
	"github.com/opsview/dashboard-service/internal/config"
	"github.com/opsview/dashboard-service/internal/http/dto"
)

func sessionCookie(cfg config.Config, token string, maxAge time.Duration) *http.Cookie {
	return &http.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(maxAge / time.Second),
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
		Secure:   !cfg.LocalDev,
	}
}

// Login — verify the provider ID token and start a session
// @Summary     Verify an identity-provider token and issue a session cookie
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       request body dto.LoginRequest true "Login"
// @Success     200 {object} dto.LoginResponse
// @Failure     400 {object} APIError
// @Failure     403 {object} APIError
// @Failure     500 {object} APIError
// @Router      /auth/login [post]
func Login(verifier auth.IdentityVerifier, codec *auth.SessionCodec, cfg config.Config) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req dto.LoginRequest
		if err := c.Bind(&req); err != nil {
			return writeError(c, http.StatusBadRequest, "malformed request")
		}
		if err := req.Validate(); err != nil {
			status, body := MapError(err)
			return writeJSON(c, status, body)
		}

		identity, err := verifier.Verify(c.Request().Context(), req.IDToken)
		if err != nil {
			log.Printf("auth: id token verification failed: %v", err)
			return writeError(c, http.StatusInternalServerError, "Authentication failed")
		}
		if !strings.HasSuffix(identity.Email, cfg.AllowedEmailDomain) {
			return writeError(c, http.StatusForbidden,
				"Access denied. Only "+cfg.AllowedEmailDomain+" emails are allowed.")
		}

		token, err := codec.Issue(identity)
		if err != nil {
			log.Printf("auth: session issue failed: %v", err)
			return writeError(c, http.StatusInternalServerError, "Authentication failed")
		}
		c.SetCookie(sessionCookie(cfg, token, codec.TTL()))
		return writeJSON(c, http.StatusOK, dto.FromIdentity(identity))
	}
}

// Logout — clear the session cookie
// @Summary     Clear the session cookie
// @Tags        auth
// @Produce     json
// @Success     200 {object} dto.LogoutResponse
// @Router      /auth/logout [post]
func Logout(cfg config.Config) echo.HandlerFunc {
	return func(c echo.Context) error {
		cookie := sessionCookie(cfg, "", 0)
		cookie.MaxAge = -1
		c.SetCookie(cookie)
		return writeJSON(c, http.StatusOK, dto.LogoutResponse{Success: true})
	}
}

// Me — current session identity
// @Summary     Current session identity and role
// @Tags        auth
// @Produce     json
// @Success     200 {object} dto.MeResponse
// @Failure     401 {object} APIError
// @Router      /auth/me [get]
func Me() echo.HandlerFunc {
	return func(c echo.Context) error {
		sess, ok := CurrentSession(c)
		if !ok {
			return writeError(c, http.StatusUnauthorized, "Not authenticated")
		}
		return writeJSON(c, http.StatusOK, dto.FromSession(sess.Identity, sess.Role))
	}
}

// Pages — pages the caller may open, in sidebar order
// @Summary     Accessible pages for the current user
// @Tags        auth
// @Produce     json
// @Success     200 {object} dto.PagesResponse
// @Failure     401 {object} APIError
// @Router      /auth/pages [get]
func Pages(policy *auth.Policy) echo.HandlerFunc {
	return func(c echo.Context) error {
		sess, ok := CurrentSession(c)
		if !ok {
			return writeError(c, http.StatusUnauthorized, "Not authenticated")
		}
		return writeJSON(c, http.StatusOK, dto.PagesResponse{
			Pages: policy.AccessiblePages(sess.Identity.Email),
		})
	}
}
