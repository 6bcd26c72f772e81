package http

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/opsview/dashboard-service/internal/auth"
)

const sessionCookieName = "auth_token"

// sessionKey is the echo context key the gate stores the admitted
// session under.
const sessionKey = "gate.session"

// Session is the identity and derived role the gate attaches to an
// admitted request. The role is recomputed per request and never
// cached across requests.
type Session struct {
	Identity auth.Identity
	Role     auth.Role
}

// Gate is the per-request authorization pipeline: extract the session
// cookie, verify it, check the account's email domain, and optionally
// check the access-policy table for the route's page. It reads the
// cookie and nothing else; running it twice yields the same outcome.
type Gate struct {
	codec  *auth.SessionCodec
	policy *auth.Policy
	domain string // with leading "@", e.g. "@example.com"
}

func NewGate(codec *auth.SessionCodec, policy *auth.Policy, domain string) *Gate {
	return &Gate{codec: codec, policy: policy, domain: domain}
}

// check runs extract/verify/domain and returns the session or the
// terminal status. Verification failures are indistinguishable to the
// client by design.
func (g *Gate) check(c echo.Context) (Session, int, string) {
	cookie, err := c.Cookie(sessionCookieName)
	if err != nil || cookie.Value == "" {
		return Session{}, http.StatusUnauthorized, "No token provided"
	}
	identity, err := g.codec.Verify(cookie.Value)
	if err != nil {
		return Session{}, http.StatusUnauthorized, "Invalid token"
	}
	// The credential is structurally valid here: an out-of-domain
	// account is forbidden, not unauthenticated.
	if !strings.HasSuffix(identity.Email, g.domain) {
		return Session{}, http.StatusForbidden, "Access denied. Only " + g.domain + " emails allowed."
	}
	return Session{Identity: identity, Role: g.policy.Role(identity.Email)}, 0, ""
}

// RequireSession admits API requests with a valid in-domain session
// and answers 401/403 JSON otherwise.
func (g *Gate) RequireSession(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		sess, status, msg := g.check(c)
		if status != 0 {
			return writeError(c, status, msg)
		}
		c.Set(sessionKey, sess)
		return next(c)
	}
}

// RequireAdmin is the narrower gate in front of automation control:
// same 403 semantics, applied after RequireSession.
func (g *Gate) RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		sess, ok := CurrentSession(c)
		if !ok {
			return writeError(c, http.StatusUnauthorized, "No token provided")
		}
		if sess.Role != auth.RoleAdmin {
			return writeError(c, http.StatusForbidden, "Access denied. Admin role required.")
		}
		return next(c)
	}
}

// RequirePage enforces the access-policy table for routes backing a
// specific page path. Unknown paths deny everyone.
func (g *Gate) RequirePage(requiredPath string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sess, ok := CurrentSession(c)
			if !ok {
				return writeError(c, http.StatusUnauthorized, "No token provided")
			}
			if !g.policy.IsAllowed(sess.Identity.Email, requiredPath) {
				return writeError(c, http.StatusForbidden, "Access denied")
			}
			return next(c)
		}
	}
}

// RedirectToLogin is the browser-navigation variant of the gate:
// unauthenticated page loads bounce to the login page instead of
// receiving JSON.
func (g *Gate) RedirectToLogin(loginPath string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if c.Request().URL.Path == loginPath {
				return next(c)
			}
			if _, status, _ := g.check(c); status == http.StatusUnauthorized {
				return c.Redirect(http.StatusFound, loginPath)
			}
			// Forbidden outcomes still render: the page shows its own
			// access-denied state with a safe navigation target.
			return next(c)
		}
	}
}

// CurrentSession returns the session the gate attached, if any.
func CurrentSession(c echo.Context) (Session, bool) {
	sess, ok := c.Get(sessionKey).(Session)
	return sess, ok
}
