package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/subhaneetshrestha/lereddit/internal/config"
)

type sessionContextKey struct{}

// CookieSession gives resolvers cookie-level access to the session id:
// reading the incoming id and issuing or clearing the identity cookie on
// the response. The cookie is HTTP-only and SameSite=Lax; Secure is set in
// production.
type CookieSession struct {
	c      *gin.Context
	cfg    config.SessionConfig
	secure bool
	id     string
}

// ID returns the session id carried by the request cookie, or "".
func (s *CookieSession) ID() string {
	return s.id
}

// Issue sets the identity cookie to the given session id.
func (s *CookieSession) Issue(id string) {
	s.id = id
	s.c.SetSameSite(http.SameSiteLaxMode)
	s.c.SetCookie(s.cfg.CookieName, id, int(s.cfg.TTL.Seconds()), "/", s.cfg.CookieDomain, s.secure, true)
}

// Clear expires the identity cookie.
func (s *CookieSession) Clear() {
	s.id = ""
	s.c.SetSameSite(http.SameSiteLaxMode)
	s.c.SetCookie(s.cfg.CookieName, "", -1, "/", s.cfg.CookieDomain, s.secure, true)
}

// SessionMiddleware reads the identity cookie and attaches a CookieSession
// to the request context for the GraphQL resolvers.
func SessionMiddleware(cfg config.SessionConfig, secure bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := c.Cookie(cfg.CookieName)
		if err != nil {
			id = ""
		}
		session := &CookieSession{c: c, cfg: cfg, secure: secure, id: id}

		ctx := context.WithValue(c.Request.Context(), sessionContextKey{}, session)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// SessionFrom extracts the CookieSession placed by SessionMiddleware, or
// nil when the request did not pass through it.
func SessionFrom(ctx context.Context) *CookieSession {
	session, _ := ctx.Value(sessionContextKey{}).(*CookieSession)
	return session
}
