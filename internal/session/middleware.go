package session

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const contextKey = "session"

// RequireAPI rejects unauthenticated JSON requests with a 401.
func (m *Manager) RequireAPI() gin.HandlerFunc {
	return func(c *gin.Context) {
		s, ok := m.fromRequest(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":   "login required",
				"success": false,
			})
			return
		}
		c.Set(contextKey, s)
		c.Next()
	}
}

// RequirePage redirects unauthenticated page requests to the login form.
func (m *Manager) RequirePage() gin.HandlerFunc {
	return func(c *gin.Context) {
		s, ok := m.fromRequest(c)
		if !ok {
			c.Redirect(http.StatusFound, "/auth/login")
			c.Abort()
			return
		}
		c.Set(contextKey, s)
		c.Next()
	}
}

// Load attaches the session when present but lets anonymous requests through.
func (m *Manager) Load() gin.HandlerFunc {
	return func(c *gin.Context) {
		if s, ok := m.fromRequest(c); ok {
			c.Set(contextKey, s)
		}
		c.Next()
	}
}

func (m *Manager) fromRequest(c *gin.Context) (Session, bool) {
	token, err := c.Cookie(CookieName)
	if err != nil {
		return Session{}, false
	}
	return m.Get(token)
}

// FromContext returns the session the middleware attached.
func FromContext(c *gin.Context) (Session, bool) {
	v, ok := c.Get(contextKey)
	if !ok {
		return Session{}, false
	}
	s, ok := v.(Session)
	return s, ok
}
