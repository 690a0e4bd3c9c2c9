package common

import "github.com/gin-gonic/gin"

// Session is the authenticated caller of a request.
type Session struct {
	UserID string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
}

const sessionKey = "session"

func SetSession(c *gin.Context, s *Session) {
	c.Set(sessionKey, s)
}

func CurrentSession(c *gin.Context) (*Session, bool) {
	v, ok := c.Get(sessionKey)
	if !ok {
		return nil, false
	}
	s, ok := v.(*Session)
	return s, ok && s != nil
}
