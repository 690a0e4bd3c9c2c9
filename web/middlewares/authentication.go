package middlewares

import (
	"net/http"
	"strings"

	"axiapac.com/hrms/security"
	"axiapac.com/hrms/web/common"
	"github.com/gin-gonic/gin"
)

const SessionCookie = "hrms_token"

type TokenParser interface {
	ParseIdentityToken(tokenStr string) (*security.IdentityClaims, error)
}

// Authentication checks for a valid Bearer token, falling back to the session
// cookie, and stores the caller in the request context.
func Authentication(tokens TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := ""

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			cookie, err := c.Cookie(SessionCookie)
			if err != nil {
				c.AbortWithStatusJSON(http.StatusUnauthorized, common.NewErrorResponse("missing bearer token"))
				return
			}
			tokenStr = cookie
		} else {
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				c.AbortWithStatusJSON(http.StatusUnauthorized, common.NewErrorResponse("malformed authorization header"))
				return
			}
			tokenStr = strings.TrimSpace(parts[1])
		}

		claims, err := tokens.ParseIdentityToken(tokenStr)
		if err != nil {
			common.Logger(c).WithError(err).Debug("rejected token")
			c.AbortWithStatusJSON(http.StatusUnauthorized, common.NewErrorResponse("invalid or expired token"))
			return
		}

		common.SetSession(c, &common.Session{
			UserID: claims.UserID(),
			Name:   claims.Name,
			Email:  claims.Email,
		})
		common.SetLogger(c, common.Logger(c).WithField("user", claims.UserID()))
		c.Next()
	}
}
