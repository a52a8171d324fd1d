package cookie

import (
	"github.com/gin-gonic/gin"
)

// AccessTokenCookieName is the cookie the storefront's auth client stores the session token in.
const AccessTokenCookieName = "sb-access-token"

func GetAccessToken(c *gin.Context) string {
	token, _ := c.Cookie(AccessTokenCookieName)
	return token
}
