// Package cookie carries the admin access token in an HttpOnly cookie.
package cookie

import (
	"net/http"
	"strings"
	"time"

	"equipment-reservation/internal/pkg/config"

	"github.com/gin-gonic/gin"
)

const AccessTokenCookieName = "access_token"

func SetAccessToken(c *gin.Context, cfg config.CookieConfig, token string, ttl time.Duration) {
	write(c, cfg, token, int(ttl.Seconds()))
}

func ClearAccessToken(c *gin.Context, cfg config.CookieConfig) {
	write(c, cfg, "", -1)
}

func GetAccessToken(c *gin.Context) string {
	token, err := c.Cookie(AccessTokenCookieName)
	if err != nil {
		return ""
	}
	return token
}

func write(c *gin.Context, cfg config.CookieConfig, value string, maxAge int) {
	c.SetSameSite(sameSite(cfg.SameSite))
	c.SetCookie(AccessTokenCookieName, value, maxAge, "/", cfg.Domain, cfg.Secure, true)
}

// unknown values fall back to Lax
func sameSite(v string) http.SameSite {
	switch strings.ToLower(v) {
	case "strict":
		return http.SameSiteStrictMode
	case "none":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteLaxMode
	}
}
