package middleware

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/chefai/chefai/pkg/helpers"
)

// Routes that require authentication.
var protectedRoutes = []string{"/profile", "/settings", "/chat", "/dashboard"}

// Routes that should redirect to the dashboard if the user is already
// authenticated.
var authRoutes = []string{"/login", "/register"}

// RouteGuard gates page navigations on the session cookie. An invalid
// token is cleared from the response but the request itself continues as
// unauthenticated; only the protected/auth-only classification decides
// whether to redirect.
func RouteGuard(jwt *helpers.JWTManager, cookies *helpers.CookieManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path

		authenticated := false
		if token, err := c.Cookie(helpers.AuthCookie); err == nil && token != "" {
			if _, perr := jwt.Parse(token); perr == nil {
				authenticated = true
			} else {
				cookies.Clear(c)
			}
		}

		if hasPrefix(path, protectedRoutes) && !authenticated {
			c.Redirect(http.StatusFound, "/login?redirect="+url.QueryEscape(path))
			c.Abort()
			return
		}
		if hasPrefix(path, authRoutes) && authenticated {
			c.Redirect(http.StatusFound, "/dashboard")
			c.Abort()
			return
		}
		c.Next()
	}
}

func hasPrefix(path string, routes []string) bool {
	for _, r := range routes {
		if strings.HasPrefix(path, r) {
			return true
		}
	}
	return false
}
