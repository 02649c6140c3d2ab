package middleware

import (
	"net/http"
	"os"
	"strings"

	"backoffice/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const identityKey = "identity"

// Identity carries the authenticated caller through the request. Handlers
// read it instead of any process-global session state.
type Identity struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	RoleID   string `json:"role_id"`
}

// Authorizer resolves grants for a role. Implemented by permission.Engine.
type Authorizer interface {
	IsGranted(roleID, module, action string) bool
}

// authorizer is set once at startup via InitPermissionMiddleware
var authorizer Authorizer

// InitPermissionMiddleware sets the grant resolver for RequirePermission
func InitPermissionMiddleware(a Authorizer) {
	authorizer = a
}

func GetJWTSecret() []byte {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		if os.Getenv("GIN_MODE") == "release" {
			panic("FATAL: JWT_SECRET environment variable is required in production mode")
		}
		secret = "default_super_secret_key" // Development fallback only — DO NOT use in production
	}
	return []byte(secret)
}

// SetTokenCookie sets the access token as an HttpOnly cookie
func SetTokenCookie(c *gin.Context, accessToken string) {
	sameSite := http.SameSiteLaxMode
	secure := false
	if os.Getenv("GIN_MODE") == "release" {
		sameSite = http.SameSiteNoneMode
		secure = true
	}

	c.SetSameSite(sameSite)
	c.SetCookie("access_token", accessToken, 3600*24, "/", "", secure, true)
}

// ClearTokenCookie removes the access token cookie
func ClearTokenCookie(c *gin.Context) {
	sameSite := http.SameSiteLaxMode
	secure := false
	if os.Getenv("GIN_MODE") == "release" {
		sameSite = http.SameSiteNoneMode
		secure = true
	}

	c.SetSameSite(sameSite)
	c.SetCookie("access_token", "", -1, "/", "", secure, true)
}

// parseIdentity extracts and validates the JWT from cookie or Authorization
// header and returns the caller identity.
func parseIdentity(c *gin.Context) (Identity, bool) {
	tokenString, cookieErr := c.Cookie("access_token")
	if cookieErr != nil || tokenString == "" {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "Authorization is missing"))
			return Identity{}, false
		}
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "Invalid authorization format. Expected 'Bearer <token>'"))
			return Identity{}, false
		}
		tokenString = parts[1]
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return GetJWTSecret(), nil
	})
	if err != nil || !token.Valid {
		c.AbortWithStatusJSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "Invalid token"))
		return Identity{}, false
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "Invalid token claims"))
		return Identity{}, false
	}

	userID, _ := claims["sub"].(string)
	username, _ := claims["username"].(string)
	roleID, ok := claims["role_id"].(string)
	if !ok || roleID == "" {
		c.AbortWithStatusJSON(http.StatusForbidden, response.Error(http.StatusForbidden, "Role not found in token"))
		return Identity{}, false
	}

	return Identity{UserID: userID, Username: username, RoleID: roleID}, true
}

// RequireAuth validates the JWT and stores the caller identity on the
// request context without checking any grant.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		ident, ok := parseIdentity(c)
		if !ok {
			return
		}
		c.Set(identityKey, ident)
		c.Next()
	}
}

// RequirePermission validates the JWT and checks the caller's role grants
// for the given module/action against the stored role record. The check is
// fail-closed: a denial aborts the request, nothing executes after it.
func RequirePermission(module, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ident, ok := parseIdentity(c)
		if !ok {
			return
		}
		c.Set(identityKey, ident)

		if authorizer == nil || !authorizer.IsGranted(ident.RoleID, module, action) {
			c.AbortWithStatusJSON(http.StatusForbidden, response.Error(http.StatusForbidden, "Access denied: missing permission '"+module+":"+action+"'"))
			return
		}

		c.Next()
	}
}

// CurrentIdentity returns the authenticated identity set by RequireAuth or
// RequirePermission.
func CurrentIdentity(c *gin.Context) (Identity, bool) {
	v, exists := c.Get(identityKey)
	if !exists {
		return Identity{}, false
	}
	ident, ok := v.(Identity)
	return ident, ok
}
