package middleware

import (
	"net/http"
	"os"
	"strings"

	"forestry-backend/internal/workflow"
	"forestry-backend/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

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

// SetTokenCookies sets access_token and refresh_token as HttpOnly cookies
func SetTokenCookies(c *gin.Context, accessToken, refreshToken string) {
	// Production (cross-origin): SameSiteNoneMode + Secure=true
	// Development (same-site):   SameSiteLaxMode  + Secure=false
	sameSite := http.SameSiteLaxMode
	secure := false
	if os.Getenv("GIN_MODE") == "release" {
		sameSite = http.SameSiteNoneMode
		secure = true
	}

	c.SetSameSite(sameSite)
	// access_token: 24h, refresh_token: 7 days
	c.SetCookie("access_token", accessToken, 3600*24, "/", "", secure, true)
	c.SetCookie("refresh_token", refreshToken, 3600*24*7, "/", "", secure, true)
}

// ClearTokenCookies removes access_token and refresh_token cookies
func ClearTokenCookies(c *gin.Context) {
	sameSite := http.SameSiteLaxMode
	secure := false
	if os.Getenv("GIN_MODE") == "release" {
		sameSite = http.SameSiteNoneMode
		secure = true
	}

	c.SetSameSite(sameSite)
	c.SetCookie("access_token", "", -1, "/", "", secure, true)
	c.SetCookie("refresh_token", "", -1, "/", "", secure, true)
}

// AuthContext carries the authenticated user's identity and role set through
// a request. It satisfies the workflow engine's Actor contract.
type AuthContext struct {
	UserID uuid.UUID
	Roles  workflow.RoleSet
}

func (a AuthContext) HasRole(role workflow.Role) bool { return a.Roles.HasRole(role) }
func (a AuthContext) IsAdmin() bool                   { return a.Roles.IsAdmin() }
func (a AuthContext) ActorID() uuid.UUID              { return a.UserID }

const authContextKey = "authContext"

// GetAuthContext returns the AuthContext stored by RequireAuth/RequireRole.
func GetAuthContext(c *gin.Context) (AuthContext, bool) {
	v, ok := c.Get(authContextKey)
	if !ok {
		return AuthContext{}, false
	}
	auth, ok := v.(AuthContext)
	return auth, ok
}

// parseToken validates the JWT from cookie or Authorization header and builds
// the AuthContext from its claims.
func parseToken(c *gin.Context) (AuthContext, bool) {
	// Try cookie first, fallback to Authorization header
	tokenString, cookieErr := c.Cookie("access_token")
	if cookieErr != nil || tokenString == "" {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "Authorization is missing"))
			return AuthContext{}, false
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "Invalid authorization format. Expected 'Bearer <token>'"))
			return AuthContext{}, false
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
		return AuthContext{}, false
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "Invalid token claims"))
		return AuthContext{}, false
	}

	sub, _ := claims["sub"].(string)
	userID, err := uuid.Parse(sub)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "Invalid subject claim"))
		return AuthContext{}, false
	}

	rawRoles, _ := claims["roles"].([]interface{})
	roles := make([]workflow.Role, 0, len(rawRoles))
	for _, r := range rawRoles {
		if name, ok := r.(string); ok {
			roles = append(roles, workflow.Role(name))
		}
	}

	auth := AuthContext{UserID: userID, Roles: workflow.NewRoleSet(roles...)}
	c.Set(authContextKey, auth)
	return auth, true
}

// RequireAuth validates the JWT and stores the AuthContext; any role set
// (including an empty one) passes.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := parseToken(c); !ok {
			return
		}
		c.Next()
	}
}

// RequireRole validates the JWT and checks that the user holds at least one
// of the allowed roles. Admins pass every role gate.
func RequireRole(allowedRoles ...workflow.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth, ok := parseToken(c)
		if !ok {
			return
		}

		if !auth.IsAdmin() {
			roleAllowed := false
			for _, role := range allowedRoles {
				if auth.HasRole(role) {
					roleAllowed = true
					break
				}
			}
			if !roleAllowed {
				c.AbortWithStatusJSON(http.StatusForbidden, response.Error(http.StatusForbidden, "Access denied: insufficient permissions"))
				return
			}
		}

		c.Next()
	}
}
