package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Vladislav1234512345/topten/domain"
)

// userContextKey is where the resolved identity is stored for downstream
// handlers.
const userContextKey = "user"

// AuthMW builds the authorization dependency chain for protected routes.
type AuthMW struct {
	tokenSvc          domain.TokenService
	userRepo          domain.UserRepository
	refreshCookieName string
}

// NewAuthMW creates new auth middleware wrapper
func NewAuthMW(tokenSvc domain.TokenService, userRepo domain.UserRepository, refreshCookieName string) *AuthMW {
	return &AuthMW{
		tokenSvc:          tokenSvc,
		userRepo:          userRepo,
		refreshCookieName: refreshCookieName,
	}
}

// RequireAuth returns a middleware enforcing the ordered check chain:
// extract, validate, token-type match, role threshold, fresh identity
// resolve. First failure wins. One parameterized function covers every
// endpoint variant; per-endpoint type checks are exactly the bug surface this
// avoids.
func (mw *AuthMW) RequireAuth(tokenType domain.TokenType, minRole domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := mw.extractToken(c, tokenType)
		if err != nil {
			abortWithError(c, err)
			return
		}

		claims, err := mw.tokenSvc.Validate(token)
		if err != nil {
			abortWithError(c, err)
			return
		}

		if claims.Type != tokenType {
			abortWithError(c, domain.ErrWrongTokenType)
			return
		}

		if !claims.Role.Atleast(minRole) {
			abortWithError(c, domain.ErrForbidden)
			return
		}

		// Resolved fresh so a deactivated account cannot keep operating on
		// an old token.
		user, err := mw.userRepo.FindByID(c.Request.Context(), claims.UserID)
		if err != nil {
			abortWithError(c, err)
			return
		}
		if !user.IsActive {
			abortWithError(c, domain.ErrUserInactive)
			return
		}

		c.Set(userContextKey, user)
		c.Next()
	}
}

// extractToken reads the bearer token from the transport location the token
// class uses: header for access, cookie for refresh.
func (mw *AuthMW) extractToken(c *gin.Context, tokenType domain.TokenType) (string, error) {
	if tokenType == domain.TokenTypeRefresh {
		token, err := c.Cookie(mw.refreshCookieName)
		if err != nil || token == "" {
			return "", domain.ErrTokenNotFound
		}
		return token, nil
	}

	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", domain.ErrTokenNotFound
	}

	tokenParts := strings.SplitN(authHeader, " ", 2)
	if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
		return "", domain.ErrTokenNotFound
	}

	return tokenParts[1], nil
}

// CurrentUser returns the identity resolved by RequireAuth.
func CurrentUser(c *gin.Context) (*domain.User, bool) {
	v, ok := c.Get(userContextKey)
	if !ok {
		return nil, false
	}
	user, ok := v.(*domain.User)
	return user, ok
}

func abortWithError(c *gin.Context, err error) {
	switch err {
	case domain.ErrTokenNotFound:
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Bearer token not found"})
	case domain.ErrTokenExpired:
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Token expired"})
	case domain.ErrTokenInvalid:
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
	case domain.ErrWrongTokenType:
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Wrong token type"})
	case domain.ErrForbidden:
		c.JSON(http.StatusForbidden, gin.H{"error": "Insufficient role"})
	case domain.ErrUserNotFound:
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
	case domain.ErrUserInactive:
		c.JSON(http.StatusForbidden, gin.H{"error": "Account is inactive"})
	default:
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Authorization check failed"})
	}
	c.Abort()
}
