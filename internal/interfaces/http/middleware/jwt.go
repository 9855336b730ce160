package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gaspacks/backend/internal/infrastructure/auth"
	"github.com/gaspacks/backend/internal/infrastructure/logger"
	"github.com/gaspacks/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// JWT context keys
const (
	JWTClaimsKey  = "jwt_claims"
	JWTUserIDKey  = "jwt_user_id"
	JWTEmailKey   = "jwt_email"
	JWTNameKey    = "jwt_name"
	AuthHeaderKey = "Authorization"
	BearerPrefix  = "Bearer "
)

// JWTAuth rejects requests without a valid bearer token and stores the
// verified claims in the context.
func JWTAuth(verifier *auth.TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := verifyRequest(c, verifier)
		if err != nil {
			abortUnauthorized(c, err)
			return
		}
		storeClaims(c, claims)
		c.Next()
	}
}

// OptionalJWTAuth extracts claims when a valid token is present but
// never rejects the request. Anonymous shoppers pass straight through.
func OptionalJWTAuth(verifier *auth.TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		if claims, err := verifyRequest(c, verifier); err == nil {
			storeClaims(c, claims)
		}
		c.Next()
	}
}

func verifyRequest(c *gin.Context, verifier *auth.TokenVerifier) (*auth.Claims, error) {
	authHeader := c.GetHeader(AuthHeaderKey)
	if authHeader == "" {
		return nil, auth.ErrInvalidToken
	}
	if !strings.HasPrefix(authHeader, BearerPrefix) {
		return nil, auth.ErrInvalidToken
	}
	token := strings.TrimPrefix(authHeader, BearerPrefix)
	if token == "" {
		return nil, auth.ErrInvalidToken
	}
	return verifier.Verify(token)
}

func storeClaims(c *gin.Context, claims *auth.Claims) {
	c.Set(JWTClaimsKey, claims)
	c.Set(JWTUserIDKey, claims.Subject)
	c.Set(JWTEmailKey, claims.Email)
	c.Set(JWTNameKey, claims.FullName)

	ctx := c.Request.Context()
	ctx, _ = logger.WithUserID(ctx, logger.FromContext(ctx), claims.Subject)
	c.Request = c.Request.WithContext(ctx)
}

func abortUnauthorized(c *gin.Context, err error) {
	message := "Authentication required"
	if errors.Is(err, auth.ErrExpiredToken) {
		message = "Token has expired"
	}
	c.AbortWithStatusJSON(http.StatusUnauthorized,
		dto.NewErrorResponse(dto.ErrCodeUnauthorized, message))
}

// GetJWTUserID retrieves the authenticated subject from the context.
func GetJWTUserID(c *gin.Context) string {
	return c.GetString(JWTUserIDKey)
}

// GetJWTEmail retrieves the authenticated email from the context.
func GetJWTEmail(c *gin.Context) string {
	return c.GetString(JWTEmailKey)
}

// GetJWTName retrieves the authenticated display name from the context.
func GetJWTName(c *gin.Context) string {
	return c.GetString(JWTNameKey)
}
