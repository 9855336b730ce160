package middleware

import (
	"context"
	"net/http"

	"github.com/gaspacks/backend/internal/domain/identity"
	"github.com/gaspacks/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// AccountStatusReader answers the gate question for an email address.
// Implementations fail closed: lookup problems report pending.
type AccountStatusReader interface {
	StatusForEmail(ctx context.Context, email string) identity.AccountStatus
}

// RequireActiveAccount gates routes behind account approval. It must
// run after JWTAuth; requests whose account is not active get a 403 so
// the frontend can route the shopper to the pending page.
func RequireActiveAccount(statuses AccountStatusReader) gin.HandlerFunc {
	return func(c *gin.Context) {
		email := GetJWTEmail(c)
		if email == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				dto.NewErrorResponse(dto.ErrCodeUnauthorized, "Authentication required"))
			return
		}

		if status := statuses.StatusForEmail(c.Request.Context(), email); status != identity.StatusActive {
			c.AbortWithStatusJSON(http.StatusForbidden,
				dto.NewErrorResponse(dto.ErrCodeForbidden, "Account is pending approval"))
			return
		}

		c.Next()
	}
}

// RequireAdminKey gates operational endpoints behind a shared secret
// supplied in the X-Admin-Key header. An empty configured key disables
// the endpoints entirely.
func RequireAdminKey(key string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if key == "" || c.GetHeader("X-Admin-Key") != key {
			c.AbortWithStatusJSON(http.StatusForbidden,
				dto.NewErrorResponse(dto.ErrCodeForbidden, "Admin key required"))
			return
		}
		c.Next()
	}
}
