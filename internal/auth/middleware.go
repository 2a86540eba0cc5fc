package auth

import (
	"net/http"
	"strings"

	"github.com/cinereel/movie-booking-backend/internal/pkg/apperror"
	"github.com/cinereel/movie-booking-backend/internal/pkg/response"
	"github.com/gin-gonic/gin"
)

// ErrTokenMissing is returned when no bearer token is supplied at all.
// A missing credential is a distinct failure from an invalid one.
var ErrTokenMissing = apperror.New(http.StatusNotFound, "token not found")

// AdminRequired is a Gin middleware that validates the admin JWT from
// Authorization: Bearer <token>. Verification completes before any handler
// runs; the extracted admin id is stored in the context only on success.
func AdminRequired(jwtManager *JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			response.Error(c, ErrTokenMissing)
			c.Abort()
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" || strings.TrimSpace(parts[1]) == "" {
			response.Error(c, ErrTokenMissing)
			c.Abort()
			return
		}

		tokenStr := parts[1]

		claims, err := jwtManager.ParseAndValidate(tokenStr)
		if err != nil {
			response.Error(c, apperror.Wrap(err, http.StatusBadRequest, "invalid or expired token"))
			c.Abort()
			return
		}

		// Store the verified admin identity for later handlers.
		c.Set(adminIDKey, claims.AdminID())

		c.Next()
	}
}
