package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
)

const ctxStaffSubject = "staff_subject"

// RequireStaff rejects requests without a valid HS256 bearer token signed with secret.
func RequireStaff(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		raw, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(raw) == "" {
			respondError(c, http.StatusUnauthorized, "Thiếu mã xác thực", nil)
			return
		}

		claims := &jwt.RegisteredClaims{}
		token, err := jwt.ParseWithClaims(strings.TrimSpace(raw), claims, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("unexpected signing method")
			}
			return secret, nil
		})
		if err != nil || !token.Valid {
			respondError(c, http.StatusUnauthorized, "Mã xác thực không hợp lệ", err)
			return
		}

		c.Set(ctxStaffSubject, claims.Subject)
		c.Next()
	}
}
