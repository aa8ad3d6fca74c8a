package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

const staffSecretHeader = "X-Staff-Secret"

// StaffAuth guards the staff dashboard endpoints with a shared secret.
// Only the bcrypt hash is held in memory; the cleartext lives with the
// staff.
func StaffAuth(secretHash []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		secret := c.GetHeader(staffSecretHeader)
		if secret == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing staff secret"})
			return
		}
		if err := bcrypt.CompareHashAndPassword(secretHash, []byte(secret)); err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid staff secret"})
			return
		}
		c.Next()
	}
}
