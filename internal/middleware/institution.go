package middleware

import (
	"net/http"

	"github.com/finreg/corep/internal/models"
	"github.com/gin-gonic/gin"
)

const InstitutionIDKey = "institution_id"

// IdentifyInstitution extracts the reporting institution from the
// X-Institution-ID header. Requests without the header proceed; endpoints
// that need an institution gate on RequireInstitution.
func IdentifyInstitution() gin.HandlerFunc {
	return func(c *gin.Context) {
		if id := c.GetHeader("X-Institution-ID"); id != "" {
			c.Set(InstitutionIDKey, id)
		}
		c.Next()
	}
}

// GetInstitutionID retrieves the institution ID from the context
func GetInstitutionID(c *gin.Context) (string, bool) {
	id, exists := c.Get(InstitutionIDKey)
	if !exists {
		return "", false
	}
	return id.(string), true
}

// RequireInstitution gates routes that operate on institution-owned data.
// Requests without an identified institution are rejected before the
// handler runs.
func RequireInstitution() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, exists := GetInstitutionID(c); !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse{
				Error:   "unauthorized",
				Message: "X-Institution-ID header required",
			})
			return
		}
		c.Next()
	}
}
