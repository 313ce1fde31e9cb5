package auth

import (
	"strings"

	"github.com/gin-gonic/gin"
	authdomain "github.com/indpack-sist/spi-backend/internal/auth/domain"
)

const employeeContextKey = "auth.employee"

// GinMiddleware resolves the acting employee from the bearer token and
// rejects unauthenticated requests. Every business route requires it:
// orders, receipts and payments all record who performed them.
func GinMiddleware(repo authdomain.Repository, onError func(*gin.Context, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			onError(c, authdomain.ErrUnauthenticated)
			return
		}

		employee, err := repo.FindEmployeeByToken(c.Request.Context(), token)
		if err != nil {
			onError(c, err)
			return
		}

		c.Set(employeeContextKey, employee)
		c.Next()
	}
}

// EmployeeFromContext returns the employee resolved by GinMiddleware.
func EmployeeFromContext(c *gin.Context) (*authdomain.Employee, bool) {
	value, ok := c.Get(employeeContextKey)
	if !ok {
		return nil, false
	}
	employee, ok := value.(*authdomain.Employee)
	if !ok || employee == nil {
		return nil, false
	}
	return employee, true
}

func bearerToken(c *gin.Context) string {
	header := strings.TrimSpace(c.GetHeader("Authorization"))
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
