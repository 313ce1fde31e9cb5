package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	authdomain "github.com/indpack-sist/spi-backend/internal/auth/domain"
	inventorydomain "github.com/indpack-sist/spi-backend/internal/inventory/domain"
	orderdomain "github.com/indpack-sist/spi-backend/internal/order/domain"
	paymentdomain "github.com/indpack-sist/spi-backend/internal/payment/domain"
	productdomain "github.com/indpack-sist/spi-backend/internal/product/domain"
	referencedomain "github.com/indpack-sist/spi-backend/internal/reference/domain"
	"github.com/indpack-sist/spi-backend/internal/tax"
	"gorm.io/gorm"
)

var ErrInvalidRequest = errors.New("invalid_request")

type successResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data"`
}

type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

func respondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, successResponse{Success: true, Data: data})
}

func respondCreated(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, successResponse{Success: true, Data: data})
}

// ErrorHandlingMiddleware converts the last error recorded on the gin
// context into the envelope every error response uses.
func ErrorHandlingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}
		lastErr := c.Errors.Last()
		if lastErr == nil {
			return
		}

		status, message := mapError(lastErr.Err)
		c.AbortWithStatusJSON(status, errorResponse{Success: false, Error: message})
	}
}

func AbortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

func mapError(err error) (int, string) {
	var overPayment *paymentdomain.OverPaymentError
	if errors.As(err, &overPayment) {
		return http.StatusBadRequest, overPayment.Error()
	}

	switch {
	case isValidationError(err):
		return http.StatusBadRequest, err.Error()
	case isNotFoundError(err):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, authdomain.ErrUnauthenticated),
		errors.Is(err, authdomain.ErrSessionExpired):
		return http.StatusUnauthorized, err.Error()
	case errors.Is(err, orderdomain.ErrConflict):
		return http.StatusConflict, err.Error()
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}

func isValidationError(err error) bool {
	switch {
	case errors.Is(err, ErrInvalidRequest),
		errors.Is(err, orderdomain.ErrInvalidStatus),
		errors.Is(err, orderdomain.ErrInvalidTransition),
		errors.Is(err, orderdomain.ErrNotEditable),
		errors.Is(err, orderdomain.ErrInvalidPriority),
		errors.Is(err, orderdomain.ErrInvalidType),
		errors.Is(err, orderdomain.ErrSupplierRequired),
		errors.Is(err, orderdomain.ErrEmployeeRequired),
		errors.Is(err, orderdomain.ErrNoLines),
		errors.Is(err, orderdomain.ErrInvalidCurrency),
		errors.Is(err, orderdomain.ErrInvalidCredit),
		errors.Is(err, orderdomain.ErrPaidExceedsTotal),
		errors.Is(err, paymentdomain.ErrInvalidAmount),
		errors.Is(err, paymentdomain.ErrInvalidMethod),
		errors.Is(err, paymentdomain.ErrEmployeeRequired),
		errors.Is(err, inventorydomain.ErrNoLines),
		errors.Is(err, inventorydomain.ErrInvalidEmployee),
		errors.Is(err, tax.ErrInvalidRegime),
		errors.Is(err, tax.ErrInvalidRate),
		errors.Is(err, tax.ErrNonPositiveQty),
		errors.Is(err, tax.ErrNegativeUnitPrice),
		errors.Is(err, tax.ErrInvalidDiscount),
		errors.Is(err, tax.ErrNoLines):
		return true
	default:
		return false
	}
}

func isNotFoundError(err error) bool {
	switch {
	case errors.Is(err, orderdomain.ErrNotFound),
		errors.Is(err, paymentdomain.ErrNotFound),
		errors.Is(err, productdomain.ErrNotFound),
		errors.Is(err, referencedomain.ErrSupplierNotFound),
		errors.Is(err, referencedomain.ErrBankAccountNotFound),
		errors.Is(err, gorm.ErrRecordNotFound):
		return true
	default:
		return false
	}
}
