package server

import (
	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	paymentdomain "github.com/indpack-sist/spi-backend/internal/payment/domain"
	"github.com/shopspring/decimal"
)

type registerPaymentPayload struct {
	PaidAt        string          `json:"paid_at"`
	Amount        decimal.Decimal `json:"amount"`
	Method        string          `json:"method"`
	OperationRef  *string         `json:"operation_ref"`
	BankAccountID *snowflake.ID   `json:"bank_account_id"`
	Notes         *string         `json:"notes"`
}

func (s *Server) registerPayment(c *gin.Context) {
	employee, err := actingEmployee(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	orderID, err := parseID(c, "id")
	if err != nil {
		AbortWithError(c, err)
		return
	}

	var payload registerPaymentPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}
	paidAt, err := parseOptionalDate(payload.PaidAt)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	req := paymentdomain.RegisterRequest{
		Amount:        payload.Amount,
		Method:        paymentdomain.Method(payload.Method),
		OperationRef:  payload.OperationRef,
		BankAccountID: payload.BankAccountID,
		Notes:         payload.Notes,
		RegisteredBy:  employee.ID,
	}
	if paidAt != nil {
		req.PaidAt = *paidAt
	}

	result, err := s.paymentSvc.Register(c.Request.Context(), orderID, req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondCreated(c, result)
}

func (s *Server) listPayments(c *gin.Context) {
	orderID, err := parseID(c, "id")
	if err != nil {
		AbortWithError(c, err)
		return
	}
	payments, err := s.paymentSvc.List(c.Request.Context(), orderID)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondOK(c, payments)
}

func (s *Server) paymentSummary(c *gin.Context) {
	orderID, err := parseID(c, "id")
	if err != nil {
		AbortWithError(c, err)
		return
	}
	summary, err := s.paymentSvc.Summary(c.Request.Context(), orderID)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondOK(c, summary)
}

func (s *Server) voidPayment(c *gin.Context) {
	orderID, err := parseID(c, "id")
	if err != nil {
		AbortWithError(c, err)
		return
	}
	paymentID, err := parseID(c, "paymentId")
	if err != nil {
		AbortWithError(c, err)
		return
	}

	balance, err := s.paymentSvc.Void(c.Request.Context(), orderID, paymentID)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondOK(c, balance)
}
