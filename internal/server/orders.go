package server

import (
	"strconv"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	orderdomain "github.com/indpack-sist/spi-backend/internal/order/domain"
	"github.com/indpack-sist/spi-backend/internal/tax"
	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

type orderLinePayload struct {
	ProductID       snowflake.ID    `json:"product_id"`
	Quantity        decimal.Decimal `json:"quantity"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
}

type orderPayload struct {
	SupplierID    snowflake.ID  `json:"supplier_id"`
	BankAccountID *snowflake.ID `json:"bank_account_id"`

	IssueDate             string `json:"issue_date"`
	EstimatedDeliveryDate string `json:"estimated_delivery_date"`
	DueDate               string `json:"due_date"`

	PurchaseType string `json:"purchase_type"`
	CreditDays   int    `json:"credit_days"`
	Priority     string `json:"priority"`

	Currency     string           `json:"currency"`
	ExchangeRate *decimal.Decimal `json:"exchange_rate"`

	TaxRegime      string           `json:"tax_regime"`
	TaxRatePercent *decimal.Decimal `json:"tax_rate_percent"`

	Notes         *string       `json:"notes"`
	ResponsibleID *snowflake.ID `json:"responsible_id"`

	Lines []orderLinePayload `json:"lines"`
}

func parseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if t, err := time.Parse(dateLayout, value); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, ErrInvalidRequest
	}
	return t, nil
}

func parseOptionalDate(value string) (*time.Time, error) {
	if strings.TrimSpace(value) == "" {
		return nil, nil
	}
	t, err := parseDate(value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (p orderPayload) toUpdateRequest() (orderdomain.UpdateRequest, error) {
	var req orderdomain.UpdateRequest

	issueDate, err := parseDate(p.IssueDate)
	if err != nil {
		return req, err
	}
	estimated, err := parseOptionalDate(p.EstimatedDeliveryDate)
	if err != nil {
		return req, err
	}
	due, err := parseOptionalDate(p.DueDate)
	if err != nil {
		return req, err
	}

	lines := make([]orderdomain.LineRequest, len(p.Lines))
	for i, line := range p.Lines {
		lines[i] = orderdomain.LineRequest{
			ProductID:       line.ProductID,
			Quantity:        line.Quantity,
			UnitPrice:       line.UnitPrice,
			DiscountPercent: line.DiscountPercent,
		}
	}

	return orderdomain.UpdateRequest{
		SupplierID:            p.SupplierID,
		BankAccountID:         p.BankAccountID,
		IssueDate:             issueDate,
		EstimatedDeliveryDate: estimated,
		DueDate:               due,
		PurchaseType:          orderdomain.PurchaseType(p.PurchaseType),
		CreditDays:            p.CreditDays,
		Priority:              orderdomain.Priority(p.Priority),
		Currency:              strings.ToUpper(strings.TrimSpace(p.Currency)),
		ExchangeRate:          p.ExchangeRate,
		TaxRegime:             tax.Regime(p.TaxRegime),
		TaxRatePercent:        p.TaxRatePercent,
		Notes:                 p.Notes,
		Lines:                 lines,
	}, nil
}

func (s *Server) createOrder(c *gin.Context) {
	employee, err := actingEmployee(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	var payload orderPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}
	base, err := payload.toUpdateRequest()
	if err != nil {
		AbortWithError(c, err)
		return
	}

	order, err := s.orderSvc.Create(c.Request.Context(), orderdomain.CreateRequest{
		SupplierID:            base.SupplierID,
		BankAccountID:         base.BankAccountID,
		IssueDate:             base.IssueDate,
		EstimatedDeliveryDate: base.EstimatedDeliveryDate,
		DueDate:               base.DueDate,
		PurchaseType:          base.PurchaseType,
		CreditDays:            base.CreditDays,
		Priority:              base.Priority,
		Currency:              base.Currency,
		ExchangeRate:          base.ExchangeRate,
		TaxRegime:             base.TaxRegime,
		TaxRatePercent:        base.TaxRatePercent,
		Notes:                 base.Notes,
		Lines:                 base.Lines,
		CreatedBy:             employee.ID,
		ResponsibleID:         payload.ResponsibleID,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondCreated(c, order)
}

func (s *Server) listOrders(c *gin.Context) {
	req := orderdomain.ListRequest{
		Status:   orderdomain.Status(c.Query("status")),
		Priority: orderdomain.Priority(c.Query("priority")),
	}

	from, err := parseOptionalDate(c.Query("from"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	to, err := parseOptionalDate(c.Query("to"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	req.From, req.To = from, to

	if raw := c.Query("limit"); raw != "" {
		if req.Limit, err = strconv.Atoi(raw); err != nil {
			AbortWithError(c, ErrInvalidRequest)
			return
		}
	}
	if raw := c.Query("offset"); raw != "" {
		if req.Offset, err = strconv.Atoi(raw); err != nil {
			AbortWithError(c, ErrInvalidRequest)
			return
		}
	}

	items, total, err := s.orderSvc.List(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respondOK(c, gin.H{"items": items, "total": total})
}

func (s *Server) getOrder(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		AbortWithError(c, err)
		return
	}
	order, err := s.orderSvc.Get(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondOK(c, order)
}

func (s *Server) updateOrder(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		AbortWithError(c, err)
		return
	}

	var payload orderPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}
	req, err := payload.toUpdateRequest()
	if err != nil {
		AbortWithError(c, err)
		return
	}

	order, err := s.orderSvc.Update(c.Request.Context(), id, req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondOK(c, order)
}

func (s *Server) setOrderStatus(c *gin.Context) {
	employee, err := actingEmployee(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	id, err := parseID(c, "id")
	if err != nil {
		AbortWithError(c, err)
		return
	}

	var payload struct {
		Status             string `json:"status"`
		ActualDeliveryDate string `json:"actual_delivery_date"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}
	delivered, err := parseOptionalDate(payload.ActualDeliveryDate)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	order, err := s.orderSvc.SetStatus(c.Request.Context(), id, orderdomain.SetStatusRequest{
		Status:             orderdomain.Status(payload.Status),
		ActualDeliveryDate: delivered,
		EmployeeID:         employee.ID,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondOK(c, order)
}

func (s *Server) setOrderPriority(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		AbortWithError(c, err)
		return
	}

	var payload struct {
		Priority string `json:"priority"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	order, err := s.orderSvc.SetPriority(c.Request.Context(), id, orderdomain.Priority(payload.Priority))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondOK(c, order)
}
