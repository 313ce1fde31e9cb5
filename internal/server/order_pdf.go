package server

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	orderdomain "github.com/indpack-sist/spi-backend/internal/order/domain"
	"github.com/indpack-sist/spi-backend/internal/providers/pdf"
)

func (s *Server) exportOrderPDF(c *gin.Context) {
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
	doc, err := s.buildOrderDocument(c, order)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	reader, err := s.pdf.GenerateOrder(c.Request.Context(), *doc)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	raw, err := io.ReadAll(reader)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", order.OrderNumber+".pdf"))
	c.Data(http.StatusOK, "application/pdf", raw)
}

func (s *Server) buildOrderDocument(c *gin.Context, order *orderdomain.OrderWithLines) (*pdf.OrderDocument, error) {
	ctx := c.Request.Context()

	supplier, err := s.refrepo.FindSupplier(ctx, order.SupplierID)
	if err != nil {
		return nil, err
	}

	bankAccount := "-"
	if order.BankAccountID != nil {
		account, err := s.refrepo.FindBankAccount(ctx, *order.BankAccountID)
		if err != nil {
			return nil, err
		}
		bankAccount = account.Bank + " " + account.Number
	}

	ids := make([]snowflake.ID, 0, len(order.Lines))
	for _, line := range order.Lines {
		ids = append(ids, line.ProductID)
	}
	products, err := s.products.FindByIDs(ctx, s.db, ids)
	if err != nil {
		return nil, err
	}

	payments, err := s.paymentSvc.List(ctx, order.ID)
	if err != nil {
		return nil, err
	}

	doc := &pdf.OrderDocument{
		OrderNumber:   order.OrderNumber,
		Status:        string(order.Status),
		Priority:      string(order.Priority),
		IssueDate:     order.IssueDate.Format(dateLayout),
		DueDate:       order.DueDate.Format(dateLayout),
		DeliveryDate:  formatOptionalDate(order.ActualDeliveryDate),
		SupplierName:  supplier.Name,
		SupplierTaxID: supplier.TaxID,
		BankAccount:   bankAccount,
		Currency:      order.Currency,
		Subtotal:      order.Subtotal.StringFixed(2),
		Tax:           order.TaxAmount.StringFixed(2),
		Total:         order.Total.StringFixed(2),
		PaidAmount:    order.PaidAmount.StringFixed(2),
		Pending:       order.Total.Sub(order.PaidAmount).StringFixed(2),
		PaymentStatus: string(order.PaymentStatus),
	}
	if order.Notes != nil {
		doc.Notes = *order.Notes
	}

	for _, line := range order.Lines {
		name := "unknown product"
		if product, ok := products[line.ProductID]; ok {
			name = fmt.Sprintf("%s %s", product.Code, product.Name)
		}
		doc.Lines = append(doc.Lines, pdf.OrderLine{
			Product:   name,
			Quantity:  line.Quantity.String(),
			UnitPrice: line.UnitPrice.StringFixed(2),
			Discount:  line.DiscountPercent.StringFixed(1),
			Subtotal:  line.Subtotal.StringFixed(2),
		})
	}

	for _, payment := range payments {
		doc.Payments = append(doc.Payments, pdf.PaymentLine{
			Number: payment.PaymentNumber,
			Date:   payment.PaidAt.Format(dateLayout),
			Method: string(payment.Method),
			Amount: payment.Amount.StringFixed(2),
		})
	}

	return doc, nil
}

func formatOptionalDate(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.Format(dateLayout)
}
