package pdf

import (
	"context"
	"io"
)

// Provider renders fully hydrated order data to a document. It never
// touches storage; callers assemble OrderDocument themselves.
type Provider interface {
	GenerateOrder(ctx context.Context, data OrderDocument) (io.Reader, error)
}

// OrderDocument carries everything the order sheet shows, already
// formatted for print.
type OrderDocument struct {
	OrderNumber  string
	Status       string
	Priority     string
	IssueDate    string
	DueDate      string
	DeliveryDate string

	SupplierName  string
	SupplierTaxID string
	BankAccount   string

	Currency string
	Subtotal string
	Tax      string
	Total    string

	PaidAmount    string
	Pending       string
	PaymentStatus string

	Notes string

	Lines    []OrderLine
	Payments []PaymentLine
}

type OrderLine struct {
	Product   string
	Quantity  string
	UnitPrice string
	Discount  string
	Subtotal  string
}

type PaymentLine struct {
	Number string
	Date   string
	Method string
	Amount string
}
