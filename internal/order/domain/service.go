package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/indpack-sist/spi-backend/internal/tax"
	"github.com/shopspring/decimal"
)

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*OrderWithLines, error)
	Get(ctx context.Context, id snowflake.ID) (*OrderWithLines, error)
	List(ctx context.Context, req ListRequest) ([]PurchaseOrder, int64, error)
	Update(ctx context.Context, id snowflake.ID, req UpdateRequest) (*OrderWithLines, error)
	SetStatus(ctx context.Context, id snowflake.ID, req SetStatusRequest) (*PurchaseOrder, error)
	SetPriority(ctx context.Context, id snowflake.ID, priority Priority) (*PurchaseOrder, error)
}

type LineRequest struct {
	ProductID       snowflake.ID
	Quantity        decimal.Decimal
	UnitPrice       decimal.Decimal
	DiscountPercent decimal.Decimal
}

type CreateRequest struct {
	SupplierID    snowflake.ID
	BankAccountID *snowflake.ID

	IssueDate             time.Time
	EstimatedDeliveryDate *time.Time
	DueDate               *time.Time

	PurchaseType PurchaseType
	CreditDays   int
	Priority     Priority

	Currency     string
	ExchangeRate *decimal.Decimal

	TaxRegime      tax.Regime
	TaxRatePercent *decimal.Decimal

	Notes *string
	Lines []LineRequest

	// CreatedBy is resolved from the authenticated session, never from
	// the request body.
	CreatedBy     snowflake.ID
	ResponsibleID *snowflake.ID
}

// UpdateRequest replaces the editable surface of a waiting order
// wholesale, lines included.
type UpdateRequest struct {
	SupplierID    snowflake.ID
	BankAccountID *snowflake.ID

	IssueDate             time.Time
	EstimatedDeliveryDate *time.Time
	DueDate               *time.Time

	PurchaseType PurchaseType
	CreditDays   int
	Priority     Priority

	Currency     string
	ExchangeRate *decimal.Decimal

	TaxRegime      tax.Regime
	TaxRatePercent *decimal.Decimal

	Notes *string
	Lines []LineRequest
}

type SetStatusRequest struct {
	Status             Status
	ActualDeliveryDate *time.Time

	// Employee performing the transition; recorded on any generated
	// inventory receipt.
	EmployeeID snowflake.ID
}

type ListRequest struct {
	Status   Status
	Priority Priority
	From     *time.Time
	To       *time.Time
	Limit    int
	Offset   int
}
