package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
)

type Service interface {
	Register(ctx context.Context, orderID snowflake.ID, req RegisterRequest) (*RegisterResult, error)
	Void(ctx context.Context, orderID, paymentID snowflake.ID) (*Balance, error)
	List(ctx context.Context, orderID snowflake.ID) ([]Payment, error)
	Summary(ctx context.Context, orderID snowflake.ID) (*Summary, error)
}

type RegisterRequest struct {
	PaidAt        time.Time
	Amount        decimal.Decimal
	Method        Method
	OperationRef  *string
	BankAccountID *snowflake.ID
	Notes         *string

	// RegisteredBy is resolved from the authenticated session.
	RegisteredBy snowflake.ID
}

type RegisterResult struct {
	Payment Payment `json:"payment"`
	Balance Balance `json:"balance"`
}
