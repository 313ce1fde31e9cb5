package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
)

type Repository interface {
	FindSupplier(ctx context.Context, id snowflake.ID) (*Supplier, error)
	FindBankAccount(ctx context.Context, id snowflake.ID) (*BankAccount, error)
}
