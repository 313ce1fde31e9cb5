package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Repository is stateless; mutating methods run on the transaction the
// caller is already inside.
type Repository interface {
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Product, error)
	FindByIDs(ctx context.Context, db *gorm.DB, ids []snowflake.ID) (map[snowflake.ID]Product, error)
	IncrementStock(ctx context.Context, tx *gorm.DB, id snowflake.ID, quantity decimal.Decimal) error
}
