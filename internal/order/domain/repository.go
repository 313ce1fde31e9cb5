package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

// Repository is stateless; every method runs on the handle the caller
// provides, so mutations compose into the caller's transaction.
type Repository interface {
	Insert(ctx context.Context, tx *gorm.DB, order *PurchaseOrder) error
	InsertLines(ctx context.Context, tx *gorm.DB, lines []PurchaseOrderLine) error
	DeleteLines(ctx context.Context, tx *gorm.DB, orderID snowflake.ID) error

	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*PurchaseOrder, error)
	// FindByIDForUpdate locks the order row for the duration of tx.
	FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id snowflake.ID) (*PurchaseOrder, error)
	FindLines(ctx context.Context, db *gorm.DB, orderID snowflake.ID) ([]PurchaseOrderLine, error)
	List(ctx context.Context, db *gorm.DB, req ListRequest) ([]PurchaseOrder, int64, error)

	UpdateEditable(ctx context.Context, tx *gorm.DB, order *PurchaseOrder) error
	UpdateStatus(ctx context.Context, tx *gorm.DB, order *PurchaseOrder) error
	UpdatePriority(ctx context.Context, db *gorm.DB, id snowflake.ID, priority Priority) error
}
