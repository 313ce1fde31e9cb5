package service

import (
	"context"
	"fmt"
	"time"

	"github.com/bwmarrin/snowflake"
	inventorydomain "github.com/indpack-sist/spi-backend/internal/inventory/domain"
	"github.com/indpack-sist/spi-backend/internal/numbering"
	productdomain "github.com/indpack-sist/spi-backend/internal/product/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	Log         *zap.Logger
	GenID       *snowflake.Node
	Seq         *numbering.Sequence
	ProductRepo productdomain.Repository
}

type Service struct {
	log         *zap.Logger
	genID       *snowflake.Node
	seq         *numbering.Sequence
	productRepo productdomain.Repository
}

func NewService(p Params) inventorydomain.Generator {
	return &Service{
		log:         p.Log.Named("inventory.generator"),
		genID:       p.GenID,
		seq:         p.Seq,
		productRepo: p.ProductRepo,
	}
}

// GenerateFromOrder creates the receipt header, one receipt line per
// order line, and increments each product's stock. Everything runs on
// tx; a failure anywhere aborts the caller's whole transaction, so a
// header can never outlive its lines or a missed stock increment.
func (s *Service) GenerateFromOrder(ctx context.Context, tx *gorm.DB, in inventorydomain.GenerateInput) (snowflake.ID, error) {
	if len(in.Lines) == 0 {
		return 0, inventorydomain.ErrNoLines
	}
	if in.EmployeeID == 0 {
		return 0, inventorydomain.ErrInvalidEmployee
	}

	receivedAt := in.ReceivedAt
	if receivedAt.IsZero() {
		receivedAt = time.Now().UTC()
	}

	seq, err := s.seq.Next(ctx, tx, numbering.ReceiptScope(receivedAt.Year()))
	if err != nil {
		return 0, err
	}

	receiptID := s.genID.Generate()
	orderID := in.OrderID
	receipt := inventorydomain.InventoryReceipt{
		ID:            receiptID,
		ReceiptNumber: numbering.FormatReceiptNumber(receivedAt.Year(), seq),
		ReceiptType:   inventorydomain.ReceiptTypeFromPurchase,
		SupplierID:    in.SupplierID,
		OrderID:       &orderID,
		Currency:      in.Currency,
		TotalCost:     in.Subtotal,
		Note:          fmt.Sprintf("Auto-generated from purchase order %s", in.OrderNumber),
		EmployeeID:    in.EmployeeID,
		ReceivedAt:    receivedAt,
		CreatedAt:     time.Now().UTC(),
	}

	if err := tx.WithContext(ctx).Exec(
		`INSERT INTO inventory_receipts (
			id, receipt_number, receipt_type, supplier_id, order_id,
			currency, total_cost, note, employee_id, received_at, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		receipt.ID,
		receipt.ReceiptNumber,
		receipt.ReceiptType,
		receipt.SupplierID,
		receipt.OrderID,
		receipt.Currency,
		receipt.TotalCost,
		receipt.Note,
		receipt.EmployeeID,
		receipt.ReceivedAt,
		receipt.CreatedAt,
	).Error; err != nil {
		return 0, err
	}

	for _, line := range in.Lines {
		if err := tx.WithContext(ctx).Exec(
			`INSERT INTO inventory_receipt_lines (
				id, receipt_id, product_id, quantity, unit_cost, line_total, created_at
			) VALUES (?, ?, ?, ?, ?, ?, ?)`,
			s.genID.Generate(),
			receiptID,
			line.ProductID,
			line.Quantity,
			line.UnitCost,
			line.LineTotal,
			time.Now().UTC(),
		).Error; err != nil {
			return 0, err
		}

		if err := s.productRepo.IncrementStock(ctx, tx, line.ProductID, line.Quantity); err != nil {
			return 0, err
		}
	}

	s.log.Info("inventory receipt generated",
		zap.String("receipt_number", receipt.ReceiptNumber),
		zap.String("order_number", in.OrderNumber),
		zap.Int("lines", len(in.Lines)),
	)

	return receiptID, nil
}
