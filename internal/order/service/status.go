package service

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	inventorydomain "github.com/indpack-sist/spi-backend/internal/inventory/domain"
	orderdomain "github.com/indpack-sist/spi-backend/internal/order/domain"
	pkgdb "github.com/indpack-sist/spi-backend/pkg/db"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SetStatus moves an order along the lifecycle under a row lock. The
// transition into received generates the inventory receipt and stock
// increments in the same transaction; repeating received on an already
// received order is a no-op rather than an error.
func (s *Service) SetStatus(ctx context.Context, id snowflake.ID, req orderdomain.SetStatusRequest) (*orderdomain.PurchaseOrder, error) {
	if !req.Status.Valid() {
		return nil, orderdomain.ErrInvalidStatus
	}
	if req.EmployeeID == 0 {
		return nil, orderdomain.ErrEmployeeRequired
	}

	ctx, cancel := context.WithTimeout(ctx, s.lockTimeout)
	defer cancel()

	var (
		result  *orderdomain.PurchaseOrder
		noop    bool
		receipt string
	)

	err := s.db.Transaction(func(tx *gorm.DB) error {
		order, err := s.repo.FindByIDForUpdate(ctx, tx, id)
		if err != nil {
			return err
		}

		if order.Status == orderdomain.StatusReceived && req.Status == orderdomain.StatusReceived {
			noop = true
			result = order
			return nil
		}
		if !orderdomain.CanTransition(order.Status, req.Status) {
			return orderdomain.ErrInvalidTransition
		}

		if req.Status == orderdomain.StatusReceived {
			receivedAt := time.Now().UTC()
			if req.ActualDeliveryDate != nil {
				receivedAt = *req.ActualDeliveryDate
			}

			// Guard against a receipt surviving from a previous
			// attempt: the side effect must happen exactly once.
			if order.InventoryReceiptID == nil {
				lines, err := s.repo.FindLines(ctx, tx, order.ID)
				if err != nil {
					return err
				}
				receiptID, err := s.receipts.GenerateFromOrder(ctx, tx, inventorydomain.GenerateInput{
					OrderID:     order.ID,
					OrderNumber: order.OrderNumber,
					SupplierID:  order.SupplierID,
					Currency:    order.Currency,
					Subtotal:    order.Subtotal,
					EmployeeID:  req.EmployeeID,
					ReceivedAt:  receivedAt,
					Lines:       receiptLines(lines),
				})
				if err != nil {
					return err
				}
				order.InventoryReceiptID = &receiptID
				receipt = receiptID.String()
			}
			order.ActualDeliveryDate = &receivedAt
		}

		order.Status = req.Status
		order.UpdatedAt = time.Now().UTC()
		if err := s.repo.UpdateStatus(ctx, tx, order); err != nil {
			return err
		}
		result = order
		return nil
	})
	if err != nil {
		return nil, s.mapTxErr(err)
	}

	if noop {
		s.log.Debug("order already received, no transition applied",
			zap.String("order_number", result.OrderNumber),
		)
		return result, nil
	}

	s.metrics.RecordStatusTransition(string(req.Status))
	s.log.Info("purchase order status changed",
		zap.String("order_number", result.OrderNumber),
		zap.String("status", string(result.Status)),
		zap.String("inventory_receipt_id", receipt),
	)

	return result, nil
}

var oneHundred = decimal.NewFromInt(100)

// receiptLines converts order lines to receipt lines. Unit cost is the
// effective (discounted) unit price, so stock valuation matches what
// was actually paid per unit.
func receiptLines(lines []orderdomain.PurchaseOrderLine) []inventorydomain.GenerateLine {
	out := make([]inventorydomain.GenerateLine, len(lines))
	for i, line := range lines {
		factor := oneHundred.Sub(line.DiscountPercent).Div(oneHundred)
		out[i] = inventorydomain.GenerateLine{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			UnitCost:  line.UnitPrice.Mul(factor).Round(2),
			LineTotal: line.Subtotal,
		}
	}
	return out
}

// mapTxErr translates a lock wait timeout or a deadline hit while
// waiting on the order row into the retryable conflict error.
func (s *Service) mapTxErr(err error) error {
	if pkgdb.IsLockTimeoutErr(err) {
		return orderdomain.ErrConflict
	}
	return err
}
