package repository

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	orderdomain "github.com/indpack-sist/spi-backend/internal/order/domain"
	"gorm.io/gorm"
)

const orderColumns = `id, order_number, supplier_id, bank_account_id,
	issue_date, estimated_delivery_date, actual_delivery_date, due_date,
	purchase_type, credit_days, priority,
	currency, exchange_rate, tax_regime, tax_rate_percent,
	subtotal, tax_amount, total, paid_amount, payment_status, status,
	responsible_id, created_by_id, inventory_receipt_id, notes,
	created_at, updated_at`

type repo struct{}

func Provide() orderdomain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, tx *gorm.DB, order *orderdomain.PurchaseOrder) error {
	return tx.WithContext(ctx).Exec(
		`INSERT INTO purchase_orders (`+orderColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		order.ID,
		order.OrderNumber,
		order.SupplierID,
		order.BankAccountID,
		order.IssueDate,
		order.EstimatedDeliveryDate,
		order.ActualDeliveryDate,
		order.DueDate,
		order.PurchaseType,
		order.CreditDays,
		order.Priority,
		order.Currency,
		order.ExchangeRate,
		order.TaxRegime,
		order.TaxRatePercent,
		order.Subtotal,
		order.TaxAmount,
		order.Total,
		order.PaidAmount,
		order.PaymentStatus,
		order.Status,
		order.ResponsibleID,
		order.CreatedByID,
		order.InventoryReceiptID,
		order.Notes,
		order.CreatedAt,
		order.UpdatedAt,
	).Error
}

func (r *repo) InsertLines(ctx context.Context, tx *gorm.DB, lines []orderdomain.PurchaseOrderLine) error {
	for _, line := range lines {
		if err := tx.WithContext(ctx).Exec(
			`INSERT INTO purchase_order_lines (
				id, order_id, product_id, quantity, unit_price, discount_percent, subtotal, created_at
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			line.ID,
			line.OrderID,
			line.ProductID,
			line.Quantity,
			line.UnitPrice,
			line.DiscountPercent,
			line.Subtotal,
			line.CreatedAt,
		).Error; err != nil {
			return err
		}
	}
	return nil
}

func (r *repo) DeleteLines(ctx context.Context, tx *gorm.DB, orderID snowflake.ID) error {
	return tx.WithContext(ctx).Exec(
		`DELETE FROM purchase_order_lines WHERE order_id = ?`,
		orderID,
	).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*orderdomain.PurchaseOrder, error) {
	return r.findByID(ctx, db, id, false)
}

func (r *repo) FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id snowflake.ID) (*orderdomain.PurchaseOrder, error) {
	return r.findByID(ctx, tx, id, true)
}

func (r *repo) findByID(ctx context.Context, db *gorm.DB, id snowflake.ID, forUpdate bool) (*orderdomain.PurchaseOrder, error) {
	query := `SELECT ` + orderColumns + ` FROM purchase_orders WHERE id = ? LIMIT 1`
	if forUpdate && db.Dialector.Name() != "sqlite" {
		query += ` FOR UPDATE`
	}

	var order orderdomain.PurchaseOrder
	err := db.WithContext(ctx).Raw(query, id).Scan(&order).Error
	if err != nil {
		return nil, err
	}
	if order.ID == 0 {
		return nil, orderdomain.ErrNotFound
	}
	return &order, nil
}

func (r *repo) FindLines(ctx context.Context, db *gorm.DB, orderID snowflake.ID) ([]orderdomain.PurchaseOrderLine, error) {
	var lines []orderdomain.PurchaseOrderLine
	err := db.WithContext(ctx).Raw(
		`SELECT id, order_id, product_id, quantity, unit_price, discount_percent, subtotal, created_at
		 FROM purchase_order_lines
		 WHERE order_id = ?
		 ORDER BY id ASC`,
		orderID,
	).Scan(&lines).Error
	if err != nil {
		return nil, err
	}
	return lines, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, req orderdomain.ListRequest) ([]orderdomain.PurchaseOrder, int64, error) {
	where := make([]string, 0, 4)
	args := make([]interface{}, 0, 4)

	if req.Status != "" {
		where = append(where, "status = ?")
		args = append(args, req.Status)
	}
	if req.Priority != "" {
		where = append(where, "priority = ?")
		args = append(args, req.Priority)
	}
	if req.From != nil {
		where = append(where, "issue_date >= ?")
		args = append(args, *req.From)
	}
	if req.To != nil {
		where = append(where, "issue_date <= ?")
		args = append(args, *req.To)
	}

	clause := ""
	if len(where) > 0 {
		clause = " WHERE " + strings.Join(where, " AND ")
	}

	var total int64
	if err := db.WithContext(ctx).Raw(
		`SELECT COUNT(1) FROM purchase_orders`+clause, args...,
	).Scan(&total).Error; err != nil {
		return nil, 0, err
	}

	limit := req.Limit
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	offset := req.Offset
	if offset < 0 {
		offset = 0
	}

	var orders []orderdomain.PurchaseOrder
	listArgs := append(args, limit, offset)
	if err := db.WithContext(ctx).Raw(
		`SELECT `+orderColumns+` FROM purchase_orders`+clause+`
		 ORDER BY issue_date DESC, id DESC
		 LIMIT ? OFFSET ?`,
		listArgs...,
	).Scan(&orders).Error; err != nil {
		return nil, 0, err
	}

	return orders, total, nil
}

func (r *repo) UpdateEditable(ctx context.Context, tx *gorm.DB, order *orderdomain.PurchaseOrder) error {
	return tx.WithContext(ctx).Exec(
		`UPDATE purchase_orders SET
			supplier_id = ?, bank_account_id = ?,
			issue_date = ?, estimated_delivery_date = ?, due_date = ?,
			purchase_type = ?, credit_days = ?, priority = ?,
			currency = ?, exchange_rate = ?, tax_regime = ?, tax_rate_percent = ?,
			subtotal = ?, tax_amount = ?, total = ?, payment_status = ?,
			notes = ?, updated_at = ?
		 WHERE id = ?`,
		order.SupplierID,
		order.BankAccountID,
		order.IssueDate,
		order.EstimatedDeliveryDate,
		order.DueDate,
		order.PurchaseType,
		order.CreditDays,
		order.Priority,
		order.Currency,
		order.ExchangeRate,
		order.TaxRegime,
		order.TaxRatePercent,
		order.Subtotal,
		order.TaxAmount,
		order.Total,
		order.PaymentStatus,
		order.Notes,
		time.Now().UTC(),
		order.ID,
	).Error
}

func (r *repo) UpdateStatus(ctx context.Context, tx *gorm.DB, order *orderdomain.PurchaseOrder) error {
	return tx.WithContext(ctx).Exec(
		`UPDATE purchase_orders SET
			status = ?, actual_delivery_date = ?, inventory_receipt_id = ?, updated_at = ?
		 WHERE id = ?`,
		order.Status,
		order.ActualDeliveryDate,
		order.InventoryReceiptID,
		time.Now().UTC(),
		order.ID,
	).Error
}

func (r *repo) UpdatePriority(ctx context.Context, db *gorm.DB, id snowflake.ID, priority orderdomain.Priority) error {
	res := db.WithContext(ctx).Exec(
		`UPDATE purchase_orders SET priority = ?, updated_at = ? WHERE id = ?`,
		priority,
		time.Now().UTC(),
		id,
	)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return orderdomain.ErrNotFound
	}
	return nil
}
