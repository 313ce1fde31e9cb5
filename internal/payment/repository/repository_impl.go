package repository

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	orderdomain "github.com/indpack-sist/spi-backend/internal/order/domain"
	paymentdomain "github.com/indpack-sist/spi-backend/internal/payment/domain"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const paymentColumns = `id, payment_number, order_id, paid_at, amount, method,
	operation_ref, bank_account_id, notes, registered_by_id, created_at`

type repo struct{}

func Provide() paymentdomain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, tx *gorm.DB, payment *paymentdomain.Payment) error {
	return tx.WithContext(ctx).Exec(
		`INSERT INTO order_payments (`+paymentColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		payment.ID,
		payment.PaymentNumber,
		payment.OrderID,
		payment.PaidAt,
		payment.Amount,
		payment.Method,
		payment.OperationRef,
		payment.BankAccountID,
		payment.Notes,
		payment.RegisteredByID,
		payment.CreatedAt,
	).Error
}

func (r *repo) Delete(ctx context.Context, tx *gorm.DB, id snowflake.ID) error {
	res := tx.WithContext(ctx).Exec(`DELETE FROM order_payments WHERE id = ?`, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return paymentdomain.ErrNotFound
	}
	return nil
}

func (r *repo) FindByOrder(ctx context.Context, db *gorm.DB, orderID, paymentID snowflake.ID) (*paymentdomain.Payment, error) {
	var payment paymentdomain.Payment
	err := db.WithContext(ctx).Raw(
		`SELECT `+paymentColumns+` FROM order_payments WHERE id = ? AND order_id = ? LIMIT 1`,
		paymentID, orderID,
	).Scan(&payment).Error
	if err != nil {
		return nil, err
	}
	if payment.ID == 0 {
		return nil, paymentdomain.ErrNotFound
	}
	return &payment, nil
}

func (r *repo) ListByOrder(ctx context.Context, db *gorm.DB, orderID snowflake.ID) ([]paymentdomain.Payment, error) {
	var payments []paymentdomain.Payment
	err := db.WithContext(ctx).Raw(
		`SELECT `+paymentColumns+` FROM order_payments WHERE order_id = ? ORDER BY paid_at ASC, id ASC`,
		orderID,
	).Scan(&payments).Error
	if err != nil {
		return nil, err
	}
	return payments, nil
}

func (r *repo) SumByOrder(ctx context.Context, db *gorm.DB, orderID snowflake.ID) (decimal.Decimal, int64, error) {
	var row struct {
		Total decimal.Decimal
		Count int64
	}
	err := db.WithContext(ctx).Raw(
		`SELECT COALESCE(SUM(amount), 0) AS total, COUNT(1) AS count
		 FROM order_payments WHERE order_id = ?`,
		orderID,
	).Scan(&row).Error
	if err != nil {
		return decimal.Zero, 0, err
	}
	return row.Total, row.Count, nil
}

func (r *repo) UpdateOrderBalance(ctx context.Context, tx *gorm.DB, orderID snowflake.ID, paid decimal.Decimal, status orderdomain.PaymentStatus) error {
	res := tx.WithContext(ctx).Exec(
		`UPDATE purchase_orders SET paid_amount = ?, payment_status = ?, updated_at = ? WHERE id = ?`,
		paid, status, time.Now().UTC(), orderID,
	)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return orderdomain.ErrNotFound
	}
	return nil
}
