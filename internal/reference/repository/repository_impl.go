package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	referencedomain "github.com/indpack-sist/spi-backend/internal/reference/domain"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) referencedomain.Repository {
	return &repository{db: db}
}

func (r *repository) FindSupplier(ctx context.Context, id snowflake.ID) (*referencedomain.Supplier, error) {
	var supplier referencedomain.Supplier
	err := r.db.WithContext(ctx).Raw(
		`SELECT id, name, tax_id, email, phone, is_active, created_at
		 FROM suppliers
		 WHERE id = ? AND is_active = true
		 LIMIT 1`,
		id,
	).Scan(&supplier).Error
	if err != nil {
		return nil, err
	}
	if supplier.ID == 0 {
		return nil, referencedomain.ErrSupplierNotFound
	}
	return &supplier, nil
}

func (r *repository) FindBankAccount(ctx context.Context, id snowflake.ID) (*referencedomain.BankAccount, error) {
	var account referencedomain.BankAccount
	err := r.db.WithContext(ctx).Raw(
		`SELECT id, bank, number, currency, is_active, created_at
		 FROM bank_accounts
		 WHERE id = ? AND is_active = true
		 LIMIT 1`,
		id,
	).Scan(&account).Error
	if err != nil {
		return nil, err
	}
	if account.ID == 0 {
		return nil, referencedomain.ErrBankAccountNotFound
	}
	return &account, nil
}
