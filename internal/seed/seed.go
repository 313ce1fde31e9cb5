package seed

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	authdomain "github.com/indpack-sist/spi-backend/internal/auth/domain"
	productdomain "github.com/indpack-sist/spi-backend/internal/product/domain"
	referencedomain "github.com/indpack-sist/spi-backend/internal/reference/domain"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	demoEmployeeEmail = "compras@indpack.local"
	demoSessionToken  = "dev-session-token"
)

// EnsureDemoData seeds an employee with a long-lived session plus a
// supplier, a bank account and a few products so a fresh local install
// can exercise the API immediately. Each entity is seeded only when its
// table is empty; existing data is never touched.
func EnsureDemoData(db *gorm.DB) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		return err
	}

	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureEmployee(tx, node); err != nil {
			return err
		}
		if err := ensureSupplier(tx, node); err != nil {
			return err
		}
		if err := ensureBankAccount(tx, node); err != nil {
			return err
		}
		return ensureProducts(tx, node)
	})
}

func ensureEmployee(tx *gorm.DB, node *snowflake.Node) error {
	var count int64
	if err := tx.Model(&authdomain.Employee{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	employee := authdomain.Employee{
		ID:       node.Generate(),
		Name:     "Compras Demo",
		Email:    demoEmployeeEmail,
		IsActive: true,
	}
	if err := tx.Create(&employee).Error; err != nil {
		return err
	}
	return tx.Create(&authdomain.Session{
		Token:      demoSessionToken,
		EmployeeID: employee.ID,
		ExpiresAt:  time.Now().AddDate(1, 0, 0),
	}).Error
}

func ensureSupplier(tx *gorm.DB, node *snowflake.Node) error {
	var count int64
	if err := tx.Model(&referencedomain.Supplier{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	return tx.Create(&referencedomain.Supplier{
		ID:       node.Generate(),
		Name:     "Aceros del Sur SAC",
		TaxID:    "20100123456",
		IsActive: true,
	}).Error
}

func ensureBankAccount(tx *gorm.DB, node *snowflake.Node) error {
	var count int64
	if err := tx.Model(&referencedomain.BankAccount{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	return tx.Create(&referencedomain.BankAccount{
		ID:       node.Generate(),
		Bank:     "BCP",
		Number:   "193-1234567-0-11",
		Currency: "PEN",
		IsActive: true,
	}).Error
}

func ensureProducts(tx *gorm.DB, node *snowflake.Node) error {
	var count int64
	if err := tx.Model(&productdomain.Product{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	products := []productdomain.Product{
		{ID: node.Generate(), Code: "PL-001", Name: "Plancha acero 3mm", Unit: "unidad", Stock: decimal.Zero, IsActive: true},
		{ID: node.Generate(), Code: "TB-004", Name: "Tubo cuadrado 2in", Unit: "unidad", Stock: decimal.Zero, IsActive: true},
		{ID: node.Generate(), Code: "PN-010", Name: "Pintura epoxica gris", Unit: "galon", Stock: decimal.Zero, IsActive: true},
	}
	for _, product := range products {
		if err := tx.Create(&product).Error; err != nil {
			return err
		}
	}
	return nil
}
