package migration

import (
	authdomain "github.com/indpack-sist/spi-backend/internal/auth/domain"
	"github.com/indpack-sist/spi-backend/internal/config"
	inventorydomain "github.com/indpack-sist/spi-backend/internal/inventory/domain"
	"github.com/indpack-sist/spi-backend/internal/numbering"
	orderdomain "github.com/indpack-sist/spi-backend/internal/order/domain"
	paymentdomain "github.com/indpack-sist/spi-backend/internal/payment/domain"
	productdomain "github.com/indpack-sist/spi-backend/internal/product/domain"
	referencedomain "github.com/indpack-sist/spi-backend/internal/reference/domain"
	"github.com/indpack-sist/spi-backend/internal/seed"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, cfg config.Config) error {
		// Versioned SQL migrations are written for postgres; other
		// dialects (local sqlite, mysql) get the schema from the models.
		if cfg.DBType == "postgres" {
			sqlDB, err := conn.DB()
			if err != nil {
				return err
			}
			if err := RunMigrations(sqlDB); err != nil {
				return err
			}
		} else {
			if err := conn.AutoMigrate(
				&authdomain.Employee{},
				&authdomain.Session{},
				&referencedomain.Supplier{},
				&referencedomain.BankAccount{},
				&productdomain.Product{},
				&numbering.NumberSequence{},
				&orderdomain.PurchaseOrder{},
				&orderdomain.PurchaseOrderLine{},
				&inventorydomain.InventoryReceipt{},
				&inventorydomain.InventoryReceiptLine{},
				&paymentdomain.Payment{},
			); err != nil {
				return err
			}
		}

		if cfg.SeedDemoData {
			return seed.EnsureDemoData(conn)
		}
		return nil
	}),
)
