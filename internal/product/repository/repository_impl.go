package repository

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	productdomain "github.com/indpack-sist/spi-backend/internal/product/domain"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() productdomain.Repository {
	return &repo{}
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*productdomain.Product, error) {
	var product productdomain.Product
	err := db.WithContext(ctx).Raw(
		`SELECT id, code, name, unit, stock, unit_cost, is_active, created_at, updated_at
		 FROM products
		 WHERE id = ?
		 LIMIT 1`,
		id,
	).Scan(&product).Error
	if err != nil {
		return nil, err
	}
	if product.ID == 0 {
		return nil, productdomain.ErrNotFound
	}
	return &product, nil
}

func (r *repo) FindByIDs(ctx context.Context, db *gorm.DB, ids []snowflake.ID) (map[snowflake.ID]productdomain.Product, error) {
	if len(ids) == 0 {
		return map[snowflake.ID]productdomain.Product{}, nil
	}

	var products []productdomain.Product
	err := db.WithContext(ctx).Raw(
		`SELECT id, code, name, unit, stock, unit_cost, is_active, created_at, updated_at
		 FROM products
		 WHERE id IN ?`,
		ids,
	).Scan(&products).Error
	if err != nil {
		return nil, err
	}

	found := make(map[snowflake.ID]productdomain.Product, len(products))
	for _, product := range products {
		found[product.ID] = product
	}
	return found, nil
}

func (r *repo) IncrementStock(ctx context.Context, tx *gorm.DB, id snowflake.ID, quantity decimal.Decimal) error {
	res := tx.WithContext(ctx).Exec(
		`UPDATE products
		 SET stock = stock + ?, updated_at = ?
		 WHERE id = ?`,
		quantity,
		time.Now().UTC(),
		id,
	)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return productdomain.ErrNotFound
	}
	return nil
}
