package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
)

type Product struct {
	ID        snowflake.ID    `json:"id" gorm:"primaryKey"`
	Code      string          `json:"code" gorm:"type:text;not null;uniqueIndex"`
	Name      string          `json:"name" gorm:"type:text;not null"`
	Unit      string          `json:"unit" gorm:"type:text;not null"`
	Stock     decimal.Decimal `json:"stock" gorm:"type:numeric(14,2);not null;default:0"`
	UnitCost  decimal.Decimal `json:"unit_cost" gorm:"column:unit_cost;type:numeric(14,2);not null;default:0"`
	IsActive  bool            `json:"is_active" gorm:"column:is_active;not null;default:true"`
	CreatedAt time.Time       `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time       `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (Product) TableName() string { return "products" }
