package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

type Supplier struct {
	ID        snowflake.ID `json:"id" gorm:"primaryKey"`
	Name      string       `json:"name" gorm:"type:text;not null"`
	TaxID     string       `json:"tax_id" gorm:"column:tax_id;type:text"`
	Email     *string      `json:"email,omitempty" gorm:"type:text"`
	Phone     *string      `json:"phone,omitempty" gorm:"type:text"`
	IsActive  bool         `json:"is_active" gorm:"column:is_active;not null;default:true"`
	CreatedAt time.Time    `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (Supplier) TableName() string { return "suppliers" }

type BankAccount struct {
	ID        snowflake.ID `json:"id" gorm:"primaryKey"`
	Bank      string       `json:"bank" gorm:"type:text;not null"`
	Number    string       `json:"number" gorm:"type:text;not null"`
	Currency  string       `json:"currency" gorm:"type:char(3);not null"`
	IsActive  bool         `json:"is_active" gorm:"column:is_active;not null;default:true"`
	CreatedAt time.Time    `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (BankAccount) TableName() string { return "bank_accounts" }
