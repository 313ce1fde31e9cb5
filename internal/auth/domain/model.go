package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

type Employee struct {
	ID        snowflake.ID `json:"id" gorm:"primaryKey"`
	Name      string       `json:"name" gorm:"type:text;not null"`
	Email     string       `json:"email" gorm:"type:text;not null;uniqueIndex"`
	IsActive  bool         `json:"is_active" gorm:"column:is_active;not null;default:true"`
	CreatedAt time.Time    `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (Employee) TableName() string { return "employees" }

// Session is an opaque bearer token issued by the identity service.
// Token issuance and revocation live outside this module; only lookup
// is implemented here.
type Session struct {
	Token      string       `json:"-" gorm:"primaryKey;type:text"`
	EmployeeID snowflake.ID `json:"employee_id" gorm:"column:employee_id;not null;index"`
	ExpiresAt  time.Time    `json:"expires_at" gorm:"column:expires_at;not null"`
	CreatedAt  time.Time    `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (Session) TableName() string { return "employee_sessions" }
