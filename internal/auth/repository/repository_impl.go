package repository

import (
	"context"
	"time"

	authdomain "github.com/indpack-sist/spi-backend/internal/auth/domain"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) authdomain.Repository {
	return &repository{db: db}
}

func (r *repository) FindEmployeeByToken(ctx context.Context, token string) (*authdomain.Employee, error) {
	var row struct {
		authdomain.Employee
		ExpiresAt time.Time `gorm:"column:expires_at"`
	}
	err := r.db.WithContext(ctx).Raw(
		`SELECT e.id, e.name, e.email, e.is_active, e.created_at, s.expires_at
		 FROM employee_sessions s
		 JOIN employees e ON e.id = s.employee_id
		 WHERE s.token = ? AND e.is_active = true
		 LIMIT 1`,
		token,
	).Scan(&row).Error
	if err != nil {
		return nil, err
	}
	if row.ID == 0 {
		return nil, authdomain.ErrUnauthenticated
	}
	if !row.ExpiresAt.IsZero() && row.ExpiresAt.Before(time.Now().UTC()) {
		return nil, authdomain.ErrSessionExpired
	}
	return &row.Employee, nil
}
