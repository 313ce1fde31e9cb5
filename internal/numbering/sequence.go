package numbering

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Sequence hands out gap-free-enough sequential numbers per scope.
//
// Allocation is a single atomic upsert on the number_sequences row, so
// two concurrent callers can never observe the same value. Callers pass
// the transaction they are already inside; the allocated number commits
// or rolls back with the rest of their work.
type Sequence struct {
	log *zap.Logger
}

func NewSequence(log *zap.Logger) *Sequence {
	return &Sequence{log: log.Named("numbering")}
}

// NumberSequence is the per-scope counter row.
type NumberSequence struct {
	Scope     string `gorm:"primaryKey;type:text"`
	LastValue int64  `gorm:"column:last_value;not null"`
}

func (NumberSequence) TableName() string { return "number_sequences" }

// Next increments and returns the counter for scope inside tx.
func (s *Sequence) Next(ctx context.Context, tx *gorm.DB, scope string) (int64, error) {
	if scope == "" {
		return 0, errors.New("empty sequence scope")
	}

	upsert := `INSERT INTO number_sequences (scope, last_value)
		 VALUES (?, 1)
		 ON CONFLICT (scope) DO UPDATE SET last_value = number_sequences.last_value + 1`
	if tx.Dialector.Name() == "mysql" {
		upsert = `INSERT INTO number_sequences (scope, last_value)
		 VALUES (?, 1)
		 ON DUPLICATE KEY UPDATE last_value = last_value + 1`
	}
	if err := tx.WithContext(ctx).Exec(upsert, scope).Error; err != nil {
		return 0, err
	}

	var seq int64
	if err := tx.WithContext(ctx).Raw(
		`SELECT last_value FROM number_sequences WHERE scope = ?`,
		scope,
	).Scan(&seq).Error; err != nil {
		return 0, err
	}
	if seq <= 0 {
		return 0, errors.New("sequence row missing after upsert")
	}
	return seq, nil
}
