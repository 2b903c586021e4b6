package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"urbanvibe-api/internal/core/database"
)

type HealthRepo struct {
	db      *gorm.DB
	timeout time.Duration
}

func NewHealthRepo(db *gorm.DB, timeout time.Duration) *HealthRepo {
	return &HealthRepo{db: db, timeout: timeout}
}

// Ping runs a trivial query through the pool.
func (r *HealthRepo) Ping(ctx context.Context) error {
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}
	var one int
	if err := r.db.WithContext(ctx).Raw("SELECT 1").Scan(&one).Error; err != nil {
		return database.Classify("ping", err)
	}
	return nil
}
