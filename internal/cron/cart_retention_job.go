package cron

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/ovenmade/bakehouse-backend/pkg/logger"
)

const cartRetentionDays = 60

type cartCleanupRepo interface {
	DeleteOlderThan(ctx context.Context, tx *gorm.DB, cutoff time.Time) (int64, error)
}

// CartRetentionJobParams configure the abandoned cart sweeper.
type CartRetentionJobParams struct {
	Logger     *logger.Logger
	DB         txRunner
	Repository cartCleanupRepo
	Retention  int
}

// NewCartRetentionJob drops cart items that have not been touched in months.
func NewCartRetentionJob(params CartRetentionJobParams) (Job, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.DB == nil {
		return nil, fmt.Errorf("db runner required")
	}
	if params.Repository == nil {
		return nil, fmt.Errorf("cart repository required")
	}
	retention := params.Retention
	if retention <= 0 {
		retention = cartRetentionDays
	}
	return &cartRetentionJob{
		logg:      params.Logger,
		db:        params.DB,
		repo:      params.Repository,
		retention: retention,
		now:       time.Now,
	}, nil
}

type cartRetentionJob struct {
	logg      *logger.Logger
	db        txRunner
	repo      cartCleanupRepo
	retention int
	now       func() time.Time
}

func (j *cartRetentionJob) Name() string { return "cart-retention" }

func (j *cartRetentionJob) Run(ctx context.Context) error {
	cutoff := j.now().UTC().Add(-time.Duration(j.retention) * 24 * time.Hour)
	var deleted int64
	err := j.db.WithTx(ctx, func(tx *gorm.DB) error {
		rows, err := j.repo.DeleteOlderThan(ctx, tx, cutoff)
		if err != nil {
			return err
		}
		deleted = rows
		return nil
	})
	if err != nil {
		return fmt.Errorf("cart retention: %w", err)
	}
	logCtx := j.logg.WithFields(ctx, map[string]any{
		"cutoff":         cutoff,
		"retention_days": j.retention,
		"rows_deleted":   deleted,
	})
	j.logg.Info(logCtx, "cart retention sweep complete")
	return nil
}
