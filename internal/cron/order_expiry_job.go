package cron

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/multierr"
	"gorm.io/gorm"

	"github.com/ovenmade/bakehouse-backend/internal/orders"
	"github.com/ovenmade/bakehouse-backend/pkg/db/models"
	"github.com/ovenmade/bakehouse-backend/pkg/enums"
	"github.com/ovenmade/bakehouse-backend/pkg/logger"
)

const orderExpirationDays = 10

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type orderStatusUpdater interface {
	UpdateStatus(ctx context.Context, id uuid.UUID, status enums.OrderStatus) error
}

type expirableOrderRepo interface {
	FindPendingBefore(ctx context.Context, cutoff time.Time) ([]models.Order, error)
	orderStatusUpdater
}

// OrderExpiryJobParams configure the pending order expiry scheduler.
type OrderExpiryJobParams struct {
	Logger     *logger.Logger
	DB         txRunner
	Repository expirableOrderRepo
	// RepoFactory scopes each cancellation to its transaction. Defaults to
	// an order repository bound to tx.
	RepoFactory    func(tx *gorm.DB) orderStatusUpdater
	ExpirationDays int
}

// NewOrderExpiryJob cancels orders the bakery never confirmed.
func NewOrderExpiryJob(params OrderExpiryJobParams) (Job, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.DB == nil {
		return nil, fmt.Errorf("db runner required")
	}
	if params.Repository == nil {
		return nil, fmt.Errorf("order repository required")
	}
	expiration := params.ExpirationDays
	if expiration <= 0 {
		expiration = orderExpirationDays
	}
	factory := params.RepoFactory
	if factory == nil {
		factory = func(tx *gorm.DB) orderStatusUpdater {
			return orders.NewRepository(tx)
		}
	}
	return &orderExpiryJob{
		logg:        params.Logger,
		db:          params.DB,
		repo:        params.Repository,
		repoFactory: factory,
		expiration:  expiration,
		now:         time.Now,
	}, nil
}

type orderExpiryJob struct {
	logg        *logger.Logger
	db          txRunner
	repo        expirableOrderRepo
	repoFactory func(tx *gorm.DB) orderStatusUpdater
	expiration  int
	now         func() time.Time
}

func (j *orderExpiryJob) Name() string { return "order-expiry" }

func (j *orderExpiryJob) Run(ctx context.Context) error {
	cutoff := j.now().UTC().Add(-time.Duration(j.expiration) * 24 * time.Hour)
	stale, err := j.repo.FindPendingBefore(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("find stale pending orders: %w", err)
	}
	if len(stale) == 0 {
		return nil
	}

	var cancelled int
	var errs []error
	for _, order := range stale {
		err := j.db.WithTx(ctx, func(tx *gorm.DB) error {
			return j.repoFactory(tx).UpdateStatus(ctx, order.ID, enums.OrderStatusCancelled)
		})
		if err != nil {
			errs = append(errs, fmt.Errorf("cancel order %s: %w", order.ID, err))
			continue
		}
		cancelled++
	}

	logCtx := j.logg.WithFields(ctx, map[string]any{
		"cutoff":          cutoff,
		"expiration_days": j.expiration,
		"stale":           len(stale),
		"cancelled":       cancelled,
	})
	j.logg.Info(logCtx, "order expiry sweep complete")
	return multierr.Combine(errs...)
}
