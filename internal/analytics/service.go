package analytics

import (
	"context"

	"github.com/shopspring/decimal"
	"go.uber.org/multierr"

	pkgerrors "github.com/ovenmade/bakehouse-backend/pkg/errors"
)

const defaultTopProductsLimit = 5

// dashboardStore is the aggregation surface the service depends on.
type dashboardStore interface {
	TotalRevenue(ctx context.Context, rng DateRange) (decimal.Decimal, error)
	OrderCount(ctx context.Context, rng DateRange) (int64, error)
	OrdersByStatus(ctx context.Context, rng DateRange) ([]StatusCount, error)
	RevenueByDay(ctx context.Context, rng DateRange) ([]DailyRevenue, error)
	TopProducts(ctx context.Context, rng DateRange, limit int) ([]TopProduct, error)
}

// Service provides sales KPIs for the admin dashboard.
type Service interface {
	Dashboard(ctx context.Context, rng DateRange) (*DashboardDTO, error)
}

type service struct {
	store dashboardStore
}

// NewService validates dependencies and returns an analytics service.
func NewService(store dashboardStore) (Service, error) {
	if store == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "analytics service requires a store")
	}
	return &service{store: store}, nil
}

func (s *service) Dashboard(ctx context.Context, rng DateRange) (*DashboardDTO, error) {
	if rng.Start.IsZero() || rng.End.IsZero() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "date range is required")
	}
	if !rng.End.After(rng.Start) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "end date must be after start date")
	}

	dto := &DashboardDTO{OrdersByStatus: map[string]int64{}}

	var errs []error
	revenue, err := s.store.TotalRevenue(ctx, rng)
	if err != nil {
		errs = append(errs, err)
	} else {
		dto.TotalRevenue = revenue
	}

	count, err := s.store.OrderCount(ctx, rng)
	if err != nil {
		errs = append(errs, err)
	} else {
		dto.OrderCount = count
	}

	byStatus, err := s.store.OrdersByStatus(ctx, rng)
	if err != nil {
		errs = append(errs, err)
	} else {
		for _, row := range byStatus {
			dto.OrdersByStatus[row.Status] = row.Count
		}
	}

	byDay, err := s.store.RevenueByDay(ctx, rng)
	if err != nil {
		errs = append(errs, err)
	} else {
		dto.RevenueByDay = byDay
	}

	top, err := s.store.TopProducts(ctx, rng, defaultTopProductsLimit)
	if err != nil {
		errs = append(errs, err)
	} else {
		dto.TopProducts = top
	}

	if combined := multierr.Combine(errs...); combined != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, combined, "failed to build dashboard")
	}

	if dto.OrderCount > 0 {
		dto.AverageOrderValue = dto.TotalRevenue.Div(decimal.NewFromInt(dto.OrderCount)).Round(2)
	}
	return dto, nil
}
