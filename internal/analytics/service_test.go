package analytics

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	pkgerrors "github.com/ovenmade/bakehouse-backend/pkg/errors"
)

type stubDashboardStore struct {
	revenue     decimal.Decimal
	orderCount  int64
	byStatus    []StatusCount
	byDay       []DailyRevenue
	topProducts []TopProduct

	revenueErr error
	byDayErr   error
}

func (s *stubDashboardStore) TotalRevenue(ctx context.Context, rng DateRange) (decimal.Decimal, error) {
	return s.revenue, s.revenueErr
}

func (s *stubDashboardStore) OrderCount(ctx context.Context, rng DateRange) (int64, error) {
	return s.orderCount, nil
}

func (s *stubDashboardStore) OrdersByStatus(ctx context.Context, rng DateRange) ([]StatusCount, error) {
	return s.byStatus, nil
}

func (s *stubDashboardStore) RevenueByDay(ctx context.Context, rng DateRange) ([]DailyRevenue, error) {
	return s.byDay, s.byDayErr
}

func (s *stubDashboardStore) TopProducts(ctx context.Context, rng DateRange, limit int) ([]TopProduct, error) {
	return s.topProducts, nil
}

func augustRange() DateRange {
	return DateRange{
		Start: time.Date(2026, time.August, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestDashboardAggregatesKPIs(t *testing.T) {
	store := &stubDashboardStore{
		revenue:    decimal.NewFromInt(1500),
		orderCount: 4,
		byStatus: []StatusCount{
			{Status: "pending", Count: 1},
			{Status: "delivered", Count: 3},
		},
		byDay: []DailyRevenue{
			{Day: "2026-08-01", Revenue: decimal.NewFromInt(500)},
			{Day: "2026-08-02", Revenue: decimal.NewFromInt(1000)},
		},
		topProducts: []TopProduct{
			{ProductName: "Sourdough Loaf", UnitsSold: 12, Revenue: decimal.NewFromInt(900)},
		},
	}

	svc, err := NewService(store)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	dto, err := svc.Dashboard(context.Background(), augustRange())
	if err != nil {
		t.Fatalf("dashboard: %v", err)
	}

	if !dto.TotalRevenue.Equal(decimal.NewFromInt(1500)) {
		t.Fatalf("expected revenue 1500, got %s", dto.TotalRevenue)
	}
	if dto.OrderCount != 4 {
		t.Fatalf("expected 4 orders, got %d", dto.OrderCount)
	}
	if !dto.AverageOrderValue.Equal(decimal.NewFromFloat(375)) {
		t.Fatalf("expected AOV 375, got %s", dto.AverageOrderValue)
	}
	if dto.OrdersByStatus["delivered"] != 3 {
		t.Fatalf("expected 3 delivered orders, got %d", dto.OrdersByStatus["delivered"])
	}
	if len(dto.RevenueByDay) != 2 || len(dto.TopProducts) != 1 {
		t.Fatalf("unexpected series lengths: %d days, %d products", len(dto.RevenueByDay), len(dto.TopProducts))
	}
}

func TestDashboardZeroOrdersAvoidsDivideByZero(t *testing.T) {
	svc, err := NewService(&stubDashboardStore{})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	dto, err := svc.Dashboard(context.Background(), augustRange())
	if err != nil {
		t.Fatalf("dashboard: %v", err)
	}
	if !dto.AverageOrderValue.IsZero() {
		t.Fatalf("expected zero AOV, got %s", dto.AverageOrderValue)
	}
}

func TestDashboardValidatesRange(t *testing.T) {
	svc, err := NewService(&stubDashboardStore{})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	_, err = svc.Dashboard(context.Background(), DateRange{})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}

	rng := augustRange()
	rng.End = rng.Start
	_, err = svc.Dashboard(context.Background(), rng)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestDashboardCombinesQueryFailures(t *testing.T) {
	store := &stubDashboardStore{
		revenueErr: errors.New("revenue query timed out"),
		byDayErr:   errors.New("series query timed out"),
	}
	svc, err := NewService(store)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	_, err = svc.Dashboard(context.Background(), augustRange())
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeDependency {
		t.Fatalf("expected dependency error, got %v", err)
	}
}
