package analytics

import (
	"time"

	"github.com/shopspring/decimal"
)

// DateRange bounds a dashboard query; Start is inclusive, End exclusive.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// DashboardDTO aggregates the sales KPIs for the admin dashboard.
type DashboardDTO struct {
	TotalRevenue      decimal.Decimal  `json:"total_revenue"`
	OrderCount        int64            `json:"order_count"`
	AverageOrderValue decimal.Decimal  `json:"average_order_value"`
	OrdersByStatus    map[string]int64 `json:"orders_by_status"`
	RevenueByDay      []DailyRevenue   `json:"revenue_by_day"`
	TopProducts       []TopProduct     `json:"top_products"`
}

// DailyRevenue is one point of the revenue time series.
type DailyRevenue struct {
	Day     string          `json:"day"`
	Revenue decimal.Decimal `json:"revenue"`
}

// TopProduct ranks a product by units sold within the range.
type TopProduct struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	UnitsSold   int64           `json:"units_sold"`
	Revenue     decimal.Decimal `json:"revenue"`
}

// StatusCount is a scan target for the orders-by-status breakdown.
type StatusCount struct {
	Status string `gorm:"column:status"`
	Count  int64  `gorm:"column:count"`
}
