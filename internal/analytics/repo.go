package analytics

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Revenue queries count every order that was not cancelled; a cancelled
// order never contributed money regardless of how far it progressed.
const (
	totalRevenueSQL = `
SELECT COALESCE(SUM(total), 0) AS value
FROM orders
WHERE status <> 'cancelled'
  AND created_at >= ? AND created_at < ?
`

	orderCountSQL = `
SELECT COUNT(*) AS value
FROM orders
WHERE status <> 'cancelled'
  AND created_at >= ? AND created_at < ?
`

	ordersByStatusSQL = `
SELECT status, COUNT(*) AS count
FROM orders
WHERE created_at >= ? AND created_at < ?
GROUP BY status
`

	revenueByDaySQL = `
SELECT to_char(date_trunc('day', created_at), 'YYYY-MM-DD') AS day,
  COALESCE(SUM(total), 0) AS revenue
FROM orders
WHERE status <> 'cancelled'
  AND created_at >= ? AND created_at < ?
GROUP BY day
ORDER BY day ASC
`

	topProductsSQL = `
SELECT order_items.product_id::text AS product_id,
  order_items.product_name,
  SUM(order_items.quantity) AS units_sold,
  COALESCE(SUM(order_items.line_total), 0) AS revenue
FROM order_items
JOIN orders ON orders.id = order_items.order_id
WHERE orders.status <> 'cancelled'
  AND orders.created_at >= ? AND orders.created_at < ?
GROUP BY order_items.product_id, order_items.product_name
ORDER BY units_sold DESC, revenue DESC
LIMIT ?
`
)

// Repository runs the aggregation queries behind the dashboard.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs an analytics repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// TotalRevenue sums order totals within the range.
func (r *Repository) TotalRevenue(ctx context.Context, rng DateRange) (decimal.Decimal, error) {
	var value decimal.Decimal
	err := r.db.WithContext(ctx).
		Raw(totalRevenueSQL, rng.Start, rng.End).
		Scan(&value).Error
	return value, err
}

// OrderCount counts non-cancelled orders within the range.
func (r *Repository) OrderCount(ctx context.Context, rng DateRange) (int64, error) {
	var value int64
	err := r.db.WithContext(ctx).
		Raw(orderCountSQL, rng.Start, rng.End).
		Scan(&value).Error
	return value, err
}

// OrdersByStatus breaks down order counts per status within the range.
func (r *Repository) OrdersByStatus(ctx context.Context, rng DateRange) ([]StatusCount, error) {
	var rows []StatusCount
	err := r.db.WithContext(ctx).
		Raw(ordersByStatusSQL, rng.Start, rng.End).
		Scan(&rows).Error
	return rows, err
}

// RevenueByDay returns the daily revenue series within the range.
func (r *Repository) RevenueByDay(ctx context.Context, rng DateRange) ([]DailyRevenue, error) {
	var rows []DailyRevenue
	err := r.db.WithContext(ctx).
		Raw(revenueByDaySQL, rng.Start, rng.End).
		Scan(&rows).Error
	return rows, err
}

// TopProducts ranks products by units sold within the range.
func (r *Repository) TopProducts(ctx context.Context, rng DateRange, limit int) ([]TopProduct, error) {
	var rows []TopProduct
	err := r.db.WithContext(ctx).
		Raw(topProductsSQL, rng.Start, rng.End, limit).
		Scan(&rows).Error
	return rows, err
}
