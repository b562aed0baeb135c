package migrate_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func readMigration(t *testing.T, pattern string) string {
	t.Helper()
	matches, err := filepath.Glob(filepath.Join("migrations", pattern))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no migration matching %q found", pattern)
	}
	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	return string(data)
}

func TestCartItemsMigrationContainsConstraints(t *testing.T) {
	content := readMigration(t, "*_create_cart_items.sql")

	checks := []string{
		"CREATE TABLE IF NOT EXISTS cart_items",
		"FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE",
		"FOREIGN KEY (product_id) REFERENCES products(id) ON DELETE CASCADE",
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_cart_items_user_product ON cart_items (user_id, product_id)",
		"CHECK (quantity > 0)",
		"DROP TABLE IF EXISTS cart_items",
	}

	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestOrdersMigrationContainsSchemas(t *testing.T) {
	content := readMigration(t, "*_create_orders.sql")

	checks := []string{
		"CREATE TYPE order_status AS ENUM ('pending', 'confirmed', 'delivered', 'cancelled')",
		"CREATE TABLE IF NOT EXISTS orders",
		"CREATE TABLE IF NOT EXISTS order_items",
		"FOREIGN KEY (order_id) REFERENCES orders(id) ON DELETE CASCADE",
		"CREATE INDEX IF NOT EXISTS idx_orders_status_created_at",
		"DROP TYPE IF EXISTS order_status",
	}

	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestReviewsMigrationEnforcesOneReviewPerProduct(t *testing.T) {
	content := readMigration(t, "*_create_reviews.sql")

	checks := []string{
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_reviews_user_product ON reviews (user_id, product_id)",
		"CHECK (rating BETWEEN 1 AND 5)",
	}

	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}
