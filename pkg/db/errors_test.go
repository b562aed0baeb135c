package db

import (
	"errors"
	"testing"
)

func TestIsUniqueViolation(t *testing.T) {
	dup := errors.New(`ERROR: duplicate key value violates unique constraint "idx_reviews_user_product" (SQLSTATE 23505)`)

	if !IsUniqueViolation(dup, "") {
		t.Fatal("expected generic duplicate key detection")
	}
	if !IsUniqueViolation(dup, "idx_reviews_user_product") {
		t.Fatal("expected constraint name match")
	}
	if IsUniqueViolation(dup, "idx_cart_items_user_product") {
		t.Fatal("should not match a different constraint")
	}
	if IsUniqueViolation(errors.New("connection refused"), "") {
		t.Fatal("non-duplicate errors should not match")
	}
	if IsUniqueViolation(nil, "idx_reviews_user_product") {
		t.Fatal("nil error should not match")
	}
}
