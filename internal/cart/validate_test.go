package cart

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/ovenmade/bakehouse-backend/pkg/db/models"
	pkgerrors "github.com/ovenmade/bakehouse-backend/pkg/errors"
	"github.com/ovenmade/bakehouse-backend/pkg/types"
)

func TestResolvePricingMode(t *testing.T) {
	kiloPrices := types.KiloPriceMap{
		"1kg": decimal.NewFromInt(500),
	}

	cases := []struct {
		name        string
		sub         models.Subcategory
		isPieceable bool
	}{
		{
			name:        "explicit pieceable wins over kilo map",
			sub:         models.Subcategory{IsPieceable: boolPtr(true), KiloToPriceMap: kiloPrices},
			isPieceable: true,
		},
		{
			name:        "explicit non-pieceable wins over empty map",
			sub:         models.Subcategory{IsPieceable: boolPtr(false)},
			isPieceable: false,
		},
		{
			name:        "nil flag with kilo entries infers weight pricing",
			sub:         models.Subcategory{KiloToPriceMap: kiloPrices},
			isPieceable: false,
		},
		{
			name:        "nil flag with empty map infers piece pricing",
			sub:         models.Subcategory{KiloToPriceMap: types.KiloPriceMap{}},
			isPieceable: true,
		},
		{
			name:        "nil flag with absent map infers piece pricing",
			sub:         models.Subcategory{},
			isPieceable: true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			mode := ResolvePricingMode(&tc.sub)
			if mode.IsPieceable != tc.isPieceable {
				t.Fatalf("expected isPieceable=%v, got %v", tc.isPieceable, mode.IsPieceable)
			}
		})
	}
}

func TestValidateItemShapePieceMode(t *testing.T) {
	mode := PricingMode{IsPieceable: true}

	cases := []struct {
		name    string
		shape   ItemShape
		wantErr string
	}{
		{
			name:    "kilo rejected regardless of other fields",
			shape:   ItemShape{Kilo: decimalPtr("1"), Pieces: intPtr(2), Quantity: intPtr(2)},
			wantErr: "Kilo option is not applicable for pieceable products",
		},
		{
			name:    "neither pieces nor quantity",
			shape:   ItemShape{},
			wantErr: "Either pieces or quantity must be provided as a positive number for pieceable products",
		},
		{
			name:    "zero pieces with positive quantity",
			shape:   ItemShape{Pieces: intPtr(0), Quantity: intPtr(3)},
			wantErr: "Pieces must be greater than zero",
		},
		{
			name:    "negative quantity with positive pieces",
			shape:   ItemShape{Pieces: intPtr(3), Quantity: intPtr(-1)},
			wantErr: "Quantity must be greater than zero",
		},
		{
			name:  "pieces alone",
			shape: ItemShape{Pieces: intPtr(4)},
		},
		{
			name:  "quantity alone",
			shape: ItemShape{Quantity: intPtr(2)},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := validateItemShape(mode, tc.shape)
			assertValidationResult(t, err, tc.wantErr)
		})
	}
}

func TestValidateItemShapeKiloMode(t *testing.T) {
	mode := PricingMode{
		KiloPrices: types.KiloPriceMap{
			"1kg": decimal.NewFromInt(500),
			"2kg": decimal.NewFromInt(900),
		},
	}

	cases := []struct {
		name    string
		mode    PricingMode
		shape   ItemShape
		wantErr string
	}{
		{
			name:    "pieces rejected",
			mode:    mode,
			shape:   ItemShape{Pieces: intPtr(2)},
			wantErr: "Pieces option is not applicable for non-pieceable products",
		},
		{
			name:    "neither kilo nor quantity",
			mode:    mode,
			shape:   ItemShape{},
			wantErr: "Either kilo or quantity must be provided as a positive number for non-pieceable products",
		},
		{
			name:    "kilo without matching key lists options",
			mode:    mode,
			shape:   ItemShape{Kilo: decimalPtr("3")},
			wantErr: "No price configured for 3kg; available options: 1kg, 2kg",
		},
		{
			name:    "empty map reports none configured",
			mode:    PricingMode{KiloPrices: types.KiloPriceMap{}, IsPieceable: false},
			shape:   ItemShape{Kilo: decimalPtr("1")},
			wantErr: "No price configured for 1kg; available options: none configured",
		},
		{
			name:  "matching kilo key",
			mode:  mode,
			shape: ItemShape{Kilo: decimalPtr("1")},
		},
		{
			name:  "trailing zeros normalized before lookup",
			mode:  mode,
			shape: ItemShape{Kilo: decimalPtr("1.0")},
		},
		{
			name:  "quantity alone",
			mode:  mode,
			shape: ItemShape{Quantity: intPtr(2)},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := validateItemShape(tc.mode, tc.shape)
			assertValidationResult(t, err, tc.wantErr)
		})
	}
}

func TestKiloKey(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"1", "1kg"},
		{"1.0", "1kg"},
		{"1.5", "1.5kg"},
		{"0.250", "0.25kg"},
	}
	for _, tc := range cases {
		if got := KiloKey(decimal.RequireFromString(tc.in)); got != tc.want {
			t.Fatalf("KiloKey(%s): expected %s, got %s", tc.in, tc.want, got)
		}
	}
}

func assertValidationResult(t *testing.T, err error, wantErr string) {
	t.Helper()
	if wantErr == "" {
		if err != nil {
			t.Fatalf("expected shape to pass, got %v", err)
		}
		return
	}
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	if typed.Message() != wantErr {
		t.Fatalf("expected message %q, got %q", wantErr, typed.Message())
	}
}

func boolPtr(value bool) *bool {
	return &value
}

func intPtr(value int) *int {
	return &value
}

func decimalPtr(value string) *decimal.Decimal {
	d := decimal.RequireFromString(value)
	return &d
}
