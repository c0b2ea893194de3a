package validation

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestRequired(t *testing.T) {
	v := Violations{}
	Required("name", "  ", v)
	Required("email", "a@b.c", v)
	if v["name"] != "required" {
		t.Fatalf("expected name violation, got %v", v)
	}
	if _, ok := v["email"]; ok {
		t.Fatalf("email should pass, got %v", v)
	}
}

func TestIntValidators(t *testing.T) {
	v := Violations{}
	PositiveInt("quantity", 0, v)
	NonNegativeInt("stock", -1, v)
	NonNegativeInt("page", 0, v)
	if v["quantity"] != "must_be_positive" || v["stock"] != "must_not_be_negative" {
		t.Fatalf("unexpected violations: %v", v)
	}
	if _, ok := v["page"]; ok {
		t.Fatalf("zero should be allowed for non-negative, got %v", v)
	}
}

func TestPositiveDecimal(t *testing.T) {
	v := Violations{}
	PositiveDecimal("price", decimal.Zero, v)
	PositiveDecimal("total", decimal.RequireFromString("0.01"), v)
	if v["price"] != "must_be_positive" {
		t.Fatalf("expected price violation, got %v", v)
	}
	if _, ok := v["total"]; ok {
		t.Fatalf("0.01 should pass, got %v", v)
	}
}

func TestPercent(t *testing.T) {
	v := Violations{}
	Percent("tax", decimal.NewFromInt(-1), v)
	if v["tax"] != "out_of_range" {
		t.Fatalf("expected tax violation, got %v", v)
	}
	v = Violations{}
	Percent("tax", decimal.RequireFromString("100.00"), v)
	Percent("discount", decimal.RequireFromString("100.01"), v)
	if _, ok := v["tax"]; ok {
		t.Fatalf("100 should be in range, got %v", v)
	}
	if v["discount"] != "out_of_range" {
		t.Fatalf("expected discount violation, got %v", v)
	}
}

func TestMinLen(t *testing.T) {
	v := Violations{}
	MinLen("password", "short  ", 8, v)
	MinLen("username", "héllo", 5, v)
	if v["password"] != "too_short" {
		t.Fatalf("expected password violation, got %v", v)
	}
	if v.Empty() {
		t.Fatalf("expected violations to be recorded")
	}
	if _, ok := v["username"]; ok {
		t.Fatalf("rune count should satisfy min length, got %v", v)
	}
}
