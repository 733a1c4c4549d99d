package dbx

import (
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
)

func uniqueErr(constraint string) error {
	return &pq.Error{Code: "23505", Constraint: constraint}
}

func fkErr(constraint string) error {
	return &pq.Error{Code: "23503", Constraint: constraint}
}

func TestIsUniqueViolation(t *testing.T) {
	err := uniqueErr("users_username_key")

	if !IsUniqueViolation(err, "users_username_key") {
		t.Fatal("expected match on the named constraint")
	}
	if !IsUniqueViolation(err, "") {
		t.Fatal("expected empty constraint to match any unique violation")
	}
	if IsUniqueViolation(err, "users_vat_key") {
		t.Fatal("expected no match on a different constraint")
	}
	if IsUniqueViolation(fkErr("bookings_tour_id_fkey"), "") {
		t.Fatal("foreign key violation must not count as unique violation")
	}
	if IsUniqueViolation(errors.New("connection reset"), "") {
		t.Fatal("plain errors must not count as unique violation")
	}
}

func TestIsUniqueViolationSeesWrappedErrors(t *testing.T) {
	wrapped := fmt.Errorf("bookings.insert: %w", uniqueErr("bookings_customer_id_booking_date_key"))
	if !IsUniqueViolation(wrapped, "bookings_customer_id_booking_date_key") {
		t.Fatal("expected match through error wrapping")
	}
}

func TestIsForeignKeyViolation(t *testing.T) {
	if !IsForeignKeyViolation(fkErr("guides_tour_id_fkey")) {
		t.Fatal("expected foreign key violation to match")
	}
	if !IsForeignKeyViolation(fmt.Errorf("tours.delete: %w", fkErr("bookings_tour_id_fkey"))) {
		t.Fatal("expected match through error wrapping")
	}
	if IsForeignKeyViolation(uniqueErr("tours_category_key")) {
		t.Fatal("unique violation must not count as foreign key violation")
	}
	if IsForeignKeyViolation(nil) {
		t.Fatal("nil error must not match")
	}
}

func TestConstraint(t *testing.T) {
	if got := Constraint(uniqueErr("tours_price_key")); got != "tours_price_key" {
		t.Fatalf("constraint = %q, want tours_price_key", got)
	}
	if got := Constraint(errors.New("nope")); got != "" {
		t.Fatalf("constraint = %q, want empty", got)
	}
}
