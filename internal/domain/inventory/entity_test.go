package inventory

import (
	"testing"
)

func TestTransactionTypeValid(t *testing.T) {
	for _, typ := range AllTransactionTypes {
		if !typ.Valid() {
			t.Errorf("%s should be valid", typ)
		}
	}
	if TransactionType("refund").Valid() {
		t.Error("unknown type should not be valid")
	}
	if TransactionType("").Valid() {
		t.Error("empty type should not be valid")
	}
}

func TestNormalizeDelta(t *testing.T) {
	tests := []struct {
		typ   TransactionType
		input int
		want  int
	}{
		// Outbound kinds force a negative delta regardless of caller sign
		{TypeSale, 5, -5},
		{TypeSale, -5, -5},
		{TypeDamaged, 3, -3},
		{TypeDamaged, -3, -3},
		{TypeLost, 2, -2},
		{TypeLost, -2, -2},

		// Inbound kinds force a positive delta
		{TypePurchase, 10, 10},
		{TypePurchase, -10, 10},
		{TypeReturn, 1, 1},
		{TypeReturn, -1, 1},
		{TypeFound, 4, 4},
		{TypeFound, -4, 4},

		// Adjustment and transfer pass the caller's sign through
		{TypeAdjustment, 7, 7},
		{TypeAdjustment, -7, -7},
		{TypeTransfer, 6, 6},
		{TypeTransfer, -6, -6},
	}

	for _, tt := range tests {
		if got := tt.typ.NormalizeDelta(tt.input); got != tt.want {
			t.Errorf("%s.NormalizeDelta(%d) = %d, want %d", tt.typ, tt.input, got, tt.want)
		}
	}
}

func TestReservation(t *testing.T) {
	if !TypeReserved.Reservation() || !TypeUnreserved.Reservation() {
		t.Error("reserved and unreserved are reservation kinds")
	}
	for _, typ := range []TransactionType{TypePurchase, TypeSale, TypeAdjustment, TypeTransfer} {
		if typ.Reservation() {
			t.Errorf("%s should not be a reservation kind", typ)
		}
	}
}
