package inventory

import (
	"testing"
	"time"

	"github.com/your-org/autoshop-backend/internal/domain/part"
	"github.com/your-org/autoshop-backend/internal/pkg/apperror"
)

func testPart(onHand, reserved int) *part.Part {
	p := &part.Part{
		PartNumber:       "FLT-OIL-0117",
		QuantityOnHand:   onHand,
		QuantityReserved: reserved,
		ReorderPoint:     5,
	}
	p.ApplyStockDerivations()
	return p
}

func TestApplyTransactionSale(t *testing.T) {
	now := time.Now()
	p := testPart(10, 0)

	delta, err := applyTransaction(p, TypeSale, 3, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if delta != -3 {
		t.Errorf("delta = %d, want -3", delta)
	}
	if p.QuantityOnHand != 7 {
		t.Errorf("QuantityOnHand = %d, want 7", p.QuantityOnHand)
	}
	if p.LastSold == nil || !p.LastSold.Equal(now) {
		t.Error("expected LastSold to be stamped")
	}
	if p.LastRestocked != nil {
		t.Error("sale must not stamp LastRestocked")
	}
}

func TestApplyTransactionSaleCallerSignIgnored(t *testing.T) {
	p := testPart(10, 0)

	// A caller passing a negative quantity for a sale must not double-negate
	// into an increase.
	delta, err := applyTransaction(p, TypeSale, -3, time.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if delta != -3 || p.QuantityOnHand != 7 {
		t.Errorf("delta = %d, on hand = %d; want -3 and 7", delta, p.QuantityOnHand)
	}
}

func TestApplyTransactionInsufficientStock(t *testing.T) {
	p := testPart(2, 0)

	_, err := applyTransaction(p, TypeSale, 5, time.Now())
	if apperror.KindOf(err) != apperror.KindInsufficientStock {
		t.Fatalf("expected insufficient stock error, got %v", err)
	}
	if p.QuantityOnHand != 2 {
		t.Errorf("failed guard must leave the part untouched, got on hand %d", p.QuantityOnHand)
	}
}

func TestApplyTransactionPurchaseRestocks(t *testing.T) {
	now := time.Now()
	p := testPart(0, 0)

	delta, err := applyTransaction(p, TypePurchase, -20, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if delta != 20 || p.QuantityOnHand != 20 {
		t.Errorf("delta = %d, on hand = %d; want 20 and 20", delta, p.QuantityOnHand)
	}
	if p.LastRestocked == nil || !p.LastRestocked.Equal(now) {
		t.Error("expected LastRestocked to be stamped")
	}
}

func TestApplyTransactionAdjustmentPassthrough(t *testing.T) {
	p := testPart(10, 0)

	delta, err := applyTransaction(p, TypeAdjustment, -4, time.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if delta != -4 || p.QuantityOnHand != 6 {
		t.Errorf("delta = %d, on hand = %d; want -4 and 6", delta, p.QuantityOnHand)
	}
}

func TestApplyTransactionReserve(t *testing.T) {
	p := testPart(10, 2)

	delta, err := applyTransaction(p, TypeReserved, 5, time.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if delta != 5 {
		t.Errorf("delta = %d, want 5", delta)
	}
	if p.QuantityOnHand != 10 {
		t.Errorf("reservation must not change on-hand, got %d", p.QuantityOnHand)
	}
	if p.QuantityReserved != 7 {
		t.Errorf("QuantityReserved = %d, want 7", p.QuantityReserved)
	}
}

func TestApplyTransactionReserveExceedsAvailability(t *testing.T) {
	p := testPart(10, 8)

	_, err := applyTransaction(p, TypeReserved, 3, time.Now())
	if apperror.KindOf(err) != apperror.KindInsufficientAvailability {
		t.Fatalf("expected insufficient availability error, got %v", err)
	}
	if p.QuantityReserved != 8 {
		t.Errorf("failed guard must leave reservations untouched, got %d", p.QuantityReserved)
	}
}

func TestApplyTransactionReserveRequiresPositive(t *testing.T) {
	p := testPart(10, 0)

	_, err := applyTransaction(p, TypeReserved, -2, time.Now())
	if apperror.KindOf(err) != apperror.KindInvalidArgument {
		t.Fatalf("expected invalid argument error, got %v", err)
	}
}

func TestApplyTransactionUnreserve(t *testing.T) {
	p := testPart(10, 6)

	delta, err := applyTransaction(p, TypeUnreserved, 4, time.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if delta != -4 {
		t.Errorf("delta = %d, want -4", delta)
	}
	if p.QuantityReserved != 2 {
		t.Errorf("QuantityReserved = %d, want 2", p.QuantityReserved)
	}
	if p.QuantityOnHand != 10 {
		t.Errorf("unreserve must not change on-hand, got %d", p.QuantityOnHand)
	}
}

func TestApplyTransactionUnreserveExceedsReserved(t *testing.T) {
	p := testPart(10, 2)

	_, err := applyTransaction(p, TypeUnreserved, 5, time.Now())
	if apperror.KindOf(err) != apperror.KindInsufficientReservation {
		t.Fatalf("expected insufficient reservation error, got %v", err)
	}
}

func TestApplyTransactionDamagedAndLostReduce(t *testing.T) {
	for _, typ := range []TransactionType{TypeDamaged, TypeLost} {
		p := testPart(5, 0)
		delta, err := applyTransaction(p, typ, 2, time.Now())
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", typ, err)
		}
		if delta != -2 || p.QuantityOnHand != 3 {
			t.Errorf("%s: delta = %d, on hand = %d; want -2 and 3", typ, delta, p.QuantityOnHand)
		}
		if p.LastSold != nil {
			t.Errorf("%s must not stamp LastSold", typ)
		}
	}
}
