package part

import (
	"testing"
)

func TestApplyStockDerivations(t *testing.T) {
	tests := []struct {
		name          string
		onHand        int
		reserved      int
		reorderPoint  int
		wantAvailable int
		wantOut       bool
		wantLow       bool
	}{
		{"in stock", 50, 10, 10, 40, false, false},
		{"exactly at reorder point", 10, 0, 10, 10, false, true},
		{"below reorder point", 3, 0, 10, 3, false, true},
		{"zero on hand", 0, 0, 10, 0, true, false},
		{"zero on hand with reservations", 0, 5, 10, -5, true, false},
		{"one above reorder point", 11, 0, 10, 11, false, false},
		{"fully reserved", 20, 20, 5, 0, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Part{
				QuantityOnHand:   tt.onHand,
				QuantityReserved: tt.reserved,
				ReorderPoint:     tt.reorderPoint,
			}
			p.ApplyStockDerivations()

			if p.QuantityAvailable != tt.wantAvailable {
				t.Errorf("QuantityAvailable = %d, want %d", p.QuantityAvailable, tt.wantAvailable)
			}
			if p.OutOfStock != tt.wantOut {
				t.Errorf("OutOfStock = %v, want %v", p.OutOfStock, tt.wantOut)
			}
			if p.LowStockAlert != tt.wantLow {
				t.Errorf("LowStockAlert = %v, want %v", p.LowStockAlert, tt.wantLow)
			}
		})
	}
}

func TestApplyStockDerivationsIdempotent(t *testing.T) {
	p := Part{QuantityOnHand: 7, QuantityReserved: 2, ReorderPoint: 10}
	p.ApplyStockDerivations()
	first := p
	p.ApplyStockDerivations()

	if p != first {
		t.Errorf("second derivation changed the part: %+v != %+v", p, first)
	}
}

func TestStockStatus(t *testing.T) {
	tests := []struct {
		name   string
		onHand int
		want   string
	}{
		{"out of stock", 0, "out_of_stock"},
		{"low stock", 5, "low_stock"},
		{"in stock", 50, "in_stock"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Part{QuantityOnHand: tt.onHand, ReorderPoint: 10}
			p.ApplyStockDerivations()
			if got := p.StockStatus(); got != tt.want {
				t.Errorf("StockStatus() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCanReserve(t *testing.T) {
	p := Part{QuantityOnHand: 10, QuantityReserved: 4}
	p.ApplyStockDerivations()

	if !p.CanReserve(6) {
		t.Error("expected reservation of exactly the available quantity to pass")
	}
	if p.CanReserve(7) {
		t.Error("expected reservation beyond available quantity to fail")
	}
}

func TestCategoryValid(t *testing.T) {
	if !CategoryBrakes.Valid() {
		t.Error("brakes should be a valid category")
	}
	if Category("exhaust").Valid() {
		t.Error("unknown category should not be valid")
	}
}

func TestSnapshotAfter(t *testing.T) {
	p := Part{
		ID:             3,
		PartNumber:     "BRK-PAD-2041",
		Name:           "Brake Pad Set",
		QuantityOnHand: 18,
		ReorderPoint:   10,
	}
	p.ApplyStockDerivations()

	snap := p.SnapshotAfter(20)
	if snap.QuantityBefore != 20 {
		t.Errorf("QuantityBefore = %d, want 20", snap.QuantityBefore)
	}
	if snap.QuantityAfter != 18 {
		t.Errorf("QuantityAfter = %d, want 18", snap.QuantityAfter)
	}
	if snap.OutOfStock || snap.LowStockAlert {
		t.Errorf("unexpected stock flags in snapshot: %+v", snap)
	}
}
