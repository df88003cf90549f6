package inventory_test

import (
	"testing"

	"github.com/your-org/autoshop-backend/internal/domain/inventory"
	"github.com/your-org/autoshop-backend/internal/domain/part"
	"github.com/your-org/autoshop-backend/internal/pkg/apperror"
	"github.com/your-org/autoshop-backend/internal/pkg/testutil"
)

func TestRecordTransactionSale(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := inventory.NewService(db, testutil.TestConfig())
	p := testutil.SeedPart(t, db, "BRK-PAD-2041", 20)

	result, err := svc.RecordTransaction(&inventory.RecordTransactionRequest{
		PartID:         p.ID,
		Type:           inventory.TypeSale,
		QuantityChange: 3,
		Reason:         "counter sale",
	}, 42)
	if err != nil {
		t.Fatalf("RecordTransaction failed: %v", err)
	}

	txn := result.Transaction
	if txn.QuantityChange != -3 || txn.QuantityBefore != 20 || txn.QuantityAfter != 17 {
		t.Errorf("ledger entry = change %d, before %d, after %d; want -3, 20, 17",
			txn.QuantityChange, txn.QuantityBefore, txn.QuantityAfter)
	}
	if txn.PerformedBy != 42 {
		t.Errorf("PerformedBy = %d, want 42", txn.PerformedBy)
	}
	if txn.TotalPrice != p.SellPrice*3 {
		t.Errorf("TotalPrice = %d, want %d", txn.TotalPrice, p.SellPrice*3)
	}
	if result.Part.QuantityOnHand != 17 {
		t.Errorf("part snapshot on hand = %d, want 17", result.Part.QuantityOnHand)
	}
}

func TestRecordTransactionInsufficientStockLeavesNoTrace(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := inventory.NewService(db, testutil.TestConfig())
	p := testutil.SeedPart(t, db, "FLT-OIL-0117", 2)

	_, err := svc.RecordTransaction(&inventory.RecordTransactionRequest{
		PartID:         p.ID,
		Type:           inventory.TypeSale,
		QuantityChange: 5,
	}, 1)
	if apperror.KindOf(err) != apperror.KindInsufficientStock {
		t.Fatalf("expected insufficient stock error, got %v", err)
	}

	var count int64
	db.Model(&inventory.InventoryTransaction{}).Count(&count)
	if count != 0 {
		t.Errorf("rejected transaction must not leave a ledger entry, found %d", count)
	}

	var reloaded part.Part
	if err := db.First(&reloaded, p.ID).Error; err != nil {
		t.Fatalf("failed to reload part: %v", err)
	}
	if reloaded.QuantityOnHand != 2 {
		t.Errorf("part stock changed by a rejected transaction, got %d", reloaded.QuantityOnHand)
	}
}

func TestRecordTransactionReservationCycle(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := inventory.NewService(db, testutil.TestConfig())
	p := testutil.SeedPart(t, db, "ELC-BAT-0750", 10)

	reserveResult, err := svc.RecordTransaction(&inventory.RecordTransactionRequest{
		PartID:         p.ID,
		Type:           inventory.TypeReserved,
		QuantityChange: 4,
	}, 1)
	if err != nil {
		t.Fatalf("reserve failed: %v", err)
	}
	if reserveResult.Part.QuantityReserved != 4 || reserveResult.Part.QuantityAvailable != 6 {
		t.Errorf("after reserve: reserved %d, available %d; want 4 and 6",
			reserveResult.Part.QuantityReserved, reserveResult.Part.QuantityAvailable)
	}
	if reserveResult.Transaction.QuantityBefore != reserveResult.Transaction.QuantityAfter {
		t.Error("reservation ledger entry must not report an on-hand movement")
	}
	if reserveResult.Transaction.TotalCost != 0 || reserveResult.Transaction.TotalPrice != 0 {
		t.Error("reservation ledger entry must not carry money totals")
	}

	_, err = svc.RecordTransaction(&inventory.RecordTransactionRequest{
		PartID:         p.ID,
		Type:           inventory.TypeReserved,
		QuantityChange: 7,
	}, 1)
	if apperror.KindOf(err) != apperror.KindInsufficientAvailability {
		t.Fatalf("expected insufficient availability error, got %v", err)
	}

	unreserveResult, err := svc.RecordTransaction(&inventory.RecordTransactionRequest{
		PartID:         p.ID,
		Type:           inventory.TypeUnreserved,
		QuantityChange: 4,
	}, 1)
	if err != nil {
		t.Fatalf("unreserve failed: %v", err)
	}
	if unreserveResult.Part.QuantityReserved != 0 || unreserveResult.Part.QuantityAvailable != 10 {
		t.Errorf("after unreserve: reserved %d, available %d; want 0 and 10",
			unreserveResult.Part.QuantityReserved, unreserveResult.Part.QuantityAvailable)
	}
}

func TestRecordTransactionUnknownPart(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := inventory.NewService(db, testutil.TestConfig())

	_, err := svc.RecordTransaction(&inventory.RecordTransactionRequest{
		PartID:         9999,
		Type:           inventory.TypePurchase,
		QuantityChange: 1,
	}, 1)
	if apperror.KindOf(err) != apperror.KindNotFound {
		t.Fatalf("expected not found error, got %v", err)
	}
}

func TestRecordTransactionInvalidType(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := inventory.NewService(db, testutil.TestConfig())

	_, err := svc.RecordTransaction(&inventory.RecordTransactionRequest{
		PartID:         1,
		Type:           "refund",
		QuantityChange: 1,
	}, 1)
	if apperror.KindOf(err) != apperror.KindInvalidArgument {
		t.Fatalf("expected invalid argument error, got %v", err)
	}
}

func TestAdjustStock(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := inventory.NewService(db, testutil.TestConfig())
	p := testutil.SeedPart(t, db, "BRK-PAD-2041", 12)

	result, err := svc.AdjustStock(p.ID, &inventory.AdjustStockRequest{
		Adjustment: -5,
		Reason:     "cycle count",
		Location:   "A3-12",
	}, 7)
	if err != nil {
		t.Fatalf("AdjustStock failed: %v", err)
	}

	if result.Part.QuantityOnHand != 7 {
		t.Errorf("on hand = %d, want 7", result.Part.QuantityOnHand)
	}
	if result.Transaction.Type != inventory.TypeAdjustment {
		t.Errorf("transaction type = %s, want adjustment", result.Transaction.Type)
	}
	if result.Transaction.FromLocation != "A3-12" {
		t.Errorf("removal should record the location as origin, got %q", result.Transaction.FromLocation)
	}
}

func TestAdjustStockBelowZero(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := inventory.NewService(db, testutil.TestConfig())
	p := testutil.SeedPart(t, db, "FLT-OIL-0117", 3)

	_, err := svc.AdjustStock(p.ID, &inventory.AdjustStockRequest{Adjustment: -4}, 1)
	if apperror.KindOf(err) != apperror.KindInsufficientStock {
		t.Fatalf("expected insufficient stock error, got %v", err)
	}
}

func TestListTransactionsNewestFirst(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := inventory.NewService(db, testutil.TestConfig())
	p := testutil.SeedPart(t, db, "ELC-BAT-0750", 50)

	for i := 0; i < 3; i++ {
		if _, err := svc.RecordTransaction(&inventory.RecordTransactionRequest{
			PartID:         p.ID,
			Type:           inventory.TypeSale,
			QuantityChange: 1,
		}, 1); err != nil {
			t.Fatalf("RecordTransaction failed: %v", err)
		}
	}

	transactions, err := svc.ListTransactions(&p.ID, "", 10, 0)
	if err != nil {
		t.Fatalf("ListTransactions failed: %v", err)
	}
	if len(transactions) != 3 {
		t.Fatalf("got %d transactions, want 3", len(transactions))
	}
	// Newest first: the last sale left the lowest on-hand count
	if transactions[0].QuantityAfter != 47 {
		t.Errorf("first entry QuantityAfter = %d, want 47", transactions[0].QuantityAfter)
	}
}
