package purchaseorder

import (
	"strings"
	"testing"
	"time"

	"github.com/your-org/autoshop-backend/internal/pkg/apperror"
)

func TestStatusCanReceive(t *testing.T) {
	tests := []struct {
		status Status
		want   bool
	}{
		{StatusDraft, false},
		{StatusSent, true},
		{StatusConfirmed, true},
		{StatusPartiallyReceived, true},
		{StatusReceived, false},
		{StatusCancelled, false},
	}

	for _, tt := range tests {
		if got := tt.status.CanReceive(); got != tt.want {
			t.Errorf("%s.CanReceive() = %v, want %v", tt.status, got, tt.want)
		}
	}
}

func TestStatusValidateTransition(t *testing.T) {
	if err := StatusDraft.ValidateTransition(StatusSent); err != nil {
		t.Errorf("draft to sent should be allowed: %v", err)
	}
	if err := StatusConfirmed.ValidateTransition(StatusDraft); err != nil {
		t.Errorf("moving backwards below terminal states should be allowed: %v", err)
	}
	if err := StatusSent.ValidateTransition(StatusCancelled); err != nil {
		t.Errorf("cancelling a sent order should be allowed: %v", err)
	}

	err := StatusReceived.ValidateTransition(StatusDraft)
	if apperror.KindOf(err) != apperror.KindInvalidState {
		t.Errorf("changing a received order should fail with invalid state, got %v", err)
	}
	err = StatusCancelled.ValidateTransition(StatusSent)
	if apperror.KindOf(err) != apperror.KindInvalidState {
		t.Errorf("changing a cancelled order should fail with invalid state, got %v", err)
	}

	err = StatusDraft.ValidateTransition(Status("shipped"))
	if apperror.KindOf(err) != apperror.KindInvalidArgument {
		t.Errorf("unknown status should fail with invalid argument, got %v", err)
	}
}

func TestApplyReceipt(t *testing.T) {
	item := PurchaseOrderItem{
		PartNumber:      "BRK-PAD-2041",
		QuantityOrdered: 10,
	}

	if err := item.ApplyReceipt(4); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if item.QuantityReceived != 4 || item.QuantityOutstanding != 6 {
		t.Errorf("received = %d, outstanding = %d; want 4 and 6",
			item.QuantityReceived, item.QuantityOutstanding)
	}

	if err := item.ApplyReceipt(6); err != nil {
		t.Fatalf("receiving the remainder should succeed: %v", err)
	}
	if item.QuantityOutstanding != 0 {
		t.Errorf("outstanding = %d, want 0", item.QuantityOutstanding)
	}
}

func TestApplyReceiptOverReceipt(t *testing.T) {
	item := PurchaseOrderItem{
		PartNumber:       "BRK-PAD-2041",
		QuantityOrdered:  10,
		QuantityReceived: 7,
	}

	err := item.ApplyReceipt(5)
	if apperror.KindOf(err) != apperror.KindOverReceipt {
		t.Fatalf("expected over-receipt error, got %v", err)
	}
	if !strings.Contains(err.Error(), "maximum receivable 3") {
		t.Errorf("error should report the maximum receivable quantity: %v", err)
	}
	if item.QuantityReceived != 7 {
		t.Errorf("failed receipt must leave the line untouched, got %d", item.QuantityReceived)
	}
}

func TestApplyReceiptRequiresPositive(t *testing.T) {
	item := PurchaseOrderItem{QuantityOrdered: 10}
	if err := item.ApplyReceipt(0); apperror.KindOf(err) != apperror.KindInvalidArgument {
		t.Errorf("zero receipt should fail with invalid argument, got %v", err)
	}
	if err := item.ApplyReceipt(-2); apperror.KindOf(err) != apperror.KindInvalidArgument {
		t.Errorf("negative receipt should fail with invalid argument, got %v", err)
	}
}

func TestCalculateTotals(t *testing.T) {
	po := PurchaseOrder{
		TaxRate:      750, // 7.5% in basis points
		ShippingCost: 1500,
		Items: []PurchaseOrderItem{
			{QuantityOrdered: 10, UnitCost: 3250},
			{QuantityOrdered: 4, UnitCost: 11900},
		},
	}
	po.CalculateTotals()

	if po.Items[0].Total != 32500 {
		t.Errorf("first line total = %d, want 32500", po.Items[0].Total)
	}
	if po.Subtotal != 80100 {
		t.Errorf("subtotal = %d, want 80100", po.Subtotal)
	}
	if po.TaxAmount != 6007 {
		t.Errorf("tax = %d, want 6007", po.TaxAmount)
	}
	if po.Total != 87607 {
		t.Errorf("total = %d, want 87607", po.Total)
	}
}

func TestDeriveReceivingStatus(t *testing.T) {
	po := PurchaseOrder{
		Status: StatusConfirmed,
		Items: []PurchaseOrderItem{
			{QuantityOrdered: 10},
			{QuantityOrdered: 5},
		},
	}

	if got := po.DeriveReceivingStatus(); got != StatusConfirmed {
		t.Errorf("nothing received: status = %s, want %s", got, StatusConfirmed)
	}

	po.Items[0].QuantityReceived = 10
	if got := po.DeriveReceivingStatus(); got != StatusPartiallyReceived {
		t.Errorf("partial receipt: status = %s, want %s", got, StatusPartiallyReceived)
	}

	po.Items[1].QuantityReceived = 5
	if got := po.DeriveReceivingStatus(); got != StatusReceived {
		t.Errorf("full receipt: status = %s, want %s", got, StatusReceived)
	}
}

func TestGeneratePONumber(t *testing.T) {
	if got := GeneratePONumber(2026, 7); got != "PO-2026-0007" {
		t.Errorf("GeneratePONumber = %q, want PO-2026-0007", got)
	}
	if got := GeneratePONumber(2026, 12345); got != "PO-2026-12345" {
		t.Errorf("sequence overflow should not truncate, got %q", got)
	}
}

func TestAppendInternalNote(t *testing.T) {
	po := PurchaseOrder{}
	at := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

	po.AppendInternalNote("status changed from draft to sent", at)
	if !strings.HasPrefix(po.InternalNotes, "[2026-03-14T09:30:00Z]") {
		t.Errorf("note should carry a UTC timestamp prefix: %q", po.InternalNotes)
	}

	po.AppendInternalNote("second note", at.Add(time.Hour))
	if strings.Count(po.InternalNotes, "[") != 2 {
		t.Errorf("notes should accumulate: %q", po.InternalNotes)
	}
}
