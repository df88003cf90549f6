package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestKindOf(t *testing.T) {
	if KindOf(NotFound("part not found")) != KindNotFound {
		t.Error("expected KindNotFound")
	}
	if KindOf(errors.New("plain error")) != KindInternal {
		t.Error("plain errors default to KindInternal")
	}

	wrapped := fmt.Errorf("loading part: %w", InsufficientStock("available 2, required 5"))
	if KindOf(wrapped) != KindInsufficientStock {
		t.Error("KindOf should unwrap wrapped errors")
	}
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{NotFound("part not found"), http.StatusNotFound},
		{InvalidArgument("bad type"), http.StatusBadRequest},
		{InvalidState("cannot receive"), http.StatusBadRequest},
		{InsufficientStock("short"), http.StatusBadRequest},
		{InsufficientAvailability("short"), http.StatusBadRequest},
		{InsufficientReservation("short"), http.StatusBadRequest},
		{OverReceipt("too many"), http.StatusBadRequest},
		{errors.New("database exploded"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		if got := HTTPStatus(tt.err); got != tt.want {
			t.Errorf("HTTPStatus(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}

func TestErrorMessage(t *testing.T) {
	err := InsufficientStock("insufficient stock for %s: available %d, required %d", "BRK-PAD-2041", 2, 5)
	want := "insufficient stock for BRK-PAD-2041: available 2, required 5"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}
