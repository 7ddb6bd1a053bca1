package invoice

import (
	"strings"
	"testing"
	"time"
)

func TestSignedReference(t *testing.T) {
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	ref := SignedReference("ORD-1", "u-1", at)
	parts := strings.Split(ref, "|")
	if len(parts) != 4 {
		t.Fatalf("expected orderID|userID|timestamp|signature, got %q", ref)
	}
	if parts[0] != "ORD-1" || parts[1] != "u-1" {
		t.Fatalf("unexpected reference fields %v", parts[:2])
	}

	// deterministic for the same inputs, distinct for different orders
	if SignedReference("ORD-1", "u-1", at) != ref {
		t.Fatal("reference must be deterministic")
	}
	if SignedReference("ORD-2", "u-1", at) == ref {
		t.Fatal("different orders must sign differently")
	}
}
