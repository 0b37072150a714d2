package cart

import (
	"encoding/json"
	"testing"
)

func TestCompute_Example(t *testing.T) {
	p := Compute(1000)
	if p.DeliveryFee.IntPart() != 50 {
		t.Fatalf("expected delivery 50, got %s", p.DeliveryFee)
	}
	if p.Tax.IntPart() != 130 {
		t.Fatalf("expected tax 130, got %s", p.Tax)
	}
	if p.Total.IntPart() != 1180 {
		t.Fatalf("expected total 1180, got %s", p.Total)
	}
}

func TestCompute_RoundsHalfUp(t *testing.T) {
	// 250 * 0.13 = 32.5
	if got := Compute(250).Tax.String(); got != "33" {
		t.Fatalf("expected 33, got %s", got)
	}
	// 10.5 * 0.13 = 1.365
	p := Compute(10.5)
	if p.Tax.String() != "1" || p.Total.String() != "61.5" {
		t.Fatalf("unexpected preview %s / %s", p.Tax, p.Total)
	}
}

func TestCompute_EmptyCart(t *testing.T) {
	p := Compute(0)
	if !p.Total.IsZero() || !p.DeliveryFee.IsZero() || !p.Tax.IsZero() {
		t.Fatalf("empty cart should preview to zero, got %+v", p)
	}
}

func TestPreview_JSONNumbers(t *testing.T) {
	b, err := json.Marshal(Compute(1000))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `{"subtotal":1000,"deliveryFee":50,"tax":130,"total":1180}` {
		t.Fatalf("unexpected json %s", string(b))
	}
}
