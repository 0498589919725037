package testkit

import (
	"os"
	"testing"
)

var seam = "orig"

func TestSwap(t *testing.T) {
	t.Run("swapped", func(t *testing.T) {
		Serial(t)
		Swap(t, &seam, "fake")
		if seam != "fake" {
			t.Fatalf("seam = %q", seam)
		}
	})
	if seam != "orig" {
		t.Fatalf("seam not restored: %q", seam)
	}
}

func TestHelpers(t *testing.T) {
	MustPanic(t, func() { panic("boom") })
	MustNotPanic(t, func() {})
	MustContain(t, "barang bagus", "bagus")

	p := WriteFile(t, "x.json", []byte(`{}`))
	b, err := os.ReadFile(p)
	if err != nil || string(b) != "{}" {
		t.Fatalf("WriteFile round trip: %q, %v", b, err)
	}
}
