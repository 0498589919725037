package langhint

import (
	"math"
	"testing"
)

func TestDetect(t *testing.T) {
	cases := []struct {
		in     string
		share  float64
		script string
	}{
		{"", 0, ""},
		{"123 !!", 0, ""},
		{"barang bagus", 1, "Latin"},
		{"bagus [EMOJI_LAUGH]", 1, "Latin"},
		{"[EMOJI_MISC]", 0, ""},
		{"ok Привет", 2.0 / 8.0, "Cyrillic"},
		{"enak 美味しい", 4.0 / 8.0, "Latin"},
	}
	for _, tc := range cases {
		h := Detect(tc.in)
		if math.Abs(h.LatinShare-tc.share) > 1e-9 || h.Script != tc.script {
			t.Fatalf("%q: got share %.3f script %q, want %.3f %q", tc.in, h.LatinShare, h.Script, tc.share, tc.script)
		}
	}
	if LatinShare("abc") != 1 {
		t.Fatalf("LatinShare")
	}
}
