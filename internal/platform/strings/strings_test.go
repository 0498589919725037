package strings

import (
	"testing"

	kit "rapih/internal/platform/testkit"
)

func TestMustString(t *testing.T) {
	if MustString("clean", "name") != "clean" {
		t.Fatalf("MustString changed its input")
	}
	kit.MustPanic(t, func() { MustString("  ", "name") })
}

func TestMustPrefix(t *testing.T) {
	cases := map[string]string{
		"clean":     "/clean",
		"/clean/":   "/clean",
		" /meta ":   "/meta",
		"a/b":       "/a/b",
		"//lexicon": "/lexicon",
	}
	for in, want := range cases {
		if got := MustPrefix(in); got != want {
			t.Fatalf("MustPrefix(%q) = %q, want %q", in, got, want)
		}
	}
	kit.MustPanic(t, func() { MustPrefix(" / ") })
	kit.MustPanic(t, func() { MustPrefix("") })
}

func TestTruncate(t *testing.T) {
	cases := []struct {
		in   string
		n    int
		want string
	}{
		{"barang", 10, "barang"},
		{"barang", 6, "barang"},
		{"barang", 3, "bar…"},
		{"😂😂😂", 2, "😂😂…"},
		{"x", 0, ""},
	}
	for _, tc := range cases {
		if got := Truncate(tc.in, tc.n); got != tc.want {
			t.Fatalf("Truncate(%q, %d) = %q, want %q", tc.in, tc.n, got, tc.want)
		}
	}
}

func TestSQLNullAndFirstNonEmpty(t *testing.T) {
	if SQLNull(" ") != nil || SQLNull("x") != "x" {
		t.Fatalf("SQLNull wrong")
	}
	if FirstNonEmpty("", "  ", "b", "c") != "b" || FirstNonEmpty() != "" {
		t.Fatalf("FirstNonEmpty wrong")
	}
}
