package migrations

import (
	"io/fs"
	"strings"
	"testing"
)

func TestDriverURL(t *testing.T) {
	cases := map[string]string{
		"postgres://u:p@h:5432/db?sslmode=disable": "pgx5://u:p@h:5432/db?sslmode=disable",
		"postgresql://h/db":                        "pgx5://h/db",
		"pgx5://h/db":                              "pgx5://h/db",
	}
	for in, want := range cases {
		if got := DriverURL(in); got != want {
			t.Fatalf("DriverURL(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestFS_Pairs(t *testing.T) {
	names, err := fs.Glob(FS, "*.sql")
	if err != nil {
		t.Fatalf("glob: %v", err)
	}
	ups, downs := 0, 0
	for _, n := range names {
		switch {
		case strings.HasSuffix(n, ".up.sql"):
			ups++
		case strings.HasSuffix(n, ".down.sql"):
			downs++
		default:
			t.Fatalf("stray file %s", n)
		}
	}
	if ups == 0 || ups != downs {
		t.Fatalf("ups = %d downs = %d", ups, downs)
	}
}
