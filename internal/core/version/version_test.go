package version

import (
	"strings"
	"testing"

	"rapih/internal/platform/testkit"
)

func TestInfo(t *testing.T) {
	testkit.Swap(t, &version, "v1.0.0")
	testkit.Swap(t, &commit, "abc123")
	bi := Info("rapih-api")
	if bi.Service != "rapih-api" || bi.Version != "v1.0.0" || bi.Commit != "abc123" {
		t.Fatalf("info = %+v", bi)
	}
	if !strings.HasPrefix(bi.String(), "rapih-api v1.0.0 (abc123") {
		t.Fatalf("string = %q", bi.String())
	}
}

func TestInfo_Defaults(t *testing.T) {
	bi := Info("x")
	if bi.Version != "dev" || bi.Commit == "" {
		t.Fatalf("defaults = %+v", bi)
	}
}
