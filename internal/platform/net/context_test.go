package net

import (
	"context"
	"testing"
)

func TestRequestID(t *testing.T) {
	ctx := context.Background()
	if RequestID(ctx) != "" {
		t.Fatalf("empty ctx should have no id")
	}
	if WithRequestID(ctx, "") != ctx {
		t.Fatalf("empty id should not wrap ctx")
	}
	if got := RequestID(WithRequestID(ctx, "req-7")); got != "req-7" {
		t.Fatalf("RequestID = %q", got)
	}
}
