package telemetry_test

import (
	"context"
	"testing"

	"github.com/jrazmi/todolist/sdk/telemetry"
)

func TestTraceID(t *testing.T) {
	ctx := context.Background()
	if got := telemetry.GetTraceID(ctx); got != telemetry.NoTrace {
		t.Errorf("GetTraceID(empty) = %q", got)
	}

	a := telemetry.SetTraceID(ctx)
	b := telemetry.SetTraceID(ctx)
	idA, idB := telemetry.GetTraceID(a), telemetry.GetTraceID(b)
	if idA == telemetry.NoTrace || idA == "" {
		t.Fatalf("GetTraceID = %q", idA)
	}
	if idA == idB {
		t.Errorf("two runs share trace ID %q", idA)
	}
}
