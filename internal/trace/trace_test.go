package trace

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDisabledSpansAreNoop(t *testing.T) {
	require.NoError(t, Init(false, "test"))
	assert.False(t, Enabled())

	ctx, span := StartSpan(context.Background(), "noop")
	defer span.End()

	_, _, ok := GetTraceFields(ctx)
	assert.False(t, ok)
}

func TestEnabledSpansCarryIDs(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, InitWithWriter(true, "test", &buf))
	defer func() {
		_ = Shutdown(context.Background())
		_ = Init(false, "test")
	}()

	ctx, span := StartSpan(context.Background(), "weekly.Run")
	traceID, spanID, ok := GetTraceFields(ctx)
	span.End()

	require.True(t, ok)
	assert.Len(t, traceID, 32)
	assert.Len(t, spanID, 16)
	assert.Contains(t, buf.String(), "weekly.Run")
}
