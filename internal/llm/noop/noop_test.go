package noop

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateContentIsEmpty(t *testing.T) {
	out, err := New().GenerateContent(context.Background(), "anything")
	require.NoError(t, err)
	assert.Empty(t, out)
}
