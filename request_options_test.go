package dailyevent

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyRequestOptions(t *testing.T) {
	o := applyRequestOptions([]RequestOption{
		WithHeader("X-A", "1"),
		WithHeader("X-B", "2"),
		WithRequestTimeout(5 * time.Second),
		WithIdempotencyKey("idem_1"),
		WithNoRetry(),
	})

	assert.Equal(t, map[string]string{"X-A": "1", "X-B": "2"}, o.Headers)
	assert.Equal(t, 5*time.Second, o.Timeout)
	assert.Equal(t, "idem_1", o.IdempotencyKey)
	assert.True(t, o.NoRetry)
}

func TestApplyRequestOptions_Empty(t *testing.T) {
	o := applyRequestOptions(nil)
	assert.Nil(t, o.Headers)
	assert.Zero(t, o.Timeout)
	assert.False(t, o.NoRetry)
}

func TestNewIdempotencyKey(t *testing.T) {
	a, b := NewIdempotencyKey(), NewIdempotencyKey()
	assert.NotEqual(t, a, b)

	_, err := uuid.Parse(a)
	require.NoError(t, err)
}
