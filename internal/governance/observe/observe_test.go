package observe

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestObserver(t *testing.T) (Observer, *prometheus.Registry) {
	t.Helper()
	registry := prometheus.NewRegistry()
	metrics := NewMetrics(registry)
	logger := zap.NewNop().Sugar()
	return New("mcp-fusion-go-test", logger, metrics), registry
}

func TestObserve_SuccessReturnsResult(t *testing.T) {
	observer, _ := newTestObserver(t)

	result, err := observer.Observe(context.Background(), "materialize", nil, func() (any, error) {
		return "ok", nil
	})

	require.NoError(t, err)
	assert.Equal(t, "ok", result)
}

func TestObserve_FailurePropagatesError(t *testing.T) {
	observer, _ := newTestObserver(t)
	sentinel := errors.New("boom")

	_, err := observer.Observe(context.Background(), "diff", nil, func() (any, error) {
		return nil, sentinel
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, sentinel)
}

func TestObserveAsync_PropagatesContext(t *testing.T) {
	observer, _ := newTestObserver(t)

	type ctxKey struct{}
	ctx := context.WithValue(context.Background(), ctxKey{}, "value")

	result, err := observer.ObserveAsync(ctx, "lock", nil, func(innerCtx context.Context) (any, error) {
		return innerCtx.Value(ctxKey{}), nil
	})

	require.NoError(t, err)
	assert.Equal(t, "value", result)
}

func TestNoop_JustInvokesFunction(t *testing.T) {
	var observer Noop

	called := false
	result, err := observer.Observe(context.Background(), "x", nil, func() (any, error) {
		called = true
		return 42, nil
	})

	require.NoError(t, err)
	assert.True(t, called)
	assert.Equal(t, 42, result)
}

func TestNoop_Async(t *testing.T) {
	var observer Noop
	result, err := observer.ObserveAsync(context.Background(), "x", nil, func(context.Context) (any, error) {
		return "done", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "done", result)
}
