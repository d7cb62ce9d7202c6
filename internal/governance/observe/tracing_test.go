package observe

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestSetupTracingDisabledIsNoop(t *testing.T) {
	shutdown, err := SetupTracing(context.Background(), TracingConfig{Enabled: false}, "test-service", "0.1.0", zap.NewNop().Sugar())
	require.NoError(t, err)
	require.NoError(t, shutdown(context.Background()))
}
