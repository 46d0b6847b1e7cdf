package observability

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/football-stats/internal/config"
	"github.com/riskibarqy/football-stats/internal/platform/logging"
)

func TestStart_AllDisabled(t *testing.T) {
	rt, err := Start(config.Config{ServiceName: "football-stats-api", AppEnv: config.EnvDev}, logging.NewNop())
	require.NoError(t, err)

	assert.False(t, rt.uptrace)
	assert.Nil(t, rt.profiler)
	assert.Nil(t, rt.pprof)
	assert.NoError(t, rt.Shutdown(context.Background()))
}

func TestStart_UptraceWithoutDSNStaysOff(t *testing.T) {
	rt, err := Start(config.Config{UptraceEnabled: true, ServiceName: "football-stats-api"}, nil)
	require.NoError(t, err)
	assert.False(t, rt.uptrace)
	assert.NoError(t, rt.Shutdown(context.Background()))
}

func TestStart_PprofListener(t *testing.T) {
	rt, err := Start(config.Config{PprofEnabled: true, PprofAddr: "127.0.0.1:0"}, logging.NewNop())
	require.NoError(t, err)
	require.NotNil(t, rt.pprof)

	assert.NoError(t, rt.Shutdown(context.Background()))
	assert.Nil(t, rt.pprof)
}

func TestRuntime_NilShutdown(t *testing.T) {
	var rt *Runtime
	assert.NoError(t, rt.Shutdown(context.Background()))
}
