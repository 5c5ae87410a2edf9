package telemetry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProfiler(t *testing.T) {
	t.Run("disabled is inert", func(t *testing.T) {
		p, err := NewProfiler(ProfilerConfig{}, nil)
		require.NoError(t, err)

		assert.False(t, p.IsEnabled())
		assert.NoError(t, p.Stop())
		assert.NoError(t, p.Stop())
	})

	t.Run("enabled requires an address", func(t *testing.T) {
		_, err := NewProfiler(ProfilerConfig{Enabled: true, ApplicationName: "okayo"}, nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "server address")
	})

	t.Run("enabled requires an application name", func(t *testing.T) {
		_, err := NewProfiler(ProfilerConfig{Enabled: true, ServerAddress: "http://localhost:4040"}, nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "application name")
	})
}
