package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jaxnet/spvproof/chainweb"
)

func TestDefaultGraphIsConnectedTriangle(t *testing.T) {
	cfg := Default()
	graph := cfg.Graph()

	require.ElementsMatch(t, []chainweb.ChainID{"0", "1", "2"}, cfg.ChainIDs())
	for _, c := range cfg.ChainIDs() {
		require.Len(t, graph.Adjacent(c), 2)
	}
}

func TestLoadOverlaysOntoDefault(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "spvproof.yaml")
	require.NoError(t, os.WriteFile(path, []byte("data_dir: /tmp/custom\nlog_level: debug\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "/tmp/custom", cfg.DataDir)
	require.Equal(t, "debug", cfg.LogLevel)
	// Fields the file didn't mention keep their Default value.
	require.Len(t, cfg.Chains, 3)
}

func TestLogLevelOrDefaultFallsBackOnGarbage(t *testing.T) {
	cfg := Default()
	cfg.LogLevel = "not-a-level"
	require.Equal(t, "info", cfg.LogLevelOrDefault().String())
}
