package hclconf

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "discovery.hcl")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_FullConfig(t *testing.T) {
	// --- Arrange ---
	t.Setenv("DISCOVERYGO_TEST_ROOT", "/opt/deploy")
	path := writeConfig(t, `
		discovery {
		  enabled     = false
		  search_path = ["${env.DISCOVERYGO_TEST_ROOT}/conf", "testdata"]
		}

		logging {
		  level  = "debug"
		  format = "json"
		}
	`)

	// --- Act ---
	cfg, err := Load(path)

	// --- Assert ---
	require.NoError(t, err)
	require.NotNil(t, cfg.Discovery)
	require.NotNil(t, cfg.Discovery.Enabled)
	assert.False(t, *cfg.Discovery.Enabled)
	assert.Equal(t, []string{"/opt/deploy/conf", "testdata"}, cfg.Discovery.SearchPath)
	require.NotNil(t, cfg.Logging)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestLoad_EmptyConfig(t *testing.T) {
	t.Parallel()
	cfg, err := Load(writeConfig(t, ""))

	require.NoError(t, err)
	assert.Nil(t, cfg.Discovery)
	assert.Nil(t, cfg.Logging)
}

func TestLoad_MissingFile(t *testing.T) {
	t.Parallel()
	_, err := Load(filepath.Join(t.TempDir(), "absent.hcl"))

	require.Error(t, err)
}

func TestLoad_InvalidSyntax(t *testing.T) {
	t.Parallel()
	_, err := Load(writeConfig(t, "discovery {"))

	require.Error(t, err)
}
