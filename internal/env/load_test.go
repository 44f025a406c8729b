package env

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeEnvFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadSetsVariables(t *testing.T) {
	t.Setenv("SIMVIEW_TEST_HOME", "")
	os.Unsetenv("SIMVIEW_TEST_HOME")
	t.Setenv("SIMVIEW_TEST_QUOTED", "")
	os.Unsetenv("SIMVIEW_TEST_QUOTED")

	path := writeEnvFile(t, "# comment\n\nSIMVIEW_TEST_HOME=/opt/geometry\nSIMVIEW_TEST_QUOTED=\"hello world\"\nbroken line\n")
	require.NoError(t, Load(path))

	assert.Equal(t, "/opt/geometry", os.Getenv("SIMVIEW_TEST_HOME"))
	assert.Equal(t, "hello world", os.Getenv("SIMVIEW_TEST_QUOTED"))
}

func TestLoadKeepsExistingVariables(t *testing.T) {
	t.Setenv("SIMVIEW_TEST_HOME", "/from/shell")

	path := writeEnvFile(t, "SIMVIEW_TEST_HOME=/from/file\n")
	require.NoError(t, Load(path))

	assert.Equal(t, "/from/shell", os.Getenv("SIMVIEW_TEST_HOME"))
}

func TestLoadMissingFileIsFine(t *testing.T) {
	require.NoError(t, Load(filepath.Join(t.TempDir(), ".env")))
}
