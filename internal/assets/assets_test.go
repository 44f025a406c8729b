package assets

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RussellJ95/opensim-core/internal/model"
)

func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })
}

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte("solid\n"), 0644))
}

func modelAt(t *testing.T, dir string) *model.Model {
	t.Helper()
	m := model.New("test")
	m.SetFilePath(filepath.Join(dir, "test.yaml"))
	return m
}

func TestFindGeometryFileModelDir(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "femur.vtp"))
	m := modelAt(t, dir)

	found, attempts := FindGeometryFile(m, "femur.vtp")
	require.True(t, found)
	require.NotEmpty(t, attempts)
	assert.Equal(t, filepath.Join(dir, "femur.vtp"), attempts[len(attempts)-1])
}

func TestFindGeometryFileGeometrySubdir(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "Geometry", "femur.vtp"))
	m := modelAt(t, dir)

	found, attempts := FindGeometryFile(m, "femur.vtp")
	require.True(t, found)
	// The model directory itself is tried first and misses.
	assert.Equal(t, filepath.Join(dir, "femur.vtp"), attempts[0])
	assert.Equal(t, filepath.Join(dir, "Geometry", "femur.vtp"), attempts[len(attempts)-1])
}

func TestFindGeometryFileHome(t *testing.T) {
	home := t.TempDir()
	touch(t, filepath.Join(home, "Geometry", "femur.vtp"))
	t.Setenv(HomeEnv, home)
	chdir(t, t.TempDir())

	m := modelAt(t, t.TempDir())
	found, attempts := FindGeometryFile(m, "femur.vtp")
	require.True(t, found)
	assert.Equal(t, filepath.Join(home, "Geometry", "femur.vtp"), attempts[len(attempts)-1])
	// Model dir, model Geometry, cwd, cwd Geometry all come before home.
	assert.Len(t, attempts, 5)
}

func TestFindGeometryFileMissLogsAllAttempts(t *testing.T) {
	t.Setenv(HomeEnv, "")
	chdir(t, t.TempDir())
	m := modelAt(t, t.TempDir())

	found, attempts := FindGeometryFile(m, "missing.obj")
	assert.False(t, found)
	// No OPENSIM_HOME: model dir + subdir, cwd + subdir.
	assert.Len(t, attempts, 4)
}

func TestFindGeometryFileAbsolute(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "block.stl")
	touch(t, path)

	found, attempts := FindGeometryFile(model.New("test"), path)
	require.True(t, found)
	assert.Equal(t, []string{path}, attempts)

	found, attempts = FindGeometryFile(model.New("test"), filepath.Join(dir, "absent.stl"))
	assert.False(t, found)
	assert.Len(t, attempts, 1)
}

func TestFindGeometryFileEmptyName(t *testing.T) {
	found, attempts := FindGeometryFile(model.New("test"), "")
	assert.False(t, found)
	assert.Empty(t, attempts)
}

func TestFindGeometryFileNoModelFile(t *testing.T) {
	t.Setenv(HomeEnv, "")
	wd := t.TempDir()
	chdir(t, wd)
	touch(t, filepath.Join(wd, "Geometry", "disc.obj"))

	// A model built in code searches from the working directory only.
	found, attempts := FindGeometryFile(model.New("test"), "disc.obj")
	require.True(t, found)
	assert.Len(t, attempts, 2)
	assert.Equal(t, filepath.Join("Geometry", "disc.obj"), attempts[1])
}
