// Package assets locates the mesh files a model's geometry refers to.
package assets

import (
	"os"
	"path/filepath"

	"github.com/RussellJ95/opensim-core/internal/model"
)

// HomeEnv is the environment variable pointing at an installation whose
// Geometry directory is searched last for mesh files.
const HomeEnv = "OPENSIM_HOME"

// FindGeometryFile searches the standard locations for a mesh file named
// by a model. Relative names are tried against, in order: the model file's
// directory, its Geometry subdirectory, the working directory, its
// Geometry subdirectory, and $OPENSIM_HOME/Geometry. Absolute names are
// tried verbatim only.
//
// attempts records every path tried; when found, its last entry is the
// path that exists.
func FindGeometryFile(m *model.Model, file string) (found bool, attempts []string) {
	if file == "" {
		return false, nil
	}
	if filepath.IsAbs(file) {
		attempts = append(attempts, file)
		return fileExists(file), attempts
	}

	var dirs []string
	if m != nil && m.FilePath() != "" {
		modelDir := filepath.Dir(m.FilePath())
		dirs = append(dirs, modelDir, filepath.Join(modelDir, "Geometry"))
	}
	dirs = append(dirs, ".", "Geometry")
	if home := os.Getenv(HomeEnv); home != "" {
		dirs = append(dirs, filepath.Join(home, "Geometry"))
	}

	for _, dir := range dirs {
		p := filepath.Join(dir, file)
		attempts = append(attempts, p)
		if fileExists(p) {
			return true, attempts
		}
	}
	return false, attempts
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
