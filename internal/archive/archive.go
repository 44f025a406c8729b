// Package archive extracts zipped geometry sets into the model's mesh
// search path.
package archive

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/RussellJ95/opensim-core/internal/meshio"
)

// Unzip extracts zipPath into destDir, preserving directory structure.
// Entries whose cleaned path would land outside destDir are skipped.
// destDir is created if needed. Returns the extracted file paths.
func Unzip(zipPath, destDir string) (extracted []string, err error) {
	r, err := zip.OpenReader(zipPath)
	if err != nil {
		return nil, fmt.Errorf("unzip: %w", err)
	}
	defer r.Close()
	if err := os.MkdirAll(destDir, 0755); err != nil {
		return nil, fmt.Errorf("unzip: %w", err)
	}
	absDir, err := filepath.Abs(destDir)
	if err != nil {
		return nil, fmt.Errorf("unzip: %w", err)
	}
	for _, f := range r.File {
		dest := filepath.Clean(filepath.Join(destDir, f.Name))
		absDest, err := filepath.Abs(dest)
		if err != nil {
			return nil, fmt.Errorf("unzip: %w", err)
		}
		if absDest != absDir && !strings.HasPrefix(absDest, absDir+string(os.PathSeparator)) {
			continue // path escape
		}
		if f.FileInfo().IsDir() {
			_ = os.MkdirAll(dest, 0755)
			continue
		}
		if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
			return nil, fmt.Errorf("unzip: %w", err)
		}
		out, err := os.Create(dest)
		if err != nil {
			return nil, fmt.Errorf("unzip: %w", err)
		}
		rc, err := f.Open()
		if err != nil {
			out.Close()
			return nil, fmt.Errorf("unzip: %w", err)
		}
		_, err = io.Copy(out, rc)
		rc.Close()
		out.Close()
		if err != nil {
			return nil, fmt.Errorf("unzip: %w", err)
		}
		extracted = append(extracted, dest)
	}
	return extracted, nil
}

// FindMeshFiles returns the supported mesh files under dir as slash paths
// relative to dir, in walk order. Used to report what a geometry set
// contained after extraction.
func FindMeshFiles(dir string) (relPaths []string, err error) {
	dir = filepath.Clean(dir)
	err = filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() || !meshio.Supported(path) {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		relPaths = append(relPaths, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return relPaths, nil
}
