// Package fonts locates an overlay font for the viewer's terminal and
// debug text.
package fonts

import (
	"os"
	"path/filepath"
	"strings"
)

// Exts are the file extensions considered font files.
var Exts = []string{".ttf", ".otf"}

// BaseDirs returns candidate font directories relative to the process
// working directory. The first that yields fonts wins.
func BaseDirs() []string {
	return []string{"assets/fonts", "../../assets/fonts"}
}

// ScanDir returns relative slash paths of all font files under dir. A
// missing dir yields an empty list, not an error.
func ScanDir(dir string) ([]string, error) {
	var out []string
	dir = filepath.Clean(dir)
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return err
		}
		if info.IsDir() {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(path))
		for _, e := range Exts {
			if ext == e {
				rel, err := filepath.Rel(dir, path)
				if err != nil {
					return err
				}
				out = append(out, filepath.ToSlash(rel))
				return nil
			}
		}
		return nil
	})
	return out, err
}

// Default returns the full path of the font used for overlay text: the
// first font found under BaseDirs, preferring one whose path contains
// "regular". ok is false when no font is available; the viewer then falls
// back to the built-in font.
func Default() (fullPath string, ok bool) {
	for _, base := range BaseDirs() {
		list, err := ScanDir(base)
		if err != nil || len(list) == 0 {
			continue
		}
		pick := list[0]
		for _, rel := range list {
			if strings.Contains(strings.ToLower(rel), "regular") {
				pick = rel
				break
			}
		}
		full := filepath.Join(base, filepath.FromSlash(pick))
		if _, err := os.Stat(full); err == nil {
			return full, true
		}
	}
	return "", false
}
