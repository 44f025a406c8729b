// Package meshio loads polygonal surface meshes from the file formats the
// geometry pipeline accepts: Wavefront .obj, VTK XML .vtp and .stl.
package meshio

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/RussellJ95/opensim-core/internal/spatial"
)

// Extensions lists the supported mesh file extensions, lower case with dot.
var Extensions = []string{".vtp", ".obj", ".stl"}

// Supported reports whether the file name has a loadable mesh extension.
// The check is case-insensitive, so e.g. "femur.OBJ" is accepted.
func Supported(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range Extensions {
		if ext == e {
			return true
		}
	}
	return false
}

// PolygonMesh is a surface mesh as loaded from disk. Faces hold indices
// into Vertices and may have three or more corners.
type PolygonMesh struct {
	Vertices []spatial.Vec3
	Faces    [][]int
}

// Triangles fan-triangulates the faces for renderers that only accept
// triangles. Faces are assumed convex.
func (m *PolygonMesh) Triangles() [][3]int {
	tris := make([][3]int, 0, len(m.Faces))
	for _, f := range m.Faces {
		for i := 1; i+1 < len(f); i++ {
			tris = append(tris, [3]int{f[0], f[i], f[i+1]})
		}
	}
	return tris
}

// checkFaces verifies every face has at least three corners and indexes
// only existing vertices.
func (m *PolygonMesh) checkFaces() error {
	n := len(m.Vertices)
	for i, f := range m.Faces {
		if len(f) < 3 {
			return fmt.Errorf("meshio: face %d has %d vertices", i, len(f))
		}
		for _, v := range f {
			if v < 0 || v >= n {
				return fmt.Errorf("meshio: face %d references vertex %d of %d", i, v, n)
			}
		}
	}
	return nil
}

// Load reads the mesh file at path, choosing the parser by extension.
func Load(path string) (*PolygonMesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("meshio: %w", err)
	}
	defer f.Close()

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".obj":
		return readOBJ(f)
	case ".vtp":
		return readVTP(f)
	case ".stl":
		return readSTL(f)
	default:
		return nil, fmt.Errorf("meshio: unsupported mesh format %q", ext)
	}
}
