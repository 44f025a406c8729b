package meshio

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/RussellJ95/opensim-core/internal/spatial"
)

// readOBJ parses a Wavefront .obj stream. Only vertex positions and faces
// are used; texture coordinates, normals, groups and materials are skipped.
func readOBJ(r io.Reader) (*PolygonMesh, error) {
	mesh := &PolygonMesh{}
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}
		ident, val := fields[0], fields[1:]
		switch ident {
		case "v":
			if len(val) < 3 {
				return nil, fmt.Errorf("meshio: obj line %d: vertex needs 3 coordinates", lineNo)
			}
			x, err1 := strconv.ParseFloat(val[0], 32)
			y, err2 := strconv.ParseFloat(val[1], 32)
			z, err3 := strconv.ParseFloat(val[2], 32)
			if err1 != nil || err2 != nil || err3 != nil {
				return nil, fmt.Errorf("meshio: obj line %d: bad vertex", lineNo)
			}
			mesh.Vertices = append(mesh.Vertices, spatial.V3(float32(x), float32(y), float32(z)))
		case "f":
			face := make([]int, 0, len(val))
			for _, s := range val {
				// A corner is "v", "v/vt", "v//vn" or "v/vt/vn"; only the
				// position index matters here.
				idx := strings.SplitN(s, "/", 2)[0]
				pos, err := strconv.Atoi(idx)
				if err != nil {
					return nil, fmt.Errorf("meshio: obj line %d: bad face index %q", lineNo, s)
				}
				// Indices start at 1; negative counts back from the end.
				if pos < 0 {
					pos = len(mesh.Vertices) + pos
				} else {
					pos = pos - 1
				}
				face = append(face, pos)
			}
			mesh.Faces = append(mesh.Faces, face)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("meshio: %w", err)
	}
	if err := mesh.checkFaces(); err != nil {
		return nil, err
	}
	return mesh, nil
}
