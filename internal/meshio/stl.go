package meshio

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/RussellJ95/opensim-core/internal/spatial"
)

// readSTL parses an .stl stream, accepting both the ASCII and the binary
// form. Triangles share vertices again after loading, so a unit cube comes
// back with 8 vertices instead of 36.
func readSTL(r io.Reader) (*PolygonMesh, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("meshio: %w", err)
	}
	// Binary files may also begin with "solid" in their free-form header,
	// so require a facet keyword before treating the data as ASCII.
	head := bytes.TrimLeft(data, " \t\r\n")
	if bytes.HasPrefix(head, []byte("solid")) && bytes.Contains(data, []byte("facet")) {
		return readSTLASCII(bytes.NewReader(data))
	}
	return readSTLBinary(data)
}

// stlBuilder accumulates triangles while merging duplicate corner points.
type stlBuilder struct {
	mesh  *PolygonMesh
	index map[[3]float32]int
}

func newSTLBuilder() *stlBuilder {
	return &stlBuilder{
		mesh:  &PolygonMesh{},
		index: make(map[[3]float32]int),
	}
}

func (b *stlBuilder) vertex(p [3]float32) int {
	if i, ok := b.index[p]; ok {
		return i
	}
	i := len(b.mesh.Vertices)
	b.index[p] = i
	b.mesh.Vertices = append(b.mesh.Vertices, spatial.V3(p[0], p[1], p[2]))
	return i
}

func (b *stlBuilder) triangle(v0, v1, v2 [3]float32) {
	b.mesh.Faces = append(b.mesh.Faces, []int{b.vertex(v0), b.vertex(v1), b.vertex(v2)})
}

func readSTLASCII(r io.Reader) (*PolygonMesh, error) {
	b := newSTLBuilder()
	scanner := bufio.NewScanner(r)
	var corners [][3]float32
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		switch fields[0] {
		case "vertex":
			if len(fields) < 4 {
				return nil, fmt.Errorf("meshio: stl line %d: vertex needs 3 coordinates", lineNo)
			}
			var p [3]float32
			for i := 0; i < 3; i++ {
				f, err := strconv.ParseFloat(fields[i+1], 32)
				if err != nil {
					return nil, fmt.Errorf("meshio: stl line %d: bad vertex", lineNo)
				}
				p[i] = float32(f)
			}
			corners = append(corners, p)
		case "endfacet":
			if len(corners) != 3 {
				return nil, fmt.Errorf("meshio: stl line %d: facet with %d vertices", lineNo, len(corners))
			}
			b.triangle(corners[0], corners[1], corners[2])
			corners = corners[:0]
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("meshio: %w", err)
	}
	return b.mesh, nil
}

func readSTLBinary(data []byte) (*PolygonMesh, error) {
	// 80-byte header, uint32 triangle count, then 50 bytes per triangle.
	if len(data) < 84 {
		return nil, fmt.Errorf("meshio: stl file truncated")
	}
	count := binary.LittleEndian.Uint32(data[80:84])
	if int64(len(data)) < 84+int64(count)*50 {
		return nil, fmt.Errorf("meshio: stl file truncated, header claims %d triangles", count)
	}

	b := newSTLBuilder()
	rd := bytes.NewReader(data[84:])
	var tri struct {
		Normal [3]float32
		Verts  [3][3]float32
		Attr   uint16
	}
	for i := uint32(0); i < count; i++ {
		if err := binary.Read(rd, binary.LittleEndian, &tri); err != nil {
			return nil, fmt.Errorf("meshio: %w", err)
		}
		b.triangle(tri.Verts[0], tri.Verts[1], tri.Verts[2])
	}
	return b.mesh, nil
}
