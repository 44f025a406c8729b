package meshio

import (
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/RussellJ95/opensim-core/internal/spatial"
)

// vtpFile mirrors the parts of a VTK XML PolyData file the loader needs.
type vtpFile struct {
	XMLName  xml.Name `xml:"VTKFile"`
	Type     string   `xml:"type,attr"`
	PolyData struct {
		Piece struct {
			NumberOfPoints int `xml:"NumberOfPoints,attr"`
			NumberOfPolys  int `xml:"NumberOfPolys,attr"`
			Points         struct {
				DataArray []vtpDataArray `xml:"DataArray"`
			} `xml:"Points"`
			Polys struct {
				DataArray []vtpDataArray `xml:"DataArray"`
			} `xml:"Polys"`
		} `xml:"Piece"`
	} `xml:"PolyData"`
}

type vtpDataArray struct {
	Name               string `xml:"Name,attr"`
	Format             string `xml:"format,attr"`
	NumberOfComponents int    `xml:"NumberOfComponents,attr"`
	Data               string `xml:",chardata"`
}

// readVTP parses a VTK XML PolyData (.vtp) stream. Only the ascii data
// format is supported; binary and appended encodings are rejected.
func readVTP(r io.Reader) (*PolygonMesh, error) {
	var file vtpFile
	if err := xml.NewDecoder(r).Decode(&file); err != nil {
		return nil, fmt.Errorf("meshio: %w", err)
	}
	if file.Type != "PolyData" {
		return nil, fmt.Errorf("meshio: vtp file is %q, want PolyData", file.Type)
	}

	piece := file.PolyData.Piece
	points, err := vtpArray(piece.Points.DataArray, "")
	if err != nil {
		return nil, err
	}
	coords, err := vtpFloats(points)
	if err != nil {
		return nil, err
	}
	if len(coords) != 3*piece.NumberOfPoints {
		return nil, fmt.Errorf("meshio: vtp has %d coordinates for %d points", len(coords), piece.NumberOfPoints)
	}

	mesh := &PolygonMesh{Vertices: make([]spatial.Vec3, 0, piece.NumberOfPoints)}
	for i := 0; i+2 < len(coords); i += 3 {
		mesh.Vertices = append(mesh.Vertices, spatial.V3(coords[i], coords[i+1], coords[i+2]))
	}

	conn, err := vtpArray(piece.Polys.DataArray, "connectivity")
	if err != nil {
		return nil, err
	}
	offsets, err := vtpArray(piece.Polys.DataArray, "offsets")
	if err != nil {
		return nil, err
	}
	connIdx, err := vtpInts(conn)
	if err != nil {
		return nil, err
	}
	offIdx, err := vtpInts(offsets)
	if err != nil {
		return nil, err
	}
	if len(offIdx) != piece.NumberOfPolys {
		return nil, fmt.Errorf("meshio: vtp has %d offsets for %d polys", len(offIdx), piece.NumberOfPolys)
	}

	// Each offset is the end of its polygon in the connectivity list.
	start := 0
	for _, end := range offIdx {
		if end < start || end > len(connIdx) {
			return nil, fmt.Errorf("meshio: vtp offset %d out of range", end)
		}
		mesh.Faces = append(mesh.Faces, append([]int{}, connIdx[start:end]...))
		start = end
	}
	if err := mesh.checkFaces(); err != nil {
		return nil, err
	}
	return mesh, nil
}

// vtpArray finds the data array with the given Name attribute, or the
// first one when name is empty, and insists on the ascii format.
func vtpArray(arrays []vtpDataArray, name string) (*vtpDataArray, error) {
	for i := range arrays {
		if name != "" && arrays[i].Name != name {
			continue
		}
		a := &arrays[i]
		if a.Format != "" && a.Format != "ascii" {
			return nil, fmt.Errorf("meshio: vtp data format %q not supported, want ascii", a.Format)
		}
		return a, nil
	}
	return nil, fmt.Errorf("meshio: vtp missing %q data array", name)
}

func vtpFloats(a *vtpDataArray) ([]float32, error) {
	fields := strings.Fields(a.Data)
	out := make([]float32, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.ParseFloat(f, 32)
		if err != nil {
			return nil, fmt.Errorf("meshio: vtp bad value %q", f)
		}
		out = append(out, float32(v))
	}
	return out, nil
}

func vtpInts(a *vtpDataArray) ([]int, error) {
	fields := strings.Fields(a.Data)
	out := make([]int, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("meshio: vtp bad index %q", f)
		}
		out = append(out, v)
	}
	return out, nil
}
