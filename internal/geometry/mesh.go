package geometry

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/RussellJ95/opensim-core/internal/assets"
	"github.com/RussellJ95/opensim-core/internal/decoration"
	"github.com/RussellJ95/opensim-core/internal/logger"
	"github.com/RussellJ95/opensim-core/internal/meshio"
	"github.com/RussellJ95/opensim-core/internal/model"
)

// meshCacheState tracks the lazy load protocol of a Mesh. The cache is
// recomputed only on an OnPropertiesChanged signal, never during drawing.
type meshCacheState int

const (
	// meshStale means the file has not been resolved for the current
	// properties. The next properties pass attempts a load.
	meshStale meshCacheState = iota
	// meshFailed means the last attempt did not produce a mesh. The
	// failure was logged; nothing renders until properties change again.
	meshFailed
	// meshLoaded means cached holds the loaded mesh.
	meshLoaded
)

// Mesh renders a polygonal surface loaded from a file found in the
// model's geometry search path. The file is read at most once per
// property change, at connect time, so drawing never touches disk.
type Mesh struct {
	Base

	file string

	cacheState meshCacheState
	cached     *decoration.Mesh
}

func NewMesh(name, file string) *Mesh {
	return &Mesh{Base: newBase("Mesh", name), file: file}
}

// File returns the configured mesh file path.
func (m *Mesh) File() string { return m.file }

// SetFile changes the mesh file and marks the cache stale, so the next
// properties pass loads the new file.
func (m *Mesh) SetFile(file string) {
	m.file = file
	m.markStale()
}

// SetOwner attaches the mesh to its owner and marks the cache stale. A
// mesh that failed to load as an orphan retries once it is in a model.
func (m *Mesh) SetOwner(o model.Component) {
	m.ComponentBase.SetOwner(o)
	m.markStale()
}

func (m *Mesh) markStale() {
	m.cacheState = meshStale
	m.cached = nil
}

// OnPropertiesChanged resolves and loads the mesh file if the cache is
// stale. Every failure path leaves the cache empty and logs why; none of
// them is an error to the caller, the mesh just renders nothing until the
// condition is fixed and properties change again.
func (m *Mesh) OnPropertiesChanged() {
	if m.cacheState != meshStale {
		return
	}
	m.cacheState = meshFailed
	m.cached = nil
	log := logger.Logger()

	root := model.RootModel(m)
	if root == nil {
		log.Warn("mesh not connected to a model, ignoring", "file", m.file)
		return
	}
	if !meshio.Supported(m.file) {
		log.Warn("ignoring mesh file, unsupported format",
			"file", m.file,
			"supported", strings.Join(meshio.Extensions, " "))
		return
	}

	found, attempts := assets.FindGeometryFile(root, m.file)
	if !found {
		log.Warn("mesh file not found", "file", m.file)
		for _, p := range attempts {
			log.Warn("tried", "path", p)
		}
		if !filepath.IsAbs(m.file) && os.Getenv(assets.HomeEnv) == "" {
			log.Warn("set " + assets.HomeEnv + " to search $" + assets.HomeEnv + "/Geometry")
		}
		return
	}

	path := attempts[len(attempts)-1]
	pm, err := meshio.Load(path)
	if err != nil {
		log.Warn("could not read mesh file", "path", path, "error", err.Error())
		return
	}

	m.cached = &decoration.Mesh{
		Props:    decoration.DefaultProps(),
		Path:     path,
		Vertices: pm.Vertices,
		Faces:    pm.Faces,
	}
	m.cacheState = meshLoaded
}

// emit appends a copy of the cached mesh, or nothing when no mesh is
// loaded. The copy shares the vertex data; scale factors and placement
// are stamped on each emission.
func (m *Mesh) emit(dst []decoration.Decoration) []decoration.Decoration {
	if m.cached == nil {
		return dst
	}
	d := *m.cached
	return append(dst, &d)
}

func (m *Mesh) GenerateDecorations(fixed bool, hints model.DisplayHints, st *model.State, dst []decoration.Decoration) ([]decoration.Decoration, error) {
	return Generate(m, fixed, hints, st, dst)
}

var (
	_ Geometry                 = (*Mesh)(nil)
	_ model.PropertiesListener = (*Mesh)(nil)
)
