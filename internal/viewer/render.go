package viewer

import (
	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/RussellJ95/opensim-core/internal/decoration"
	"github.com/RussellJ95/opensim-core/internal/meshio"
	"github.com/RussellJ95/opensim-core/internal/model"
	"github.com/RussellJ95/opensim-core/internal/spatial"
)

const (
	sphereRings    = 24
	sphereSlices   = 24
	cylinderSlices = 24
	coneSlices     = 24
	arrowSides     = 12
	frameAxisSides = 8
)

// cached holds the unit mesh and material for one shape kind. Created
// lazily on first draw so GPU resources are allocated after the window
// and GL context exist.
type cached struct {
	mesh rl.Mesh
	mtl  rl.Material
}

// fileMesh is the uploaded GPU copy of one loaded mesh file. The float
// slices back the rl.Mesh pointers and must outlive it. lastUse is the
// frame the entry was last drawn in; BeginFrame drops entries that sat
// out a full frame.
type fileMesh struct {
	mesh    rl.Mesh
	verts   []float32
	norms   []float32
	lastUse uint64
}

// Renderer draws decorations inside the 3D pass. Shapes are drawn as
// lazily created unit meshes under per-decoration transforms; lines,
// arrows and frame axes are drawn directly. File meshes are uploaded
// once per loaded copy and released once nothing draws them.
type Renderer struct {
	cache map[string]cached

	// meshes is keyed by the identity of a loaded mesh's backing vertex
	// array. Decorations emitted from the same load share one entry;
	// separate loads of the same file each get their own.
	meshes map[*spatial.Vec3]*fileMesh
	frame  uint64

	meshMtl      rl.Material
	meshMtlReady bool

	viewPos  [3]float32
	lightDir [3]float32

	// Wireframe forces wireframe rendering regardless of per-decoration
	// representation.
	Wireframe bool

	drawn   int
	skipped int
}

// NewRenderer returns a renderer with no meshes cached yet.
func NewRenderer() *Renderer {
	return &Renderer{
		cache:    make(map[string]cached),
		meshes:   make(map[*spatial.Vec3]*fileMesh),
		lightDir: [3]float32{0.5, 1, 0.5},
	}
}

// SetView sets the camera position and the direction to the light used
// for shading. Call once per frame before Draw.
func (r *Renderer) SetView(viewPos, lightDir [3]float32) {
	r.viewPos = viewPos
	r.lightDir = lightDir
}

// BeginFrame resets the draw counters and releases the GPU copy of any
// file mesh that went undrawn for a full frame. Call once per frame
// before the Draw calls.
func (r *Renderer) BeginFrame() {
	r.drawn, r.skipped = 0, 0
	r.frame++
	for key, entry := range r.meshes {
		if entry.lastUse+1 < r.frame {
			unloadFileMesh(entry)
			delete(r.meshes, key)
		}
	}
}

// Drawn returns the number of decorations drawn since BeginFrame.
func (r *Renderer) Drawn() int { return r.drawn }

// Skipped returns the number of decorations hidden since BeginFrame.
func (r *Renderer) Skipped() int { return r.skipped }

// Draw renders ds against the body poses in st. Must be called between
// BeginMode3D and EndMode3D. Each decoration's placement is its body's
// ground pose composed with its transform on the body.
func (r *Renderer) Draw(ds []decoration.Decoration, st *model.State) {
	for _, d := range ds {
		p := d.Shared()
		if p.Appearance.Representation == decoration.Hide || p.Appearance.Opacity <= 0 {
			r.skipped++
			continue
		}
		world := st.BodyTransform(p.BodyIndex).Compose(p.Transform)
		switch v := d.(type) {
		case *decoration.Sphere:
			r.drawUnit("sphere", world, p, spatial.V3(v.Radius, v.Radius, v.Radius), spatial.Vec3{})
		case *decoration.Ellipsoid:
			r.drawUnit("sphere", world, p, v.Radii, spatial.Vec3{})
		case *decoration.Brick:
			r.drawUnit("box", world, p, v.HalfLengths.Scale(2), spatial.Vec3{})
		case *decoration.Cylinder:
			// The unit cylinder has its base at Y=0; recenter so the
			// shape spans -HalfHeight..HalfHeight around the placement.
			r.drawUnit("cylinder", world, p, spatial.V3(v.Radius, 2*v.HalfHeight, v.Radius), spatial.V3(0, -0.5, 0))
		case *decoration.Cone:
			r.drawCone(world, p, v)
		case *decoration.Line:
			rl.DrawLine3D(worldPoint(world, p, v.Start), worldPoint(world, p, v.End), tint(p.Appearance))
		case *decoration.Arrow:
			r.drawArrow(world, p, v)
		case *decoration.Frame:
			r.drawFrame(world, p, v)
		case *decoration.Mesh:
			r.drawFileMesh(world, p, v)
		default:
			r.skipped++
			continue
		}
		r.drawn++
	}
}

// ensure creates the unit mesh and material for a shape kind if not yet
// cached. Unit sizes: sphere radius 1, box side 1, cylinder and cone
// radius 1 height 1 with base at Y=0.
func (r *Renderer) ensure(key string) cached {
	if c, ok := r.cache[key]; ok {
		return c
	}
	var mesh rl.Mesh
	switch key {
	case "sphere":
		mesh = rl.GenMeshSphere(1, sphereRings, sphereSlices)
	case "box":
		mesh = rl.GenMeshCube(1, 1, 1)
	case "cylinder":
		mesh = rl.GenMeshCylinder(1, 1, cylinderSlices)
	case "cone":
		mesh = rl.GenMeshCone(1, 1, coneSlices)
	}
	mtl := rl.LoadMaterialDefault()
	if shader := loadLitShader(); rl.IsShaderValid(shader) {
		mtl.Shader = shader
	}
	c := cached{mesh: mesh, mtl: mtl}
	r.cache[key] = c
	return c
}

func (r *Renderer) drawUnit(key string, world spatial.Transform, p *decoration.Props, size, centerOffset spatial.Vec3) {
	c := r.ensure(key)
	if albedo := c.mtl.GetMap(rl.MapAlbedo); albedo != nil {
		albedo.Color = tint(p.Appearance)
	}
	r.setLitShaderUniforms(c.mtl.Shader)

	m := rl.MatrixIdentity()
	if !centerOffset.IsZero() {
		m = rl.MatrixTranslate(centerOffset.X, centerOffset.Y, centerOffset.Z)
	}
	m = rl.MatrixMultiply(m, rl.MatrixScale(size.X, size.Y, size.Z))
	m = rl.MatrixMultiply(m, scaleFactorsMatrix(p))
	m = rl.MatrixMultiply(m, worldMatrix(world))

	r.drawMesh(c.mesh, c.mtl, m, p.Appearance.Representation)
}

func (r *Renderer) drawCone(world spatial.Transform, p *decoration.Props, v *decoration.Cone) {
	c := r.ensure("cone")
	if albedo := c.mtl.GetMap(rl.MapAlbedo); albedo != nil {
		albedo.Color = tint(p.Appearance)
	}
	r.setLitShaderUniforms(c.mtl.Shader)

	// Size the unit cone, swing +Y onto the cone direction, move the
	// base disc to Origin, then place it.
	var rot rl.Quaternion
	if v.Direction.Y < -0.9999 {
		rot = rl.QuaternionFromAxisAngle(rl.NewVector3(1, 0, 0), math32.Pi)
	} else {
		rot = rl.QuaternionFromVector3ToVector3(rl.NewVector3(0, 1, 0), rl.NewVector3(v.Direction.X, v.Direction.Y, v.Direction.Z))
	}
	m := rl.MatrixScale(v.BaseRadius, v.Height, v.BaseRadius)
	m = rl.MatrixMultiply(m, rl.QuaternionToMatrix(rot))
	m = rl.MatrixMultiply(m, rl.MatrixTranslate(v.Origin.X, v.Origin.Y, v.Origin.Z))
	m = rl.MatrixMultiply(m, scaleFactorsMatrix(p))
	m = rl.MatrixMultiply(m, worldMatrix(world))

	r.drawMesh(c.mesh, c.mtl, m, p.Appearance.Representation)
}

func (r *Renderer) drawArrow(world spatial.Transform, p *decoration.Props, v *decoration.Arrow) {
	start := worldPoint(world, p, v.Start)
	end := worldPoint(world, p, v.End)
	dir := rl.Vector3Subtract(end, start)
	length := rl.Vector3Length(dir)
	if length == 0 {
		return
	}
	unit := rl.Vector3Scale(dir, 1/length)
	tipLen := length * 0.25
	if maxTip := v.LineThickness * 6; maxTip > 0 && tipLen > maxTip {
		tipLen = maxTip
	}
	neck := rl.Vector3Add(start, rl.Vector3Scale(unit, length-tipLen))
	col := tint(p.Appearance)
	if shaft := v.LineThickness * 0.5; shaft > 0 {
		rl.DrawCylinderEx(start, neck, shaft, shaft, arrowSides, col)
	} else {
		rl.DrawLine3D(start, neck, col)
	}
	rl.DrawCylinderEx(neck, end, v.LineThickness*1.5, 0, arrowSides, col)
}

// drawFrame draws the axis triad with the fixed X=red Y=green Z=blue
// convention; the appearance contributes only the alpha.
func (r *Renderer) drawFrame(world spatial.Transform, p *decoration.Props, v *decoration.Frame) {
	origin := worldPoint(world, p, spatial.Vec3{})
	alpha := channel(p.Appearance.Opacity)
	axes := [3]struct {
		dir spatial.Vec3
		col rl.Color
	}{
		{spatial.V3(v.AxisLength, 0, 0), rl.NewColor(220, 80, 80, alpha)},
		{spatial.V3(0, v.AxisLength, 0), rl.NewColor(80, 220, 80, alpha)},
		{spatial.V3(0, 0, v.AxisLength), rl.NewColor(80, 80, 220, alpha)},
	}
	for _, a := range axes {
		endPt := worldPoint(world, p, a.dir)
		if v.LineThickness > 0 {
			rl.DrawCylinderEx(origin, endPt, v.LineThickness, v.LineThickness, frameAxisSides, a.col)
		} else {
			rl.DrawLine3D(origin, endPt, a.col)
		}
	}
}

// drawFileMesh uploads the mesh data on first sight and reuses the GPU
// copy for as long as the load it came from keeps being drawn. A reload
// hands out fresh vertex slices, so it lands in a new cache slot and
// the stale one ages out in BeginFrame.
func (r *Renderer) drawFileMesh(world spatial.Transform, p *decoration.Props, v *decoration.Mesh) {
	if len(v.Vertices) == 0 || len(v.Faces) == 0 {
		return
	}
	entry := r.fileMeshFor(v)
	if entry == nil {
		return
	}

	if !r.meshMtlReady {
		r.meshMtl = rl.LoadMaterialDefault()
		if shader := loadLitShader(); rl.IsShaderValid(shader) {
			r.meshMtl.Shader = shader
		}
		r.meshMtlReady = true
	}
	if albedo := r.meshMtl.GetMap(rl.MapAlbedo); albedo != nil {
		albedo.Color = tint(p.Appearance)
	}
	r.setLitShaderUniforms(r.meshMtl.Shader)

	m := rl.MatrixMultiply(scaleFactorsMatrix(p), worldMatrix(world))
	r.drawMesh(entry.mesh, r.meshMtl, m, p.Appearance.Representation)
}

// fileMeshFor returns the GPU copy backing v's vertex array, building
// and uploading it on a miss, and marks it drawn this frame.
func (r *Renderer) fileMeshFor(v *decoration.Mesh) *fileMesh {
	key := &v.Vertices[0]
	entry, ok := r.meshes[key]
	if !ok {
		entry = buildFileMesh(v)
		if entry == nil {
			return nil
		}
		r.meshes[key] = entry
	}
	entry.lastUse = r.frame
	return entry
}

// meshBuffers expands the polygon faces into flat triangle arrays with
// per-face normals. Triangles indexing outside the vertex list are
// dropped.
func meshBuffers(v *decoration.Mesh) (verts, norms []float32) {
	nv := len(v.Vertices)
	pm := meshio.PolygonMesh{Vertices: v.Vertices, Faces: v.Faces}
	for _, tri := range pm.Triangles() {
		i0, i1, i2 := tri[0], tri[1], tri[2]
		if i0 < 0 || i1 < 0 || i2 < 0 || i0 >= nv || i1 >= nv || i2 >= nv {
			continue
		}
		a, b, c := v.Vertices[i0], v.Vertices[i1], v.Vertices[i2]
		n := b.Sub(a).Cross(c.Sub(a)).Normalized()
		for _, pt := range [3]spatial.Vec3{a, b, c} {
			verts = append(verts, pt.X, pt.Y, pt.Z)
			norms = append(norms, n.X, n.Y, n.Z)
		}
	}
	return verts, norms
}

// buildFileMesh triangulates v and uploads it. Nil when no valid
// triangle remains.
func buildFileMesh(v *decoration.Mesh) *fileMesh {
	verts, norms := meshBuffers(v)
	if len(verts) == 0 {
		return nil
	}
	entry := &fileMesh{verts: verts, norms: norms}
	entry.mesh.VertexCount = int32(len(verts) / 3)
	entry.mesh.TriangleCount = entry.mesh.VertexCount / 3
	entry.mesh.Vertices = &verts[0]
	entry.mesh.Normals = &norms[0]
	rl.UploadMesh(&entry.mesh, false)
	return entry
}

// unloadFileMesh releases the entry's GPU buffers. The vertex arrays
// are Go slices owned by the entry, not raylib allocations, so they are
// detached before raylib frees the rest.
func unloadFileMesh(entry *fileMesh) {
	entry.mesh.Vertices = nil
	entry.mesh.Normals = nil
	rl.UnloadMesh(&entry.mesh)
}

func (r *Renderer) drawMesh(mesh rl.Mesh, mtl rl.Material, transform rl.Matrix, rep decoration.Rep) {
	wire := r.Wireframe || rep == decoration.Wireframe || rep == decoration.Points
	if wire {
		rl.EnableWireMode()
	}
	rl.DrawMesh(mesh, mtl, transform)
	if wire {
		rl.DisableWireMode()
	}
}

// worldMatrix converts a placement into a raylib matrix, rotation first
// then translation.
func worldMatrix(world spatial.Transform) rl.Matrix {
	rot := rl.QuaternionToMatrix(rl.NewQuaternion(world.R.X, world.R.Y, world.R.Z, world.R.W))
	return rl.MatrixMultiply(rot, rl.MatrixTranslate(world.P.X, world.P.Y, world.P.Z))
}

// worldPoint maps a point in the decoration's frame to ground, applying
// the scale factors first.
func worldPoint(world spatial.Transform, p *decoration.Props, v spatial.Vec3) rl.Vector3 {
	pt := world.Apply(v.Mul(p.ScaleFactors))
	return rl.NewVector3(pt.X, pt.Y, pt.Z)
}

func scaleFactorsMatrix(p *decoration.Props) rl.Matrix {
	return rl.MatrixScale(nonZero(p.ScaleFactors.X), nonZero(p.ScaleFactors.Y), nonZero(p.ScaleFactors.Z))
}

func nonZero(v float32) float32 {
	if v == 0 {
		return 1
	}
	return v
}

func tint(ap decoration.Appearance) rl.Color {
	return rl.NewColor(channel(ap.Color.X), channel(ap.Color.Y), channel(ap.Color.Z), channel(ap.Opacity))
}

func channel(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v * 255)
}
