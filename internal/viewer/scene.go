// Package viewer is the raylib presentation layer: a free camera over an
// editor grid, a renderer that turns collected decorations into draw
// calls, and the corner overlays.
package viewer

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	gridExtent     = 10
	gridMinorStep  = 1
	gridMajorStep  = 5
	gridMinorAlpha = 50
	gridMajorAlpha = 120
	axisLineAlpha  = 220
)

// Scene holds the 3D camera and draws the world. Camera control is
// raylib's free camera: mouse and WASD move the view while the terminal
// is closed.
type Scene struct {
	Camera      rl.Camera3D
	GridVisible bool

	cursorCaptured bool
}

// NewScene returns a scene with a perspective camera looking at the
// model space from close range. Grid is visible by default.
func NewScene() *Scene {
	s := &Scene{}
	s.Camera.Position = rl.NewVector3(2.5, 1.8, 2.5)
	s.Camera.Target = rl.NewVector3(0, 0.8, 0)
	s.Camera.Up = rl.NewVector3(0, 1, 0)
	s.Camera.Fovy = 45
	s.Camera.Projection = rl.CameraPerspective
	s.GridVisible = true
	return s
}

// SetGridVisible sets whether the editor grid is drawn.
func (s *Scene) SetGridVisible(visible bool) {
	s.GridVisible = visible
}

// Update runs camera control once per frame. While typing is true the
// cursor is released and the camera holds still, so terminal keystrokes
// do not move the view.
func (s *Scene) Update(typing bool) {
	if typing {
		if s.cursorCaptured {
			rl.EnableCursor()
			s.cursorCaptured = false
		}
		return
	}
	if !s.cursorCaptured {
		rl.DisableCursor()
		s.cursorCaptured = true
	}
	rl.UpdateCamera(&s.Camera, rl.CameraFree)
}

// Draw renders the 3D portion of a frame between BeginMode3D and
// EndMode3D: the grid first, then the caller's decorations. 2D overlays
// draw after this returns.
func (s *Scene) Draw(draw3D func()) {
	rl.BeginMode3D(s.Camera)
	if s.GridVisible {
		drawEditorGrid()
	}
	if draw3D != nil {
		draw3D()
	}
	rl.EndMode3D()
}

// drawEditorGrid draws a grid on the XZ plane with major/minor lines and
// axis lines through the origin. Reuses start/end vectors to avoid
// per-frame allocations in the hot loop.
func drawEditorGrid() {
	minor := rl.NewColor(128, 128, 128, gridMinorAlpha)
	major := rl.NewColor(160, 160, 160, gridMajorAlpha)
	axisX := rl.NewColor(220, 80, 80, axisLineAlpha)
	axisY := rl.NewColor(80, 220, 80, axisLineAlpha)
	axisZ := rl.NewColor(80, 80, 220, axisLineAlpha)

	var start, end rl.Vector3
	for x := -gridExtent; x <= gridExtent; x += gridMinorStep {
		c := major
		if x%gridMajorStep != 0 {
			c = minor
		}
		start.X, start.Y, start.Z = float32(x), 0, float32(-gridExtent)
		end.X, end.Y, end.Z = float32(x), 0, float32(gridExtent)
		rl.DrawLine3D(start, end, c)
	}
	for z := -gridExtent; z <= gridExtent; z += gridMinorStep {
		c := major
		if z%gridMajorStep != 0 {
			c = minor
		}
		start.X, start.Y, start.Z = float32(-gridExtent), 0, float32(z)
		end.X, end.Y, end.Z = float32(gridExtent), 0, float32(z)
		rl.DrawLine3D(start, end, c)
	}

	// Axis lines through origin (X=red, Y=green, Z=blue)
	start.X, start.Y, start.Z = float32(-gridExtent), 0, 0
	end.X, end.Y, end.Z = float32(gridExtent), 0, 0
	rl.DrawLine3D(start, end, axisX)
	start.X, start.Y, start.Z = 0, float32(-gridExtent), 0
	end.X, end.Y, end.Z = 0, float32(gridExtent), 0
	rl.DrawLine3D(start, end, axisY)
	start.X, start.Y, start.Z = 0, 0, float32(-gridExtent)
	end.X, end.Y, end.Z = 0, 0, float32(gridExtent)
	rl.DrawLine3D(start, end, axisZ)
}
