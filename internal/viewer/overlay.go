package viewer

import (
	"fmt"
	"runtime"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	overlayFontSize   = 20
	overlayPadding    = 12
	overlayLineHeight = overlayFontSize + 4
	// Only refresh overlay text every N frames to limit allocations.
	updateInterval = 30
)

// Overlay draws the top-right stats: FPS, heap use and decoration
// counts. All lines are off by default.
type Overlay struct {
	ShowFPS   bool
	ShowStats bool

	font       rl.Font
	frameCount uint32
	lastFPS    string
	lastMem    string
	lastCounts string
	memStats   runtime.MemStats
	drawn      int
	skipped    int
}

// NewOverlay returns an overlay with all lines hidden.
func NewOverlay() *Overlay {
	return &Overlay{}
}

// SetFont sets the font used for overlay text. Zero texture ID keeps the
// built-in font.
func (o *Overlay) SetFont(font rl.Font) {
	o.font = font
}

// SetCounts records the decoration counts of the current frame for the
// stats line.
func (o *Overlay) SetCounts(drawn, skipped int) {
	o.drawn = drawn
	o.skipped = skipped
}

// Draw renders the enabled overlay lines. Call after the 3D scene and
// terminal in the draw loop. Text is recomputed every updateInterval
// frames.
func (o *Overlay) Draw() {
	o.frameCount++
	update := (o.frameCount % updateInterval) == 0
	if o.ShowFPS && o.lastFPS == "" {
		update = true
	}
	if o.ShowStats && o.lastCounts == "" {
		update = true
	}

	y := overlayPadding
	if o.ShowFPS {
		if update {
			o.lastFPS = fmt.Sprintf("FPS: %d", rl.GetFPS())
		}
		o.drawRight(o.lastFPS, y)
		y += overlayLineHeight
	}
	if o.ShowStats {
		if update {
			runtime.ReadMemStats(&o.memStats)
			mb := float64(o.memStats.Alloc) / (1024 * 1024)
			o.lastMem = fmt.Sprintf("Mem: %.2f MiB", mb)
			o.lastCounts = fmt.Sprintf("Decorations: %d drawn, %d hidden", o.drawn, o.skipped)
		}
		o.drawRight(o.lastMem, y)
		y += overlayLineHeight
		o.drawRight(o.lastCounts, y)
	}
}

// drawRight draws text right-aligned at the given y.
func (o *Overlay) drawRight(text string, y int) {
	if text == "" {
		return
	}
	screenW := int32(rl.GetScreenWidth())
	if o.font.Texture.ID != 0 {
		sz := float32(overlayFontSize)
		pos := rl.NewVector2(float32(screenW)-rl.MeasureTextEx(o.font, text, sz, 1).X-float32(overlayPadding), float32(y))
		rl.DrawTextEx(o.font, text, pos, sz, 1, rl.Green)
		return
	}
	w := rl.MeasureText(text, overlayFontSize)
	rl.DrawText(text, screenW-w-overlayPadding, int32(y), overlayFontSize, rl.Green)
}
