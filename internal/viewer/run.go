package viewer

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Run opens the window and drives the main loop. Each frame it calls
// update, then clears the screen and calls draw between BeginDrawing and
// EndDrawing. ESC is reserved for the terminal, so the window closes via
// its close button.
func Run(title string, update, draw func()) {
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(1280, 720, title)
	defer rl.CloseWindow()

	rl.SetExitKey(rl.KeyNull)
	rl.SetTargetFPS(60)

	for !rl.WindowShouldClose() {
		update()

		rl.BeginDrawing()
		rl.ClearBackground(rl.NewColor(18, 18, 22, 255))
		draw()
		rl.EndDrawing()
	}
}
