package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/RussellJ95/opensim-core/internal/commands"
	"github.com/RussellJ95/opensim-core/internal/config"
	"github.com/RussellJ95/opensim-core/internal/decoration"
	"github.com/RussellJ95/opensim-core/internal/env"
	"github.com/RussellJ95/opensim-core/internal/fonts"
	"github.com/RussellJ95/opensim-core/internal/logger"
	"github.com/RussellJ95/opensim-core/internal/model"
	"github.com/RussellJ95/opensim-core/internal/modelfile"
	"github.com/RussellJ95/opensim-core/internal/modelgen"
	"github.com/RussellJ95/opensim-core/internal/terminal"
	"github.com/RussellJ95/opensim-core/internal/viewer"
)

// app holds the loaded model and the presentation state the terminal
// commands mutate.
type app struct {
	modelPath string
	genOpts   modelgen.Options

	m     *model.Model
	st    *model.State
	hints model.DisplayHints

	fixed   []decoration.Decoration
	dynamic []decoration.Decoration
}

// loadModel builds the model (from file, or the demo pendulum), connects
// it, and collects the fixed decorations once. Called at startup and from
// the reload command.
func (a *app) loadModel() error {
	if a.modelPath == "" {
		a.m = modelgen.Generate(a.genOpts)
	} else {
		m, err := modelfile.Load(a.modelPath)
		if err != nil {
			return err
		}
		a.m = m
	}
	if err := a.m.Connect(); err != nil {
		return err
	}
	a.st = a.m.NewState()

	a.fixed = a.fixed[:0]
	var err error
	a.fixed, err = a.m.RealizeDecorations(true, a.hints, a.st, a.fixed)
	return err
}

// advance updates the kinematic state for the frame. The demo pendulum
// sways parametrically; a file model holds its rest pose.
func (a *app) advance(t float32) {
	if a.modelPath == "" {
		modelgen.Pose(a.st, a.genOpts, t)
		return
	}
	a.st.Time = float64(t)
}

// collectDynamic regenerates the per-frame decorations into a reused
// buffer.
func (a *app) collectDynamic() error {
	a.dynamic = a.dynamic[:0]
	var err error
	a.dynamic, err = a.m.RealizeDecorations(false, a.hints, a.st, a.dynamic)
	return err
}

func main() {
	modelPath := flag.String("model", "", "model definition (.yaml) to view; empty shows the demo pendulum")
	flag.Parse()

	if err := env.Load(".env"); err != nil {
		fmt.Fprintln(os.Stderr, "env:", err)
	}

	capture := logger.NewCapture(logger.LogFilePath, slog.LevelInfo)
	logger.SetLogger(slog.New(capture))

	prefs, err := config.Load()
	if err != nil {
		logger.Logger().Warn(err.Error())
	}

	a := &app{
		modelPath: *modelPath,
		genOpts:   modelgen.Default(),
		hints: model.DisplayHints{
			ShowFrames:    prefs.ShowFrames,
			ShowWireframe: prefs.Wireframe,
		},
	}
	if err := a.loadModel(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	logger.Logger().Info("model ready",
		"name", a.m.Name(),
		"bodies", a.m.NumBodies(),
		"frames", len(a.m.Frames()),
		"components", len(a.m.Components()))

	scn := viewer.NewScene()
	scn.GridVisible = prefs.GridVisible
	ren := viewer.NewRenderer()
	ov := viewer.NewOverlay()
	ov.ShowFPS = prefs.ShowFPS
	ov.ShowStats = prefs.ShowStats

	reg := commands.NewRegistry()
	term := terminal.New(capture, reg)
	registerCommands(reg, a, scn, ov)

	// Fonts need a GL context, so they load lazily inside the first frame.
	fontTried := false
	ensureFont := func() {
		if fontTried {
			return
		}
		fontTried = true
		path, ok := fonts.Default()
		if !ok {
			return
		}
		f := rl.LoadFont(path)
		if f.Texture.ID == 0 {
			logger.Logger().Warn("failed to load font", "path", path)
			return
		}
		term.SetFont(f)
		ov.SetFont(f)
	}

	var elapsed float32
	update := func() {
		term.Update()
		scn.Update(term.IsOpen())
		elapsed += rl.GetFrameTime()
		a.advance(elapsed)
	}

	draw := func() {
		ensureFont()
		if err := a.collectDynamic(); err != nil {
			logger.Logger().Warn(err.Error())
		}
		pos := scn.Camera.Position
		ren.SetView([3]float32{pos.X, pos.Y, pos.Z}, [3]float32{0.5, 1, 0.5})
		ren.Wireframe = a.hints.ShowWireframe
		ren.BeginFrame()
		scn.Draw(func() {
			ren.Draw(a.fixed, a.st)
			ren.Draw(a.dynamic, a.st)
		})
		term.Draw()
		ov.SetCounts(ren.Drawn(), ren.Skipped())
		ov.Draw()
	}

	viewer.Run("simview", update, draw)

	if err := config.Save(config.Prefs{
		ShowFPS:     ov.ShowFPS,
		ShowStats:   ov.ShowStats,
		GridVisible: scn.GridVisible,
		ShowFrames:  a.hints.ShowFrames,
		Wireframe:   a.hints.ShowWireframe,
	}); err != nil {
		logger.Logger().Warn(err.Error())
	}
}
