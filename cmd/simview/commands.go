package main

import (
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/RussellJ95/opensim-core/internal/archive"
	"github.com/RussellJ95/opensim-core/internal/commands"
	"github.com/RussellJ95/opensim-core/internal/download"
	"github.com/RussellJ95/opensim-core/internal/logger"
	"github.com/RussellJ95/opensim-core/internal/viewer"
)

// registerCommands wires the terminal commands to the viewer state.
func registerCommands(reg *commands.Registry, a *app, scn *viewer.Scene, ov *viewer.Overlay) {
	newFS := func(name string) *flag.FlagSet {
		fs := flag.NewFlagSet(name, flag.ContinueOnError)
		fs.SetOutput(io.Discard)
		return fs
	}

	reg.Register("grid", newFS("grid"), func() error {
		scn.GridVisible = !scn.GridVisible
		logger.Logger().Info("grid", "visible", scn.GridVisible)
		return nil
	})
	reg.Register("frames", newFS("frames"), func() error {
		a.hints.ShowFrames = !a.hints.ShowFrames
		logger.Logger().Info("frames", "visible", a.hints.ShowFrames)
		return nil
	})
	reg.Register("wire", newFS("wire"), func() error {
		a.hints.ShowWireframe = !a.hints.ShowWireframe
		logger.Logger().Info("wireframe", "on", a.hints.ShowWireframe)
		return nil
	})
	reg.Register("fps", newFS("fps"), func() error {
		ov.ShowFPS = !ov.ShowFPS
		return nil
	})
	reg.Register("stats", newFS("stats"), func() error {
		ov.ShowStats = !ov.ShowStats
		return nil
	})
	reg.Register("reload", newFS("reload"), func() error {
		if err := a.loadModel(); err != nil {
			return err
		}
		logger.Logger().Info("model reloaded", "name", a.m.Name())
		return nil
	})
	reg.Register("help", newFS("help"), func() error {
		logger.Logger().Info("commands: " + strings.Join(reg.Names(), " "))
		return nil
	})

	fetchFS := newFS("fetch")
	fetchURL := fetchFS.String("url", "", "asset URL to download")
	fetchDir := fetchFS.String("dir", "Geometry", "directory to save into")
	reg.Register("fetch", fetchFS, func() error {
		url, dir := *fetchURL, *fetchDir
		if url == "" {
			return fmt.Errorf("fetch: -url is required")
		}
		// Download in the background so the render loop keeps going.
		go fetchAsset(url, dir)
		return nil
	})
}

// fetchAsset downloads url into dir and unpacks zip archives in place.
// Saving into the Geometry directory puts meshes on the model search
// path, so a subsequent reload picks them up.
func fetchAsset(url, dir string) {
	path, err := download.Download(url, dir)
	if err != nil {
		logger.Logger().Warn(err.Error())
		return
	}
	logger.Logger().Info("fetched", "path", path)
	if !download.IsArchive(path) {
		return
	}
	files, err := archive.Unzip(path, dir)
	if err != nil {
		logger.Logger().Warn(err.Error())
		return
	}
	logger.Logger().Info("extracted", "count", len(files))
	meshes, err := archive.FindMeshFiles(dir)
	if err == nil && len(meshes) > 0 {
		logger.Logger().Info("meshes available: " + strings.Join(meshes, " "))
	}
}
