// Copyright 2022 Gustavo C. Viegas. All rights reserved.

// orbitview opens a window with a rotating wireframe cube
// that can be inspected with an orbit camera.
//
// Drag with any mouse button to orbit, scroll or use the
// arrow/plus/minus keys to zoom and turn, and press Home to
// reset the camera. The configuration file, if any, is
// reloaded whenever it changes.
package main

import (
	"flag"

	"github.com/golang/glog"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/gviegas/orbit/config"
)

var (
	configPath = flag.String("config", "", "Camera configuration file (.yaml, .yml or .toml). Defaults are used if empty.")
	watch      = flag.Bool("watch", true, "Reload the configuration file when it changes.")
	width      = flag.Int("width", 960, "Initial window width.")
	height     = flag.Int("height", 720, "Initial window height.")
)

func main() {
	flag.Parse()

	glog.Infof("flags:")
	glog.Infof("config: %q", *configPath)
	glog.Infof("watch: %v", *watch)

	cfg := config.Default()
	var watcher *config.Watcher
	if *configPath != "" {
		var err error
		cfg, err = config.Load(*configPath)
		if err != nil {
			glog.Fatalf("Failed to load configuration: %v", err)
		}
		if *watch {
			watcher, err = config.NewWatcher(*configPath)
			if err != nil {
				glog.Fatalf("Failed to watch configuration: %v", err)
			}
			defer watcher.Close()
		}
	}

	ebiten.SetWindowSize(*width, *height)
	ebiten.SetWindowTitle("orbitview")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(newViewer(cfg, watcher)); err != nil {
		glog.Fatalf("Viewer failed: %v", err)
	}
	glog.Flush()
}
