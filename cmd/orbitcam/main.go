// Copyright 2022 Gustavo C. Viegas. All rights reserved.

// orbitcam replays a script of pointer, wheel and key
// events through an orbit camera and prints, for every
// frame, the eye position and the view-projection matrix
// that a renderer would upload.
//
// Input is fed from one goroutine and the camera is
// updated from another, one frame at a time.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/golang/glog"
	"golang.org/x/sync/errgroup"

	"github.com/gviegas/orbit/camera"
	"github.com/gviegas/orbit/config"
	"github.com/gviegas/orbit/input"
	"github.com/gviegas/orbit/linear"
	"github.com/gviegas/orbit/scene"
)

var (
	configPath = flag.String("config", "", "Camera configuration file (.yaml, .yml or .toml). Defaults are used if empty.")
	scriptPath = flag.String("script", "", "Input script (.yaml). A built-in demo script is used if empty.")
	width      = flag.Int("width", 800, "Viewport width in pixels.")
	height     = flag.Int("height", 600, "Viewport height in pixels.")
	lab        = flag.Bool("lab", false, "Limit the radius to [2, 25] regardless of the configuration.")
)

func main() {
	flag.Parse()

	glog.Infof("flags:")
	glog.Infof("config: %q", *configPath)
	glog.Infof("script: %q", *scriptPath)
	glog.Infof("viewport: %dx%d", *width, *height)
	glog.Infof("lab: %v", *lab)

	cfg := config.Default()
	if *configPath != "" {
		var err error
		cfg, err = config.Load(*configPath)
		if err != nil {
			glog.Fatalf("Failed to load configuration: %v", err)
		}
	}
	sc := defaultScript
	if *scriptPath != "" {
		var err error
		sc, err = loadScript(*scriptPath)
		if err != nil {
			glog.Fatalf("Failed to load script: %v", err)
		}
	}

	camCfg := cfg.CameraConfig()
	if *lab {
		camCfg.Bounds = camera.LabBounds
	}
	cam := camera.New(camCfg)
	ctrl := input.NewController(cfg.InputConfig())
	scn := scene.New(cam, ctrl, cfg.ProjectionConfig())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := replay(ctx, sc, scn, *width, *height, os.Stdout); err != nil {
		glog.Fatalf("Replay failed: %v", err)
	}
	glog.Infof("Replayed %d frames", len(sc.Frames))
	glog.Flush()
}

// replay feeds the frames of sc to the scene's controller
// from an input goroutine and updates the scene from a
// render goroutine. The input goroutine waits for each
// frame to be rendered before feeding the next one.
func replay(ctx context.Context, sc *script, scn *scene.Scene, width, height int, w io.Writer) error {
	g, ctx := errgroup.WithContext(ctx)
	ready := make(chan *linear.V3)
	done := make(chan struct{})

	g.Go(func() error {
		defer close(ready)
		for i := range sc.Frames {
			if err := ctx.Err(); err != nil {
				return err
			}
			pivot := sc.Frames[i].feed(scn.Controller())
			select {
			case ready <- pivot:
			case <-ctx.Done():
				return ctx.Err()
			}
			select {
			case <-done:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	})

	g.Go(func() error {
		cam := scn.Camera()
		for n := 0; ; n++ {
			var pivot *linear.V3
			select {
			case p, ok := <-ready:
				if !ok {
					return nil
				}
				pivot = p
			case <-ctx.Done():
				return ctx.Err()
			}
			if pivot != nil {
				cam.SetPivot(*pivot)
			}
			if glog.V(1) {
				glog.Infof("frame %d: %d pending deltas", n, scn.Controller().Pending())
			}
			f := scn.Update(width, height)
			if err := printFrame(w, n, cam, &f); err != nil {
				return err
			}
			select {
			case done <- struct{}{}:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	})

	return g.Wait()
}

func printFrame(w io.Writer, n int, cam *camera.Orbit, f *scene.Frame) error {
	_, err := fmt.Fprintf(w, "frame %d: eye (%.4f, %.4f, %.4f) radius %.4f theta %.4f phi %.4f\n",
		n, f.Eye[0], f.Eye[1], f.Eye[2], cam.Radius(), cam.Theta(), cam.Phi())
	if err != nil {
		return err
	}
	for _, r := range f.ViewProj {
		if _, err := fmt.Fprintf(w, "  [% .4f % .4f % .4f % .4f]\n", r[0], r[1], r[2], r[3]); err != nil {
			return err
		}
	}
	return nil
}
