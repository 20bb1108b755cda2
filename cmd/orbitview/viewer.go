// Copyright 2022 Gustavo C. Viegas. All rights reserved.

package main

import (
	"fmt"
	"image/color"

	"github.com/golang/glog"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/gviegas/orbit/camera"
	"github.com/gviegas/orbit/config"
	"github.com/gviegas/orbit/input"
	"github.com/gviegas/orbit/linear"
	"github.com/gviegas/orbit/scene"
)

// Key repeat, in ticks.
const (
	repeatDelay    = 15
	repeatInterval = 3
)

var (
	cubeColor   = color.RGBA{0xe0, 0xa0, 0x40, 0xff}
	gridColor   = color.RGBA{0x50, 0x50, 0x60, 0xff}
	cursorColor = color.RGBA{0xf0, 0xf0, 0xf0, 0xff}
	axisColor   = [3]color.RGBA{
		{0xe0, 0x40, 0x40, 0xff},
		{0x40, 0xe0, 0x40, 0xff},
		{0x40, 0x60, 0xe0, 0xff},
	}
)

var buttons = [...]struct {
	eb ebiten.MouseButton
	in input.Button
}{
	{ebiten.MouseButtonLeft, input.BtnLeft},
	{ebiten.MouseButtonRight, input.BtnRight},
	{ebiten.MouseButtonMiddle, input.BtnMiddle},
}

var keys = [...]struct {
	eb ebiten.Key
	in input.Key
}{
	{ebiten.KeyArrowUp, input.KeyUp},
	{ebiten.KeyArrowDown, input.KeyDown},
	{ebiten.KeyArrowLeft, input.KeyLeft},
	{ebiten.KeyArrowRight, input.KeyRight},
	{ebiten.KeyPageUp, input.KeyPageUp},
	{ebiten.KeyPageDown, input.KeyPageDown},
	{ebiten.KeyMinus, input.KeyMinus},
	{ebiten.KeyEqual, input.KeyEqual},
	{ebiten.KeyNumpadAdd, input.KeyPadPlus},
	{ebiten.KeyNumpadSubtract, input.KeyPadMinus},
	{ebiten.KeyW, input.KeyW},
	{ebiten.KeyA, input.KeyA},
	{ebiten.KeyS, input.KeyS},
	{ebiten.KeyD, input.KeyD},
}

// viewer implements ebiten.Game.
type viewer struct {
	cfg     *config.Config
	watcher *config.Watcher
	scene   *scene.Scene
	width   int
	height  int
	x, y    int
	ticks   int
	frame   scene.Frame
}

func newViewer(cfg *config.Config, watcher *config.Watcher) *viewer {
	cam := camera.New(cfg.CameraConfig())
	ctrl := input.NewController(cfg.InputConfig())
	return &viewer{
		cfg:     cfg,
		watcher: watcher,
		scene:   scene.New(cam, ctrl, cfg.ProjectionConfig()),
	}
}

// reload applies a new configuration.
// The camera keeps its current angles and radius; only
// bounds and pivot change.
func (v *viewer) reload(cfg *config.Config) {
	v.cfg = cfg
	cc := cfg.CameraConfig()
	cam := v.scene.Camera()
	cam.SetBounds(cc.Bounds)
	cam.SetPivot(cc.Pivot)
	v.scene.Controller().SetConfig(cfg.InputConfig())
	v.scene.SetProjection(cfg.ProjectionConfig())
	glog.Infof("Reloaded configuration: radius [%v, %v]", cc.Bounds.Min, cc.Bounds.Max)
}

func (v *viewer) pollWatcher() {
	if v.watcher == nil {
		return
	}
	select {
	case cfg, ok := <-v.watcher.Events:
		if ok {
			v.reload(cfg)
		}
	case err, ok := <-v.watcher.Errors:
		if ok {
			glog.Errorf("Configuration not reloaded: %v", err)
		}
	default:
	}
}

// pollInput forwards ebiten's input state to the
// controller as events.
func (v *viewer) pollInput() {
	ctrl := v.scene.Controller()

	x, y := ebiten.CursorPosition()
	for _, b := range buttons {
		switch {
		case inpututil.IsMouseButtonJustPressed(b.eb):
			ctrl.PointerButton(b.in, true, x, y)
		case inpututil.IsMouseButtonJustReleased(b.eb):
			ctrl.PointerButton(b.in, false, x, y)
		}
	}
	if x != v.x || y != v.y {
		ctrl.PointerMotion(x, y)
		v.x, v.y = x, y
	}

	if _, dy := ebiten.Wheel(); dy != 0 {
		ctrl.Wheel(float32(dy))
	}

	var mod input.Modifier
	if ebiten.IsKeyPressed(ebiten.KeyShift) {
		mod |= input.ModShift
	}
	for _, k := range keys {
		d := inpututil.KeyPressDuration(k.eb)
		switch {
		case d == 1 || d >= repeatDelay && d%repeatInterval == 0:
			ctrl.KeyboardKey(k.in, true, mod)
		case inpututil.IsKeyJustReleased(k.eb):
			ctrl.KeyboardKey(k.in, false, mod)
		}
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyHome) {
		// Pending deltas are dropped along with the old state.
		ctrl.Drain(discard{})
		v.scene.Camera().Reset(v.cfg.CameraConfig())
	}
}

// discard is a camera that ignores every delta.
type discard struct{}

func (discard) Orbit(float32, float32) {}
func (discard) Zoom(float32)           {}

// Update implements ebiten.Game.
func (v *viewer) Update() error {
	v.ticks++
	v.pollWatcher()
	v.pollInput()
	return nil
}

// Draw implements ebiten.Game.
func (v *viewer) Draw(screen *ebiten.Image) {
	v.frame = v.scene.Update(v.width, v.height)
	v.drawGrid(screen)
	v.drawAxes(screen)
	v.drawCube(screen, float32(v.ticks)/float32(ebiten.TPS()))
	hit := v.drawCursor(screen)

	cam := v.scene.Camera()
	eye := cam.Eye()
	ebitenutil.DebugPrint(screen, fmt.Sprintf(
		"eye %.2f %.2f %.2f\nradius %.2f theta %.2f phi %.2f\n%s\nTPS %.0f",
		eye[0], eye[1], eye[2], cam.Radius(), cam.Theta(), cam.Phi(), hit, ebiten.ActualTPS()))
}

// Layout implements ebiten.Game.
func (v *viewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	v.width, v.height = outsideWidth, outsideHeight
	return outsideWidth, outsideHeight
}

// line strokes the segment from a to b if both ends are
// in front of the camera.
func (v *viewer) line(screen *ebiten.Image, a, b linear.V3, clr color.Color) {
	x0, y0, ok0 := v.frame.Project(a, v.width, v.height)
	x1, y1, ok1 := v.frame.Project(b, v.width, v.height)
	if !ok0 || !ok1 {
		return
	}
	vector.StrokeLine(screen, x0, y0, x1, y1, 1, clr, true)
}

func (v *viewer) drawGrid(screen *ebiten.Image) {
	const n = 10
	for i := -n; i <= n; i++ {
		f := float32(i)
		v.line(screen, linear.V3{f, ground, -n}, linear.V3{f, ground, n}, gridColor)
		v.line(screen, linear.V3{-n, ground, f}, linear.V3{n, ground, f}, gridColor)
	}
}

func (v *viewer) drawAxes(screen *ebiten.Image) {
	p := v.scene.Camera().Pivot()
	for i := range axisColor {
		var q linear.V3
		q[i] = 0.5
		q.Add(&q, &p)
		v.line(screen, p, q, axisColor[i])
	}
}

// cubeEdges lists pairs of corner indices.
// Corner i has coordinates (±1, ±1, ±1) from bits 0-2.
var cubeEdges = [12][2]int{
	{0, 1}, {2, 3}, {4, 5}, {6, 7},
	{0, 2}, {1, 3}, {4, 6}, {5, 7},
	{0, 4}, {1, 5}, {2, 6}, {3, 7},
}

// Cube placement. The cube rests on the ground grid.
const (
	cubeSize = 0.75
	ground   = -1
)

// cubeWorld returns the cube's world matrix at time t,
// in seconds.
func cubeWorld(t float32) (m linear.M4) {
	var r, s linear.M4
	m.Translate(0, ground+cubeSize, 0)
	r.RotateY(t)
	s.Scale(cubeSize, cubeSize, cubeSize)
	m.Mul(&m, &r)
	m.Mul(&m, &s)
	return
}

func (v *viewer) drawCube(screen *ebiten.Image, t float32) {
	world := cubeWorld(t)
	var corners [8]linear.V3
	for i := range corners {
		c := linear.V4{-1, -1, -1, 1}
		for j := 0; j < 3; j++ {
			if i&(1<<j) != 0 {
				c[j] = 1
			}
		}
		c.Mul(&world, &c)
		corners[i] = linear.V3{c[0], c[1], c[2]}
	}
	for _, e := range cubeEdges {
		v.line(screen, corners[e[0]], corners[e[1]], cubeColor)
	}

	// Local axes, from the center of the cube.
	center := linear.V3{world[3][0], world[3][1], world[3][2]}
	for i := range axisColor {
		var q linear.V3
		q[i] = 1.5
		q.Mul(&world, &q)
		q.Add(&q, &center)
		v.line(screen, center, q, axisColor[i])
	}
}

// groundHit intersects the ray through pixel (x, y) with
// the ground plane.
// ok is false if the ray does not point towards it.
func groundHit(f *scene.Frame, x, y float32, width, height int) (p linear.V3, ok bool) {
	origin, dir := f.Ray(x, y, width, height)
	if dir[1] >= 0 && origin[1] >= ground || dir[1] <= 0 && origin[1] <= ground {
		return
	}
	dir.Scale((ground-origin[1])/dir[1], &dir)
	p.Add(&origin, &dir)
	return p, true
}

func (v *viewer) drawCursor(screen *ebiten.Image) string {
	p, ok := groundHit(&v.frame, float32(v.x), float32(v.y), v.width, v.height)
	if !ok {
		return "ground -"
	}
	const d = 0.2
	v.line(screen, linear.V3{p[0] - d, ground, p[2]}, linear.V3{p[0] + d, ground, p[2]}, cursorColor)
	v.line(screen, linear.V3{p[0], ground, p[2] - d}, linear.V3{p[0], ground, p[2] + d}, cursorColor)
	return fmt.Sprintf("ground %.2f %.2f", p[0], p[2])
}
