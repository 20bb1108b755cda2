// Copyright 2022 Gustavo C. Viegas. All rights reserved.

// Package scene computes the per-frame constants that a
// renderer needs from an orbiting camera.
package scene

import (
	"github.com/chewxy/math32"

	"github.com/gviegas/orbit/camera"
	"github.com/gviegas/orbit/input"
	"github.com/gviegas/orbit/linear"
)

// Projection defines a perspective projection.
type Projection struct {
	FovY   float32
	Aspect float32
	Near   float32
	Far    float32
	// Skybox is the radius of a sky sphere centered at
	// the eye.
	Skybox float32
}

// DefaultProjection returns a 90 degree vertical field of
// view with planes at 0.01 and 100 and a unit skybox.
func DefaultProjection() Projection {
	return Projection{
		FovY:   math32.Pi / 2,
		Aspect: 1,
		Near:   0.01,
		Far:    100,
		Skybox: 1,
	}
}

// Matrix returns the left-handed projection matrix.
func (p Projection) Matrix() (m linear.M4) {
	m.PerspectiveLH(p.FovY, p.Aspect, p.Near, p.Far)
	return
}

// Frame holds the constants of a single frame.
// View and Proj use the column-vector convention, so
// ViewProj is Proj ⋅ View. Its memory layout is that of
// the row-vector product View ⋅ Proj.
type Frame struct {
	View     linear.M4
	Proj     linear.M4
	ViewProj linear.M4
	// World is the inverse of View. Its columns are the
	// camera's axes and position in world space.
	World linear.M4
	// InvViewProj is the inverse of ViewProj.
	InvViewProj linear.M4
	// Eye is the camera position with w = 1.
	Eye    linear.V4
	Skybox float32
}

// Project transforms a point in world space into pixel
// coordinates of a width × height viewport (Y down).
// ok is false if p is behind the near plane.
func (f *Frame) Project(p linear.V3, width, height int) (x, y float32, ok bool) {
	v := linear.V4{p[0], p[1], p[2], 1}
	v.Mul(&f.ViewProj, &v)
	if v[3] <= 0 || v[2] < 0 {
		return
	}
	x = (v[0]/v[3] + 1) * 0.5 * float32(width)
	y = (1 - v[1]/v[3]) * 0.5 * float32(height)
	ok = true
	return
}

// Unproject transforms pixel coordinates of a width ×
// height viewport and a depth in [0, 1] (near to far)
// into a point in world space.
func (f *Frame) Unproject(x, y float32, width, height int, depth float32) linear.V3 {
	v := linear.V4{
		2*x/float32(width) - 1,
		1 - 2*y/float32(height),
		depth,
		1,
	}
	v.Mul(&f.InvViewProj, &v)
	return linear.V3{v[0] / v[3], v[1] / v[3], v[2] / v[3]}
}

// Ray returns the ray that passes through the given pixel
// of a width × height viewport. origin lies on the near
// plane and dir is a unit vector.
func (f *Frame) Ray(x, y float32, width, height int) (origin, dir linear.V3) {
	origin = f.Unproject(x, y, width, height, 0)
	// Direction in view space, with z = 1.
	d := linear.V3{
		(2*x/float32(width) - 1) / f.Proj[0][0],
		(1 - 2*y/float32(height)) / f.Proj[1][1],
		1,
	}
	dir.Mul(&f.World, &d)
	dir.Norm(&dir)
	return
}

// Scene ties a camera to its input controller and
// projection.
// Update must be called from the goroutine that owns the
// camera; the controller may receive events from any
// goroutine.
type Scene struct {
	cam  *camera.Orbit
	ctrl *input.Controller
	proj Projection
}

// New creates an initialized scene.
// If cam or ctrl are nil, defaults are created.
func New(cam *camera.Orbit, ctrl *input.Controller, proj Projection) *Scene {
	return new(Scene).Init(cam, ctrl, proj)
}

// Init initializes s.
func (s *Scene) Init(cam *camera.Orbit, ctrl *input.Controller, proj Projection) *Scene {
	if cam == nil {
		cam = camera.New(nil)
	}
	if ctrl == nil {
		ctrl = input.NewController(input.DefaultConfig())
	}
	s.cam = cam
	s.ctrl = ctrl
	s.proj = proj
	return s
}

// Camera returns the scene's camera.
func (s *Scene) Camera() *camera.Orbit { return s.cam }

// Controller returns the scene's input controller.
func (s *Scene) Controller() *input.Controller { return s.ctrl }

// Projection returns the current projection.
func (s *Scene) Projection() Projection { return s.proj }

// SetProjection replaces the projection.
func (s *Scene) SetProjection(p Projection) { s.proj = p }

// Update applies all pending input to the camera and
// then computes the frame's constants for a viewport of
// the given size.
// The aspect ratio is left unchanged if height is not
// positive.
func (s *Scene) Update(width, height int) (f Frame) {
	s.ctrl.Drain(s.cam)
	if width > 0 && height > 0 {
		s.proj.Aspect = float32(width) / float32(height)
	}
	f.View = *s.cam.View()
	f.Proj = s.proj.Matrix()
	f.ViewProj.Mul(&f.Proj, &f.View)
	f.InvViewProj.Invert(&f.ViewProj)
	eye := s.cam.Eye()
	f.Eye = linear.V4{eye[0], eye[1], eye[2], 1}
	// View is a rigid transform, so its inverse is the
	// transposed rotation followed by the eye position.
	f.World.Transpose(&f.View)
	f.World[0][3], f.World[1][3], f.World[2][3] = 0, 0, 0
	f.World[3] = f.Eye
	f.Skybox = s.proj.Skybox
	return
}
