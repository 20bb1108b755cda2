// Copyright 2022 Gustavo C. Viegas. All rights reserved.

// Package camera implements an orbiting camera.
//
// An Orbit camera always looks at a pivot point from a
// position given in spherical coordinates: the distance
// from the pivot (radius), the elevation above the pivot's
// horizontal plane (theta) and the rotation around the
// vertical axis (phi). Y is up.
//
// An Orbit is not safe for concurrent use. It is meant to
// be owned by the goroutine that renders, with input
// deltas applied before the frame's matrices are read.
package camera

import (
	"github.com/chewxy/math32"

	"github.com/gviegas/orbit/linear"
)

// MaxTheta is the elevation limit, in radians.
// Theta is clamped to [-MaxTheta, MaxTheta].
const MaxTheta = math32.Pi / 2

// MinRadius is the default lower bound of the radius.
const MinRadius = 2

// Bounds defines the range of valid radii.
type Bounds struct {
	Min float32
	Max float32
}

// DefaultBounds has no upper limit.
var DefaultBounds = Bounds{Min: MinRadius, Max: math32.Inf(1)}

// LabBounds limits the radius to [2, 25].
var LabBounds = Bounds{Min: MinRadius, Max: 25}

// Unbounded returns whether b has no upper limit.
func (b Bounds) Unbounded() bool { return math32.IsInf(b.Max, 1) }

// Config is the initial state of an Orbit.
type Config struct {
	Pivot  linear.V3
	Radius float32
	Theta  float32
	Phi    float32
	Bounds Bounds
}

// DefaultConfig returns the configuration used when
// none is provided: a camera 4 units away from the
// origin, 45 degrees above the horizon and rotated
// -45 degrees around Y.
func DefaultConfig() *Config {
	return &Config{
		Radius: 4,
		Theta:  math32.Pi / 4,
		Phi:    -math32.Pi / 4,
		Bounds: DefaultBounds,
	}
}

// Orbit is an orbiting camera.
type Orbit struct {
	pivot  linear.V3
	radius float32
	theta  float32
	phi    float32
	bounds Bounds
	view   linear.M4
}

// New creates an initialized Orbit camera.
// If cfg is nil, DefaultConfig is used.
func New(cfg *Config) *Orbit { return new(Orbit).Init(cfg) }

// Init initializes o from cfg.
// Radius and Theta are clamped to their valid ranges.
// If cfg is nil, DefaultConfig is used.
func (o *Orbit) Init(cfg *Config) *Orbit {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	o.pivot = cfg.Pivot
	o.bounds = cfg.Bounds
	o.radius = linear.Clamp(cfg.Radius, o.bounds.Min, o.bounds.Max)
	o.theta = linear.Clamp(cfg.Theta, -MaxTheta, MaxTheta)
	o.phi = cfg.Phi
	o.update()
	return o
}

// Eye returns the position of the camera in world space.
// It lies on the sphere of radius o.Radius() centered
// at o.Pivot().
func (o *Orbit) Eye() (eye linear.V3) {
	eye.Spherical(o.radius, o.theta, o.phi)
	eye.Add(&eye, &o.pivot)
	return
}

// Up returns the camera's up direction.
// It is the unit vector at elevation theta + π/2, which
// is orthogonal to the view direction and tilts with it.
// When theta is at ±MaxTheta, Up is nearly parallel to
// the view direction.
func (o *Orbit) Up() (up linear.V3) {
	up.Spherical(1, o.theta+math32.Pi/2, o.phi)
	return
}

// Forward returns the unit direction from the eye to
// the pivot.
func (o *Orbit) Forward() (fwd linear.V3) {
	fwd.Spherical(-1, o.theta, o.phi)
	return
}

// Orbit rotates the camera around the pivot.
// Phi is decremented by dPhi, so a positive dPhi (e.g.,
// from a rightward drag) turns the view to the left.
// Theta is incremented by dTheta and then clamped.
func (o *Orbit) Orbit(dPhi, dTheta float32) {
	o.phi -= dPhi
	o.theta = linear.Clamp(o.theta+dTheta, -MaxTheta, MaxTheta)
	o.update()
}

// Zoom moves the camera towards (negative dRadius) or
// away from (positive dRadius) the pivot.
// The radius is clamped to o.Bounds().
func (o *Orbit) Zoom(dRadius float32) {
	o.radius = linear.Clamp(o.radius+dRadius, o.bounds.Min, o.bounds.Max)
	o.update()
}

// View returns the left-handed view matrix.
// The returned matrix is updated in place by calls
// that change the camera.
func (o *Orbit) View() *linear.M4 { return &o.view }

// Pivot returns the point the camera looks at.
func (o *Orbit) Pivot() linear.V3 { return o.pivot }

// SetPivot moves the point the camera looks at.
// The eye moves along with it.
func (o *Orbit) SetPivot(pivot linear.V3) {
	o.pivot = pivot
	o.update()
}

// Radius returns the distance from the eye to the pivot.
func (o *Orbit) Radius() float32 { return o.radius }

// Theta returns the elevation in radians.
func (o *Orbit) Theta() float32 { return o.theta }

// Phi returns the azimuth in radians.
// It is never wrapped.
func (o *Orbit) Phi() float32 { return o.phi }

// Bounds returns the range of valid radii.
func (o *Orbit) Bounds() Bounds { return o.bounds }

// SetBounds replaces the range of valid radii.
// The current radius is clamped to the new range.
func (o *Orbit) SetBounds(b Bounds) {
	o.bounds = b
	o.radius = linear.Clamp(o.radius, b.Min, b.Max)
	o.update()
}

// Reset reinitializes the camera from cfg.
// It is equivalent to o.Init(cfg).
func (o *Orbit) Reset(cfg *Config) { o.Init(cfg) }

// update recomputes the view matrix.
func (o *Orbit) update() {
	eye := o.Eye()
	up := o.Up()
	o.view.LookAtLH(&eye, &o.pivot, &up)
}
