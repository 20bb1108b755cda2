// Copyright 2022 Gustavo C. Viegas. All rights reserved.

// Package input converts pointer, wheel and keyboard events
// into camera deltas.
// Events may arrive on any goroutine; the resulting deltas
// are queued and later applied, in order, by the goroutine
// that owns the camera.
package input

// Key is the type of keyboard keys.
// Only keys that have a meaning for camera control are
// defined.
type Key int

// Keyboard keys.
const (
	KeyUnknown Key = iota
	KeyMinus
	KeyEqual
	KeyLShift
	KeyRShift
	KeySpace
	KeyHome
	KeyPageUp
	KeyPageDown
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyPadMinus
	KeyPadPlus
	KeyW
	KeyA
	KeyS
	KeyD

	keyCount
)

// Modifier is the type of modifier flags.
type Modifier int

// Modifier flags.
const (
	ModCapsLock Modifier = 1 << iota
	ModShift
	ModCtrl
	ModAlt
)

// Button is the type of pointer buttons.
type Button int

// Pointer buttons.
const (
	BtnUnknown Button = iota
	BtnLeft
	BtnRight
	BtnMiddle
	BtnSide
	BtnForward
	BtnBackward

	btnCount
)

// PointerHandler is the interface that defines the methods
// for handling pointer events.
type PointerHandler interface {
	// PointerIn is called when the pointer enters the window.
	PointerIn(x, y int)

	// PointerOut is called when the pointer leaves the window.
	PointerOut()

	// PointerMotion is called when the pointer changes position.
	PointerMotion(newX, newY int)

	// PointerButton is called when a button is pressed/released.
	PointerButton(btn Button, pressed bool, x, y int)
}

// WheelHandler is the interface that defines the method
// for handling scroll wheel events.
type WheelHandler interface {
	// Wheel is called when the wheel is scrolled.
	// dy is positive when scrolling up (away from the user).
	Wheel(dy float32)
}

// KeyboardHandler is the interface that defines the methods
// for handling keyboard events.
type KeyboardHandler interface {
	// KeyboardIn is called when focus is gained.
	KeyboardIn()

	// KeyboardOut is called when focus is lost.
	KeyboardOut()

	// KeyboardKey is called when a key is pressed/released.
	KeyboardKey(key Key, pressed bool, modMask Modifier)
}

// Camera is the interface of the cameras that deltas
// are applied to.
// It is satisfied by *camera.Orbit.
type Camera interface {
	Orbit(dPhi, dTheta float32)
	Zoom(dRadius float32)
}

// Delta is a pending camera change.
type Delta struct {
	Phi    float32
	Theta  float32
	Radius float32
}

// IsZero returns whether d changes nothing.
func (d Delta) IsZero() bool { return d == Delta{} }

// Apply applies d to cam.
func (d Delta) Apply(cam Camera) {
	if d.Phi != 0 || d.Theta != 0 {
		cam.Orbit(d.Phi, d.Theta)
	}
	if d.Radius != 0 {
		cam.Zoom(d.Radius)
	}
}

// Config defines how events are scaled into deltas.
type Config struct {
	// DragScale converts pointer motion in pixels
	// into radians.
	DragScale float32
	// WheelScale converts wheel units into a radius
	// change. A negative value makes scrolling up
	// move the camera closer.
	WheelScale float32
	// KeyStep is the radius change of one key press.
	// Arrow keys rotate by KeyStep ⋅ DragScale ⋅ 10
	// radians.
	KeyStep float32
	// InvertY negates vertical drag.
	InvertY bool
}

// DefaultConfig returns the scale factors used by the
// labs: 100 pixels per radian.
func DefaultConfig() Config {
	return Config{
		DragScale:  0.01,
		WheelScale: -0.5,
		KeyStep:    0.5,
	}
}
