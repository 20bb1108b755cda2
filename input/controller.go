// Copyright 2022 Gustavo C. Viegas. All rights reserved.

package input

import (
	"sync"

	"github.com/gviegas/orbit/internal/bitset"
)

// shiftFactor multiplies key steps while shift is held.
const shiftFactor = 4

// Controller converts events into queued deltas.
// It implements PointerHandler, WheelHandler and
// KeyboardHandler.
// Its methods are safe for concurrent use.
type Controller struct {
	mu      sync.Mutex
	cfg     Config
	buttons bitset.S[uint8]
	keys    bitset.S[uint32]
	x, y    int
	queue   []Delta
}

var (
	_ PointerHandler  = (*Controller)(nil)
	_ WheelHandler    = (*Controller)(nil)
	_ KeyboardHandler = (*Controller)(nil)
)

// NewController creates an initialized controller.
func NewController(cfg Config) *Controller { return new(Controller).Init(cfg) }

// Init initializes c.
// Pending deltas and pressed buttons/keys are discarded.
func (c *Controller) Init(cfg Config) *Controller {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cfg = cfg
	c.buttons.Init(int(btnCount))
	c.keys.Init(int(keyCount))
	c.x, c.y = 0, 0
	c.queue = c.queue[:0]
	return c
}

// Config returns the current scale factors.
func (c *Controller) Config() Config {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cfg
}

// SetConfig replaces the scale factors.
// Deltas already queued are not rescaled.
func (c *Controller) SetConfig(cfg Config) {
	c.mu.Lock()
	c.cfg = cfg
	c.mu.Unlock()
}

// dragging returns whether a drag is in progress.
// c.mu must be held.
func (c *Controller) dragging() bool {
	return c.buttons.IsSet(int(BtnLeft)) ||
		c.buttons.IsSet(int(BtnRight)) ||
		c.buttons.IsSet(int(BtnMiddle))
}

// Dragging returns whether a drag is in progress.
func (c *Controller) Dragging() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.dragging()
}

// push appends d to the queue.
// c.mu must be held.
func (c *Controller) push(d Delta) {
	if !d.IsZero() {
		c.queue = append(c.queue, d)
	}
}

// Push queues an arbitrary delta.
func (c *Controller) Push(d Delta) {
	c.mu.Lock()
	c.push(d)
	c.mu.Unlock()
}

// Pending returns the number of queued deltas.
func (c *Controller) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.queue)
}

// Drain applies every queued delta to cam, in the order
// they were queued, and empties the queue.
// It returns the number of deltas applied.
// Events that arrive while Drain runs are kept for the
// next call.
func (c *Controller) Drain(cam Camera) int {
	c.mu.Lock()
	q := c.queue
	c.queue = nil
	c.mu.Unlock()
	for _, d := range q {
		d.Apply(cam)
	}
	return len(q)
}

// PointerIn records the pointer position.
func (c *Controller) PointerIn(x, y int) {
	c.mu.Lock()
	c.x, c.y = x, y
	c.mu.Unlock()
}

// PointerOut ends any drag in progress.
func (c *Controller) PointerOut() {
	c.mu.Lock()
	c.buttons.Clear()
	c.mu.Unlock()
}

// PointerMotion queues an orbit delta if a drag is in
// progress. The pointer position is recorded in any case.
func (c *Controller) PointerMotion(newX, newY int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.dragging() {
		dx := float32(newX-c.x) * c.cfg.DragScale
		dy := float32(newY-c.y) * c.cfg.DragScale
		if c.cfg.InvertY {
			dy = -dy
		}
		c.push(Delta{Phi: dx, Theta: dy})
	}
	c.x, c.y = newX, newY
}

// PointerButton starts (press) or ends (release) a drag.
// The left, right and middle buttons drag.
func (c *Controller) PointerButton(btn Button, pressed bool, x, y int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if pressed {
		c.buttons.Set(int(btn))
	} else {
		c.buttons.Unset(int(btn))
	}
	c.x, c.y = x, y
}

// Wheel queues a zoom delta.
func (c *Controller) Wheel(dy float32) {
	c.mu.Lock()
	c.push(Delta{Radius: dy * c.cfg.WheelScale})
	c.mu.Unlock()
}

// KeyboardIn does nothing.
func (c *Controller) KeyboardIn() {}

// KeyboardOut releases all keys.
func (c *Controller) KeyboardOut() {
	c.mu.Lock()
	c.keys.Clear()
	c.mu.Unlock()
}

// KeyboardKey queues a delta when a camera key is pressed.
// Repeated presses without a release (key repeat) queue
// one delta each.
func (c *Controller) KeyboardKey(key Key, pressed bool, modMask Modifier) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !pressed {
		c.keys.Unset(int(key))
		return
	}
	c.keys.Set(int(key))
	step := c.cfg.KeyStep
	if modMask&ModShift != 0 || c.keys.IsSet(int(KeyLShift)) || c.keys.IsSet(int(KeyRShift)) {
		step *= shiftFactor
	}
	turn := step * c.cfg.DragScale * 10
	var d Delta
	switch key {
	case KeyUp, KeyEqual, KeyPadPlus, KeyW:
		d.Radius = -step
	case KeyDown, KeyMinus, KeyPadMinus, KeyS:
		d.Radius = step
	case KeyLeft, KeyA:
		d.Phi = -turn
	case KeyRight, KeyD:
		d.Phi = turn
	case KeyPageUp:
		d.Theta = turn
	case KeyPageDown:
		d.Theta = -turn
	}
	c.push(d)
}

// Held returns whether key is held down.
func (c *Controller) Held(key Key) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.keys.IsSet(int(key))
}
