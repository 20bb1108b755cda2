// Copyright 2022 Gustavo C. Viegas. All rights reserved.

package main

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/gviegas/orbit/input"
	"github.com/gviegas/orbit/linear"
)

// event is a single input event of a script.
// Exactly one of its fields is expected to be set.
type event struct {
	Press   *[2]int     `yaml:"press"`
	Release *[2]int     `yaml:"release"`
	Move    *[2]int     `yaml:"move"`
	Drag    *[2]int     `yaml:"drag"`
	Wheel   float32     `yaml:"wheel"`
	Key     string      `yaml:"key"`
	Shift   bool        `yaml:"shift"`
	Pivot   *[3]float32 `yaml:"pivot"`
}

// frame is the input received between two frames.
type frame struct {
	Events []event `yaml:"events"`
}

// script is a sequence of frames.
type script struct {
	Frames []frame `yaml:"frames"`
}

var keyNames = map[string]input.Key{
	"up":       input.KeyUp,
	"down":     input.KeyDown,
	"left":     input.KeyLeft,
	"right":    input.KeyRight,
	"pageup":   input.KeyPageUp,
	"pagedown": input.KeyPageDown,
	"minus":    input.KeyMinus,
	"equal":    input.KeyEqual,
	"plus":     input.KeyPadPlus,
	"padplus":  input.KeyPadPlus,
	"padminus": input.KeyPadMinus,
	"w":        input.KeyW,
	"a":        input.KeyA,
	"s":        input.KeyS,
	"d":        input.KeyD,
}

func parseScript(data []byte) (*script, error) {
	var s script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("script: %w", err)
	}
	for i, f := range s.Frames {
		for j, e := range f.Events {
			if e.Key == "" {
				continue
			}
			if _, ok := keyNames[strings.ToLower(e.Key)]; !ok {
				return nil, fmt.Errorf("script: frame %d, event %d: unknown key %q", i, j, e.Key)
			}
		}
	}
	return &s, nil
}

func loadScript(path string) (*script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("script: %w", err)
	}
	return parseScript(data)
}

// defaultScript drags around the pivot, zooms in and out
// and finally moves the pivot.
var defaultScript = &script{
	Frames: []frame{
		{},
		{Events: []event{{Press: &[2]int{100, 100}}, {Move: &[2]int{130, 100}}}},
		{Events: []event{{Move: &[2]int{160, 80}}, {Release: &[2]int{160, 80}}}},
		{Events: []event{{Wheel: 4}}},
		{Events: []event{{Wheel: -60}}},
		{Events: []event{{Key: "left"}, {Key: "pageup", Shift: true}}},
		{Events: []event{{Pivot: &[3]float32{0, 1, 0}}}},
	},
}

// feed sends the events of f to ctrl.
// It returns the new pivot, if any.
func (f *frame) feed(ctrl *input.Controller) (pivot *linear.V3) {
	for _, e := range f.Events {
		switch {
		case e.Press != nil:
			ctrl.PointerButton(input.BtnLeft, true, e.Press[0], e.Press[1])
		case e.Release != nil:
			ctrl.PointerButton(input.BtnLeft, false, e.Release[0], e.Release[1])
		case e.Move != nil:
			ctrl.PointerMotion(e.Move[0], e.Move[1])
		case e.Drag != nil:
			ctrl.PointerButton(input.BtnLeft, true, 0, 0)
			ctrl.PointerMotion(e.Drag[0], e.Drag[1])
			ctrl.PointerButton(input.BtnLeft, false, e.Drag[0], e.Drag[1])
		case e.Wheel != 0:
			ctrl.Wheel(e.Wheel)
		case e.Key != "":
			var mod input.Modifier
			if e.Shift {
				mod = input.ModShift
			}
			key := keyNames[strings.ToLower(e.Key)]
			ctrl.KeyboardKey(key, true, mod)
			ctrl.KeyboardKey(key, false, mod)
		case e.Pivot != nil:
			p := linear.V3(*e.Pivot)
			pivot = &p
		}
	}
	return
}
