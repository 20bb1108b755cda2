// Copyright 2022 Gustavo C. Viegas. All rights reserved.

package scene

import (
	"testing"
	"unsafe"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gviegas/orbit/camera"
	"github.com/gviegas/orbit/input"
	"github.com/gviegas/orbit/linear"
)

var approx = cmpopts.EquateApprox(0, 1e-5)

func TestUpdate(t *testing.T) {
	s := New(nil, nil, DefaultProjection())
	f := s.Update(800, 600)

	assert.Equal(t, *s.Camera().View(), f.View)
	assert.Equal(t, float32(800)/600, s.Projection().Aspect)

	var want linear.M4
	want.PerspectiveLH(s.Projection().FovY, float32(800)/600, 0.01, 100)
	assert.Equal(t, want, f.Proj)

	want.Mul(&f.Proj, &f.View)
	assert.Equal(t, want, f.ViewProj)

	eye := s.Camera().Eye()
	assert.Equal(t, linear.V4{eye[0], eye[1], eye[2], 1}, f.Eye)
	assert.Equal(t, float32(1), f.Skybox)
}

func TestUpdateKeepsAspect(t *testing.T) {
	p := DefaultProjection()
	p.Aspect = 2
	s := New(nil, nil, p)
	s.Update(100, 0)
	assert.Equal(t, float32(2), s.Projection().Aspect)
}

func TestUpdateDrainsInput(t *testing.T) {
	cam := camera.New(&camera.Config{Radius: 4, Bounds: camera.LabBounds})
	ctrl := input.NewController(input.DefaultConfig())
	s := New(cam, ctrl, DefaultProjection())

	before := s.Update(640, 480)
	ctrl.PointerButton(input.BtnLeft, true, 0, 0)
	ctrl.PointerMotion(50, 0)
	ctrl.Wheel(-40)
	after := s.Update(640, 480)

	assert.Equal(t, 0, ctrl.Pending())
	assert.InDelta(t, -0.5, cam.Phi(), 1e-6)
	assert.Equal(t, float32(24), cam.Radius())
	assert.NotEqual(t, before.View, after.View)
	assert.Equal(t, *cam.View(), after.View)
}

func TestProject(t *testing.T) {
	cam := camera.New(&camera.Config{Radius: 5, Bounds: camera.DefaultBounds})
	s := New(cam, nil, DefaultProjection())
	f := s.Update(200, 100)

	// The pivot projects to the center of the viewport.
	x, y, ok := f.Project(linear.V3{}, 200, 100)
	require.True(t, ok)
	if diff := cmp.Diff([2]float32{x, y}, [2]float32{100, 50}, cmpopts.EquateApprox(0, 1e-3)); diff != "" {
		t.Fatalf("Frame.Project: -have +want\n%s", diff)
	}

	// Up in world space is up on screen when theta is 0.
	_, y, ok = f.Project(linear.V3{0, 1, 0}, 200, 100)
	require.True(t, ok)
	assert.Less(t, y, float32(50))

	// Points behind the eye are rejected.
	eye := cam.Eye()
	var behind linear.V3
	behind.Scale(2, &eye)
	_, _, ok = f.Project(behind, 200, 100)
	assert.False(t, ok)
}

func TestViewProjLayout(t *testing.T) {
	// The row-vector product v ⋅ (View ⋅ Proj) must equal
	// the column-vector product (Proj ⋅ View) ⋅ v when both
	// matrices share the same memory.
	s := New(nil, nil, DefaultProjection())
	f := s.Update(640, 480)
	p := linear.V4{0.3, -0.2, 0.7, 1}

	var col linear.V4
	col.Mul(&f.ViewProj, &p)

	var row linear.V4
	flat := (*[16]float32)(unsafe.Pointer(&f.ViewProj))
	for j := 0; j < 4; j++ {
		for i := 0; i < 4; i++ {
			row[j] += p[i] * flat[i*4+j]
		}
	}
	if diff := cmp.Diff(col, row, approx); diff != "" {
		t.Fatalf("ViewProj layout: -col +row\n%s", diff)
	}
}

func testProjection() Projection {
	return Projection{FovY: 1, Aspect: 1, Near: 0.1, Far: 50, Skybox: 1}
}

func TestInverses(t *testing.T) {
	cam := camera.New(&camera.Config{Pivot: linear.V3{1, 0, -2}, Radius: 6, Theta: 0.4, Phi: 2.2, Bounds: camera.DefaultBounds})
	s := New(cam, nil, testProjection())
	f := s.Update(320, 240)

	var id, m linear.M4
	id.I()
	m.Mul(&f.World, &f.View)
	if diff := cmp.Diff(m, id, approx); diff != "" {
		t.Fatalf("World ⋅ View: -have +want\n%s", diff)
	}
	m.Mul(&f.InvViewProj, &f.ViewProj)
	if diff := cmp.Diff(m, id, cmpopts.EquateApprox(0, 1e-4)); diff != "" {
		t.Fatalf("InvViewProj ⋅ ViewProj: -have +want\n%s", diff)
	}

	fwd := cam.Forward()
	if diff := cmp.Diff(linear.V3{f.World[2][0], f.World[2][1], f.World[2][2]}, fwd, approx); diff != "" {
		t.Fatalf("World forward axis: -have +want\n%s", diff)
	}
	assert.Equal(t, f.Eye, f.World[3])
}

func TestRay(t *testing.T) {
	cam := camera.New(&camera.Config{Radius: 5, Theta: 0.3, Phi: -0.8, Bounds: camera.DefaultBounds})
	s := New(cam, nil, testProjection())
	f := s.Update(200, 100)

	// The center of the viewport looks at the pivot.
	origin, dir := f.Ray(100, 50, 200, 100)
	if diff := cmp.Diff(dir, cam.Forward(), cmpopts.EquateApprox(0, 1e-4)); diff != "" {
		t.Fatalf("Frame.Ray: center direction -have +want\n%s", diff)
	}
	eye := cam.Eye()
	var d linear.V3
	d.Sub(&origin, &eye)
	assert.InDelta(t, 0.1, d.Len(), 1e-4)

	// A ray through the projection of a point hits it.
	for _, p := range []linear.V3{{0.5, 0.5, 0.5}, {-1, 0, 1}, {2, -1, 0}} {
		x, y, ok := f.Project(p, 200, 100)
		require.True(t, ok)
		origin, dir = f.Ray(x, y, 200, 100)
		assert.InDelta(t, 1, dir.Len(), 1e-5)
		var w, c linear.V3
		w.Sub(&p, &origin)
		c.Cross(&dir, &w)
		assert.InDelta(t, 0, c.Len(), 1e-3, "point %v", p)
		assert.Positive(t, dir.Dot(&w))
	}

	// Unprojecting at the far plane stays on the same ray.
	fwd := cam.Forward()
	far := f.Unproject(100, 50, 200, 100, 1)
	d.Sub(&far, &eye)
	assert.InEpsilon(t, 50, d.Dot(&fwd), 1e-3)
}
