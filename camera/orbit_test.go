// Copyright 2022 Gustavo C. Viegas. All rights reserved.

package camera

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gviegas/orbit/linear"
)

const tol = 1e-5

func dist(a, b linear.V3) float32 {
	var d linear.V3
	d.Sub(&a, &b)
	return d.Len()
}

func assertV3(t *testing.T, want, have linear.V3, delta float64) {
	t.Helper()
	for i := range want {
		assert.InDelta(t, want[i], have[i], delta, "component %d of %v", i, have)
	}
}

func TestDefault(t *testing.T) {
	o := New(nil)
	assert.Equal(t, linear.V3{}, o.Pivot())
	assert.Equal(t, float32(4), o.Radius())
	assert.Equal(t, float32(math.Pi/4), o.Theta())
	assert.Equal(t, float32(-math.Pi/4), o.Phi())
	assert.True(t, o.Bounds().Unbounded())
	assert.Equal(t, float32(MinRadius), o.Bounds().Min)
}

func TestInitClamps(t *testing.T) {
	o := New(&Config{Radius: 1, Theta: 3, Bounds: LabBounds})
	assert.Equal(t, float32(2), o.Radius())
	assert.Equal(t, float32(MaxTheta), o.Theta())

	o.Init(&Config{Radius: 40, Theta: -3, Bounds: LabBounds})
	assert.Equal(t, float32(25), o.Radius())
	assert.Equal(t, float32(-MaxTheta), o.Theta())
}

func TestEyeDistance(t *testing.T) {
	o := new(Orbit)
	for _, pivot := range []linear.V3{{}, {1, -2, 3}, {-10, 0.5, 7}} {
		for _, r := range []float32{2, 4, 9.5, 25} {
			for theta := -MaxTheta; theta <= MaxTheta; theta += 0.25 {
				for phi := float32(-7); phi <= 7; phi += 0.5 {
					o.Init(&Config{Pivot: pivot, Radius: r, Theta: theta, Phi: phi, Bounds: DefaultBounds})
					assert.InEpsilon(t, r, dist(o.Eye(), pivot), tol,
						"pivot %v r %v theta %v phi %v", pivot, r, theta, phi)
				}
			}
		}
	}
}

func TestUpOrthonormal(t *testing.T) {
	o := new(Orbit)
	for theta := -MaxTheta + 0.01; theta < MaxTheta; theta += 0.1 {
		for phi := float32(-4); phi <= 4; phi += 0.3 {
			o.Init(&Config{Pivot: linear.V3{3, 1, -1}, Radius: 5, Theta: theta, Phi: phi, Bounds: DefaultBounds})
			up := o.Up()
			assert.InDelta(t, 1, up.Len(), tol)

			eye := o.Eye()
			piv := o.Pivot()
			var d linear.V3
			d.Sub(&eye, &piv)
			d.Norm(&d)
			assert.InDelta(t, 0, d.Dot(&up), tol, "theta %v phi %v", theta, phi)
		}
	}
}

func TestForward(t *testing.T) {
	o := New(&Config{Pivot: linear.V3{1, 2, 3}, Radius: 6, Theta: 0.3, Phi: 1.1, Bounds: DefaultBounds})
	eye := o.Eye()
	piv := o.Pivot()
	var want linear.V3
	want.Sub(&piv, &eye)
	want.Norm(&want)
	assertV3(t, want, o.Forward(), tol)
}

func TestOrbitInverse(t *testing.T) {
	o := New(nil)
	phi, theta := o.Phi(), o.Theta()
	for _, d := range [...][2]float32{{0.3, 0.2}, {-1.5, -0.7}, {10, 0.5}, {0, 0}} {
		o.Orbit(d[0], d[1])
		o.Orbit(-d[0], -d[1])
		assert.InDelta(t, phi, o.Phi(), tol)
		assert.InDelta(t, theta, o.Theta(), tol)
	}
}

func TestOrbitSign(t *testing.T) {
	o := New(&Config{Radius: 4, Bounds: DefaultBounds})
	require.Equal(t, float32(0), o.Phi())
	o.Orbit(0.1, 0)
	assert.Equal(t, float32(-0.1), o.Phi())
	assert.Equal(t, float32(0), o.Theta())

	o.Orbit(0, 0.25)
	assert.Equal(t, float32(0.25), o.Theta())
}

func TestOrbitClamp(t *testing.T) {
	o := New(&Config{Radius: 4, Theta: MaxTheta - 1e-3, Bounds: DefaultBounds})
	o.Orbit(0, 1)
	assert.Equal(t, float32(MaxTheta), o.Theta())
	o.Orbit(0, 100)
	assert.Equal(t, float32(MaxTheta), o.Theta())
	o.Orbit(0, -1000)
	assert.Equal(t, float32(-MaxTheta), o.Theta())

	// Phi is never wrapped.
	o.Orbit(-100, 0)
	assert.InDelta(t, 100, o.Phi(), tol)
}

func TestZoomClamp(t *testing.T) {
	o := New(&Config{Radius: 3, Theta: 0.5, Bounds: LabBounds})
	o.Zoom(-5)
	assert.Equal(t, float32(2), o.Radius())
	o.Zoom(1.5)
	assert.Equal(t, float32(3.5), o.Radius())
	o.Zoom(30)
	assert.Equal(t, float32(25), o.Radius())

	o = New(nil)
	o.Zoom(1000)
	assert.Equal(t, float32(1004), o.Radius())
	o.Zoom(-2000)
	assert.Equal(t, float32(MinRadius), o.Radius())
}

func TestSetBounds(t *testing.T) {
	o := New(&Config{Radius: 20, Bounds: DefaultBounds})
	o.SetBounds(Bounds{Min: 2, Max: 10})
	assert.Equal(t, float32(10), o.Radius())
	assert.InEpsilon(t, float32(10), dist(o.Eye(), o.Pivot()), tol)

	o.SetBounds(Bounds{Min: 12, Max: 15})
	assert.Equal(t, float32(12), o.Radius())
}

func TestScenario(t *testing.T) {
	o := New(&Config{Radius: 4, Theta: math.Pi / 4, Phi: -math.Pi / 4, Bounds: LabBounds})
	assertV3(t, linear.V3{2, 2.828427, -2}, o.Eye(), tol)

	o.Zoom(21)
	assert.Equal(t, float32(25), o.Radius())

	o.Init(&Config{Radius: 4, Theta: math.Pi / 4, Phi: -math.Pi / 4, Bounds: LabBounds})
	o.Zoom(30)
	assert.Equal(t, float32(25), o.Radius())
	assertV3(t, linear.V3{12.5, 17.677670, -12.5}, o.Eye(), 1e-4)
}

// viewFromBasis builds the view matrix directly from the
// look-at definition.
func viewFromBasis(eye, target, up linear.V3) linear.M4 {
	var x, y, z linear.V3
	z.Sub(&target, &eye)
	z.Norm(&z)
	x.Cross(&up, &z)
	x.Norm(&x)
	y.Cross(&z, &x)
	return linear.M4{
		{x[0], y[0], z[0], 0},
		{x[1], y[1], z[1], 0},
		{x[2], y[2], z[2], 0},
		{-x.Dot(&eye), -y.Dot(&eye), -z.Dot(&eye), 1},
	}
}

func TestView(t *testing.T) {
	o := New(nil)
	check := func() {
		t.Helper()
		want := viewFromBasis(o.Eye(), o.Pivot(), o.Up())
		have := *o.View()
		for i := range want {
			for j := range want[i] {
				assert.InDelta(t, want[i][j], have[i][j], tol, "view[%d][%d]", i, j)
			}
		}

		// The pivot lies straight ahead at distance radius.
		piv := o.Pivot()
		p := linear.V4{piv[0], piv[1], piv[2], 1}
		p.Mul(o.View(), &p)
		assert.InDelta(t, 0, p[0], tol)
		assert.InDelta(t, 0, p[1], tol)
		assert.InEpsilon(t, o.Radius(), p[2], tol)

		// The eye is at the origin of view space.
		eye := o.Eye()
		e := linear.V4{eye[0], eye[1], eye[2], 1}
		e.Mul(o.View(), &e)
		assertV3(t, linear.V3{}, linear.V3{e[0], e[1], e[2]}, 1e-4)
	}
	check()
	o.Orbit(0.4, -0.3)
	check()
	o.Zoom(3)
	check()
	o.SetPivot(linear.V3{-2, 1, 5})
	check()
}

func TestViewPole(t *testing.T) {
	o := New(&Config{Radius: 5, Theta: MaxTheta, Phi: 0.7, Bounds: DefaultBounds})
	for _, col := range *o.View() {
		for _, x := range col {
			assert.False(t, math.IsNaN(float64(x)) || math.IsInf(float64(x), 0), "view %v", *o.View())
		}
	}
}

func TestSetPivot(t *testing.T) {
	o := New(nil)
	before := o.Eye()
	pivot := linear.V3{5, -1, 2}
	o.SetPivot(pivot)
	after := o.Eye()
	var d linear.V3
	d.Sub(&after, &before)
	assertV3(t, pivot, d, tol)
	assert.InEpsilon(t, o.Radius(), dist(after, pivot), tol)
}

func TestReset(t *testing.T) {
	o := New(nil)
	o.Orbit(1, 0.5)
	o.Zoom(10)
	o.Reset(nil)
	want := New(nil)
	assert.Equal(t, *want, *o)
}
