package resample

import "math"

// cubic is the Mitchell-Netravali family of piecewise cubics with
// parameters B and C.
type cubic struct {
	name string
	// Polynomial coefficients for |x| < 1 (p*) and 1 <= |x| < 2 (q*).
	p0, p2, p3     float64
	q0, q1, q2, q3 float64
}

func newCubic(name string, b, c float64) cubic {
	return cubic{
		name: name,
		p0:   (6 - 2*b) / 6,
		p2:   (-18 + 12*b + 6*c) / 6,
		p3:   (12 - 9*b - 6*c) / 6,
		q0:   (8*b + 24*c) / 6,
		q1:   (-12*b - 48*c) / 6,
		q2:   (6*b + 30*c) / 6,
		q3:   (-b - 6*c) / 6,
	}
}

func (c cubic) Name() string    { return c.name }
func (c cubic) Radius() float64 { return 2 }

func (c cubic) Weight(x float64) float64 {
	x = math.Abs(x)
	switch {
	case x < 1:
		return c.p0 + x*x*(c.p2+x*c.p3)
	case x < 2:
		return c.q0 + x*(c.q1+x*(c.q2+x*c.q3))
	}
	return 0
}

// keys is the Keys cubic convolution kernel with free parameter a.
type keys struct {
	a float64
}

func (keys) Name() string    { return "bicubic" }
func (keys) Radius() float64 { return 2 }

func (k keys) Weight(x float64) float64 {
	x = math.Abs(x)
	switch {
	case x <= 1:
		return ((k.a+2)*x-(k.a+3))*x*x + 1
	case x < 2:
		return ((k.a*x-5*k.a)*x+8*k.a)*x - 4*k.a
	}
	return 0
}

// catmullRom derives its weights from 4-point cubic Hermite interpolation:
// the weight of a sample at distance x is the interpolated value of a unit
// impulse placed on that sample.
type catmullRom struct{}

func (catmullRom) Name() string    { return "catmullrom" }
func (catmullRom) Radius() float64 { return 2 }

func (catmullRom) Weight(x float64) float64 {
	x = math.Abs(x)
	switch {
	case x < 1:
		return hermite4(x, 0, 1, 0, 0)
	case x < 2:
		return hermite4(x-1, 1, 0, 0, 0)
	}
	return 0
}

// hermite4 interpolates between x0 and x1 at t in [0, 1] using the
// neighbours xm1 and x2.
func hermite4(t, xm1, x0, x1, x2 float64) float64 {
	c0 := x0
	c1 := 0.5 * (x1 - xm1)
	c2 := xm1 - 2.5*x0 + 2*x1 - 0.5*x2
	c3 := 0.5*(x2-xm1) + 1.5*(x0-x1)
	return ((c3*t+c2)*t+c1)*t + c0
}
