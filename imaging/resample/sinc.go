package resample

import (
	"math"
	"strconv"
)

func sinc(x float64) float64 {
	if x == 0 {
		return 1
	}
	x *= math.Pi
	return math.Sin(x) / x
}

// lanczos is sinc windowed by a wider sinc over the given number of lobes.
type lanczos struct {
	lobes int
}

func (l lanczos) Name() string    { return "lanczos" + strconv.Itoa(l.lobes) }
func (l lanczos) Radius() float64 { return float64(l.lobes) }

func (l lanczos) Weight(x float64) float64 {
	x = math.Abs(x)
	r := float64(l.lobes)
	if x < r {
		return sinc(x) * sinc(x/r)
	}
	return 0
}

// welch is sinc windowed by a parabola over radius 3.
type welch struct{}

func (welch) Name() string    { return "welch" }
func (welch) Radius() float64 { return 3 }

func (welch) Weight(x float64) float64 {
	x = math.Abs(x)
	if x < 3 {
		return sinc(x) * (1 - x*x/9)
	}
	return 0
}
