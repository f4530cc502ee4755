package resample

import (
	"errors"
	"fmt"
	"math"
	"math/bits"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"
)

// ErrZeroDC indicates a kernel whose taps sum to zero.
var ErrZeroDC = errors.New("resample: kernel has zero DC gain")

// oversample is the number of kernel taps per source pixel used for the
// frequency analysis.
const oversample = 16

// Response describes a kernel's frequency response, normalised to unity
// gain at DC. Frequencies are in cycles per source pixel; 0.5 is the source
// Nyquist frequency.
type Response struct {
	// Magnitude holds |H| for bins 0..N/2.
	Magnitude []float64
	// BinWidth is the frequency step between bins.
	BinWidth float64
	// Cutoff3dB is the first frequency where |H| drops below -3 dB.
	Cutoff3dB float64
	// NyquistGaindB is the gain at the source Nyquist frequency.
	NyquistGaindB float64
	// StopbandPeakdB is the highest gain at or above the sampling frequency,
	// which is where reconstruction images alias back.
	StopbandPeakdB float64
}

// AnalyzeResponse samples r at 16 taps per pixel, zero-pads to at least
// size points (rounded up to a power of two) and evaluates its spectrum.
func AnalyzeResponse(r Resampler, size int) (Response, error) {
	half := int(math.Ceil(r.Radius() * oversample))
	taps := 2*half + 1
	n := 1 << bits.Len(uint(max(size, taps)-1))

	plan, err := algofft.NewPlan64(n)
	if err != nil {
		return Response{}, fmt.Errorf("resample: failed to create FFT plan: %w", err)
	}

	// Zero-phase layout: tap 0 at index 0, negative taps wrap around.
	in := make([]complex128, n)
	for i := -half; i <= half; i++ {
		in[(i+n)%n] = complex(r.Weight(float64(i)/oversample), 0)
	}
	freq := make([]complex128, n)
	if err := plan.Forward(freq, in); err != nil {
		return Response{}, fmt.Errorf("resample: failed to compute kernel FFT: %w", err)
	}

	bins := n/2 + 1
	re := make([]float64, bins)
	im := make([]float64, bins)
	for i := range bins {
		re[i], im[i] = real(freq[i]), imag(freq[i])
	}
	mag := make([]float64, bins)
	vecmath.Magnitude(mag, re, im)

	dc := mag[0]
	if dc == 0 {
		return Response{}, ErrZeroDC
	}
	vecmath.ScaleBlock(mag, mag, 1/dc)

	binWidth := float64(oversample) / float64(n)
	resp := Response{
		Magnitude: mag,
		BinWidth:  binWidth,
		Cutoff3dB: math.NaN(),
	}
	for i, m := range mag {
		if m < math.Sqrt2/2 {
			resp.Cutoff3dB = float64(i) * binWidth
			break
		}
	}
	resp.NyquistGaindB = toDB(mag[int(math.Round(0.5/binWidth))])

	peak := 0.0
	for _, m := range mag[int(math.Round(1/binWidth)):] {
		peak = max(peak, m)
	}
	resp.StopbandPeakdB = toDB(peak)
	return resp, nil
}

func toDB(m float64) float64 {
	if m <= 0 {
		return -300
	}
	return 20 * math.Log10(m)
}
