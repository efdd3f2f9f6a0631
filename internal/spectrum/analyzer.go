// SPDX-License-Identifier: MIT
package spectrum

import (
	"fmt"
	"math/cmplx"
	"strings"

	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/dsp/window"

	"github.com/nicochatzi/rume/pkg/bitint"
)

// WindowFunc selects the window applied before each FFT.
type WindowFunc int

const (
	Hann WindowFunc = iota
	Hamming
	Blackman
	BlackmanNuttall
	BartlettHann
	Lanczos
	Nuttall
)

// ParseWindowFunc converts a case-insensitive name into a WindowFunc,
// defaulting to Hann and reporting an error for an unknown name.
func ParseWindowFunc(name string) (WindowFunc, error) {
	switch strings.ToLower(name) {
	case "hann", "hanning", "":
		return Hann, nil
	case "hamming":
		return Hamming, nil
	case "blackman":
		return Blackman, nil
	case "blackmannuttall":
		return BlackmanNuttall, nil
	case "bartletthann":
		return BartlettHann, nil
	case "lanczos":
		return Lanczos, nil
	case "nuttall":
		return Nuttall, nil
	default:
		return Hann, fmt.Errorf("spectrum: unknown window function %q", name)
	}
}

func applyWindow(coeffs []float64, fn WindowFunc) {
	for i := range coeffs {
		coeffs[i] = 1.0
	}
	switch fn {
	case Hamming:
		window.Hamming(coeffs)
	case Blackman:
		window.Blackman(coeffs)
	case BlackmanNuttall:
		window.BlackmanNuttall(coeffs)
	case BartlettHann:
		window.BartlettHann(coeffs)
	case Lanczos:
		window.Lanczos(coeffs)
	case Nuttall:
		window.Nuttall(coeffs)
	default:
		window.Hann(coeffs)
	}
}

// Analyzer runs windowed FFT analysis over samples drained from a graph
// output endpoint. It is a control-thread tap: it never runs inside
// Chain.Render and holds no reference to the chain itself, only to the
// stream a render loop publishes samples onto.
type Analyzer struct {
	size       int
	sampleRate float64

	input     []float64
	window    []float64
	fftOutput []complex128
	magnitude []float64

	fft *fourier.FFT
}

// NewAnalyzer pre-allocates every buffer the analyzer will ever need and
// builds the chosen window of the given size. size must be a power of
// two.
func NewAnalyzer(size int, sampleRate float64, win WindowFunc) *Analyzer {
	if !bitint.IsPowerOfTwo(size) {
		panic("spectrum: analyzer size must be a power of 2")
	}

	coeffs := make([]float64, size)
	applyWindow(coeffs, win)

	outputSize := size/2 + 1

	return &Analyzer{
		size:       size,
		sampleRate: sampleRate,
		input:      make([]float64, size),
		window:     coeffs,
		fftOutput:  make([]complex128, outputSize),
		magnitude:  make([]float64, outputSize),
		fft:        fourier.NewFFT(size),
	}
}

// Feed windows the most recent size samples of samples (drained by the
// caller from an output endpoint's stream) and refreshes the magnitude
// spectrum. It keeps nothing between calls: given fewer than size
// samples it computes nothing. It reports whether a new spectrum is
// available.
func (a *Analyzer) Feed(samples []float32) bool {
	if len(samples) < a.size {
		return false
	}
	start := len(samples) - a.size
	for i := 0; i < a.size; i++ {
		a.input[i] = float64(samples[start+i]) * a.window[i]
	}

	_ = a.fft.Coefficients(a.fftOutput, a.input)
	for i := range a.fftOutput {
		a.magnitude[i] = cmplx.Abs(a.fftOutput[i])
	}
	return true
}

// Magnitudes returns the most recently computed magnitude spectrum. The
// returned slice is owned by the analyzer and is overwritten on the next
// call to Feed.
func (a *Analyzer) Magnitudes() []float64 {
	return a.magnitude
}

// FrequencyOfBin returns the center frequency, in Hz, of the given bin.
func (a *Analyzer) FrequencyOfBin(bin int) float64 {
	if bin < 0 || bin >= len(a.magnitude) {
		return 0
	}
	return a.fft.Freq(bin) * a.sampleRate
}

// Size returns the FFT size the analyzer was constructed with.
func (a *Analyzer) Size() int {
	return a.size
}
