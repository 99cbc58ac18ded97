// Package analysis measures levels and spectra of resampled audio.
//
// Signals are float64 samples normalized to [-1, 1), as produced by
// pcm.ToFloat64. Spectra use a Hann window and a real FFT; magnitudes are
// scaled so that a full-scale sine reads close to 0 dB.
package analysis

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/floats"

	"github.com/tphakala/go-pcm-resampler/internal/simdops"
)

// ErrFFTSize indicates an FFT size that cannot produce a spectrum.
var ErrFFTSize = errors.New("invalid FFT size")

const (
	// minFFTSize is the smallest FFT whose Hann window is not all zero.
	minFFTSize = 3

	// magnitudeFloor keeps log10 finite for empty bins.
	magnitudeFloor = 1e-20

	// maxHarmonic is the highest harmonic included in THD.
	maxHarmonic = 10

	// peakSearchBins is how far either side of the nominal bin a tone
	// peak is searched for, absorbing window leakage.
	peakSearchBins = 2
)

// RMS returns the root mean square of x, or 0 for an empty signal.
func RMS(x []float64) float64 {
	if len(x) == 0 {
		return 0
	}
	return math.Sqrt(simdops.SumSquares(x) / float64(len(x)))
}

// Peak returns the largest absolute sample value in x.
func Peak(x []float64) float64 {
	if len(x) == 0 {
		return 0
	}
	return math.Max(floats.Max(x), -floats.Min(x))
}

// DCOffset returns the mean of x, or 0 for an empty signal.
func DCOffset(x []float64) float64 {
	if len(x) == 0 {
		return 0
	}
	return simdops.Float64Ops().Sum(x) / float64(len(x))
}

// ToDB converts a linear amplitude to decibels.
func ToDB(amplitude float64) float64 {
	return 20 * math.Log10(amplitude+magnitudeFloor)
}

// Spectrum returns the bin frequencies in Hz and the magnitudes in dB of
// the first fftSize samples of x. Shorter signals are zero-padded.
func Spectrum(x []float64, sampleRate float64, fftSize int) (freqs, magDB []float64, err error) {
	mags, err := magnitudes(x, fftSize)
	if err != nil {
		return nil, nil, err
	}

	freqs = make([]float64, len(mags))
	magDB = make([]float64, len(mags))
	for k, m := range mags {
		freqs[k] = float64(k) * sampleRate / float64(fftSize)
		magDB[k] = ToDB(m)
	}

	return freqs, magDB, nil
}

// DominantFrequency returns the frequency of the strongest non-DC bin.
func DominantFrequency(x []float64, sampleRate float64, fftSize int) (float64, error) {
	mags, err := magnitudes(x, fftSize)
	if err != nil {
		return 0, err
	}

	bin := floats.MaxIdx(mags[1:]) + 1
	return float64(bin) * sampleRate / float64(fftSize), nil
}

// THD returns the total harmonic distortion of a tone at fundamental Hz,
// in dB relative to the fundamental. Harmonics 2 through 10 below Nyquist
// are included. More negative is cleaner.
func THD(x []float64, sampleRate, fundamental float64, fftSize int) (float64, error) {
	if fundamental <= 0 || fundamental >= sampleRate/2 {
		return 0, fmt.Errorf("fundamental %.1f Hz outside (0, %.1f)", fundamental, sampleRate/2)
	}

	mags, err := magnitudes(x, fftSize)
	if err != nil {
		return 0, err
	}

	binOf := func(freq float64) int {
		return int(math.Round(freq / sampleRate * float64(fftSize)))
	}

	fundamentalMag := peakNear(mags, binOf(fundamental))

	var harmonicPower float64
	nyquist := sampleRate / 2
	for h := 2; h <= maxHarmonic; h++ {
		freq := fundamental * float64(h)
		if freq >= nyquist {
			break
		}
		m := peakNear(mags, binOf(freq))
		harmonicPower += m * m
	}

	return ToDB(math.Sqrt(harmonicPower) / (fundamentalMag + magnitudeFloor)), nil
}

// SIMDInfo reports the SIMD instruction sets used by the measurements.
func SIMDInfo() string {
	return simdops.Info()
}

// magnitudes returns the Hann-windowed, amplitude-normalized magnitude
// spectrum of x, fftSize/2+1 bins long.
func magnitudes(x []float64, fftSize int) ([]float64, error) {
	if fftSize < minFFTSize {
		return nil, fmt.Errorf("%w: %d (need at least %d)", ErrFFTSize, fftSize, minFFTSize)
	}

	window := hann(fftSize)
	windowed := make([]float64, fftSize)
	for i := range min(len(x), fftSize) {
		windowed[i] = x[i] * window[i]
	}

	coeffs := fourier.NewFFT(fftSize).Coefficients(nil, windowed)

	mags := make([]float64, len(coeffs))
	for k, c := range coeffs {
		mags[k] = cmplx.Abs(c)
	}

	ops := simdops.Float64Ops()
	ops.Scale(mags, mags, 2/ops.Sum(window))

	return mags, nil
}

// hann returns a symmetric Hann window of length n.
func hann(n int) []float64 {
	w := make([]float64, n)
	for i := range w {
		w[i] = 0.5 * (1.0 - math.Cos(2.0*math.Pi*float64(i)/float64(n-1)))
	}
	return w
}

// peakNear returns the largest magnitude within peakSearchBins of bin.
func peakNear(mags []float64, bin int) float64 {
	lo := max(0, bin-peakSearchBins)
	hi := min(len(mags), bin+peakSearchBins+1)
	if lo >= hi {
		return 0
	}
	return floats.Max(mags[lo:hi])
}
