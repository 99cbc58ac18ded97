// Package testutil provides reusable test helper functions for resampler tests.
package testutil

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

// Default tolerances for various test scenarios.
const (
	DefaultTolerance   = 1e-10
	FrequencyTolerance = 0.02 // Relative tolerance for measured tone frequencies
)

// Signal generation constants.
const (
	maxSample16 = 32767.0
	minSample16 = -32768.0
	twoPi       = 2 * math.Pi
)

// Sine16 generates n samples of a sine tone as 16-bit PCM.
// amplitude is relative to full scale and clamped to [0, 1].
func Sine16(n int, freq, sampleRate, amplitude float64) []int16 {
	amplitude = math.Max(0, math.Min(1, amplitude))
	out := make([]int16, n)
	for i := range out {
		v := amplitude * maxSample16 * math.Sin(twoPi*freq*float64(i)/sampleRate)
		out[i] = int16(math.Round(v))
	}
	return out
}

// Ramp16 generates n samples starting at start and increasing by step,
// saturating at the int16 limits.
func Ramp16(n int, start, step int) []int16 {
	out := make([]int16, n)
	for i := range out {
		v := float64(start + i*step)
		out[i] = int16(math.Max(minSample16, math.Min(maxSample16, v)))
	}
	return out
}

// Alternating16 generates n samples alternating between the int16 extremes.
func Alternating16(n int) []int16 {
	out := make([]int16, n)
	for i := range out {
		if i%2 == 0 {
			out[i] = math.MaxInt16
		} else {
			out[i] = math.MinInt16
		}
	}
	return out
}

// AssertSamplesEqual verifies that two sample slices are identical.
// It reports only the first mismatch.
func AssertSamplesEqual(t *testing.T, expected, actual []int16, msgAndArgs ...any) bool {
	t.Helper()
	if !assert.Len(t, actual, len(expected), msgAndArgs...) {
		return false
	}
	for i := range expected {
		if expected[i] != actual[i] {
			return assert.Fail(t, "sample mismatch",
				"sample %d: expected %d, got %d", i, expected[i], actual[i])
		}
	}
	return true
}

// AssertBetweenNeighbours verifies that every sample of out lies within the
// value range spanned by in. Linear interpolation can never leave that range.
func AssertBetweenNeighbours(t *testing.T, in, out []int16) bool {
	t.Helper()
	if len(in) == 0 {
		return assert.Empty(t, out)
	}
	lo, hi := in[0], in[0]
	for _, v := range in {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	for i, v := range out {
		if v < lo || v > hi {
			return assert.Fail(t, "value out of range",
				"out[%d]=%d is outside input range [%d, %d]", i, v, lo, hi)
		}
	}
	return true
}

// AssertNoNaNOrInf verifies that no elements in the slice are NaN or Inf.
func AssertNoNaNOrInf(t *testing.T, s []float64, msgAndArgs ...any) bool {
	t.Helper()
	for i, v := range s {
		if math.IsNaN(v) {
			return assert.Fail(t, "found NaN", "s[%d] is NaN", i)
		}
		if math.IsInf(v, 0) {
			return assert.Fail(t, "found Inf", "s[%d] is Inf", i)
		}
	}
	return true
}

// AssertRelativeError verifies that the relative error between actual and expected is within tolerance.
func AssertRelativeError(t *testing.T, expected, actual, tolerance float64, msgAndArgs ...any) bool {
	t.Helper()
	if expected == 0 {
		return assert.InDelta(t, expected, actual, tolerance, msgAndArgs...)
	}
	relError := math.Abs(actual-expected) / math.Abs(expected)
	return assert.LessOrEqual(t, relError, tolerance,
		"relative error %e exceeds tolerance %e (expected=%f, actual=%f)",
		relError, tolerance, expected, actual)
}

// AssertInRange verifies that a value is within [min, max].
func AssertInRange(t *testing.T, value, minVal, maxVal float64, msgAndArgs ...any) bool {
	t.Helper()
	if value < minVal || value > maxVal {
		return assert.Fail(t, "value out of range",
			"value %f is outside range [%f, %f]", value, minVal, maxVal)
	}
	return true
}
