package resampler

import "fmt"

// Common sample rates for convenience functions.
const (
	// RateTelephony is the telephony (PSTN narrowband) sample rate.
	RateTelephony = 8000

	// RateFingerprint is the sample rate audio fingerprints are extracted at.
	RateFingerprint = 10240

	// RateVoIP is the VoIP wideband sample rate.
	RateVoIP = 16000

	// RateSpeech is the speech recognition common sample rate.
	RateSpeech = 22050

	// RateCD is the CD quality sample rate (Red Book standard).
	RateCD = 44100

	// RateDAT is the DAT/DVD sample rate.
	RateDAT = 48000
)

// monoChannels is the channel count used by the mono convenience constructors.
const monoChannels = 1

// NewSimple creates a mono resampler for the given rates.
func NewSimple(inputRate, outputRate int) (*Resampler, error) {
	return New(&Config{
		InputRate:  inputRate,
		OutputRate: outputRate,
		Channels:   monoChannels,
	})
}

// NewForFingerprint creates a mono resampler converting inputRate audio
// to RateFingerprint, the rate fingerprint extraction expects.
func NewForFingerprint(inputRate int) (*Resampler, error) {
	return NewSimple(inputRate, RateFingerprint)
}

// ResampleInt16 is a convenience function for one-shot mono resampling.
// It creates a resampler, sizes the output with ExpectedOutputLength and
// returns the resampled samples. Empty input yields an empty result.
func ResampleInt16(input []int16, inputRate, outputRate int) ([]int16, error) {
	r, err := NewSimple(inputRate, outputRate)
	if err != nil {
		return nil, err
	}

	output := make([]int16, r.ExpectedOutputLength(len(input)))
	n := r.Resample(input, output)
	if n != len(output) {
		return nil, fmt.Errorf("resampled %d of %d samples", n, len(output))
	}

	return output, nil
}

// SamplesToBytes converts a sample count to a byte count.
func SamplesToBytes(samples int) int {
	return samples * BytesPerSample
}

// BytesToSamples converts a byte count to a whole sample count.
// A trailing partial sample is dropped.
func BytesToSamples(bytes int) int {
	return bytes / BytesPerSample
}
