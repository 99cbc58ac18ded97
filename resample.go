package resampler

import (
	"errors"
	"fmt"
	"math"
)

// Common errors returned by the resampler.
var (
	// ErrInvalidConfig indicates invalid configuration parameters.
	ErrInvalidConfig = errors.New("invalid resampler configuration")
)

// Config holds resampling configuration.
type Config struct {
	// InputRate is the sample rate of input audio in Hz.
	InputRate int

	// OutputRate is the desired output sample rate in Hz.
	OutputRate int

	// Channels is the channel count of the audio stream.
	// It is validated but never used to reorder samples: the resampler
	// treats every buffer as a flat sample array.
	Channels int
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.InputRate <= 0 || c.OutputRate <= 0 {
		return fmt.Errorf("%w: sample rates must be positive (input=%d, output=%d)",
			ErrInvalidConfig, c.InputRate, c.OutputRate)
	}

	if c.Channels <= 0 {
		return fmt.Errorf("%w: channels must be at least 1 (got %d)", ErrInvalidConfig, c.Channels)
	}

	return nil
}

// Resampler converts 16-bit PCM between two fixed sample rates using
// linear interpolation.
//
// The zero value is an unconfigured resampler. Until Configure succeeds,
// ExpectedOutputLength and Resample return 0.
//
// A Resampler owns no sample data. Buffers passed to Resample are only
// accessed for the duration of the call.
type Resampler struct {
	inputRate   int
	outputRate  int
	channels    int
	ratio       float64
	initialized bool
}

// NewResampler returns an unconfigured resampler.
func NewResampler() *Resampler {
	return &Resampler{ratio: identityRatio}
}

// New creates a resampler with the specified configuration.
func New(config *Config) (*Resampler, error) {
	if config == nil {
		return nil, fmt.Errorf("%w: config is nil", ErrInvalidConfig)
	}

	r := NewResampler()
	if err := r.Configure(config.InputRate, config.OutputRate, config.Channels); err != nil {
		return nil, err
	}

	return r, nil
}

// Configure validates the parameters and makes the resampler ready.
// Any prior configuration is fully replaced. On error the resampler
// keeps whatever state it had before the call.
func (r *Resampler) Configure(inputRate, outputRate, channels int) error {
	config := Config{InputRate: inputRate, OutputRate: outputRate, Channels: channels}
	if err := config.Validate(); err != nil {
		return err
	}

	r.inputRate = inputRate
	r.outputRate = outputRate
	r.channels = channels
	r.ratio = float64(outputRate) / float64(inputRate)
	r.initialized = true

	return nil
}

// ExpectedOutputLength returns ceil(inputLength * ratio), the number of
// samples Resample produces for inputLength samples when the output buffer
// is large enough. It returns 0 if the resampler is not configured.
func (r *Resampler) ExpectedOutputLength(inputLength int) int {
	if !r.initialized || inputLength <= 0 {
		return 0
	}
	return int(math.Ceil(float64(inputLength) * r.ratio))
}

// Resample interpolates input into output and returns the number of
// samples written.
//
// The interpolation grid spans the full ExpectedOutputLength(len(input))
// samples: output[0] is input[0] and output[target-1] is the last input
// sample. At most len(output) samples are written, so a short output
// buffer receives a prefix of the full result and the return value is
// smaller than ExpectedOutputLength; callers needing full coverage must
// compare the two.
//
// Resample returns 0 if the resampler is not configured, if either slice
// is nil, or if input is empty.
func (r *Resampler) Resample(input, output []int16) int {
	if !r.initialized || input == nil || output == nil || len(input) == 0 {
		return 0
	}

	inputLength := len(input)
	targetLength := r.ExpectedOutputLength(inputLength)
	outputLength := min(targetLength, len(output))

	if outputLength <= 0 {
		return 0
	}
	if targetLength <= singleSampleOutput {
		output[0] = input[0]
		return singleSampleOutput
	}

	last := inputLength - 1
	span := float64(targetLength - 1)

	for i := range outputLength {
		// The product is exact in float64 and cannot wrap where int is 32 bits,
		// so integer source positions stay exact.
		srcPos := float64(i) * float64(last) / span
		srcIndex := int(srcPos)
		frac := srcPos - float64(srcIndex)

		if srcIndex >= last {
			output[i] = input[last]
			continue
		}

		// The conversions round each product, so no platform fuses the blend
		// into an FMA and results stay bit-identical across architectures.
		sample := float64(float64(input[srcIndex])*(1.0-frac)) + float64(float64(input[srcIndex+1])*frac)
		output[i] = clampToInt16(sample)
	}

	return outputLength
}

// Reset returns the resampler to the unconfigured state.
// It is safe to call on a resampler that was never configured.
func (r *Resampler) Reset() {
	r.initialized = false
	r.inputRate = 0
	r.outputRate = 0
	r.channels = 0
	r.ratio = identityRatio
}

// Configured reports whether the resampler is ready to process audio.
func (r *Resampler) Configured() bool {
	return r.initialized
}

// GetRatio returns the resampling ratio (output_rate / input_rate),
// or 1.0 when unconfigured.
func (r *Resampler) GetRatio() float64 {
	if !r.initialized {
		return identityRatio
	}
	return r.ratio
}

// InputRate returns the configured input sample rate, or 0.
func (r *Resampler) InputRate() int {
	return r.inputRate
}

// OutputRate returns the configured output sample rate, or 0.
func (r *Resampler) OutputRate() int {
	return r.outputRate
}

// Channels returns the configured channel count, or 0.
func (r *Resampler) Channels() int {
	return r.channels
}

// clampToInt16 limits sample to the int16 range and truncates toward zero.
func clampToInt16(sample float64) int16 {
	if sample > maxSample16 {
		sample = maxSample16
	} else if sample < minSample16 {
		sample = minSample16
	}
	return int16(sample)
}
