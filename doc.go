// Package resampler provides fixed-ratio sample rate conversion for 16-bit
// signed PCM audio in pure Go.
//
// The converter uses linear interpolation between neighbouring samples.
// It is intended for speech and fingerprinting pipelines where a cheap,
// deterministic conversion matters more than stopband attenuation; it
// applies no anti-aliasing filter.
//
// # Quick Start
//
// For simple one-shot resampling:
//
//	output, err := resampler.ResampleInt16(input, 44100, resampler.RateFingerprint)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// For repeated conversions with caller-owned buffers:
//
//	r := resampler.NewResampler()
//	if err := r.Configure(44100, 16000, 1); err != nil {
//	    log.Fatal(err)
//	}
//
//	out := make([]int16, r.ExpectedOutputLength(len(in)))
//	n := r.Resample(in, out)
//	writeOutput(out[:n])
//
// # Output Length
//
// For n input samples the full output has ceil(n * outputRate/inputRate)
// samples, reported by [Resampler.ExpectedOutputLength]. [Resampler.Resample]
// never writes more than len(output) samples; when the output slice is
// shorter, it receives a prefix of the full result and the returned count
// is smaller than the expected length.
//
// The first output sample is the first input sample and the last sample of
// a full-length output is the last input sample. Interpolated values are
// clamped to the int16 range before truncation.
//
// # Lifecycle
//
// A [Resampler] starts unconfigured. [Resampler.Configure] validates the
// rates and channel count and may be called again to replace the
// configuration. [Resampler.Reset] returns it to the unconfigured state.
// While unconfigured, ExpectedOutputLength and Resample return 0.
//
// # Channels
//
// The channel count is validated but never used to reorder data: buffers are
// processed as flat sample arrays. To resample interleaved multi-channel
// audio, deinterleave it first and resample each channel separately.
//
// # Thread Safety
//
// Resample does not modify the resampler, so a configured instance may be
// shared by goroutines writing to distinct output slices. Configure and Reset
// must not run concurrently with any other call on the same instance.
package resampler
