package resampler

// Sample format constants
const (
	// BytesPerSample is the width of one 16-bit PCM sample in bytes.
	BytesPerSample = 2

	maxSample16 = 32767.0  // Largest int16 sample value
	minSample16 = -32768.0 // Smallest int16 sample value
)

// Resampler state defaults
const (
	identityRatio = 1.0 // Ratio reported while unconfigured

	// Output lengths at or below this bypass the interpolation step,
	// which divides by (outputLength - 1).
	singleSampleOutput = 1
)
