package main

// Default command-line flag values
const (
	defaultInputRate  = 44100 // CD quality sample rate
	defaultOutputRate = 10240 // Fingerprint sample rate
	defaultChannels   = 1     // Mono
)

// Test signal parameters
const (
	testSignalFrequency = 1000.0 // 1 kHz test tone
	testSignalAmplitude = 0.8    // Relative to full scale
	testSignalSamples   = 4410   // Default test signal length (100 ms at 44.1 kHz)
)

// Demo parameters
const (
	demoBlockSize = 512  // Samples per block in the length and buffer demos
	demoFFTSize   = 8192 // FFT size for fidelity measurements
	demoRampStep  = 50   // Ramp increment per input sample
)
