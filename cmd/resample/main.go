package main

import (
	"flag"
	"fmt"
	"log"
	"math"

	resampling "github.com/tphakala/go-pcm-resampler"
	"github.com/tphakala/go-pcm-resampler/internal/analysis"
	"github.com/tphakala/go-pcm-resampler/internal/pcm"
)

func main() {
	// Command-line flags
	var (
		inputRate  = flag.Int("input-rate", defaultInputRate, "Input sample rate in Hz")
		outputRate = flag.Int("output-rate", defaultOutputRate, "Output sample rate in Hz")
		channels   = flag.Int("channels", defaultChannels, "Number of audio channels")
		length     = flag.Int("length", testSignalSamples, "Input length in samples for the test signal")
		demo       = flag.Bool("demo", false, "Run a demonstration")
	)
	flag.Parse()

	if *demo {
		runDemo()
		return
	}

	config := resampling.Config{
		InputRate:  *inputRate,
		OutputRate: *outputRate,
		Channels:   *channels,
	}

	resampler, err := resampling.New(&config)
	if err != nil {
		log.Fatalf("Failed to create resampler: %v", err)
	}

	fmt.Printf("Resampler created:\n")
	fmt.Printf("  Algorithm: linear interpolation\n")
	fmt.Printf("  Ratio: %.6f (%d Hz -> %d Hz)\n", resampler.GetRatio(), *inputRate, *outputRate)
	fmt.Printf("  Channels: %d\n", resampler.Channels())
	fmt.Printf("  SIMD: %s\n", analysis.SIMDInfo())

	// Example: process a test signal
	fmt.Println("\nProcessing test signal...")
	testSignal := generateTestSignal(*length, float64(*inputRate))
	output := make([]int16, resampler.ExpectedOutputLength(len(testSignal)))
	n := resampler.Resample(testSignal, output)

	fmt.Printf("Input samples: %d\n", len(testSignal))
	fmt.Printf("Expected output: %d\n", len(output))
	fmt.Printf("Output samples: %d\n", n)
	fmt.Printf("Output bytes: %d\n", resampling.SamplesToBytes(n))
}

// generateTestSignal returns a 16-bit sine at testSignalFrequency.
func generateTestSignal(samples int, sampleRate float64) []int16 {
	signal := make([]int16, samples)
	omega := 2 * math.Pi * testSignalFrequency / sampleRate

	for i := range signal {
		signal[i] = int16(math.Round(testSignalAmplitude * math.MaxInt16 * math.Sin(omega*float64(i))))
	}

	return signal
}

func runDemo() {
	fmt.Println("=== Go PCM Resampler Demo ===")

	// Demo 1: Output lengths for common conversions
	fmt.Println("1. Output Lengths")
	fmt.Println("-----------------")

	testRatios := []struct {
		from, to int
		name     string
	}{
		{resampling.RateCD, resampling.RateFingerprint, "CD to fingerprint"},
		{resampling.RateDAT, resampling.RateVoIP, "DAT to VoIP"},
		{resampling.RateTelephony, resampling.RateVoIP, "Telephony to VoIP"},
		{resampling.RateCD, resampling.RateDAT, "CD to DAT"},
	}

	for _, ratio := range testRatios {
		resampler, err := resampling.NewSimple(ratio.from, ratio.to)
		if err != nil {
			fmt.Printf("  %s: Error - %v\n", ratio.name, err)
			continue
		}

		fmt.Printf("  %s (%d Hz -> %d Hz, ratio %.4f): 1s = %d samples, %d-sample block = %d samples\n",
			ratio.name, ratio.from, ratio.to, resampler.GetRatio(),
			resampler.ExpectedOutputLength(ratio.from),
			demoBlockSize, resampler.ExpectedOutputLength(demoBlockSize))
	}

	// Demo 2: Signal fidelity
	fmt.Println("\n2. Signal Fidelity")
	fmt.Println("------------------")
	fmt.Printf("%.0f Hz tone, 1 second of audio:\n", testSignalFrequency)

	for _, ratio := range testRatios {
		input := generateTestSignal(ratio.from, float64(ratio.from))
		output, err := resampling.ResampleInt16(input, ratio.from, ratio.to)
		if err != nil {
			fmt.Printf("  %s: Error - %v\n", ratio.name, err)
			continue
		}

		signal := pcm.ToFloat64(output)
		dominant, err := analysis.DominantFrequency(signal, float64(ratio.to), demoFFTSize)
		if err != nil {
			fmt.Printf("  %s: Error - %v\n", ratio.name, err)
			continue
		}

		thd, err := analysis.THD(signal, float64(ratio.to), testSignalFrequency, demoFFTSize)
		if err != nil {
			fmt.Printf("  %s: Error - %v\n", ratio.name, err)
			continue
		}

		fmt.Printf("  %s: RMS %.4f, peak %.4f, dominant %.1f Hz, THD %.1f dB\n",
			ratio.name, analysis.RMS(signal), analysis.Peak(signal), dominant, thd)
	}

	// Demo 3: Short output buffers
	fmt.Println("\n3. Short Output Buffers")
	fmt.Println("-----------------------")

	resampler, err := resampling.NewSimple(resampling.RateTelephony, resampling.RateVoIP)
	if err != nil {
		log.Fatalf("Failed to create resampler: %v", err)
	}

	input := make([]int16, demoBlockSize)
	for i := range input {
		input[i] = int16(i * demoRampStep)
	}
	for _, capacity := range []int{demoBlockSize / 2, demoBlockSize, 2 * demoBlockSize} {
		output := make([]int16, capacity)
		n := resampler.Resample(input, output)
		fmt.Printf("  capacity %4d: wrote %4d of %d (last value %d)\n",
			capacity, n, resampler.ExpectedOutputLength(len(input)), output[n-1])
	}

	fmt.Println("\n=== Demo Complete ===")
}
