// Command analyze-resample measures how linear resampling treats a pure tone.
//
// Usage:
//
//	analyze-resample -from 44100 -to 10240 -freq 1000
//	analyze-resample -sweep                         # Common conversions at several tones
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

const (
	// Analysis parameters
	defaultFFTSize   = 8192 // FFT length for spectral measurements
	defaultFrequency = 1000.0
	defaultAmplitude = 0.9 // Leave headroom below full scale
	defaultDuration  = 1.0 // Seconds of test tone

	// Display limits
	spectrumPeaksToShow = 5
	peakExclusionBins   = 3 // Bins either side of a listed peak to skip
)

// report holds the measurements of one conversion.
type report struct {
	inputRate, outputRate int
	frequency             float64
	inputSamples          int
	outputSamples         int
	inputRMS, outputRMS   float64
	outputPeak            float64
	outputDC              float64
	dominant              float64
	thdDB                 float64
}

func main() {
	from := flag.Int("from", resampling.RateCD, "Input sample rate in Hz")
	to := flag.Int("to", resampling.RateFingerprint, "Output sample rate in Hz")
	freq := flag.Float64("freq", defaultFrequency, "Test tone frequency in Hz")
	fftSize := flag.Int("fft", defaultFFTSize, "FFT size")
	sweep := flag.Bool("sweep", false, "Analyze common conversions at several tones")
	spectrum := flag.Bool("spectrum", false, "List the strongest spectral peaks")
	flag.Parse()

	fmt.Println("=== Analyzing Linear Resampling ===")
	fmt.Printf("SIMD: %s\n\n", analysis.SIMDInfo())

	if *sweep {
		runSweep(*fftSize)
		return
	}

	r, err := analyze(*from, *to, *freq, *fftSize)
	if err != nil {
		log.Fatal(err)
	}
	printReport(r)

	if *spectrum {
		if err := printSpectrum(*from, *to, *freq, *fftSize); err != nil {
			log.Fatal(err)
		}
	}
}

// analyze resamples a tone and measures the result.
func analyze(inputRate, outputRate int, freq float64, fftSize int) (*report, error) {
	input := generateTone(inputRate, freq)
	output, err := resampling.ResampleInt16(input, inputRate, outputRate)
	if err != nil {
		return nil, err
	}

	in := pcm.ToFloat64(input)
	out := pcm.ToFloat64(output)

	dominant, err := analysis.DominantFrequency(out, float64(outputRate), fftSize)
	if err != nil {
		return nil, err
	}

	thd, err := analysis.THD(out, float64(outputRate), freq, fftSize)
	if err != nil {
		return nil, err
	}

	return &report{
		inputRate:     inputRate,
		outputRate:    outputRate,
		frequency:     freq,
		inputSamples:  len(input),
		outputSamples: len(output),
		inputRMS:      analysis.RMS(in),
		outputRMS:     analysis.RMS(out),
		outputPeak:    analysis.Peak(out),
		outputDC:      analysis.DCOffset(out),
		dominant:      dominant,
		thdDB:         thd,
	}, nil
}

// gainDB returns the RMS level change from input to output.
func (r *report) gainDB() float64 {
	return analysis.ToDB(r.outputRMS) - analysis.ToDB(r.inputRMS)
}

func printReport(r *report) {
	fmt.Printf("%d Hz -> %d Hz, %.0f Hz tone\n", r.inputRate, r.outputRate, r.frequency)
	fmt.Printf("  Samples: %d -> %d\n", r.inputSamples, r.outputSamples)
	fmt.Printf("  RMS: %.6f -> %.6f (%+.3f dB)\n", r.inputRMS, r.outputRMS, r.gainDB())
	fmt.Printf("  Peak: %.6f\n", r.outputPeak)
	fmt.Printf("  DC offset: %.2e\n", r.outputDC)
	fmt.Printf("  Dominant frequency: %.1f Hz\n", r.dominant)
	fmt.Printf("  THD: %.1f dB\n", r.thdDB)
}

func runSweep(fftSize int) {
	conversions := []struct {
		from, to int
	}{
		{resampling.RateCD, resampling.RateFingerprint},
		{resampling.RateDAT, resampling.RateVoIP},
		{resampling.RateTelephony, resampling.RateVoIP},
		{resampling.RateCD, resampling.RateDAT},
	}
	tones := []float64{250, 1000, 3000}

	fmt.Printf("%-18s %8s %10s %12s %10s\n", "conversion", "tone", "gain dB", "dominant", "THD dB")
	for _, c := range conversions {
		for _, tone := range tones {
			if tone >= float64(min(c.from, c.to))/2 {
				continue
			}
			r, err := analyze(c.from, c.to, tone, fftSize)
			if err != nil {
				fmt.Printf("%6d -> %-8d %8.0f  error: %v\n", c.from, c.to, tone, err)
				continue
			}
			fmt.Printf("%6d -> %-8d %8.0f %10.3f %12.1f %10.1f\n",
				c.from, c.to, tone, r.gainDB(), r.dominant, r.thdDB)
		}
	}
}

// printSpectrum lists the strongest bins of the resampled tone.
func printSpectrum(inputRate, outputRate int, freq float64, fftSize int) error {
	output, err := resampling.ResampleInt16(generateTone(inputRate, freq), inputRate, outputRate)
	if err != nil {
		return err
	}

	freqs, magDB, err := analysis.Spectrum(pcm.ToFloat64(output), float64(outputRate), fftSize)
	if err != nil {
		return err
	}

	fmt.Println("\nStrongest spectral peaks:")
	for _, bin := range strongestBins(magDB, spectrumPeaksToShow) {
		fmt.Printf("  %9.1f Hz: %7.1f dB\n", freqs[bin], magDB[bin])
	}

	return nil
}

// strongestBins returns up to n local maxima of magDB in descending order,
// skipping bins adjacent to one already chosen.
func strongestBins(magDB []float64, n int) []int {
	used := make([]bool, len(magDB))
	var bins []int

	for len(bins) < n {
		best := -1
		for k, m := range magDB {
			if used[k] {
				continue
			}
			if best < 0 || m > magDB[best] {
				best = k
			}
		}
		if best < 0 {
			break
		}

		bins = append(bins, best)
		for k := max(0, best-peakExclusionBins); k <= min(len(magDB)-1, best+peakExclusionBins); k++ {
			used[k] = true
		}
	}

	return bins
}

// generateTone returns defaultDuration seconds of a 16-bit sine.
func generateTone(sampleRate int, freq float64) []int16 {
	tone := make([]int16, int(defaultDuration*float64(sampleRate)))
	omega := 2 * math.Pi * freq / float64(sampleRate)
	for i := range tone {
		tone[i] = int16(math.Round(defaultAmplitude * math.MaxInt16 * math.Sin(omega*float64(i))))
	}
	return tone
}
