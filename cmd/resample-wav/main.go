// Command resample-wav resamples 16-bit PCM WAV files to a target sample rate.
//
// Usage:
//
//	resample-wav -rate 16 input.wav output.wav
//	resample-wav -rate 10.24 -mono music.wav fingerprint.wav   # fingerprint input
//	resample-wav -rate 8 -parallel=false input.wav out.wav     # Disable parallel processing
//	resample-wav -config jobs.yaml                             # Batch jobs from a YAML file
//
// Each channel is resampled as a whole, so the first and last frames of the
// output match the input. Parallel processing is enabled by default for
// stereo and multichannel files.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime/pprof"
	"time"

	"github.com/tphakala/go-pcm-resampler/internal/config"
)

const (
	// Conversion constants
	kHzToHz = 1000

	// CLI defaults
	defaultRateKHz  = 16.0
	minRequiredArgs = 2
)

// options controls one resampling job.
type options struct {
	targetRate int
	mono       bool
	parallel   bool
	verbose    bool
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	// Parse command line flags
	rateKHz := flag.Float64("rate", defaultRateKHz, "Target sample rate in kHz (e.g., 8, 10.24, 16, 44.1, 48)")
	mono := flag.Bool("mono", false, "Downmix to mono before resampling")
	parallel := flag.Bool("parallel", true, "Enable parallel channel processing (faster for stereo/multichannel)")
	verbose := flag.Bool("v", false, "Verbose output")
	configPath := flag.String("config", "", "YAML job file; replaces the input/output arguments")
	cpuprofile := flag.String("cpuprofile", "", "Write CPU profile to file")
	flag.Parse()

	if *configPath != "" {
		cfg, err := config.Load(*configPath)
		if err != nil {
			return err
		}
		return runJobs(cfg, *verbose)
	}

	// Validate arguments before setting up profiling
	args := flag.Args()
	if len(args) < minRequiredArgs {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] input.wav output.wav\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "       %s -config jobs.yaml\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s -rate 16 speech.wav speech_16k.wav      # Downsample for speech\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -rate 10.24 -mono song.wav song_fp.wav  # Fingerprint input\n", os.Args[0])
		return fmt.Errorf("insufficient arguments")
	}

	// Start CPU profiling if requested
	if *cpuprofile != "" {
		f, err := os.Create(*cpuprofile)
		if err != nil {
			return fmt.Errorf("could not create CPU profile: %w", err)
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			_ = f.Close()
			return fmt.Errorf("could not start CPU profile: %w", err)
		}
		defer func() {
			pprof.StopCPUProfile()
			_ = f.Close()
		}()
	}

	opts := options{
		targetRate: int(*rateKHz * kHzToHz),
		mono:       *mono,
		parallel:   *parallel,
		verbose:    *verbose,
	}

	return runOne(args[0], args[1], opts)
}

// runJobs processes every job of a YAML job file in order.
func runJobs(cfg *config.Config, verbose bool) error {
	opts := options{
		targetRate: cfg.Output.Rate,
		mono:       cfg.Output.Mono,
		parallel:   cfg.Processing.Parallel,
		verbose:    verbose || cfg.Processing.Verbose,
	}

	if len(cfg.Jobs) == 0 {
		return fmt.Errorf("config has no jobs")
	}

	for i, job := range cfg.Jobs {
		if opts.verbose {
			log.Printf("Job %d/%d", i+1, len(cfg.Jobs))
		}
		if err := runOne(job.Input, job.Output, opts); err != nil {
			return fmt.Errorf("job %d (%s): %w", i, job.Input, err)
		}
	}

	return nil
}

// runOne resamples a single file and prints a summary.
func runOne(inputPath, outputPath string, opts options) error {
	if opts.verbose {
		log.Printf("Input: %s", inputPath)
		log.Printf("Output: %s", outputPath)
		log.Printf("Target rate: %d Hz", opts.targetRate)
		if opts.mono {
			log.Printf("Downmix: mono")
		}
		if opts.parallel {
			log.Printf("Parallel: enabled (concurrent channel processing)")
		} else {
			log.Printf("Parallel: disabled (sequential processing)")
		}
	}

	start := time.Now()
	stats, err := resampleWAV(inputPath, outputPath, opts)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	// Print summary
	fmt.Printf("Resampled %s -> %s\n", filepath.Base(inputPath), filepath.Base(outputPath))
	fmt.Printf("  %d Hz -> %d Hz (%d -> %d channels, 16-bit)\n",
		stats.inputRate, stats.outputRate, stats.inputChannels, stats.outputChannels)
	fmt.Printf("  %d frames -> %d frames\n", stats.inputFrames, stats.outputFrames)
	fmt.Printf("  Duration: %.2fs, Speed: %.1fx realtime\n",
		elapsed.Seconds(),
		float64(stats.inputFrames)/float64(stats.inputRate)/elapsed.Seconds())

	return nil
}
