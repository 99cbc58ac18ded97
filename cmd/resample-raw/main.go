// Command resample-raw resamples headerless 16-bit little-endian PCM.
//
// Audio flows through the handle-based bridge the same way a foreign host
// drives it: create a handle, pass byte buffers, destroy the handle.
//
// Usage:
//
//	resample-raw -in capture.raw -out capture_10k.raw -from 44100 -to 10240
//	resample-raw -in stereo.raw -out mono.raw -channels 2 -from 48000 -to 16000
//	resample-raw -in live.raw -out live_10k.raw -block 8192 -v   # Convert 8 KiB blocks independently
//
// Use "-" for stdin or stdout.
package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	resampler "github.com/tphakala/go-pcm-resampler"
	"github.com/tphakala/go-pcm-resampler/internal/bridge"
	"github.com/tphakala/go-pcm-resampler/internal/pcm"
)

const (
	// CLI defaults
	defaultInputRate  = resampler.RateCD
	defaultOutputRate = resampler.RateFingerprint
	monoChannels      = 1
	stdioPath         = "-"

	// I/O buffer sizes
	ioBufferSize = 64 * 1024
)

// options controls one conversion.
type options struct {
	inputRate  int
	outputRate int
	channels   int
	blockBytes int
	verbose    bool
}

// convertStats summarizes a conversion.
type convertStats struct {
	blocks       int
	inputBytes   int64
	outputBytes  int64
	droppedBytes int
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	inPath := flag.String("in", stdioPath, "Input raw PCM file (- for stdin)")
	outPath := flag.String("out", stdioPath, "Output raw PCM file (- for stdout)")
	from := flag.Int("from", defaultInputRate, "Input sample rate in Hz")
	to := flag.Int("to", defaultOutputRate, "Output sample rate in Hz")
	channels := flag.Int("channels", monoChannels, "Interleaved input channels; more than one is downmixed to mono")
	block := flag.Int("block", 0, "Bytes per bridge call (0 converts the whole input at once)")
	verbose := flag.Bool("v", false, "Verbose output")
	flag.Parse()

	opts := options{
		inputRate:  *from,
		outputRate: *to,
		channels:   *channels,
		blockBytes: *block,
		verbose:    *verbose,
	}

	in, closeIn, err := openInput(*inPath)
	if err != nil {
		return err
	}
	defer closeIn()

	out, closeOut, err := openOutput(*outPath)
	if err != nil {
		return err
	}

	stats, err := convert(bridge.NewRegistry(), in, out, opts)
	if closeErr := closeOut(); err == nil {
		err = closeErr
	}
	if err != nil {
		return err
	}

	if opts.verbose {
		log.Printf("Converted %d bytes -> %d bytes in %d block(s)", stats.inputBytes, stats.outputBytes, stats.blocks)
		if stats.droppedBytes > 0 {
			log.Printf("Dropped %d trailing byte(s) that did not form a whole frame", stats.droppedBytes)
		}
	}

	return nil
}

// convert reads in, resamples it through a bridge handle and writes out.
// Multichannel input is downmixed to mono first.
func convert(reg *bridge.Registry, in io.Reader, out io.Writer, opts options) (*convertStats, error) {
	if opts.channels < monoChannels {
		return nil, fmt.Errorf("channels must be at least %d (got %d)", monoChannels, opts.channels)
	}
	if opts.blockBytes < 0 {
		return nil, fmt.Errorf("block size must not be negative (got %d)", opts.blockBytes)
	}

	h := reg.Create(opts.inputRate, opts.outputRate, opts.blockBytes, monoChannels)
	if h == bridge.InvalidHandle {
		return nil, fmt.Errorf("%w: %d Hz -> %d Hz", resampler.ErrInvalidConfig, opts.inputRate, opts.outputRate)
	}
	defer reg.Destroy(h)

	frameBytes := opts.channels * pcm.BytesPerSample
	stats := &convertStats{}

	// Whole-input mode reads everything and makes a single call.
	if opts.blockBytes == 0 {
		data, err := io.ReadAll(in)
		if err != nil {
			return nil, fmt.Errorf("failed to read input: %w", err)
		}
		return stats, convertBlock(reg, h, data, out, frameBytes, opts.channels, stats)
	}

	block := make([]byte, alignDown(max(opts.blockBytes, frameBytes), frameBytes))
	for {
		n, err := io.ReadFull(in, block)
		if n > 0 {
			if convErr := convertBlock(reg, h, block[:n], out, frameBytes, opts.channels, stats); convErr != nil {
				return nil, convErr
			}
		}
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return stats, nil
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read input: %w", err)
		}
	}
}

// convertBlock downmixes one block if needed, resamples it and writes the
// result.
func convertBlock(reg *bridge.Registry, h bridge.Handle, data []byte, out io.Writer, frameBytes, channels int, stats *convertStats) error {
	whole := alignDown(len(data), frameBytes)
	stats.droppedBytes += len(data) - whole
	stats.inputBytes += int64(len(data))
	data = data[:whole]

	if channels > monoChannels {
		mono := pcm.DownmixToMono(pcm.DecodeLE(data), channels)
		data = make([]byte, resampler.SamplesToBytes(len(mono)))
		pcm.EncodeLE(mono, data)
	}

	output := make([]byte, reg.ExpectedOutputBytes(h, len(data)))
	n := reg.Resample(h, data, output, len(data))
	if n == bridge.ResampleFailed {
		return fmt.Errorf("bridge rejected block %d", stats.blocks)
	}

	if _, err := out.Write(output[:n]); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	stats.blocks++
	stats.outputBytes += int64(n)
	return nil
}

// alignDown rounds n down to a multiple of unit.
func alignDown(n, unit int) int {
	return n - n%unit
}

func openInput(path string) (io.Reader, func(), error) {
	if path == stdioPath {
		return bufio.NewReaderSize(os.Stdin, ioBufferSize), func() {}, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open input file: %w", err)
	}
	return bufio.NewReaderSize(f, ioBufferSize), func() { _ = f.Close() }, nil
}

func openOutput(path string) (io.Writer, func() error, error) {
	if path == stdioPath {
		w := bufio.NewWriterSize(os.Stdout, ioBufferSize)
		return w, w.Flush, nil
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create output file: %w", err)
	}
	w := bufio.NewWriterSize(f, ioBufferSize)
	return w, func() error {
		if err := w.Flush(); err != nil {
			_ = f.Close()
			return err
		}
		return f.Close()
	}, nil
}
