package main

import (
	"fmt"
	"log"
	"os"
	"sync"

	"github.com/go-audio/wav"

	resampler "github.com/tphakala/go-pcm-resampler"
	"github.com/tphakala/go-pcm-resampler/internal/pcm"
)

const (
	// Channel count constants
	monoChannels = 1

	// WAV format constants
	wavFormatPCM = 1
)

// resampleStats summarizes one converted file.
type resampleStats struct {
	inputRate      int
	outputRate     int
	inputChannels  int
	outputChannels int
	inputFrames    int
	outputFrames   int
}

// wavInputInfo holds validated input file information.
type wavInputInfo struct {
	file     *os.File
	decoder  *wav.Decoder
	rate     int
	channels int
	bitDepth int
}

// openWAVInput opens and validates a WAV file, returning format information.
func openWAVInput(path string, verbose bool) (*wavInputInfo, error) {
	inputFile, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}

	decoder := wav.NewDecoder(inputFile)
	if !decoder.IsValidFile() {
		_ = inputFile.Close()
		return nil, fmt.Errorf("invalid WAV file: %s", path)
	}

	format := decoder.Format()
	info := &wavInputInfo{
		file:     inputFile,
		decoder:  decoder,
		rate:     format.SampleRate,
		channels: format.NumChannels,
		bitDepth: int(decoder.BitDepth),
	}

	if verbose {
		log.Printf("Input format: %d Hz, %d channels, %d-bit", info.rate, info.channels, info.bitDepth)
	}

	if info.bitDepth != pcm.BitDepth {
		_ = inputFile.Close()
		return nil, fmt.Errorf("unsupported bit depth %d: only %d-bit PCM is supported", info.bitDepth, pcm.BitDepth)
	}

	return info, nil
}

// Close closes the input file.
func (w *wavInputInfo) Close() error {
	return w.file.Close()
}

// readSamples decodes the whole file as interleaved int16 samples.
func (w *wavInputInfo) readSamples() ([]int16, error) {
	buf, err := w.decoder.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to read audio data: %w", err)
	}
	return pcm.FromIntBuffer(buf), nil
}

// wavOutputWriter wraps the output file and its encoder.
type wavOutputWriter struct {
	file     *os.File
	encoder  *wav.Encoder
	rate     int
	channels int
}

// createWAVOutput creates the output file and a 16-bit PCM encoder.
func createWAVOutput(path string, sampleRate, channels int) (*wavOutputWriter, error) {
	outputFile, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file: %w", err)
	}

	return &wavOutputWriter{
		file:     outputFile,
		encoder:  wav.NewEncoder(outputFile, sampleRate, pcm.BitDepth, channels, wavFormatPCM),
		rate:     sampleRate,
		channels: channels,
	}, nil
}

// WriteSamples writes interleaved samples to the output file.
func (w *wavOutputWriter) WriteSamples(samples []int16) error {
	if err := w.encoder.Write(pcm.ToIntBuffer(samples, w.channels, w.rate)); err != nil {
		return fmt.Errorf("failed to write audio data: %w", err)
	}
	return nil
}

// Close finalizes the WAV header and closes the file.
func (w *wavOutputWriter) Close() error {
	if err := w.encoder.Close(); err != nil {
		_ = w.file.Close()
		return fmt.Errorf("failed to finalize WAV file: %w", err)
	}
	return w.file.Close()
}

// resampleWAV converts inputPath to opts.targetRate and writes outputPath.
func resampleWAV(inputPath, outputPath string, opts options) (stats *resampleStats, err error) {
	// 1. Open and validate input
	input, err := openWAVInput(inputPath, opts.verbose)
	if err != nil {
		return nil, err
	}
	defer func() { _ = input.Close() }()

	if input.rate == opts.targetRate {
		return nil, fmt.Errorf("input already at target rate %d Hz", opts.targetRate)
	}

	// 2. Read and arrange samples
	samples, err := input.readSamples()
	if err != nil {
		return nil, err
	}

	channels := input.channels
	if opts.mono && channels > monoChannels {
		samples = pcm.DownmixToMono(samples, channels)
		channels = monoChannels
	}
	channelData := pcm.Deinterleave(samples, channels)

	// 3. Resample every channel with one shared resampler
	r, err := resampler.New(&resampler.Config{
		InputRate:  input.rate,
		OutputRate: opts.targetRate,
		Channels:   channels,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create resampler: %w", err)
	}

	resampled, err := resampleChannelData(r, channelData, opts.parallel)
	if err != nil {
		return nil, err
	}

	// 4. Write output
	output, err := createWAVOutput(outputPath, opts.targetRate, channels)
	if err != nil {
		return nil, err
	}
	// Close output, capturing close errors on success path (the header is written on close)
	defer func() {
		if closeErr := output.Close(); err == nil {
			err = closeErr
		}
	}()

	if err := output.WriteSamples(pcm.Interleave(resampled)); err != nil {
		return nil, err
	}

	stats = &resampleStats{
		inputRate:      input.rate,
		outputRate:     opts.targetRate,
		inputChannels:  input.channels,
		outputChannels: channels,
	}
	if len(channelData) > 0 {
		stats.inputFrames = len(channelData[0])
		stats.outputFrames = len(resampled[0])
	}

	return stats, nil
}

// resampleChannelData resamples each channel with r.
// Handles both parallel and sequential modes.
func resampleChannelData(r *resampler.Resampler, channelData [][]int16, parallel bool) ([][]int16, error) {
	if parallel && len(channelData) > 1 {
		return resampleParallel(r, channelData)
	}
	return resampleSequential(r, channelData)
}

// resampleParallel processes channels concurrently. Resample does not
// modify r, so the goroutines share it.
func resampleParallel(r *resampler.Resampler, channelData [][]int16) ([][]int16, error) {
	resampled := make([][]int16, len(channelData))
	errs := make([]error, len(channelData))
	var wg sync.WaitGroup

	for ch := range channelData {
		wg.Add(1)
		go func(channel int) {
			defer wg.Done()
			resampled[channel], errs[channel] = resampleChannel(r, channelData[channel], channel)
		}(ch)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return resampled, nil
}

// resampleSequential processes channels one by one.
func resampleSequential(r *resampler.Resampler, channelData [][]int16) ([][]int16, error) {
	resampled := make([][]int16, len(channelData))
	for ch, data := range channelData {
		out, err := resampleChannel(r, data, ch)
		if err != nil {
			return nil, err
		}
		resampled[ch] = out
	}
	return resampled, nil
}

// resampleChannel resamples one full channel.
func resampleChannel(r *resampler.Resampler, data []int16, channel int) ([]int16, error) {
	out := make([]int16, r.ExpectedOutputLength(len(data)))
	if n := r.Resample(data, out); n != len(out) {
		return nil, fmt.Errorf("resampling failed on channel %d: wrote %d of %d samples", channel, n, len(out))
	}
	return out, nil
}
