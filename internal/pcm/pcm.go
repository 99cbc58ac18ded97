// Package pcm converts 16-bit PCM between the layouts used around the
// resampler: go-audio int buffers, little-endian byte streams, planar
// channels and normalized floats.
package pcm

import (
	"encoding/binary"
	"math"

	"github.com/go-audio/audio"
)

// Sample format constants
const (
	BytesPerSample = 2  // 16-bit PCM
	BitDepth       = 16 // Bits per sample

	maxInt16 = math.MaxInt16
	minInt16 = math.MinInt16

	// fullScale normalizes int16 samples to [-1.0, 1.0).
	fullScale = 32768.0
)

// FromInts converts int samples (as stored in an audio.IntBuffer) to int16,
// saturating values outside the int16 range.
func FromInts(data []int) []int16 {
	out := make([]int16, len(data))
	for i, v := range data {
		out[i] = saturate(v)
	}
	return out
}

// ToInts converts int16 samples to ints for an audio.IntBuffer.
func ToInts(samples []int16) []int {
	out := make([]int, len(samples))
	for i, s := range samples {
		out[i] = int(s)
	}
	return out
}

// FromIntBuffer extracts the interleaved samples of buf as int16.
func FromIntBuffer(buf *audio.IntBuffer) []int16 {
	if buf == nil {
		return nil
	}
	return FromInts(buf.Data)
}

// ToIntBuffer wraps interleaved int16 samples in a 16-bit audio.IntBuffer.
func ToIntBuffer(samples []int16, channels, sampleRate int) *audio.IntBuffer {
	return &audio.IntBuffer{
		Format: &audio.Format{
			NumChannels: channels,
			SampleRate:  sampleRate,
		},
		Data:           ToInts(samples),
		SourceBitDepth: BitDepth,
	}
}

// Deinterleave splits interleaved samples into one slice per channel.
// Trailing samples that do not form a whole frame are dropped.
func Deinterleave(data []int16, channels int) [][]int16 {
	if channels <= 0 {
		return nil
	}

	frames := len(data) / channels
	out := make([][]int16, channels)
	for ch := range channels {
		out[ch] = make([]int16, frames)
	}

	for i := range frames {
		base := i * channels
		for ch := range channels {
			out[ch][i] = data[base+ch]
		}
	}

	return out
}

// Interleave merges per-channel slices into one interleaved slice.
// The shortest channel determines the frame count.
func Interleave(channels [][]int16) []int16 {
	if len(channels) == 0 {
		return nil
	}

	frames := len(channels[0])
	for _, ch := range channels[1:] {
		frames = min(frames, len(ch))
	}

	numChannels := len(channels)
	out := make([]int16, frames*numChannels)
	for i := range frames {
		base := i * numChannels
		for ch := range numChannels {
			out[base+ch] = channels[ch][i]
		}
	}

	return out
}

// DownmixToMono averages the channels of each interleaved frame.
// Mono input is returned as a copy.
func DownmixToMono(data []int16, channels int) []int16 {
	if channels <= 0 {
		return nil
	}

	frames := len(data) / channels
	out := make([]int16, frames)
	for i := range frames {
		var sum int
		for _, s := range data[i*channels : (i+1)*channels] {
			sum += int(s)
		}
		out[i] = int16(sum / channels)
	}

	return out
}

// ToFloat64 normalizes int16 samples to [-1.0, 1.0).
func ToFloat64(samples []int16) []float64 {
	out := make([]float64, len(samples))
	for i, s := range samples {
		out[i] = float64(s) / fullScale
	}
	return out
}

// DecodeLE decodes little-endian 16-bit PCM. A trailing odd byte is ignored.
func DecodeLE(data []byte) []int16 {
	out := make([]int16, len(data)/BytesPerSample)
	DecodeLEInto(out, data)
	return out
}

// DecodeLEInto decodes little-endian 16-bit PCM from src into dst and
// returns the number of samples decoded.
func DecodeLEInto(dst []int16, src []byte) int {
	n := min(len(dst), len(src)/BytesPerSample)
	for i := range n {
		dst[i] = int16(binary.LittleEndian.Uint16(src[i*BytesPerSample:]))
	}
	return n
}

// EncodeLE encodes samples as little-endian 16-bit PCM into dst and returns
// the number of bytes written. Encoding stops when dst is full.
func EncodeLE(samples []int16, dst []byte) int {
	n := min(len(samples), len(dst)/BytesPerSample)
	for i := range n {
		binary.LittleEndian.PutUint16(dst[i*BytesPerSample:], uint16(samples[i]))
	}
	return n * BytesPerSample
}

func saturate(v int) int16 {
	switch {
	case v > maxInt16:
		return maxInt16
	case v < minInt16:
		return minInt16
	default:
		return int16(v)
	}
}
