// Package bridge exposes resamplers to byte-oriented hosts through opaque
// numeric handles.
//
// Hosts that cannot hold Go values (foreign runtimes, C callers, scripting
// layers) create a resampler, receive a Handle, and pass little-endian
// 16-bit PCM byte buffers to Resample. Lengths on this boundary are byte
// counts; the conversion to sample counts happens here.
package bridge

import (
	"sync"

	resampler "github.com/tphakala/go-pcm-resampler"
	"github.com/tphakala/go-pcm-resampler/internal/pcm"
)

// Handle identifies a resampler owned by a Registry. Zero is never valid.
type Handle int64

// InvalidHandle is returned by Create when the configuration is rejected.
const InvalidHandle Handle = 0

// ResampleFailed is returned by Resample for an unknown handle or a
// missing buffer.
const ResampleFailed = -1

// entry pairs a resampler with its reusable sample scratch buffers.
type entry struct {
	r      *resampler.Resampler
	input  []int16
	output []int16
}

// Registry owns the resamplers created through the bridge.
// It is safe for concurrent use; calls on the same handle are serialized.
type Registry struct {
	mu      sync.Mutex
	next    Handle
	entries map[Handle]*entry
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[Handle]*entry)}
}

// Create configures a new resampler and returns its handle, or
// InvalidHandle if any rate or the channel count is not positive.
//
// The third argument is a buffer size, accepted for compatibility with
// hosts written against chunked resamplers and ignored.
func (reg *Registry) Create(inputRate, outputRate, _, channels int) Handle {
	r := resampler.NewResampler()
	if err := r.Configure(inputRate, outputRate, channels); err != nil {
		return InvalidHandle
	}

	reg.mu.Lock()
	defer reg.mu.Unlock()

	reg.next++
	h := reg.next
	reg.entries[h] = &entry{r: r}

	return h
}

// Resample converts inputLength bytes of input into output and returns
// the number of bytes written, or ResampleFailed if the handle is unknown
// or a buffer is nil.
//
// inputLength is clamped to len(input). Byte counts are halved to sample
// counts, so a trailing odd byte is ignored; the output capacity is
// len(output)/2 samples.
func (reg *Registry) Resample(h Handle, input, output []byte, inputLength int) int {
	if h == InvalidHandle || input == nil || output == nil {
		return ResampleFailed
	}

	reg.mu.Lock()
	defer reg.mu.Unlock()

	e, ok := reg.entries[h]
	if !ok {
		return ResampleFailed
	}

	inputLength = max(0, min(inputLength, len(input)))
	inputSamples := resampler.BytesToSamples(inputLength)
	capacitySamples := resampler.BytesToSamples(len(output))

	e.input = grow(e.input, inputSamples)
	e.output = grow(e.output, capacitySamples)

	pcm.DecodeLEInto(e.input, input[:inputLength])
	n := e.r.Resample(e.input, e.output)

	return pcm.EncodeLE(e.output[:n], output)
}

// ExpectedOutputBytes returns the byte size of the full output for
// inputLength bytes of input, or ResampleFailed for an unknown handle.
func (reg *Registry) ExpectedOutputBytes(h Handle, inputLength int) int {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	e, ok := reg.entries[h]
	if !ok {
		return ResampleFailed
	}

	samples := e.r.ExpectedOutputLength(resampler.BytesToSamples(inputLength))
	return resampler.SamplesToBytes(samples)
}

// Destroy resets and forgets the resampler behind h.
// Unknown handles and InvalidHandle are ignored.
func (reg *Registry) Destroy(h Handle) {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	e, ok := reg.entries[h]
	if !ok {
		return
	}

	e.r.Reset()
	delete(reg.entries, h)
}

// Len returns the number of live handles.
func (reg *Registry) Len() int {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	return len(reg.entries)
}

// grow returns buf resized to n samples, reallocating only when the
// capacity is insufficient. A zero-length result is non-nil.
func grow(buf []int16, n int) []int16 {
	if cap(buf) < n || buf == nil {
		return make([]int16, n)
	}
	return buf[:n]
}
