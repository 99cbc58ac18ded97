package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	resampler "github.com/tphakala/go-pcm-resampler"
	"github.com/tphakala/go-pcm-resampler/internal/bridge"
	"github.com/tphakala/go-pcm-resampler/internal/pcm"
	"github.com/tphakala/go-pcm-resampler/internal/testutil"
)

func encode(samples []int16) []byte {
	buf := make([]byte, len(samples)*pcm.BytesPerSample)
	pcm.EncodeLE(samples, buf)
	return buf
}

func TestConvert_WholeInput(t *testing.T) {
	samples := testutil.Sine16(4410, 1000, resampler.RateCD, 0.5)
	want, err := resampler.ResampleInt16(samples, resampler.RateCD, resampler.RateFingerprint)
	require.NoError(t, err)

	reg := bridge.NewRegistry()
	var out bytes.Buffer
	stats, err := convert(reg, bytes.NewReader(encode(samples)), &out, options{
		inputRate:  resampler.RateCD,
		outputRate: resampler.RateFingerprint,
		channels:   1,
	})
	require.NoError(t, err)

	assert.Equal(t, 1, stats.blocks)
	assert.Equal(t, int64(2048), stats.outputBytes)
	testutil.AssertSamplesEqual(t, want, pcm.DecodeLE(out.Bytes()))
	assert.Zero(t, reg.Len(), "handle destroyed after conversion")
}

func TestConvert_Blocks(t *testing.T) {
	samples := []int16{0, 100, 200, 300, 400, 500, 600}

	var out bytes.Buffer
	stats, err := convert(bridge.NewRegistry(), bytes.NewReader(encode(samples)), &out, options{
		inputRate:  8000,
		outputRate: 16000,
		channels:   1,
		blockBytes: 6,
	})
	require.NoError(t, err)

	// Blocks of 3, 3 and 1 samples are converted independently.
	assert.Equal(t, 3, stats.blocks)
	assert.Equal(t, []int16{
		0, 40, 80, 120, 160, 200,
		300, 340, 380, 420, 460, 500,
		600, 600,
	}, pcm.DecodeLE(out.Bytes()))
}

func TestConvert_StereoDownmix(t *testing.T) {
	left := []int16{100, 200, 300}
	right := []int16{300, 400, 500}
	interleaved := pcm.Interleave([][]int16{left, right})

	var out bytes.Buffer
	stats, err := convert(bridge.NewRegistry(), bytes.NewReader(append(encode(interleaved), 0x7f)), &out, options{
		inputRate:  8000,
		outputRate: 16000,
		channels:   2,
	})
	require.NoError(t, err)

	assert.Equal(t, 1, stats.droppedBytes)
	assert.Equal(t, []int16{200, 240, 280, 320, 360, 400}, pcm.DecodeLE(out.Bytes()))
}

func TestConvert_EmptyInput(t *testing.T) {
	var out bytes.Buffer
	stats, err := convert(bridge.NewRegistry(), bytes.NewReader(nil), &out, options{
		inputRate:  8000,
		outputRate: 16000,
		channels:   1,
	})
	require.NoError(t, err)
	assert.Zero(t, out.Len())
	assert.Zero(t, stats.outputBytes)
}

func TestConvert_InvalidOptions(t *testing.T) {
	tests := []struct {
		name string
		opts options
	}{
		{"zero input rate", options{inputRate: 0, outputRate: 16000, channels: 1}},
		{"negative output rate", options{inputRate: 8000, outputRate: -1, channels: 1}},
		{"zero channels", options{inputRate: 8000, outputRate: 16000, channels: 0}},
		{"negative block", options{inputRate: 8000, outputRate: 16000, channels: 1, blockBytes: -2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg := bridge.NewRegistry()
			_, err := convert(reg, bytes.NewReader(encode([]int16{1, 2})), &bytes.Buffer{}, tt.opts)
			require.Error(t, err)
			assert.Zero(t, reg.Len())
		})
	}
}

func TestAlignDown(t *testing.T) {
	assert.Equal(t, 8, alignDown(9, 2))
	assert.Equal(t, 8, alignDown(8, 4))
	assert.Equal(t, 0, alignDown(3, 4))
}
