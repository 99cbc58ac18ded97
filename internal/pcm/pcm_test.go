package pcm

import (
	"testing"

	"github.com/go-audio/audio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromInts_Saturates(t *testing.T) {
	got := FromInts([]int{0, 1, -1, 32767, -32768, 40000, -40000})
	assert.Equal(t, []int16{0, 1, -1, 32767, -32768, 32767, -32768}, got)
}

func TestIntBufferRoundTrip(t *testing.T) {
	samples := []int16{-32768, -1, 0, 1, 32767, 1234}

	buf := ToIntBuffer(samples, 2, 44100)
	require.NotNil(t, buf.Format)
	assert.Equal(t, 2, buf.Format.NumChannels)
	assert.Equal(t, 44100, buf.Format.SampleRate)
	assert.Equal(t, BitDepth, buf.SourceBitDepth)
	assert.Equal(t, 3, buf.NumFrames())

	assert.Equal(t, samples, FromIntBuffer(buf))
	assert.Nil(t, FromIntBuffer((*audio.IntBuffer)(nil)))
}

func TestDeinterleave(t *testing.T) {
	data := []int16{1, 10, 2, 20, 3, 30, 4}

	got := Deinterleave(data, 2)
	require.Len(t, got, 2)
	assert.Equal(t, []int16{1, 2, 3}, got[0])
	assert.Equal(t, []int16{10, 20, 30}, got[1])

	assert.Nil(t, Deinterleave(data, 0))
}

func TestInterleave(t *testing.T) {
	got := Interleave([][]int16{{1, 2, 3}, {10, 20}})
	assert.Equal(t, []int16{1, 10, 2, 20}, got)

	assert.Nil(t, Interleave(nil))
}

func TestInterleave_InvertsDeinterleave(t *testing.T) {
	data := []int16{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}
	for _, channels := range []int{1, 2, 3, 4, 6} {
		assert.Equal(t, data, Interleave(Deinterleave(data, channels)), "channels=%d", channels)
	}
}

func TestDownmixToMono(t *testing.T) {
	tests := []struct {
		name     string
		data     []int16
		channels int
		want     []int16
	}{
		{"stereo", []int16{100, 200, -100, -300, 32767, 32767}, 2, []int16{150, -200, 32767}},
		{"mono copy", []int16{1, 2, 3}, 1, []int16{1, 2, 3}},
		{"extremes do not overflow", []int16{-32768, -32768, 32767, -32768}, 2, []int16{-32768, 0}},
		{"partial frame dropped", []int16{10, 20, 30}, 2, []int16{15}},
		{"invalid channels", []int16{1, 2}, 0, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DownmixToMono(tt.data, tt.channels))
		})
	}
}

func TestToFloat64(t *testing.T) {
	got := ToFloat64([]int16{0, -32768, 16384})
	assert.InDeltaSlice(t, []float64{0, -1, 0.5}, got, 1e-12)
}

func TestLittleEndianRoundTrip(t *testing.T) {
	samples := []int16{0, 1, -1, 256, -32768, 32767}

	buf := make([]byte, len(samples)*BytesPerSample)
	n := EncodeLE(samples, buf)
	require.Equal(t, len(buf), n)

	assert.Equal(t, []byte{0x00, 0x00, 0x01, 0x00, 0xff, 0xff, 0x00, 0x01, 0x00, 0x80, 0xff, 0x7f}, buf)
	assert.Equal(t, samples, DecodeLE(buf))
}

func TestDecodeLE_OddLength(t *testing.T) {
	assert.Equal(t, []int16{0x0201}, DecodeLE([]byte{0x01, 0x02, 0x03}))
}

func TestEncodeLE_ShortDestination(t *testing.T) {
	dst := make([]byte, 3)
	n := EncodeLE([]int16{1, 2}, dst)
	assert.Equal(t, 2, n)
	assert.Equal(t, []byte{0x01, 0x00, 0x00}, dst)
}
