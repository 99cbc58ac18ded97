package resampler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tphakala/go-pcm-resampler/internal/testutil"
)

func TestResampleInt16(t *testing.T) {
	input := testutil.Sine16(RateCD/10, 1000, RateCD, 0.8)

	output, err := ResampleInt16(input, RateCD, RateFingerprint)
	require.NoError(t, err)
	assert.Len(t, output, 1024)
	assert.Equal(t, input[0], output[0])
	assert.Equal(t, input[len(input)-1], output[len(output)-1])
}

func TestResampleInt16_EmptyInput(t *testing.T) {
	output, err := ResampleInt16(nil, RateCD, RateVoIP)
	require.NoError(t, err)
	assert.Empty(t, output)
}

func TestResampleInt16_InvalidRates(t *testing.T) {
	_, err := ResampleInt16([]int16{1, 2, 3}, 0, RateVoIP)
	require.ErrorIs(t, err, ErrInvalidConfig)

	_, err = ResampleInt16([]int16{1, 2, 3}, RateVoIP, -1)
	require.ErrorIs(t, err, ErrInvalidConfig)
}

func TestNewForFingerprint(t *testing.T) {
	r, err := NewForFingerprint(RateCD)
	require.NoError(t, err)

	assert.Equal(t, RateCD, r.InputRate())
	assert.Equal(t, RateFingerprint, r.OutputRate())
	assert.Equal(t, 1, r.Channels())
	assert.InDelta(t, float64(RateFingerprint)/float64(RateCD), r.GetRatio(), testutil.DefaultTolerance)

	_, err = NewForFingerprint(0)
	require.ErrorIs(t, err, ErrInvalidConfig)
}

func TestSampleByteConversion(t *testing.T) {
	assert.Equal(t, 0, SamplesToBytes(0))
	assert.Equal(t, 2048, SamplesToBytes(1024))
	assert.Equal(t, 1024, BytesToSamples(2048))
	assert.Equal(t, 1024, BytesToSamples(2049), "partial trailing sample is dropped")
	assert.Equal(t, 0, BytesToSamples(1))
}
