package rtpstream

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"firestige.xyz/callscript/internal/core"
)

type fakeCache struct {
	files []string
	err   error
}

func (c *fakeCache) Cache(filename string) error {
	c.files = append(c.files, filename)
	return c.err
}

type mockCacher struct {
	mock.Mock
}

func (m *mockCacher) Cache(filename string) error {
	return m.Called(filename).Error(0)
}

func TestParseFullArgument(t *testing.T) {
	cache := new(mockCacher)
	cache.On("Cache", "voice.rtp").Return(nil).Once()

	d, err := Parse("voice.rtp,3,8", Config{DefaultPayloadType: 0}, cache)
	require.NoError(t, err)

	assert.Equal(t, "voice.rtp", d.Filename)
	assert.Equal(t, 3, d.LoopCount)
	assert.Equal(t, 8, d.PayloadType)
	assert.Equal(t, 20, d.MsPerPacket)
	assert.Equal(t, 160, d.BytesPerPacket)
	assert.Equal(t, 160, d.TicksPerPacket)
	cache.AssertExpectations(t)
}

func TestParseDefaults(t *testing.T) {
	tests := []struct {
		name       string
		defaultPT  int
		wantTiming Timing
	}{
		{"pcmu", PayloadPCMU, Timing{20, 160, 160}},
		{"pcma", PayloadPCMA, Timing{20, 160, 160}},
		{"g729", PayloadG729, Timing{20, 20, 160}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := Parse("voice.rtp", Config{DefaultPayloadType: tt.defaultPT}, &fakeCache{})
			require.NoError(t, err)
			assert.Equal(t, 1, d.LoopCount)
			assert.Equal(t, tt.defaultPT, d.PayloadType)
			assert.Equal(t, tt.wantTiming, d.Timing)
		})
	}
}

func TestParseLoopCountQuirks(t *testing.T) {
	tests := []struct {
		value string
		loop  int
	}{
		{"f.rtp,abc", 0},
		{"f.rtp,", 0},
		{"f.rtp, 7", 7},
		{"f.rtp,5x", 5},
		{"f.rtp,-1", -1},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			d, err := Parse(tt.value, Config{}, nil)
			require.NoError(t, err)
			assert.Equal(t, "f.rtp", d.Filename)
			assert.Equal(t, tt.loop, d.LoopCount)
		})
	}
}

func TestParseIgnoresExtraFields(t *testing.T) {
	d, err := Parse("f.rtp,2,18,extra", Config{}, nil)
	require.NoError(t, err)
	assert.Equal(t, 18, d.PayloadType)
	assert.Equal(t, 20, d.BytesPerPacket)
}

func TestParseUnknownPayloadType(t *testing.T) {
	cache := &fakeCache{}
	d, err := Parse("voice.rtp,1,99", Config{}, cache)

	assert.Nil(t, d)
	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrUnknownPayloadType))
	assert.Contains(t, err.Error(), "99")
	assert.Empty(t, cache.files, "rejected descriptors must not be cached")

	timing, err := TimingFor(99)
	assert.Error(t, err)
	assert.Equal(t, Timing{-1, -1, -1}, timing)
}

func TestParseFilenameTooLong(t *testing.T) {
	value := strings.Repeat("a", DefaultMaxFilenameLen+1)
	_, err := Parse(value, Config{}, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrFilenameTooLong))
	assert.Contains(t, err.Error(), "255")

	_, err = Parse(strings.Repeat("a", DefaultMaxFilenameLen), Config{}, nil)
	assert.NoError(t, err)

	_, err = Parse("abcdefghijk", Config{MaxFilenameLen: 10}, nil)
	assert.True(t, errors.Is(err, core.ErrFilenameTooLong))
}

func TestParseCacheFailure(t *testing.T) {
	cache := new(mockCacher)
	cache.On("Cache", "missing.rtp").Return(errors.New("no such file"))

	_, err := Parse("missing.rtp,1,8", Config{}, cache)
	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrMediaCache))
	assert.Contains(t, err.Error(), "missing.rtp")
	cache.AssertExpectations(t)
}

func TestCloneIsIdentical(t *testing.T) {
	src, err := Parse("voice.rtp,3,18", Config{}, nil)
	require.NoError(t, err)

	c := src.Clone()
	assert.Equal(t, *src, *c)
	assert.NotSame(t, src, c)

	c.LoopCount = 9
	assert.Equal(t, 3, src.LoopCount)
}

func TestDescriptorString(t *testing.T) {
	d, err := Parse("voice.rtp,3,8", Config{}, nil)
	require.NoError(t, err)
	assert.Equal(t, "file voice.rtp loop=3 payload 8 bytes per packet=160 ms per packet=20 ticks per packet=160", d.String())
}
