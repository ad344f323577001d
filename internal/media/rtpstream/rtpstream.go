// Package rtpstream parses rtp_stream action arguments into playback
// descriptors.
//
// The argument grammar is "filename[,loop_count[,payload_type]]". The
// payload type selects a fixed packet timing; there is no generic fallback
// because RTP pacing must be exact.
package rtpstream

import (
	"fmt"
	"strings"

	"firestige.xyz/callscript/internal/core"
)

// DefaultMaxFilenameLen is the longest accepted argument, in bytes.
const DefaultMaxFilenameLen = 255

// Payload types with known playback parameters.
const (
	PayloadPCMU = 0
	PayloadPCMA = 8
	PayloadG729 = 18
)

// Timing is the per-packet playback parameter triple. It is always assigned
// as a whole.
type Timing struct {
	MsPerPacket    int
	BytesPerPacket int
	TicksPerPacket int
}

// poisoned marks a descriptor whose payload type was rejected.
var poisoned = Timing{MsPerPacket: -1, BytesPerPacket: -1, TicksPerPacket: -1}

var timings = map[int]Timing{
	PayloadPCMU: {MsPerPacket: 20, BytesPerPacket: 160, TicksPerPacket: 160},
	PayloadPCMA: {MsPerPacket: 20, BytesPerPacket: 160, TicksPerPacket: 160},
	PayloadG729: {MsPerPacket: 20, BytesPerPacket: 20, TicksPerPacket: 160},
}

// TimingFor returns the playback parameters of payloadType. Unknown types
// yield the poisoned triple and ErrUnknownPayloadType.
func TimingFor(payloadType int) (Timing, error) {
	t, ok := timings[payloadType]
	if !ok {
		return poisoned, fmt.Errorf("%w %d - cannot set playback parameters", core.ErrUnknownPayloadType, payloadType)
	}
	return t, nil
}

// Cacher validates and caches a media file ahead of playback.
type Cacher interface {
	Cache(filename string) error
}

// Config holds the process wide rtp_stream settings.
type Config struct {
	DefaultPayloadType int
	MaxFilenameLen     int
}

// Descriptor is a validated rtp_stream playback request.
type Descriptor struct {
	Filename    string
	LoopCount   int
	PayloadType int
	Timing
}

// Parse validates value and asks cache to load the referenced file. A nil
// cache skips the caching step.
func Parse(value string, cfg Config, cache Cacher) (*Descriptor, error) {
	maxLen := cfg.MaxFilenameLen
	if maxLen <= 0 {
		maxLen = DefaultMaxFilenameLen
	}
	if len(value) > maxLen {
		return nil, fmt.Errorf("%w: filename %s is too long, maximum supported length %d", core.ErrFilenameTooLong, value, maxLen)
	}

	d := &Descriptor{
		LoopCount:   1,
		PayloadType: cfg.DefaultPayloadType,
	}

	fields := strings.SplitN(value, ",", 4)
	d.Filename = fields[0]
	if len(fields) > 1 {
		d.LoopCount = atoi(fields[1])
	}
	if len(fields) > 2 {
		d.PayloadType = atoi(fields[2])
	}

	timing, err := TimingFor(d.PayloadType)
	d.Timing = timing
	if err != nil {
		return nil, err
	}

	if cache != nil {
		if err := cache.Cache(d.Filename); err != nil {
			return nil, fmt.Errorf("%w %s: %v", core.ErrMediaCache, d.Filename, err)
		}
	}
	return d, nil
}

// Clone returns a verbatim copy of d without any validation.
func (d *Descriptor) Clone() *Descriptor {
	c := *d
	return &c
}

func (d *Descriptor) String() string {
	return fmt.Sprintf("file %s loop=%d payload %d bytes per packet=%d ms per packet=%d ticks per packet=%d",
		d.Filename, d.LoopCount, d.PayloadType, d.BytesPerPacket, d.MsPerPacket, d.TicksPerPacket)
}

// atoi converts the leading decimal number of s, skipping leading
// whitespace and accepting one sign. Text without digits yields 0.
func atoi(s string) int {
	i := 0
	for i < len(s) && (s[i] == ' ' || (s[i] >= '\t' && s[i] <= '\r')) {
		i++
	}
	neg := false
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		neg = s[i] == '-'
		i++
	}
	n := 0
	for ; i < len(s) && s[i] >= '0' && s[i] <= '9'; i++ {
		n = n*10 + int(s[i]-'0')
	}
	if neg {
		return -n
	}
	return n
}
