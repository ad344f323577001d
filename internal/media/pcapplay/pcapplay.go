// Package pcapplay loads capture files replayed by play_pcap actions.
package pcapplay

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
	"github.com/google/gopacket/pcapgo"

	"firestige.xyz/callscript/internal/core"
)

// Packet is one UDP datagram of a capture.
type Packet struct {
	Data    []byte
	Offset  time.Duration // since the first UDP packet
	SrcPort uint16
	DstPort uint16
}

// Descriptor is a capture ready to be replayed.
type Descriptor struct {
	File     string
	Packets  []Packet
	MaxLen   int
	Duration time.Duration
}

// Parser turns a play_pcap argument into a descriptor.
type Parser interface {
	Parse(arg string) (*Descriptor, error)
}

// Memo stores parsed descriptors so a capture referenced by several actions
// is read once.
type Memo interface {
	SetParsed(filename string, v any)
	Parsed(filename string) (any, bool)
}

// FileParser reads the argument as the path of a pcap file.
type FileParser struct {
	Memo Memo
}

// NewFileParser creates a parser. memo may be nil.
func NewFileParser(memo Memo) *FileParser {
	return &FileParser{Memo: memo}
}

// Parse implements Parser.
func (p *FileParser) Parse(arg string) (*Descriptor, error) {
	if arg == "" {
		return nil, fmt.Errorf("%w: missing capture file", core.ErrMediaParse)
	}
	if p.Memo != nil {
		if v, ok := p.Memo.Parsed(arg); ok {
			if d, ok := v.(*Descriptor); ok {
				return d, nil
			}
		}
	}

	d, err := ReadFile(arg)
	if err != nil {
		return nil, err
	}
	if p.Memo != nil {
		p.Memo.SetParsed(arg, d)
	}
	return d, nil
}

// ReadFile reads every UDP datagram of the capture at path.
func ReadFile(path string) (*Descriptor, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: cannot open %s: %v", core.ErrMediaParse, path, err)
	}
	defer f.Close()

	d, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", core.ErrMediaParse, path, err)
	}
	d.File = path
	slog.Debug("capture loaded", "file", path, "packets", len(d.Packets), "duration", d.Duration)
	return d, nil
}

// Read decodes a pcap stream. Non-UDP packets are skipped.
func Read(r io.Reader) (*Descriptor, error) {
	reader, err := pcapgo.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("bad capture header: %w", err)
	}

	d := &Descriptor{}
	var base time.Time
	for {
		data, ci, err := reader.ReadPacketData()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read packet: %w", err)
		}

		packet := gopacket.NewPacket(data, reader.LinkType(), gopacket.NoCopy)
		udpLayer := packet.Layer(layers.LayerTypeUDP)
		if udpLayer == nil {
			continue
		}
		udp, _ := udpLayer.(*layers.UDP)

		if len(d.Packets) == 0 {
			base = ci.Timestamp
		}
		payload := make([]byte, len(udp.Payload))
		copy(payload, udp.Payload)

		pkt := Packet{
			Data:    payload,
			Offset:  ci.Timestamp.Sub(base),
			SrcPort: uint16(udp.SrcPort),
			DstPort: uint16(udp.DstPort),
		}
		d.Packets = append(d.Packets, pkt)
		if len(payload) > d.MaxLen {
			d.MaxLen = len(payload)
		}
		if pkt.Offset > d.Duration {
			d.Duration = pkt.Offset
		}
	}

	if len(d.Packets) == 0 {
		return nil, errors.New("no udp packet found")
	}
	return d, nil
}
