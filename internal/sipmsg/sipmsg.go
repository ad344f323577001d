// Package sipmsg selects the part of a SIP message a regular expression is
// applied to.
package sipmsg

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/ghettovoice/gosip/sip"
	"github.com/ghettovoice/gosip/sip/parser"

	"firestige.xyz/callscript/internal/core"
	"firestige.xyz/callscript/internal/log"
)

// Region is a search area of a message.
type Region int

const (
	// RegionMessage is the whole message text.
	RegionMessage Region = iota
	// RegionHeader is the value of one named header.
	RegionHeader
	// RegionBody is the message body.
	RegionBody
)

func (r Region) String() string {
	switch r {
	case RegionMessage:
		return "msg"
	case RegionHeader:
		return "hdr"
	case RegionBody:
		return "body"
	default:
		return "unknown"
	}
}

// ParseRegion converts a search_in name. An empty name selects the whole
// message.
func ParseRegion(name string) (Region, error) {
	switch strings.ToLower(name) {
	case "", "msg":
		return RegionMessage, nil
	case "hdr":
		return RegionHeader, nil
	case "body":
		return RegionBody, nil
	default:
		return RegionMessage, fmt.Errorf("%w: unknown search_in value %q", core.ErrConfigInvalid, name)
	}
}

// HeaderName normalizes a configured header name: surrounding blanks and a
// trailing colon are dropped.
func HeaderName(name string) string {
	return strings.TrimSuffix(strings.TrimSpace(name), ":")
}

// Selector extracts regions with the gosip packet parser. It is safe for
// concurrent use.
type Selector struct {
	mu     sync.Mutex
	parser *parser.PacketParser
}

// NewSelector creates a selector logging parse problems through the sip
// logger.
func NewSelector() *Selector {
	return &Selector{
		parser: parser.NewPacketParser(log.NewSIPLogger()),
	}
}

// Select returns the requested region of raw. Bare LF line endings in the
// start line and headers are accepted. Messages that cannot be parsed yield
// an empty header or body region.
func (s *Selector) Select(raw string, region Region, header string) string {
	if region == RegionMessage {
		return raw
	}

	msg, err := s.parse(raw)
	if err != nil {
		slog.Warn("sip message not parsed, region is empty", "region", region.String(), "error", err)
		return ""
	}

	if region == RegionBody {
		return msg.Body()
	}
	return HeaderValue(msg, header)
}

func (s *Selector) parse(raw string) (sip.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.parser.ParseMessage([]byte(crlf(raw)))
}

// crlf rewrites bare LF line endings of the start line and headers to CRLF.
// The body is kept verbatim.
func crlf(raw string) string {
	head, body, found := strings.Cut(raw, "\n\n")
	if strings.Contains(head, "\r") {
		return raw
	}
	head = strings.ReplaceAll(head, "\n", "\r\n")
	if !found {
		return head
	}
	return head + "\r\n\r\n" + body
}

// HeaderValue joins the values of every occurrence of name with ", ".
func HeaderValue(msg sip.Message, name string) string {
	headers := msg.GetHeaders(HeaderName(name))
	if len(headers) == 0 {
		return ""
	}
	values := make([]string, 0, len(headers))
	for _, h := range headers {
		values = append(values, h.Value())
	}
	return strings.Join(values, ", ")
}
