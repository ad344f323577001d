package action

import (
	"fmt"
	"strings"

	"firestige.xyz/callscript/internal/core"
)

// Kind identifies an action variant. The numeric value is shown in dumps.
type Kind int

const (
	KindUnknown Kind = iota
	KindAssignFromRegexp
	KindAssignFromSample
	KindAssignFromValue
	KindAssignFromString
	KindAssignFromIndex
	KindAssignFromTimestamp
	KindAdd
	KindMultiply
	KindDivide
	KindTrim
	KindTest
	KindToDouble
	KindLogToFile
	KindLogWarning
	KindLogError
	KindExecCommand
	KindIntCmd
	KindJump
	KindPauseRestore
	KindPlayPcapAudio
	KindPlayPcapImage
	KindPlayPcapVideo
	KindRTPStreamPlay
	KindRTPStreamPause
	KindRTPStreamResume
)

var kindNames = map[Kind]string{
	KindAssignFromRegexp:    "ereg",
	KindAssignFromSample:    "sample",
	KindAssignFromValue:     "assign",
	KindAssignFromString:    "assignstr",
	KindAssignFromIndex:     "index",
	KindAssignFromTimestamp: "gettimeofday",
	KindAdd:                 "add",
	KindMultiply:            "multiply",
	KindDivide:              "divide",
	KindTrim:                "trim",
	KindTest:                "test",
	KindToDouble:            "todouble",
	KindLogToFile:           "log",
	KindLogWarning:          "warning",
	KindLogError:            "error",
	KindExecCommand:         "exec",
	KindIntCmd:              "intcmd",
	KindJump:                "jump",
	KindPauseRestore:        "pauserestore",
	KindPlayPcapAudio:       "play_pcap_audio",
	KindPlayPcapImage:       "play_pcap_image",
	KindPlayPcapVideo:       "play_pcap_video",
	KindRTPStreamPlay:       "rtp_stream",
	KindRTPStreamPause:      "rtp_stream_pause",
	KindRTPStreamResume:     "rtp_stream_resume",
}

// String returns the configuration name of k.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// ParseKind resolves a configuration type name. rtp_stream always resolves
// to KindRTPStreamPlay; the pause and resume variants are selected by the
// play argument.
func ParseKind(name string) (Kind, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for k, n := range kindNames {
		if n == name && k != KindRTPStreamPause && k != KindRTPStreamResume {
			return k, nil
		}
	}
	return KindUnknown, fmt.Errorf("%w %q", core.ErrUnknownAction, name)
}

// IntCmd is an internal call control command.
type IntCmd int

const (
	IntCmdInvalid IntCmd = iota
	IntCmdStopCall
	IntCmdStopGracefully
	IntCmdStopNow
)

func (c IntCmd) String() string {
	switch c {
	case IntCmdStopCall:
		return "stop_call"
	case IntCmdStopGracefully:
		return "stop_gracefully"
	case IntCmdStopNow:
		return "stop_now"
	default:
		return "invalid"
	}
}

// ParseIntCmd resolves an intcmd name.
func ParseIntCmd(name string) (IntCmd, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "stop_call":
		return IntCmdStopCall, nil
	case "stop_gracefully":
		return IntCmdStopGracefully, nil
	case "stop_now":
		return IntCmdStopNow, nil
	default:
		return IntCmdInvalid, fmt.Errorf("%w: unknown intcmd %q", core.ErrConfigInvalid, name)
	}
}

// MediaKind is the stream a capture replay feeds.
type MediaKind int

const (
	MediaAudio MediaKind = iota
	MediaImage
	MediaVideo
)

func (m MediaKind) String() string {
	switch m {
	case MediaAudio:
		return "audio"
	case MediaImage:
		return "image"
	case MediaVideo:
		return "video"
	default:
		return "unknown"
	}
}

// RTPStreamOp is the rtp_stream operation.
type RTPStreamOp int

const (
	RTPStreamPlay RTPStreamOp = iota
	RTPStreamPause
	RTPStreamResume
)

func (o RTPStreamOp) String() string {
	switch o {
	case RTPStreamPlay:
		return "play"
	case RTPStreamPause:
		return "pause"
	case RTPStreamResume:
		return "resume"
	default:
		return "unknown"
	}
}
