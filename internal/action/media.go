package action

import (
	"firestige.xyz/callscript/internal/media/pcapplay"
	"firestige.xyz/callscript/internal/media/rtpstream"
)

// PlayPcap replays a capture on one media stream.
type PlayPcap struct {
	Media      MediaKind
	Descriptor *pcapplay.Descriptor
}

func (a *PlayPcap) Kind() Kind {
	switch a.Media {
	case MediaImage:
		return KindPlayPcapImage
	case MediaVideo:
		return KindPlayPcapVideo
	default:
		return KindPlayPcapAudio
	}
}

func (a *PlayPcap) Execute(*Env) (Result, error) {
	return Result{Effect: PlayPcapEffect{Media: a.Media, Descriptor: a.Descriptor}}, nil
}

// RTPStream controls the RTP streamer. Descriptor is set for play only.
type RTPStream struct {
	Op         RTPStreamOp
	Descriptor *rtpstream.Descriptor
}

func (a *RTPStream) Kind() Kind {
	switch a.Op {
	case RTPStreamPause:
		return KindRTPStreamPause
	case RTPStreamResume:
		return KindRTPStreamResume
	default:
		return KindRTPStreamPlay
	}
}

func (a *RTPStream) Execute(*Env) (Result, error) {
	return Result{Effect: RTPStreamEffect{Op: a.Op, Descriptor: a.Descriptor}}, nil
}
