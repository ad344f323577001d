package action

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"firestige.xyz/callscript/internal/extract"
	"firestige.xyz/callscript/internal/media/pcapplay"
	"firestige.xyz/callscript/internal/media/rtpstream"
	"firestige.xyz/callscript/internal/sample"
	"firestige.xyz/callscript/internal/sipmsg"
	"firestige.xyz/callscript/pkg/variable"
)

type unknownAction struct{}

func (unknownAction) Kind() Kind                   { return Kind(99) }
func (unknownAction) Execute(*Env) (Result, error) { return Result{}, nil }

type brokenAction struct{}

func (brokenAction) Kind() Kind                   { panic("kind not set") }
func (brokenAction) Execute(*Env) (Result, error) { return Result{}, nil }

func TestDescribe(t *testing.T) {
	names := variable.NewNames()
	callID := names.Find("call_id", true)
	counter := names.Find("counter", true)
	start := names.Find("start", true)
	usec := names.Find("usec", true)

	long := strings.Repeat("x", 40)

	tests := []struct {
		name   string
		action Action
		want   string
	}{
		{
			"regexp full message",
			&AssignFromRegexp{Extractor: extract.Extractor{Pattern: extract.MustCompile("Call-ID: (.*)"), VarID: callID}, CheckIt: true},
			"Type[1] - regexp[Call-ID: (.*)] where[Full Msg] - checkIt[1] - checkItInverse[0] - $call_id",
		},
		{
			"regexp header",
			&AssignFromRegexp{Extractor: extract.Extractor{Pattern: extract.MustCompile(".*"), VarID: callID}, Region: sipmsg.RegionHeader, Header: "Call-ID:", CheckItInverse: true},
			"Type[1] - regexp[.*] where[Header-Call-ID:] - checkIt[0] - checkItInverse[1] - $call_id",
		},
		{
			"regexp without pattern",
			&AssignFromRegexp{},
			"Type[1] - regexp[] where[Full Msg] - checkIt[0] - checkItInverse[0] - $",
		},
		{
			"sample",
			&AssignFromSample{VarID: counter, Distribution: sample.Normal{Mean: 1, Stdev: 2}},
			"Type[2] - sample varId[counter] Normal(1.000, 2.000)",
		},
		{"assign", &AssignFromValue{VarID: counter, Value: 3}, "Type[3] - assign varId[counter] 3.000000"},
		{"assignstr", &AssignFromString{VarID: counter, Template: "abc"}, "Type[4] - string assign varId[counter] [abc                             ]"},
		{"index", &AssignFromIndex{VarID: counter}, "Type[5] - assign index[counter]"},
		{"gettimeofday", &AssignFromTimestamp{SecondsVarID: start, MicrosVarID: usec}, "Type[6] - assign gettimeofday[start, usec]"},
		{"add", &Add{VarID: counter, Operand: Operand{Value: 1}}, "Type[7] - add varId[counter] 1.000000"},
		{"multiply by variable", &Multiply{VarID: counter, Operand: Operand{VarID: start}}, "Type[8] - multiply varId[counter] $start"},
		{"divide", &Divide{VarID: counter, Operand: Operand{Value: 2}}, "Type[9] - divide varId[counter] 2.000000"},
		{"trim", &Trim{VarID: callID}, "Type[10] - trim varId[call_id]"},
		{
			"test",
			&Test{VarID: counter, LHSVarID: start, Comparator: CompareGEQ, RHS: Operand{Value: 5}},
			"Type[11] - test varId[counter] varInId[start] >= 5.000000",
		},
		{"todouble", &ToDouble{VarID: counter, SourceVarID: callID}, "Type[12] - toDouble varId[counter]"},
		{"log truncated", &Log{Level: LogToFile, Template: long}, "Type[13] - message[" + long[:32] + "]"},
		{"warning", &Log{Level: LogWarning, Template: "w"}, "Type[14] - warning[w                               ]"},
		{"error", &Log{Level: LogError, Template: "e"}, "Type[15] - error[e                               ]"},
		{"exec", &Exec{Template: "ls"}, "Type[16] - command[ls                              ]"},
		{"intcmd", &IntCommand{Command: IntCmdStopCall}, "Type[17] - intcmd[stop_call                       ]"},
		{"jump", &Jump{Operand: Operand{Value: 3}}, "Type[18] - jump varInId[] 3.000000"},
		{"jump variable", &Jump{Operand: Operand{VarID: counter}}, "Type[18] - jump varInId[counter] 0.000000"},
		{"pauserestore", &PauseRestore{Operand: Operand{Value: 100}}, "Type[19] - restore pause varInId[] 100.000000"},
		{"play pcap", &PlayPcap{Media: MediaAudio, Descriptor: &pcapplay.Descriptor{File: "g711a.pcap"}}, "Type[20] - file[g711a.pcap]"},
		{
			"rtp stream play",
			&RTPStream{Descriptor: &rtpstream.Descriptor{Filename: "voice.rtp", LoopCount: 3, PayloadType: 8, Timing: rtpstream.Timing{MsPerPacket: 20, BytesPerPacket: 160, TicksPerPacket: 160}}},
			"Type[23] - rtp_stream playfile file voice.rtp loop=3 payload 8 bytes per packet=160 ms per packet=20 ticks per packet=160",
		},
		{"rtp stream pause", &RTPStream{Op: RTPStreamPause}, "Type[24] - rtp_stream pause"},
		{"rtp stream resume", &RTPStream{Op: RTPStreamResume}, "Type[25] - rtp_stream resume"},
		{"unknown", unknownAction{}, "Type[99] - unknown action type ... "},
		{"nil", nil, "Type[0] - unknown action type ... "},
		{"typed nil", (*Jump)(nil), "Type[0] - unknown action type ... "},
		{"typed nil regexp", (*AssignFromRegexp)(nil), "Type[0] - unknown action type ... "},
		{"typed nil rtp stream", (*RTPStream)(nil), "Type[0] - unknown action type ... "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Describe(tt.action, names))
		})
	}
}

func TestDescribeWithoutNames(t *testing.T) {
	got := Describe(&Trim{VarID: 4}, nil)
	assert.Equal(t, "Type[10] - trim varId[]", got)
}

func TestDescribeDoesNotHidePanics(t *testing.T) {
	assert.PanicsWithValue(t, "kind not set", func() {
		Describe(brokenAction{}, nil)
	})
}
