package action

import (
	"fmt"
	"log/slog"
	"strings"

	"firestige.xyz/callscript/internal/config"
	"firestige.xyz/callscript/internal/core"
	"firestige.xyz/callscript/internal/extract"
	"firestige.xyz/callscript/internal/media/cache"
	"firestige.xyz/callscript/internal/media/pcapplay"
	"firestige.xyz/callscript/internal/media/rtpstream"
	"firestige.xyz/callscript/internal/metrics"
	"firestige.xyz/callscript/internal/sample"
	"firestige.xyz/callscript/internal/sipmsg"
	"firestige.xyz/callscript/pkg/variable"
)

// Builder turns action configurations into actions. Regular expressions are
// compiled and media files are loaded here, never while executing.
//
// A Builder is not safe for concurrent use.
type Builder struct {
	Names    *variable.Names
	RTP      rtpstream.Config
	Cache    rtpstream.Cacher
	Pcap     pcapplay.Parser
	Selector *sipmsg.Selector

	rtpSeen map[string]*rtpstream.Descriptor
}

// NewBuilder creates a builder allocating variables in names and caching
// media in store. A nil store disables rtp_stream file caching.
func NewBuilder(names *variable.Names, rtp rtpstream.Config, store *cache.Store) *Builder {
	b := &Builder{
		Names:    names,
		RTP:      rtp,
		Selector: sipmsg.NewSelector(),
		rtpSeen:  make(map[string]*rtpstream.Descriptor),
	}
	if store != nil {
		b.Cache = store
		b.Pcap = pcapplay.NewFileParser(store)
	} else {
		b.Pcap = pcapplay.NewFileParser(nil)
	}
	return b
}

// BuildAll builds every action of set in order. The first failure aborts
// and names the offending action.
func (b *Builder) BuildAll(set *config.ActionSetConfig) ([]Action, error) {
	if err := set.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrConfigInvalid, err)
	}
	actions := make([]Action, 0, len(set.Actions))
	for i, c := range set.Actions {
		a, err := b.Build(c)
		if err != nil {
			metrics.ConfigErrorsTotal.WithLabelValues(strings.ToLower(c.Type)).Inc()
			return nil, fmt.Errorf("action[%d] %s: %w", i, c.Type, err)
		}
		actions = append(actions, a)
	}
	return actions, nil
}

// Build builds a single action.
func (b *Builder) Build(c config.ActionConfig) (Action, error) {
	kind, err := ParseKind(c.Type)
	if err != nil {
		return nil, err
	}

	switch kind {
	case KindAssignFromRegexp:
		return b.buildRegexp(c)
	case KindAssignFromSample:
		id, err := b.dest(c)
		if err != nil {
			return nil, err
		}
		d, err := sample.New(c.Distribution)
		if err != nil {
			return nil, err
		}
		return &AssignFromSample{VarID: id, Distribution: d}, nil
	case KindAssignFromValue:
		id, err := b.dest(c)
		if err != nil {
			return nil, err
		}
		if c.Value == nil {
			return nil, missing("value")
		}
		return &AssignFromValue{VarID: id, Value: *c.Value}, nil
	case KindAssignFromString:
		id, err := b.dest(c)
		if err != nil {
			return nil, err
		}
		return &AssignFromString{VarID: id, Template: c.String}, nil
	case KindAssignFromIndex:
		id, err := b.dest(c)
		if err != nil {
			return nil, err
		}
		return &AssignFromIndex{VarID: id}, nil
	case KindAssignFromTimestamp:
		ids, err := b.vars(c.AssignTo)
		if err != nil {
			return nil, err
		}
		if len(ids) != 2 {
			return nil, fmt.Errorf("%w: gettimeofday needs two variables in assign_to, got %d", core.ErrConfigInvalid, len(ids))
		}
		return &AssignFromTimestamp{SecondsVarID: ids[0], MicrosVarID: ids[1]}, nil
	case KindAdd, KindMultiply, KindDivide:
		return b.buildArithmetic(kind, c)
	case KindTrim:
		id, err := b.dest(c)
		if err != nil {
			return nil, err
		}
		return &Trim{VarID: id}, nil
	case KindTest:
		return b.buildTest(c)
	case KindToDouble:
		id, err := b.dest(c)
		if err != nil {
			return nil, err
		}
		src, err := b.variable(c.Variable)
		if err != nil {
			return nil, err
		}
		return &ToDouble{VarID: id, SourceVarID: src}, nil
	case KindLogToFile:
		return &Log{Level: LogToFile, Template: c.Message}, nil
	case KindLogWarning:
		return &Log{Level: LogWarning, Template: c.Message}, nil
	case KindLogError:
		return &Log{Level: LogError, Template: c.Message}, nil
	case KindExecCommand:
		if c.Command == "" {
			return nil, missing("command")
		}
		return &Exec{Template: c.Command}, nil
	case KindIntCmd:
		cmd, err := ParseIntCmd(c.IntCmd)
		if err != nil {
			return nil, err
		}
		return &IntCommand{Command: cmd}, nil
	case KindJump:
		op, err := b.operand(c)
		if err != nil {
			return nil, err
		}
		if op.VarID == 0 {
			if _, err := jumpTarget(op.Value); err != nil {
				return nil, err
			}
		}
		return &Jump{Operand: op}, nil
	case KindPauseRestore:
		op, err := b.operand(c)
		if err != nil {
			return nil, err
		}
		return &PauseRestore{Operand: op}, nil
	case KindPlayPcapAudio, KindPlayPcapImage, KindPlayPcapVideo:
		return b.buildPlayPcap(kind, c)
	case KindRTPStreamPlay:
		return b.buildRTPStream(c)
	}
	return nil, fmt.Errorf("%w %q", core.ErrUnknownAction, c.Type)
}

func (b *Builder) buildRegexp(c config.ActionConfig) (Action, error) {
	ids, err := b.vars(c.AssignTo)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, missing("assign_to")
	}
	region, err := sipmsg.ParseRegion(c.SearchIn)
	if err != nil {
		return nil, err
	}
	if region == sipmsg.RegionHeader && sipmsg.HeaderName(c.Header) == "" {
		return nil, missing("header")
	}
	if c.CheckIt && c.CheckItInverse {
		return nil, fmt.Errorf("%w: check_it and check_it_inverse are exclusive", core.ErrConfigInvalid)
	}

	pattern, err := extract.Compile(c.Regexp)
	if err != nil {
		return nil, err
	}
	if subs := len(ids) - 1; subs > pattern.NumGroups() {
		slog.Warn("more variables than capture groups, extra variables are never assigned",
			"regexp", pattern.Source(), "variables", subs, "groups", pattern.NumGroups())
	}

	a := &AssignFromRegexp{
		Extractor:      extract.Extractor{Pattern: pattern, VarID: ids[0]},
		Region:         region,
		Header:         c.Header,
		CheckIt:        c.CheckIt,
		CheckItInverse: c.CheckItInverse,
		Selector:       b.Selector,
	}
	for _, id := range ids[1:] {
		a.Extractor.AddSubVar(id)
	}
	return a, nil
}

func (b *Builder) buildArithmetic(kind Kind, c config.ActionConfig) (Action, error) {
	id, err := b.dest(c)
	if err != nil {
		return nil, err
	}
	op, err := b.operand(c)
	if err != nil {
		return nil, err
	}
	switch kind {
	case KindAdd:
		return &Add{VarID: id, Operand: op}, nil
	case KindMultiply:
		return &Multiply{VarID: id, Operand: op}, nil
	default:
		if op.VarID == 0 && op.Value == 0 {
			return nil, fmt.Errorf("%w: divide %s by 0", core.ErrDivideByZero, c.AssignTo)
		}
		return &Divide{VarID: id, Operand: op}, nil
	}
}

func (b *Builder) buildTest(c config.ActionConfig) (Action, error) {
	id, err := b.dest(c)
	if err != nil {
		return nil, err
	}
	lhs, err := b.variable(c.Variable)
	if err != nil {
		return nil, err
	}
	cmp, err := ParseComparator(c.Compare)
	if err != nil {
		return nil, err
	}
	rhs := Operand{}
	switch {
	case c.Variable2 != "":
		if rhs.VarID, err = b.variable(c.Variable2); err != nil {
			return nil, err
		}
	case c.Value != nil:
		rhs.Value = *c.Value
	default:
		return nil, missing("value or variable2")
	}
	return &Test{VarID: id, LHSVarID: lhs, Comparator: cmp, RHS: rhs}, nil
}

func (b *Builder) buildPlayPcap(kind Kind, c config.ActionConfig) (Action, error) {
	d, err := b.Pcap.Parse(c.Play)
	if err != nil {
		return nil, err
	}
	media := MediaAudio
	switch kind {
	case KindPlayPcapImage:
		media = MediaImage
	case KindPlayPcapVideo:
		media = MediaVideo
	}
	return &PlayPcap{Media: media, Descriptor: d}, nil
}

func (b *Builder) buildRTPStream(c config.ActionConfig) (Action, error) {
	switch strings.ToLower(strings.TrimSpace(c.Play)) {
	case "":
		return nil, missing("play")
	case "pause":
		return &RTPStream{Op: RTPStreamPause}, nil
	case "resume":
		return &RTPStream{Op: RTPStreamResume}, nil
	}

	if seen, ok := b.rtpSeen[c.Play]; ok {
		return &RTPStream{Op: RTPStreamPlay, Descriptor: seen.Clone()}, nil
	}
	d, err := rtpstream.Parse(c.Play, b.RTP, b.Cache)
	if err != nil {
		return nil, err
	}
	if b.rtpSeen == nil {
		b.rtpSeen = make(map[string]*rtpstream.Descriptor)
	}
	b.rtpSeen[c.Play] = d
	return &RTPStream{Op: RTPStreamPlay, Descriptor: d}, nil
}

// dest resolves the single destination variable of c.
func (b *Builder) dest(c config.ActionConfig) (int, error) {
	if strings.Contains(c.AssignTo, ",") {
		return 0, fmt.Errorf("%w: %s accepts a single assign_to variable", core.ErrConfigInvalid, c.Type)
	}
	return b.variable(c.AssignTo)
}

// operand resolves "variable" or "value", the variable taking precedence.
func (b *Builder) operand(c config.ActionConfig) (Operand, error) {
	if c.Variable != "" {
		id, err := b.variable(c.Variable)
		return Operand{VarID: id}, err
	}
	if c.Value == nil {
		return Operand{}, missing("value or variable")
	}
	return Operand{Value: *c.Value}, nil
}

func (b *Builder) vars(list string) ([]int, error) {
	if strings.TrimSpace(list) == "" {
		return nil, nil
	}
	parts := strings.Split(list, ",")
	ids := make([]int, 0, len(parts))
	for _, p := range parts {
		id, err := b.variable(p)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func (b *Builder) variable(name string) (int, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return 0, fmt.Errorf("%w: empty variable name", core.ErrUnknownVariable)
	}
	if strings.ContainsAny(name, " \t[]$") {
		return 0, fmt.Errorf("%w: invalid variable name %q", core.ErrUnknownVariable, name)
	}
	return b.Names.Find(name, true), nil
}

func missing(field string) error {
	return fmt.Errorf("%w: missing %s", core.ErrConfigInvalid, field)
}
