package action

import (
	"fmt"
	"reflect"

	"firestige.xyz/callscript/internal/sipmsg"
	"firestige.xyz/callscript/pkg/variable"
)

// Describe renders a one line summary of a for scenario dumps. names
// resolves variable ids and may be nil. Nil actions, including typed nil
// pointers, render as unknown.
func Describe(a Action, names variable.NameLookup) string {
	if isNil(a) {
		return fmt.Sprintf("Type[%d] - unknown action type ... ", KindUnknown)
	}

	name := func(id int) string {
		if names == nil || id == 0 {
			return ""
		}
		return names.Name(id)
	}

	switch v := a.(type) {
	case *AssignFromRegexp:
		pattern := ""
		if v.Extractor.HasPattern() {
			pattern = v.Extractor.Pattern.Source()
		}
		where := "Full Msg"
		switch v.Region {
		case sipmsg.RegionHeader:
			where = "Header-" + v.Header
		case sipmsg.RegionBody:
			where = "Body"
		}
		return fmt.Sprintf("Type[%d] - regexp[%s] where[%s] - checkIt[%d] - checkItInverse[%d] - $%s",
			v.Kind(), pattern, where, btoi(v.CheckIt), btoi(v.CheckItInverse), name(v.Extractor.VarID))
	case *Exec:
		return fmt.Sprintf("Type[%d] - command[%-32.32s]", v.Kind(), v.Template)
	case *IntCommand:
		return fmt.Sprintf("Type[%d] - intcmd[%-32.32s]", v.Kind(), v.Command)
	case *Log:
		label := "message"
		switch v.Level {
		case LogWarning:
			label = "warning"
		case LogError:
			label = "error"
		}
		return fmt.Sprintf("Type[%d] - %s[%-32.32s]", v.Kind(), label, v.Template)
	case *AssignFromSample:
		descr := ""
		if v.Distribution != nil {
			descr = v.Distribution.String()
		}
		return fmt.Sprintf("Type[%d] - sample varId[%s] %s", v.Kind(), name(v.VarID), descr)
	case *AssignFromValue:
		return fmt.Sprintf("Type[%d] - assign varId[%s] %f", v.Kind(), name(v.VarID), v.Value)
	case *AssignFromIndex:
		return fmt.Sprintf("Type[%d] - assign index[%s]", v.Kind(), name(v.VarID))
	case *AssignFromTimestamp:
		return fmt.Sprintf("Type[%d] - assign gettimeofday[%s, %s]", v.Kind(), name(v.SecondsVarID), name(v.MicrosVarID))
	case *AssignFromString:
		return fmt.Sprintf("Type[%d] - string assign varId[%s] [%-32.32s]", v.Kind(), name(v.VarID), v.Template)
	case *Jump:
		return fmt.Sprintf("Type[%d] - jump varInId[%s] %f", v.Kind(), name(v.Operand.VarID), v.Operand.Value)
	case *PauseRestore:
		return fmt.Sprintf("Type[%d] - restore pause varInId[%s] %f", v.Kind(), name(v.Operand.VarID), v.Operand.Value)
	case *Add:
		return fmt.Sprintf("Type[%d] - add varId[%s] %s", v.Kind(), name(v.VarID), describeOperand(v.Operand, name))
	case *Multiply:
		return fmt.Sprintf("Type[%d] - multiply varId[%s] %s", v.Kind(), name(v.VarID), describeOperand(v.Operand, name))
	case *Divide:
		return fmt.Sprintf("Type[%d] - divide varId[%s] %s", v.Kind(), name(v.VarID), describeOperand(v.Operand, name))
	case *Trim:
		return fmt.Sprintf("Type[%d] - trim varId[%s]", v.Kind(), name(v.VarID))
	case *Test:
		return fmt.Sprintf("Type[%d] - test varId[%s] varInId[%s] %s %s",
			v.Kind(), name(v.VarID), name(v.LHSVarID), v.Comparator, describeOperand(v.RHS, name))
	case *ToDouble:
		return fmt.Sprintf("Type[%d] - toDouble varId[%s]", v.Kind(), name(v.VarID))
	case *PlayPcap:
		file := ""
		if v.Descriptor != nil {
			file = v.Descriptor.File
		}
		return fmt.Sprintf("Type[%d] - file[%s]", v.Kind(), file)
	case *RTPStream:
		switch v.Op {
		case RTPStreamPause:
			return fmt.Sprintf("Type[%d] - rtp_stream pause", v.Kind())
		case RTPStreamResume:
			return fmt.Sprintf("Type[%d] - rtp_stream resume", v.Kind())
		}
		if v.Descriptor == nil {
			return fmt.Sprintf("Type[%d] - rtp_stream playfile", v.Kind())
		}
		return fmt.Sprintf("Type[%d] - rtp_stream playfile %s", v.Kind(), v.Descriptor)
	default:
		return fmt.Sprintf("Type[%d] - unknown action type ... ", a.Kind())
	}
}

func isNil(a Action) bool {
	if a == nil {
		return true
	}
	v := reflect.ValueOf(a)
	return v.Kind() == reflect.Pointer && v.IsNil()
}

func describeOperand(o Operand, name func(int) string) string {
	if o.VarID != 0 {
		return "$" + name(o.VarID)
	}
	return fmt.Sprintf("%f", o.Value)
}

func btoi(b bool) int {
	if b {
		return 1
	}
	return 0
}
