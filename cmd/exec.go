package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/exp/rand"

	"firestige.xyz/callscript/internal/action"
	"firestige.xyz/callscript/internal/config"
	"firestige.xyz/callscript/internal/media/pcapplay"
	"firestige.xyz/callscript/internal/metrics"
	"firestige.xyz/callscript/internal/render"
	"firestige.xyz/callscript/pkg/variable"
)

var errCallAborted = errors.New("call aborted")

type execOptions struct {
	File        string
	MessageFile string
	PcapFile    string
	Sets        []string
	CallNumber  int
	Seed        uint64
}

var execOpts execOptions

var execCmd = &cobra.Command{
	Use:   "exec",
	Short: "Run an action set against received messages",
	Long: `Build an action set and execute it as one call would, printing every
requested effect and the final call variables.

The received message is read from a text file (-m) or every UDP payload of a
capture file is used in turn (--pcap). Without either the actions run against
an empty message.

Examples:
  callscript exec -f actions.yaml -m invite.txt
  callscript exec -f actions.yaml --pcap call.pcap --set user=alice --call-number 7`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runExec(execOpts, configOrDefaults(), os.Stdout); err != nil {
			exitWithError("exec failed", err)
		}
	},
}

func init() {
	execCmd.Flags().StringVarP(&execOpts.File, "file", "f", "",
		"action set file (required)")
	execCmd.Flags().StringVarP(&execOpts.MessageFile, "message", "m", "",
		"file holding the received SIP message")
	execCmd.Flags().StringVar(&execOpts.PcapFile, "pcap", "",
		"capture file whose UDP payloads are the received messages")
	execCmd.Flags().StringArrayVar(&execOpts.Sets, "set", nil,
		"preset a variable, name=value (repeatable)")
	execCmd.Flags().IntVar(&execOpts.CallNumber, "call-number", 1,
		"call number assigned by index actions")
	execCmd.Flags().Uint64Var(&execOpts.Seed, "seed", 0,
		"random seed for sample actions (0 uses the global source)")
	execCmd.MarkFlagRequired("file")
	execCmd.MarkFlagsMutuallyExclusive("message", "pcap")
}

func runExec(opts execOptions, cfg *config.GlobalConfig, w io.Writer) error {
	set, err := loadActionSet(opts.File, cfg)
	if err != nil {
		return err
	}
	defer set.Media.Flush()

	messages, err := readMessages(opts)
	if err != nil {
		return err
	}

	vars := variable.NewMemTable()
	for _, s := range opts.Sets {
		name, val, ok := strings.Cut(s, "=")
		if !ok || strings.TrimSpace(name) == "" {
			return fmt.Errorf("invalid --set %q, expected name=value", s)
		}
		vars.Set(set.Names.Find(strings.TrimSpace(name), true), variable.FromString(val))
	}

	env := &action.Env{
		Vars:       vars,
		Render:     render.New(set.Names),
		CallNumber: opts.CallNumber,
	}
	if opts.Seed != 0 {
		env.Rand = rand.NewSource(opts.Seed)
	}

	callID := uuid.NewString()
	logger := slog.With("call_id", callID, "action_set", set.Config.Name)
	logger.Info("exec started", "actions", len(set.Actions), "messages", len(messages))

	failed := color.New(color.FgRed, color.Bold).SprintFunc()
	effect := color.New(color.FgGreen).SprintFunc()
	index := color.New(color.FgCyan).SprintfFunc()

	fmt.Fprintf(w, "call %s\n", callID)
	for mi, msg := range messages {
		env.Message = msg
		for i, a := range set.Actions {
			res, err := action.Run(a, env)
			if err != nil {
				logger.Warn("action failed", "message", mi, "action", i, "error", err)
				return fmt.Errorf("message %d action[%d] %s: %w", mi, i, a.Kind(), err)
			}

			line := fmt.Sprintf("%s %s", index("[%d.%d]", mi, i), a.Kind())
			switch {
			case a.Kind() == action.KindAssignFromRegexp:
				line += fmt.Sprintf(" matches=%d", res.Matches)
			case a.Kind() == action.KindTest:
				line += fmt.Sprintf(" result=%t", res.Test)
			}
			if res.Effect != nil {
				line += " " + effect(describeEffect(res.Effect))
			}
			fmt.Fprintln(w, line)

			if res.Failed {
				fmt.Fprintln(w, failed("regular expression check failed"))
				logger.Warn("call aborted", "message", mi, "action", i)
				return fmt.Errorf("%w: message %d action[%d]", errCallAborted, mi, i)
			}
		}
	}

	fmt.Fprintln(w, "variables:")
	for _, name := range set.Names.Sorted() {
		v := vars.Get(set.Names.Find(name, false))
		if !v.IsSet() {
			continue
		}
		fmt.Fprintf(w, "  $%s = %s (%s)\n", name, v.String(), v.Type())
	}
	logger.Info("exec finished")

	if cfg.Metrics.Dump {
		return metrics.Dump(w)
	}
	return nil
}

func readMessages(opts execOptions) ([]string, error) {
	switch {
	case opts.MessageFile != "":
		data, err := os.ReadFile(opts.MessageFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read message %s: %w", opts.MessageFile, err)
		}
		return []string{string(data)}, nil
	case opts.PcapFile != "":
		d, err := pcapplay.ReadFile(opts.PcapFile)
		if err != nil {
			return nil, err
		}
		messages := make([]string, 0, len(d.Packets))
		for _, p := range d.Packets {
			messages = append(messages, string(p.Data))
		}
		return messages, nil
	default:
		return []string{""}, nil
	}
}

func describeEffect(e action.Effect) string {
	switch v := e.(type) {
	case action.LogEffect:
		return fmt.Sprintf("%s: %s", v.Level, v.Message)
	case action.CommandEffect:
		return "command: " + v.Command
	case action.ControlEffect:
		return "intcmd: " + v.Command.String()
	case action.JumpEffect:
		return fmt.Sprintf("jump to %d", v.Target)
	case action.PauseRestoreEffect:
		return fmt.Sprintf("restore pause %s", v.Duration)
	case action.PlayPcapEffect:
		if v.Descriptor == nil {
			return "play " + v.Media.String()
		}
		return fmt.Sprintf("play %s %s (%d packets, %s)", v.Media, v.Descriptor.File, len(v.Descriptor.Packets), v.Descriptor.Duration)
	case action.RTPStreamEffect:
		if v.Descriptor == nil {
			return "rtp_stream " + v.Op.String()
		}
		return fmt.Sprintf("rtp_stream %s %s", v.Op, v.Descriptor)
	default:
		return fmt.Sprintf("%T", e)
	}
}
