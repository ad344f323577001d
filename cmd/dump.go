package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"firestige.xyz/callscript/internal/action"
	"firestige.xyz/callscript/internal/config"
)

var dumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Print one line per action of an action set",
	Long: `Build an action set and print the description of every action, in the
same format scenario dumps use.

Examples:
  callscript dump -f actions.yaml`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runDump(dumpFile, configOrDefaults(), os.Stdout); err != nil {
			exitWithError("dump failed", err)
		}
	},
}

var dumpFile string

func init() {
	dumpCmd.Flags().StringVarP(&dumpFile, "file", "f", "",
		"action set file to dump (required)")
	dumpCmd.MarkFlagRequired("file")
}

func runDump(path string, cfg *config.GlobalConfig, w io.Writer) error {
	set, err := loadActionSet(path, cfg)
	if err != nil {
		return err
	}
	defer set.Media.Flush()

	index := color.New(color.FgCyan).SprintfFunc()
	title := color.New(color.Bold).SprintFunc()

	fmt.Fprintf(w, "%s\n", title(fmt.Sprintf("Action set %q", set.Config.Name)))
	for i, a := range set.Actions {
		fmt.Fprintf(w, "%s %s\n", index("[%d]", i), action.Describe(a, set.Names))
	}
	return nil
}
