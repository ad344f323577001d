// Package cmd implements CLI commands.
package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"firestige.xyz/callscript/internal/config"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate an action set file",
	Long: `Validate an action set file (JSON or YAML) by building every action.

Regular expressions are compiled, comparators and distributions are checked
and referenced media files are loaded, exactly as when a scenario starts.
File format is auto-detected from extension (.json, .yaml, .yml).

Examples:
  callscript validate -f actions.json
  callscript validate -f actions.yaml`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runValidate(validateFile, configOrDefaults(), os.Stdout); err != nil {
			fmt.Fprintf(os.Stderr, "INVALID: %v\n", err)
			os.Exit(1)
		}
	},
}

var validateFile string

func init() {
	validateCmd.Flags().StringVarP(&validateFile, "file", "f", "",
		"action set file to validate (required)")
	validateCmd.MarkFlagRequired("file")
}

func runValidate(path string, cfg *config.GlobalConfig, w io.Writer) error {
	set, err := loadActionSet(path, cfg)
	if err != nil {
		return err
	}
	defer set.Media.Flush()

	fmt.Fprintf(w, "VALID: action set %q, %d action(s), %d variable(s), %d media file(s)\n",
		set.Config.Name,
		len(set.Actions),
		set.Names.Len(),
		set.Media.Len(),
	)
	return nil
}
