// Package cmd implements CLI commands using cobra framework.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"firestige.xyz/callscript/internal/config"
	"firestige.xyz/callscript/internal/log"
)

var (
	// Global flags
	configFile string

	// globalConfig is loaded before any subcommand runs.
	globalConfig *config.GlobalConfig
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "callscript",
	Short: "callscript - scripted SIP call actions",
	Long: `callscript builds and runs the actions a scripted SIP call executes when
a message is received: regular expression captures, variable arithmetic and
tests, logging, control commands and media playback requests.

Action sets are JSON or YAML files. Every action is validated when the set is
loaded: regular expressions are compiled and media files are read once.`,
	Version:       "0.1.0",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configFile)
		if err != nil {
			return err
		}
		if err := log.Init(cfg.Log); err != nil {
			return err
		}
		globalConfig = cfg
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "",
		"config file path (defaults only when empty)")

	// Add subcommands
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(dumpCmd)
	rootCmd.AddCommand(execCmd)
}

// exitWithError prints error message and exits with code 1
func exitWithError(msg string, err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s: %v\n", msg, err)
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", msg)
	}
	os.Exit(1)
}
