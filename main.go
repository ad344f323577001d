// Package main is the entry point for the callscript action tool.
package main

import (
	"fmt"
	"os"

	"firestige.xyz/callscript/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
