// Package main provides the entry point for the retro driver.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/g-m-twostay/go-retro/cmd/retro/commands"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "retro",
		Short: "Retroactive containers - reference token driver",
		Long: `retro drives one retroactive container with whitespace separated
commands read from stdin and prints one result per line.

Commands:
  dict      retroactive dictionary
  pset      partially retroactive set
  set       fully retroactive ordered set
  multiset  retroactive unordered multiset
  deque     retroactive deque`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().BoolVar(&commands.Trace, "trace", false, "dump every decoded command to stderr")

	rootCmd.AddCommand(commands.NewDictCommand())
	rootCmd.AddCommand(commands.NewPSetCommand())
	rootCmd.AddCommand(commands.NewSetCommand())
	rootCmd.AddCommand(commands.NewMultisetCommand())
	rootCmd.AddCommand(commands.NewDequeCommand())

	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
