// Package cmd contains the CLI commands for chatriver.
package cmd

import (
	"github.com/spf13/cobra"
)

var (
	// Used for flags
	output string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "chatctl",
	Short: "chatctl - chatriver support tooling",
	Long: `chatctl runs the conversation naming engine from the command line,
for support staff reproducing how a title was derived and for checking
whether a proposed name would pass rename validation.

Examples:
  # Derive the title a first message would produce
  chatctl title "can you explain how transformers work"

  # Check a proposed conversation name
  chatctl validate "My Chat 2024"`,
	// Run when no subcommand is specified
	Run: func(cmd *cobra.Command, args []string) {
		// Show help by default
		cmd.Help()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVarP(&output, "output", "o", "plain", "output format (plain, json)")
}

// GetOutput returns the output format.
func GetOutput() string {
	return output
}
