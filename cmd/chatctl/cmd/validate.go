package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/good-yellow-bee/chatriver/internal/naming"
)

var validateCmd = &cobra.Command{
	Use:   "validate [name]",
	Short: "Check a conversation name against rename validation",
	Long: `Check whether a proposed conversation name would be accepted by
the rename endpoint, and show the cleaned form that would be stored.

Examples:
  chatctl validate "My Chat 2024"
  chatctl validate "my<chat>" -o json`,
	Args: cobra.MinimumNArgs(1),
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	name := strings.Join(args, " ")
	err := naming.ValidateName(name)

	if GetOutput() == "json" {
		out := map[string]any{"name": name, "valid": err == nil}
		if err != nil {
			out["error"] = err.Error()
		} else {
			out["cleaned"] = naming.CleanName(name)
		}
		data, _ := json.MarshalIndent(out, "", "  ")
		fmt.Println(string(data))
		if err != nil {
			// Exit nonzero without cobra re-printing the error.
			cmd.SilenceErrors = true
			cmd.SilenceUsage = true
			return err
		}
		return nil
	}

	if err != nil {
		cmd.SilenceUsage = true
		return err
	}
	fmt.Printf("valid: %q\n", naming.CleanName(name))
	return nil
}
