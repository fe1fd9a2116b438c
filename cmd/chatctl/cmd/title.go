package cmd

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/good-yellow-bee/chatriver/internal/naming"
)

var titleCmd = &cobra.Command{
	Use:   "title [message]",
	Short: "Derive a conversation title from a first message",
	Long: `Derive the conversation title the server would generate for a
first message. Reads the message from the arguments, or from stdin when
no argument is given.

Examples:
  # Derive a title
  chatctl title "hi can you explain how transformers work"

  # Pipe a message in
  echo "please review the rollout plan" | chatctl title

  # JSON output
  chatctl title "what is a goroutine" -o json`,
	RunE: runTitle,
}

func init() {
	rootCmd.AddCommand(titleCmd)
}

func runTitle(cmd *cobra.Command, args []string) error {
	var message string
	if len(args) > 0 {
		message = strings.Join(args, " ")
	} else {
		data, err := readStdin()
		if err != nil {
			return err
		}
		message = data
	}

	title := naming.New().GenerateTitle(message)

	if GetOutput() == "json" {
		out := map[string]string{"message": message, "title": title}
		data, _ := json.MarshalIndent(out, "", "  ")
		fmt.Println(string(data))
		return nil
	}
	fmt.Println(title)
	return nil
}

func readStdin() (string, error) {
	var sb strings.Builder
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		if sb.Len() > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return sb.String(), nil
}
