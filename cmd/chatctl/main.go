// Package main is the entry point for the chatriver CLI tool.
package main

import (
	"os"

	"github.com/good-yellow-bee/chatriver/cmd/chatctl/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
