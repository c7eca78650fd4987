package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/ShreekarSeelavantula/career-compass/internal/extraction"
)

var nowFunc = time.Now

var parseCmd = &cobra.Command{
	Use:   "parse <resume-file>",
	Short: "Extract skills, experience and education from a plain-text resume",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		content, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", args[0], err)
		}
		return printJSON(cmd, extraction.Parse(string(content), nowFunc()))
	},
}

func init() {
	rootCmd.AddCommand(parseCmd)
}
