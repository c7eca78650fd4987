package main

import (
	"strings"

	"github.com/spf13/cobra"
)

var embedCmd = &cobra.Command{
	Use:   "embed [text...]",
	Short: "Print the embedding of a text",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		embedder, err := newEmbedder(appConfig, log)
		if err != nil {
			return err
		}

		text := strings.Join(args, " ")
		vec, err := embedder.EmbedText(cmd.Context(), text)
		if err != nil {
			return err
		}
		return printJSON(cmd, map[string]interface{}{
			"text":      text,
			"dimension": len(vec),
			"embedding": vec,
		})
	},
}

func init() {
	rootCmd.AddCommand(embedCmd)
}
