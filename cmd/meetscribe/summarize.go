package main

import (
	"errors"

	"github.com/spf13/cobra"
)

var summariesDir string

var summarizeCmd = &cobra.Command{
	Use:   "summarize",
	Short: "Write a Markdown summary for every transcript that lacks one",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a, err := newApp(ctx, nil)
		if err != nil {
			return err
		}
		defer a.close(ctx)

		s := a.summarizer(ctx)
		if s == nil {
			return errors.New("summary.provider is not configured")
		}

		dest := summariesDir
		if dest == "" {
			dest = a.cfg.Paths.Output
		}
		return s.SummarizeAll(ctx, a.cfg.Paths.Transcripts, dest)
	},
}

func init() {
	summarizeCmd.Flags().StringVar(&summariesDir, "dest", "", "Directory for summaries (default paths.output)")
	summarizeCmd.Flags().String("provider", "", "Summary provider: gemini or openai")
	bindFlag(summarizeCmd.Flags(), "provider", "summary.provider")
	rootCmd.AddCommand(summarizeCmd)
}
