package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nguyentantai21042004/meetscribe/internal/acquire"
	"github.com/nguyentantai21042004/meetscribe/internal/processor"
	"github.com/nguyentantai21042004/meetscribe/internal/ui"
)

var (
	sourceType string
	username   string
	password   string
	archive    bool
)

var runCmd = &cobra.Command{
	Use:   "run <source>",
	Short: "Process one recording end to end",
	Long: `Acquire a recording from a local path, YouTube, a plain or Google Drive
URL, an s3:// object or a password-protected site, then scan it for scene
changes, transcribe it, burn captions and write the report.`,
	Example: `  meetscribe run ./standup.mp4
  meetscribe run https://www.youtube.com/watch?v=dQw4w9WgXcQ
  meetscribe run https://lms.example.com/lesson/42 --type private --username me --password secret`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a, err := newApp(ctx, nil)
		if err != nil {
			return err
		}
		defer a.close(ctx)

		res, err := a.processor(ctx).Process(ctx, processor.Request{
			Source: acquire.Request{
				Source:   args[0],
				Kind:     acquire.Kind(sourceType),
				Username: username,
				Password: password,
			},
			Archive: archive,
		})
		if err != nil {
			return err
		}

		if quiet {
			return nil
		}
		out, err := ui.RenderMarkdown(ui.RunSummary(res))
		if err != nil {
			return fmt.Errorf("render summary: %w", err)
		}
		fmt.Fprint(cmd.OutOrStdout(), out)
		return nil
	},
}

func init() {
	f := runCmd.Flags()
	f.StringVarP(&sourceType, "type", "t", string(acquire.KindAuto), "Source type: auto, local, youtube, http, gdrive, s3 or private")
	f.StringVarP(&username, "username", "u", "", "Login for private sources")
	f.StringVarP(&password, "password", "p", "", "Password for private sources")
	f.BoolVar(&archive, "archive", false, "Move a local input into paths.archived after success")
	rootCmd.AddCommand(runCmd)
}
