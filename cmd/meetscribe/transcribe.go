package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/nguyentantai21042004/meetscribe/internal/subtitle"
	"github.com/nguyentantai21042004/meetscribe/internal/transcribe"
)

var (
	copyText bool
	srtOut   string
)

var transcribeCmd = &cobra.Command{
	Use:   "transcribe <video>",
	Short: "Transcribe a local video into an SRT file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a, err := newApp(ctx, cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		defer a.close(ctx)

		segments, err := transcribe.New(a.cfg, a.exec, a.log).Transcribe(ctx, args[0])
		if err != nil {
			return err
		}

		out := srtOut
		if out == "" {
			stem := strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0]))
			out = filepath.Join(a.cfg.Paths.Transcripts, stem+".srt")
		}
		if err := os.MkdirAll(filepath.Dir(out), 0755); err != nil {
			return fmt.Errorf("create transcript dir: %w", err)
		}
		if err := subtitle.WriteFile(out, segments); err != nil {
			return err
		}
		a.log.Info(ctx, "Wrote %d segments to %s", len(segments), out)

		if copyText {
			if err := clipboard.WriteAll(subtitle.PlainText(segments)); err != nil {
				a.log.Warn(ctx, "Failed to copy transcript to clipboard: %v", err)
			} else {
				a.log.Info(ctx, "Transcript copied to clipboard")
			}
		}

		fmt.Fprintln(cmd.OutOrStdout(), out)
		return nil
	},
}

func init() {
	f := transcribeCmd.Flags()
	f.BoolVarP(&copyText, "copy", "c", false, "Copy the plain transcript to the clipboard")
	f.StringVarP(&srtOut, "output", "o", "", "SRT path (default <paths.transcripts>/<name>.srt)")
	rootCmd.AddCommand(transcribeCmd)
}
