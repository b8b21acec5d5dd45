package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nguyentantai21042004/meetscribe/internal/config"
	"github.com/nguyentantai21042004/meetscribe/internal/model"
	"github.com/nguyentantai21042004/meetscribe/internal/report"
	"github.com/nguyentantai21042004/meetscribe/internal/subtitle"
)

var summaryFile string

var reportCmd = &cobra.Command{
	Use:   "report <video>",
	Short: "Rebuild the DOCX report from a previous run's events and transcript",
	Long: `Rebuild <paths.reports>/<name>_report.docx without scanning or
transcribing again. Events come from <name>_events.json, speech from
<paths.transcripts>/<name>.srt and the summary, when present, from
<paths.output>/<name>.md or --summary.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a, err := newApp(ctx, cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		defer a.close(ctx)

		in, err := reportInput(a.cfg, args[0], summaryFile)
		if err != nil {
			return err
		}
		out, err := report.New(a.cfg, a.log).Build(ctx, in)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), out)
		return nil
	},
}

// reportInput gathers the artifacts a finished run left behind for video
func reportInput(cfg *config.Config, video, summaryPath string) (report.Input, error) {
	stem := strings.TrimSuffix(filepath.Base(video), filepath.Ext(video))
	_, eventsPath := report.Paths(cfg.Paths.Reports, video)

	events, err := report.ReadEvents(eventsPath)
	if err != nil {
		return report.Input{}, err
	}

	var segments []model.Segment
	parsed, err := subtitle.ParseFile(filepath.Join(cfg.Paths.Transcripts, stem+".srt"))
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return report.Input{}, err
	default:
		for _, seg := range parsed {
			if subtitle.CleanText(seg.Text) != subtitle.PlaceholderText {
				segments = append(segments, seg)
			}
		}
	}

	explicit := summaryPath != ""
	if !explicit {
		summaryPath = filepath.Join(cfg.Paths.Output, stem+".md")
	}
	var summary string
	data, err := os.ReadFile(summaryPath)
	switch {
	case err == nil:
		summary = string(data)
	case explicit || !errors.Is(err, os.ErrNotExist):
		return report.Input{}, fmt.Errorf("read summary: %w", err)
	}

	return report.Input{
		VideoPath: video,
		Events:    events,
		Segments:  segments,
		Summary:   summary,
	}, nil
}

func init() {
	reportCmd.Flags().StringVar(&summaryFile, "summary", "", "Markdown summary to include (default <paths.output>/<name>.md)")
	rootCmd.AddCommand(reportCmd)
}
