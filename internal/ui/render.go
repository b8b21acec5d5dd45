package ui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/muesli/termenv"
	"golang.org/x/term"

	"github.com/nguyentantai21042004/meetscribe/internal/processor"
)

func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		return 80
	}
	if width > 10 {
		return width - 4
	}
	return width
}

// RenderMarkdown renders markdown for the terminal
func RenderMarkdown(content string) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(terminalWidth()),
		glamour.WithColorProfile(termenv.EnvColorProfile()),
	)
	if err != nil {
		return "", fmt.Errorf("creating terminal renderer: %w", err)
	}

	out, err := r.Render(content)
	if err != nil {
		return "", fmt.Errorf("rendering markdown: %w", err)
	}
	return out, nil
}

// RunSummary describes a finished pipeline run as markdown
func RunSummary(res *processor.Result) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", filepath.Base(res.Video))
	fmt.Fprintf(&b, "- **Run:** `%s`\n", res.RunID)
	fmt.Fprintf(&b, "- **Scene changes:** %d\n", len(res.Events))
	fmt.Fprintf(&b, "- **Transcript segments:** %d\n", len(res.Segments))
	fmt.Fprintf(&b, "- **Processing time:** %s\n\n", res.Duration.Round(time.Millisecond))

	b.WriteString("## Outputs\n\n")
	b.WriteString("| Artifact | Path |\n|---|---|\n")
	fmt.Fprintf(&b, "| Captioned video | `%s` |\n", res.Captioned)
	fmt.Fprintf(&b, "| Subtitles | `%s` |\n", res.SRT)
	fmt.Fprintf(&b, "| Report | `%s` |\n", res.Report)
	for _, key := range res.Published {
		fmt.Fprintf(&b, "| Published | `%s` |\n", key)
	}

	if len(res.Events) > 0 {
		b.WriteString("\n## Scene changes\n\n")
		for _, ev := range res.Events {
			fmt.Fprintf(&b, "- %.1fs (score %.2f) `%s`\n", ev.Timestamp, ev.Score, filepath.Base(ev.FramePath))
		}
	}

	if res.Summary != "" {
		b.WriteString("\n## Summary\n\n")
		b.WriteString(res.Summary)
		b.WriteString("\n")
	}
	return b.String()
}
