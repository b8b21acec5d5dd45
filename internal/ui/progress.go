package ui

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/nguyentantai21042004/meetscribe/internal/scene"
	"github.com/schollz/progressbar/v3"
)

// IsTerminal reports whether f is attached to a terminal
func IsTerminal(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// ScanProgress returns a progress factory for scene scans. Bars are drawn on
// stderr only when it is a terminal and quiet is false; otherwise nil is
// returned and the scanner reports no progress.
func ScanProgress(description string, quiet bool) func(total int) scene.ProgressBar {
	if quiet || !IsTerminal(os.Stderr) {
		return nil
	}
	return func(total int) scene.ProgressBar {
		return newBar(os.Stderr, total, description)
	}
}

func newBar(w io.Writer, total int, description string) *progressbar.ProgressBar {
	if total <= 0 {
		// unknown length renders as a spinner
		total = -1
	}
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription(description),
		progressbar.OptionSetWidth(30),
		progressbar.OptionShowCount(),
		progressbar.OptionSetPredictTime(false),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "=",
			SaucerHead:    ">",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}))
}
