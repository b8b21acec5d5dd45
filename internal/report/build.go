package report

import (
	"context"
	"encoding/json"
	"fmt"
	"image"
	_ "image/jpeg"
	"os"
	"path/filepath"
	"strings"

	"github.com/gomutex/godocx"
	"github.com/gomutex/godocx/common/units"
	"github.com/gomutex/godocx/docx"
	"github.com/nguyentantai21042004/meetscribe/internal/scene"
)

const Title = "Meeting Documentation Report"

// Paths returns the docx and events.json locations for a video
func Paths(dir, videoPath string) (docxPath, eventsPath string) {
	stem := strings.TrimSuffix(filepath.Base(videoPath), filepath.Ext(videoPath))
	return filepath.Join(dir, stem+"_report.docx"), filepath.Join(dir, stem+"_events.json")
}

func (b *implBuilder) Build(ctx context.Context, in Input) (string, error) {
	if err := os.MkdirAll(b.dir, 0755); err != nil {
		return "", fmt.Errorf("create reports dir: %w", err)
	}
	docxPath, eventsPath := Paths(b.dir, in.VideoPath)

	if err := WriteEvents(eventsPath, in.Events); err != nil {
		return "", err
	}

	doc, err := godocx.NewDocument()
	if err != nil {
		return "", fmt.Errorf("create document: %w", err)
	}

	b.writeHeader(doc, in)
	b.writeKeyPoints(doc, in)
	if summary := strings.TrimSpace(in.Summary); summary != "" {
		addHeading(doc, "Summary", 2)
		addMarkdown(doc, summary)
	}
	b.writeTimeline(ctx, doc, in)

	if err := doc.SaveTo(docxPath); err != nil {
		return "", fmt.Errorf("save report: %w", err)
	}

	b.logger.Info(ctx, "Report saved: %s", docxPath)
	return docxPath, nil
}

func (b *implBuilder) writeHeader(doc *docx.RootDoc, in Input) {
	addHeading(doc, Title, 1)
	addText(doc, "Video: "+filepath.Base(in.VideoPath))
	addText(doc, fmt.Sprintf("Scene Changes: %d | Audio Segments: %d", len(in.Events), len(in.Segments)))
	if len(in.Segments) > 0 {
		addText(doc, "Content Type: Speech detected")
	} else {
		addText(doc, "Content Type: No speech (music/silent video)")
	}
	addText(doc, strings.Repeat("-", 50))
}

func (b *implBuilder) writeKeyPoints(doc *docx.RootDoc, in Input) {
	points := KeyPoints(in.Segments, b.cfg.MaxKeyPoints)
	if len(points) > 0 {
		addHeading(doc, "Key Discussion Points", 2)
		for _, kp := range points {
			addText(doc, fmt.Sprintf("• %.1fs: %s", kp.Timestamp, kp.Summary))
		}
		return
	}

	addHeading(doc, "Audio Analysis", 2)
	if len(in.Segments) == 0 {
		addText(doc, "• No speech detected in this video")
		addText(doc, "• Video contains music, background noise, or is silent")
		return
	}
	addText(doc, "• Audio segments processed but no clear speech found")
}

func (b *implBuilder) writeTimeline(ctx context.Context, doc *docx.RootDoc, in Input) {
	addHeading(doc, "Detailed Timeline", 2)

	for _, ev := range in.Events {
		addHeading(doc, fmt.Sprintf("%.1fs", ev.Timestamp), 3)

		if err := b.addFrame(doc, ev.FramePath); err != nil {
			b.logger.Warn(ctx, "Could not embed %s: %v", ev.FramePath, err)
			addText(doc, fmt.Sprintf("[Screenshot: %s]", filepath.Base(ev.FramePath)))
		}

		transcript := TranscriptNear(in.Segments, ev.Timestamp, b.cfg.WindowSeconds, b.cfg.TranscriptWords)
		addText(doc, "Transcript: "+transcript)
		addText(doc, fmt.Sprintf("Scene Change: visual content changed at this timestamp (score %.2f)", ev.Score))
	}
}

// addFrame embeds the picture at the configured width keeping its aspect ratio
func (b *implBuilder) addFrame(doc *docx.RootDoc, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	cfg, _, err := image.DecodeConfig(f)
	f.Close()
	if err != nil {
		return fmt.Errorf("read image header: %w", err)
	}
	if cfg.Width == 0 {
		return fmt.Errorf("image has zero width")
	}

	width := b.cfg.PictureWidthInch
	height := width * float64(cfg.Height) / float64(cfg.Width)
	_, err = doc.AddPicture(path, units.Inch(width), units.Inch(height))
	return err
}

// WriteEvents stores the event list as indented JSON
func WriteEvents(path string, events []scene.Event) error {
	if events == nil {
		events = []scene.Event{}
	}
	data, err := json.MarshalIndent(events, "", "  ")
	if err != nil {
		return fmt.Errorf("encode events: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write events: %w", err)
	}
	return nil
}

// ReadEvents loads a list written by WriteEvents
func ReadEvents(path string) ([]scene.Event, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read events: %w", err)
	}
	var events []scene.Event
	if err := json.Unmarshal(data, &events); err != nil {
		return nil, fmt.Errorf("decode events: %w", err)
	}
	return events, nil
}
