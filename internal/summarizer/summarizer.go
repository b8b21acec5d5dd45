package summarizer

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/nguyentantai21042004/meetscribe/internal/subtitle"
)

const defaultPrompt = `You are an assistant that writes meeting minutes. Based on the transcript below, write a concise summary in the language of the transcript.

Requirements:
- Start with a one-sentence overview of what the meeting was about
- List the main topics in the order they were discussed
- List every decision that was made
- List action items with the owner when one is mentioned
- Use markdown: headings, bullet points, bold for key terms

Transcript:
---
%s
---`

func (s *implSummarizer) Summarize(ctx context.Context, transcript string) (string, error) {
	transcript = strings.TrimSpace(transcript)
	if transcript == "" {
		return "", errors.New("transcript is empty")
	}

	summary, err := s.backend.generate(ctx, buildPrompt(s.prompt, transcript))
	if err != nil {
		return "", fmt.Errorf("%s: %w", s.backend.name(), err)
	}
	return strings.TrimSpace(summary), nil
}

// buildPrompt substitutes the transcript for the first %s, or appends it
// when the template has no placeholder. Other % signs are left as written.
func buildPrompt(template, transcript string) string {
	if strings.Contains(template, "%s") {
		return strings.Replace(template, "%s", transcript, 1)
	}
	return template + "\n\n" + transcript
}

// SummarizeAll writes one markdown summary per SRT file in srtDir. Files with
// an existing summary are skipped and failures are logged, not returned.
func (s *implSummarizer) SummarizeAll(ctx context.Context, srtDir, destDir string) error {
	srtFiles, err := discoverSRTFiles(srtDir)
	if err != nil {
		return fmt.Errorf("discover SRT files: %w", err)
	}

	if len(srtFiles) == 0 {
		s.logger.Info(ctx, "No SRT files found in %s", srtDir)
		return nil
	}

	if err := os.MkdirAll(destDir, 0755); err != nil {
		return fmt.Errorf("create dest dir: %w", err)
	}

	s.logger.Info(ctx, "Found %d SRT files to summarize", len(srtFiles))

	successCount := 0
	failCount := 0

	for i, srtPath := range srtFiles {
		if err := ctx.Err(); err != nil {
			return err
		}

		videoName := strings.TrimSuffix(filepath.Base(srtPath), filepath.Ext(srtPath))
		mdPath := filepath.Join(destDir, videoName+".md")
		if _, err := os.Stat(mdPath); err == nil {
			s.logger.Debug(ctx, "[%d/%d] Skipping %s, summary exists", i+1, len(srtFiles), videoName)
			continue
		}

		s.logger.Info(ctx, "[%d/%d] Summarizing: %s", i+1, len(srtFiles), videoName)

		segs, err := subtitle.ParseFile(srtPath)
		if err != nil {
			s.logger.Error(ctx, "Failed to read %s: %v", srtPath, err)
			failCount++
			continue
		}

		summary, err := s.Summarize(ctx, subtitle.PlainText(segs))
		if err != nil {
			s.logger.Error(ctx, "Failed to summarize %s: %v", videoName, err)
			failCount++
			continue
		}

		md := fmt.Sprintf("# %s\n\n_%s_\n\n%s\n",
			videoName,
			time.Now().Format("2006-01-02 15:04"),
			summary,
		)

		if err := os.WriteFile(mdPath, []byte(md), 0644); err != nil {
			s.logger.Error(ctx, "Failed to write %s: %v", mdPath, err)
			failCount++
			continue
		}

		s.logger.Info(ctx, "[DONE] %s -> %s", videoName, mdPath)
		successCount++
	}

	s.logger.Info(ctx, "Summary complete: %d success, %d failed", successCount, failCount)
	return nil
}

func discoverSRTFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		if strings.ToLower(filepath.Ext(e.Name())) == ".srt" {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}

	sort.Strings(files)
	return files, nil
}
