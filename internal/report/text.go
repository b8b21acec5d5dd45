package report

import (
	"math"
	"strings"
	"unicode/utf8"

	"github.com/nguyentantai21042004/meetscribe/internal/model"
)

const (
	minKeyPointChars = 20
	longSegmentWords = 50
	noSpeechAt       = "[No speech at this timestamp]"
)

// KeyPoint is a transcript segment worth listing in the report
type KeyPoint struct {
	Timestamp float64
	Summary   string
}

// KeyPoints returns up to max segments whose text is longer than 20
// characters, in transcript order. Long segments are cut to their first
// sentence.
func KeyPoints(segs []model.Segment, max int) []KeyPoint {
	var points []KeyPoint
	for _, seg := range segs {
		if len(points) == max {
			break
		}
		text := strings.TrimSpace(seg.Text)
		if utf8.RuneCountInString(text) <= minKeyPointChars {
			continue
		}
		points = append(points, KeyPoint{Timestamp: seg.Start, Summary: firstSentence(text)})
	}
	return points
}

func firstSentence(text string) string {
	if len(strings.Fields(text)) <= longSegmentWords {
		return text
	}
	sentences := strings.Split(text, ".")
	if len(sentences) <= 2 {
		return text
	}
	return sentences[0] + "..."
}

// TranscriptNear joins the text of every segment starting within window
// seconds of ts, truncated to maxWords
func TranscriptNear(segs []model.Segment, ts, window float64, maxWords int) string {
	var texts []string
	for _, seg := range segs {
		if math.Abs(seg.Start-ts) <= window {
			texts = append(texts, strings.TrimSpace(seg.Text))
		}
	}
	if len(texts) == 0 {
		return noSpeechAt
	}
	return truncateWords(strings.Join(texts, " "), maxWords)
}

func truncateWords(text string, max int) string {
	words := strings.Fields(text)
	if len(words) <= max {
		return strings.TrimSpace(text)
	}
	return strings.Join(words[:max], " ") + "..."
}
