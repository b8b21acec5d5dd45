package subtitle

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nguyentantai21042004/meetscribe/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		seconds float64
		want    string
	}{
		{0, "00:00:00,000"},
		{1.5, "00:00:01,500"},
		{61.001, "00:01:01,001"},
		{3725.25, "01:02:05,250"},
		{-3, "00:00:00,000"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := Format(tt.seconds); got != tt.want {
				t.Errorf("Format(%v) = %q, want %q", tt.seconds, got, tt.want)
			}
		})
	}
}

func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	err := Write(&buf, []model.Segment{
		{Start: 0, End: 2.5, Text: "  Hello everyone  "},
		{Start: 2.5, End: 4, Text: "line one\nline two"},
	})
	require.NoError(t, err)

	want := "1\n00:00:00,000 --> 00:00:02,500\nHello everyone\n\n" +
		"2\n00:00:02,500 --> 00:00:04,000\nline one line two\n\n"
	assert.Equal(t, want, buf.String())
}

func TestWritePlaceholder(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, nil))

	assert.Equal(t, "1\n00:00:00,000 --> 00:00:05,000\n[No speech detected in video]\n\n", buf.String())
}

func TestParse(t *testing.T) {
	raw := "\ufeff1\r\n00:00:01,000 --> 00:00:03,200\r\nFirst cue\r\n\r\n" +
		"2\n00:00:03.200 --> 00:00:05.000\nsecond\ncue\n\n" +
		"3\n00:00:06,000 --> 00:00:07,000\n\n"

	segs, err := Parse(strings.NewReader(raw))
	require.NoError(t, err)
	require.Len(t, segs, 2)

	assert.Equal(t, model.Segment{Start: 1, End: 3.2, Text: "First cue"}, segs[0])
	assert.Equal(t, model.Segment{Start: 3.2, End: 5, Text: "second cue"}, segs[1])
}

func TestWriteFileThenParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "talk.srt")
	in := []model.Segment{{Start: 0.5, End: 1.25, Text: "short"}, {Start: 90, End: 95.5, Text: "later"}}

	require.NoError(t, WriteFile(path, in))
	out, err := ParseFile(path)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestPlainText(t *testing.T) {
	segs := []model.Segment{
		{Start: 0, End: 1, Text: " hello\nteam "},
		{Start: 1, End: 2, Text: ""},
		{Start: 2, End: 3, Text: "next item"},
	}
	assert.Equal(t, "hello team\nnext item", PlainText(segs))
	assert.Empty(t, PlainText([]model.Segment{{Start: 0, End: 5, Text: PlaceholderText}}))
}
