package report

import (
	"context"

	"github.com/nguyentantai21042004/meetscribe/internal/model"
	"github.com/nguyentantai21042004/meetscribe/internal/scene"
)

// Input is everything a report is assembled from
type Input struct {
	VideoPath string
	Events    []scene.Event
	Segments  []model.Segment
	// Summary is optional markdown rendered under its own heading
	Summary string
}

// Builder writes the meeting document for one processed video
type Builder interface {
	// Build writes <reports>/<stem>_report.docx and <stem>_events.json and
	// returns the docx path
	Build(ctx context.Context, in Input) (string, error)
}
