package processor

import (
	"context"
	"time"

	"github.com/nguyentantai21042004/meetscribe/internal/metrics"
	"github.com/nguyentantai21042004/meetscribe/internal/tracing"
	"go.opentelemetry.io/otel/codes"
)

// stage runs fn inside a span named after the stage and records its duration
func (p *implProcessor) stage(ctx context.Context, name string, fn func(ctx context.Context) error) error {
	ctx, span := tracing.Tracer().Start(ctx, "pipeline."+name)
	defer span.End()

	start := time.Now()
	err := fn(ctx)
	metrics.StageDuration.WithLabelValues(name).Observe(time.Since(start).Seconds())

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return err
}
