package executor

import (
	"context"
	"io"
)

// Executor defines the interface for executing external commands
type Executor interface {
	Execute(ctx context.Context, name string, args ...string) (string, error)
	ExecuteInDir(ctx context.Context, dir string, name string, args ...string) (string, error)
	Stream(ctx context.Context, name string, args ...string) (Process, error)
}

// Process is a running command whose stdout is consumed incrementally.
// Wait must be called once the stream is drained; Kill aborts a stream
// that is abandoned early.
type Process interface {
	Stdout() io.Reader
	Wait() error
	Kill() error
}
