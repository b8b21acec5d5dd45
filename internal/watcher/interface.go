package watcher

import "context"

// Watcher hands every new video dropped into a folder to a handler
type Watcher interface {
	Start(ctx context.Context) error
	Stop() error
}

// EventHandler processes one newly created video file
type EventHandler func(ctx context.Context, filePath string) error
