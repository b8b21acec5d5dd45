package caption

import "context"

// semaphore bounds the number of concurrent ffmpeg encodes
type semaphore chan struct{}

func newSemaphore(capacity int) semaphore {
	return make(semaphore, capacity)
}

// acquire blocks until a slot is free and returns the func releasing it
func (s semaphore) acquire(ctx context.Context) (func(), error) {
	select {
	case s <- struct{}{}:
		return func() { <-s }, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// busy returns the number of slots currently held
func (s semaphore) busy() int {
	return len(s)
}
