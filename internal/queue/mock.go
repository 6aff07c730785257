package queue

import (
	"context"
	"sync"
)

// MockEnqueuer records enqueued payloads instead of touching Redis.
type MockEnqueuer struct {
	mu         sync.Mutex
	Thumbnails []ThumbnailPayload
	Welcomes   []WelcomePayload

	// Err, when set, is returned by every enqueue call.
	Err error
}

func (m *MockEnqueuer) EnqueueThumbnail(ctx context.Context, p ThumbnailPayload) error {
	if m.Err != nil {
		return m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Thumbnails = append(m.Thumbnails, p)
	return nil
}

func (m *MockEnqueuer) EnqueueWelcome(ctx context.Context, p WelcomePayload) error {
	if m.Err != nil {
		return m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Welcomes = append(m.Welcomes, p)
	return nil
}
