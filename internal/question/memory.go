package question

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryRepository is a process-lifetime Repository. It backs
// `serve --store memory` and tests that need a healthy store.
type MemoryRepository struct {
	mu        sync.RWMutex
	questions []Question
	now       func() time.Time
}

// NewMemoryRepository creates an empty MemoryRepository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{now: time.Now}
}

func (m *MemoryRepository) Insert(ctx context.Context, q Question) (Question, error) {
	if err := ctx.Err(); err != nil {
		return Question{}, err
	}

	q.ID = uuid.New().String()
	q.CreatedAt = m.now().UTC()

	m.mu.Lock()
	defer m.mu.Unlock()
	m.questions = append(m.questions, q)
	return q, nil
}

func (m *MemoryRepository) Find(ctx context.Context, trackKey string) ([]Question, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	trackKey = NormalizeTrack(trackKey)

	m.mu.RLock()
	defer m.mu.RUnlock()

	out := []Question{}
	for _, q := range m.questions {
		if trackKey == "" || q.TrackKey() == trackKey {
			out = append(out, q)
		}
	}
	return out, nil
}
