package store

import (
	"context"
	"errors"
	"sync"

	"github.com/inamate/geokernel/internal/document"
)

// Memory holds documents in process. The playground project lives here.
type Memory struct {
	mu   sync.RWMutex
	docs map[string]*document.InDocument
}

func NewMemory() *Memory {
	return &Memory{docs: make(map[string]*document.InDocument)}
}

func (m *Memory) Put(projectID string, doc *document.InDocument) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.docs[projectID] = doc
}

func (m *Memory) LatestDocument(_ context.Context, projectID string) (*document.InDocument, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	doc, ok := m.docs[projectID]
	if !ok {
		return nil, ErrNotFound
	}
	return doc, nil
}

// Chain asks each loader in order and returns the first document found.
type Chain []Loader

func (c Chain) LatestDocument(ctx context.Context, projectID string) (*document.InDocument, error) {
	for _, l := range c {
		doc, err := l.LatestDocument(ctx, projectID)
		if errors.Is(err, ErrNotFound) {
			continue
		}
		return doc, err
	}
	return nil, ErrNotFound
}
