package documents

import (
	"context"
	"sync"
	"unicode/utf8"
)

// MemoryStore is an in-memory implementation of Store. Contents live until
// the process exits.
type MemoryStore struct {
	mu   sync.RWMutex
	docs []Document
}

// NewMemoryStore constructs a MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Append adds doc to the end of the corpus.
func (s *MemoryStore) Append(ctx context.Context, doc Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs = append(s.docs, doc)
	return nil
}

// ListMetadata returns metadata for every document in insertion order.
func (s *MemoryStore) ListMetadata(ctx context.Context) ([]Metadata, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Metadata, 0, len(s.docs))
	for _, doc := range s.docs {
		out = append(out, Metadata{
			FileName:      doc.FileName,
			SizeBytes:     doc.SizeBytes,
			UploadedAt:    doc.UploadedAt,
			ContentLength: utf8.RuneCountInString(doc.Content),
		})
	}
	return out, nil
}

// AllContent returns every document's content in insertion order.
func (s *MemoryStore) AllContent(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]string, 0, len(s.docs))
	for _, doc := range s.docs {
		out = append(out, doc.Content)
	}
	return out, nil
}

// FileNames returns every document's file name in insertion order.
func (s *MemoryStore) FileNames(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]string, 0, len(s.docs))
	for _, doc := range s.docs {
		out = append(out, doc.FileName)
	}
	return out, nil
}
