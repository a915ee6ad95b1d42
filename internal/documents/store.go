package documents

import "context"

// Store is the append-only document corpus.
type Store interface {
	Append(ctx context.Context, doc Document) error
	ListMetadata(ctx context.Context) ([]Metadata, error)
	AllContent(ctx context.Context) ([]string, error)
	FileNames(ctx context.Context) ([]string, error)
}
