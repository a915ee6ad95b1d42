package documents

import "time"

// ContentCap is the maximum number of characters kept per document.
const ContentCap = 5000

// Document is an extracted, normalized upload held in the corpus.
type Document struct {
	ID         string
	FileName   string
	Content    string
	SizeBytes  int64
	UploadedAt time.Time
}

// Metadata describes a stored document without its content.
type Metadata struct {
	FileName      string
	SizeBytes     int64
	UploadedAt    time.Time
	ContentLength int
}

// Status is the outcome of ingesting a single file.
type Status string

const (
	StatusProcessed Status = "processed"
	StatusError     Status = "error"
)

// FileResult reports what happened to one file of a batch.
type FileResult struct {
	FileName      string
	Status        Status
	SizeBytes     int64
	UploadedAt    time.Time
	ContentLength int
	Err           error
}

// BatchResult holds one FileResult per upload, in received order.
type BatchResult struct {
	Files []FileResult
}

// Failed counts the files that ended in StatusError.
func (b BatchResult) Failed() int {
	n := 0
	for _, f := range b.Files {
		if f.Status == StatusError {
			n++
		}
	}
	return n
}
