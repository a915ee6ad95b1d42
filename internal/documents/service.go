package documents

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"das-backend/internal/extract"
	"das-backend/internal/shared/metrics"
	"das-backend/internal/shared/storage/object"
	"das-backend/internal/shared/telemetry"
)

// Upload is one file received for ingestion.
type Upload struct {
	FileName string
	Open     func() (io.ReadCloser, error)
}

// Service ingests uploads into the document store.
type Service struct {
	Store      Store
	Staging    object.ObjectStore
	Extractors *extract.Registry
	Now        func() time.Time
}

// IngestBatch processes uploads sequentially in received order. A file that
// fails is reported in its FileResult and never stops the rest of the batch.
// An error is returned only when the store rejects an append. Ingestion runs
// to completion even if the caller's context is canceled.
func (s *Service) IngestBatch(ctx context.Context, uploads []Upload) (BatchResult, error) {
	if len(uploads) == 0 {
		return BatchResult{}, ErrNoFiles
	}
	ctx = context.WithoutCancel(ctx)

	result := BatchResult{Files: make([]FileResult, 0, len(uploads))}
	for _, up := range uploads {
		fr, err := s.ingestOne(ctx, up)
		if err != nil {
			return result, err
		}
		result.Files = append(result.Files, fr)
	}
	return result, nil
}

// List returns metadata for every stored document in insertion order.
func (s *Service) List(ctx context.Context) ([]Metadata, error) {
	return s.Store.ListMetadata(ctx)
}

func (s *Service) ingestOne(ctx context.Context, up Upload) (FileResult, error) {
	start := time.Now()

	format, err := extract.Detect(up.FileName)
	if err != nil {
		return s.failed(up.FileName, err), nil
	}

	data, err := s.stage(ctx, up)
	if err != nil {
		return s.failed(up.FileName, err), nil
	}

	text, err := s.Extractors.Extract(ctx, format, data)
	if err != nil {
		return s.failed(up.FileName, err), nil
	}

	content := truncate(extract.Normalize(text), ContentCap)
	doc := Document{
		ID:         uuid.NewString(),
		FileName:   up.FileName,
		Content:    content,
		SizeBytes:  int64(len(data)),
		UploadedAt: s.now(),
	}
	if err := s.Store.Append(ctx, doc); err != nil {
		return FileResult{}, fmt.Errorf("append %q: %w", up.FileName, err)
	}

	contentLength := utf8.RuneCountInString(content)
	metrics.IncFileProcessed()
	metrics.ObserveExtractionDurationMs(float64(time.Since(start).Microseconds()) / 1000.0)
	telemetry.Info("upload.file.processed", map[string]any{
		"document_id":    doc.ID,
		"file_name":      up.FileName,
		"format":         string(format),
		"size_bytes":     doc.SizeBytes,
		"content_length": contentLength,
	})

	return FileResult{
		FileName:      up.FileName,
		Status:        StatusProcessed,
		SizeBytes:     doc.SizeBytes,
		UploadedAt:    doc.UploadedAt,
		ContentLength: contentLength,
	}, nil
}

// stage copies the upload into the staging store and reads it back. The
// staged object is deleted before stage returns, whatever the outcome.
func (s *Service) stage(ctx context.Context, up Upload) ([]byte, error) {
	src, err := up.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	if s.Staging == nil {
		return io.ReadAll(src)
	}

	key, _, err := s.Staging.Save(ctx, up.FileName, src)
	if err != nil {
		return nil, fmt.Errorf("stage upload: %w", err)
	}
	defer s.release(key)

	rc, err := s.Staging.Open(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("open staged upload: %w", err)
	}
	defer rc.Close()

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, rc); err != nil {
		return nil, fmt.Errorf("read staged upload: %w", err)
	}
	return buf.Bytes(), nil
}

func (s *Service) release(key string) {
	if err := s.Staging.Delete(context.Background(), key); err != nil {
		telemetry.Warn("upload.staging.release_failed", map[string]any{
			"storage_key": key,
			"error":       err,
		})
	}
}

func (s *Service) failed(fileName string, err error) FileResult {
	metrics.IncFileFailed()
	telemetry.Warn("upload.file.failed", map[string]any{
		"file_name": fileName,
		"error":     err,
	})
	return FileResult{
		FileName: fileName,
		Status:   StatusError,
		Err:      err,
	}
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

// truncate keeps at most n characters of text.
func truncate(text string, n int) string {
	if utf8.RuneCountInString(text) <= n {
		return text
	}
	count := 0
	for i := range text {
		if count == n {
			return text[:i]
		}
		count++
	}
	return text
}
