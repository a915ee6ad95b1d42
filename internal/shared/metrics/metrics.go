package metrics

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/gin-gonic/gin"
)

var (
	filesProcessedTotal atomic.Uint64
	filesFailedTotal    atomic.Uint64
	chatAnsweredTotal   atomic.Uint64
	chatFallbackTotal   atomic.Uint64
	chatFailedTotal     atomic.Uint64

	extractionDuration = newHistogram([]float64{5, 25, 100, 250, 500, 1000, 2500, 5000})
	generationDuration = newHistogram([]float64{100, 250, 500, 1000, 2000, 5000, 10000, 30000, 60000})
)

// IncFileProcessed counts an uploaded file that reached the document store.
func IncFileProcessed() {
	filesProcessedTotal.Add(1)
}

// IncFileFailed counts an uploaded file rejected during detection or extraction.
func IncFileFailed() {
	filesFailedTotal.Add(1)
}

// IncChatAnswered counts a chat answered by the generation backend.
func IncChatAnswered() {
	chatAnsweredTotal.Add(1)
}

// IncChatFallback counts a chat answered with the canned fallback message.
func IncChatFallback() {
	chatFallbackTotal.Add(1)
}

// IncChatFailed counts a chat whose generation failure was returned to the caller.
func IncChatFailed() {
	chatFailedTotal.Add(1)
}

// ObserveExtractionDurationMs records one file's extraction time.
func ObserveExtractionDurationMs(value float64) {
	extractionDuration.Observe(clamp(value))
}

// ObserveGenerationDurationMs records one generation call's latency.
func ObserveGenerationDurationMs(value float64) {
	generationDuration.Observe(clamp(value))
}

func clamp(value float64) float64 {
	if value < 0 {
		return 0
	}
	return value
}

// Handler exposes metrics in Prometheus text format.
func Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Content-Type", "text/plain; version=0.0.4")
		c.String(http.StatusOK, Render())
	}
}

// Render renders metrics in Prometheus text format.
func Render() string {
	var buf bytes.Buffer
	writeCounter(&buf, "das_files_processed_total", "Uploaded files stored as documents", filesProcessedTotal.Load())
	writeCounter(&buf, "das_files_failed_total", "Uploaded files rejected during detection or extraction", filesFailedTotal.Load())
	writeCounter(&buf, "das_chat_answered_total", "Chats answered by the generation backend", chatAnsweredTotal.Load())
	writeCounter(&buf, "das_chat_fallback_total", "Chats answered with the fallback message", chatFallbackTotal.Load())
	writeCounter(&buf, "das_chat_failed_total", "Chats that returned a generation error", chatFailedTotal.Load())
	writeHistogram(&buf, "das_extraction_duration_ms", "Per-file extraction duration in milliseconds", extractionDuration.Snapshot())
	writeHistogram(&buf, "das_generation_duration_ms", "Generation call duration in milliseconds", generationDuration.Snapshot())
	return buf.String()
}

type histogram struct {
	mu      sync.Mutex
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

type histogramSnapshot struct {
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

func newHistogram(buckets []float64) *histogram {
	return &histogram{
		buckets: buckets,
		counts:  make([]uint64, len(buckets)),
	}
}

func (h *histogram) Observe(value float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.count++
	h.sum += value
	// Counts are per-bucket; writeHistogram accumulates them.
	for i, bound := range h.buckets {
		if value <= bound {
			h.counts[i]++
			break
		}
	}
}

func (h *histogram) Snapshot() histogramSnapshot {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := histogramSnapshot{
		buckets: append([]float64(nil), h.buckets...),
		counts:  append([]uint64(nil), h.counts...),
		sum:     h.sum,
		count:   h.count,
	}
	return out
}

func writeCounter(buf *bytes.Buffer, name, help string, value uint64) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s counter\n", name)
	fmt.Fprintf(buf, "%s %d\n", name, value)
}

func writeHistogram(buf *bytes.Buffer, name, help string, snap histogramSnapshot) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s histogram\n", name)
	var cumulative uint64
	for i, bound := range snap.buckets {
		cumulative += snap.counts[i]
		fmt.Fprintf(buf, "%s_bucket{le=\"%s\"} %d\n", name, formatFloat(bound), cumulative)
	}
	fmt.Fprintf(buf, "%s_bucket{le=\"+Inf\"} %d\n", name, snap.count)
	fmt.Fprintf(buf, "%s_sum %s\n", name, formatFloat(snap.sum))
	fmt.Fprintf(buf, "%s_count %d\n", name, snap.count)
}

func formatFloat(value float64) string {
	if value == float64(int64(value)) {
		return strconv.FormatInt(int64(value), 10)
	}
	return strconv.FormatFloat(value, 'f', -1, 64)
}
