package resume

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/ledongthuc/pdf"
	gobreaker "github.com/sony/gobreaker/v2"
)

var (
	// ErrNoText is returned for PDFs without an extractable text layer
	ErrNoText = errors.New("no extractable text in document")
	// ErrExtractionUnavailable is returned while the breaker is open
	ErrExtractionUnavailable = errors.New("resume extraction temporarily unavailable")
)

// Extractor turns an uploaded document into plain text
type Extractor interface {
	Extract(ctx context.Context, data []byte) (string, error)
}

// IsPDF checks both the file extension and the leading bytes
func IsPDF(fileName string, head []byte) bool {
	if !strings.EqualFold(filepath.Ext(fileName), ".pdf") {
		return false
	}
	return http.DetectContentType(head) == "application/pdf"
}

// PDFExtractor reads the text layer of a PDF
type PDFExtractor struct {
	MaxPages int
}

// Extract concatenates the plain text of up to MaxPages pages. The pdf
// reader panics on broken object graphs; those come back as errors.
func (e PDFExtractor) Extract(ctx context.Context, data []byte) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			text, err = "", fmt.Errorf("parse pdf: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}

	pages := reader.NumPage()
	if e.MaxPages > 0 && pages > e.MaxPages {
		pages = e.MaxPages
	}

	var sb strings.Builder
	for i := 1; i <= pages; i++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("read page %d: %w", i, err)
		}
		sb.WriteString(pageText)
		sb.WriteByte('\n')
	}

	out := strings.TrimSpace(sb.String())
	if out == "" {
		return "", ErrNoText
	}
	return out, nil
}

// BreakerConfig tunes the extraction circuit breaker
type BreakerConfig struct {
	Name             string
	FailureThreshold uint32
	Timeout          time.Duration
	OnStateChange    func(name string, from, to gobreaker.State)
}

// BreakerExtractor stops calling a failing extractor until Timeout elapses
type BreakerExtractor struct {
	next Extractor
	cb   *gobreaker.CircuitBreaker[string]
}

// NewBreakerExtractor wraps next with a circuit breaker
func NewBreakerExtractor(next Extractor, cfg BreakerConfig) *BreakerExtractor {
	if cfg.FailureThreshold == 0 {
		cfg.FailureThreshold = 5
	}
	settings := gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: 1,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.FailureThreshold
		},
		// An image-only PDF is the document's fault, not the extractor's
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, ErrNoText)
		},
		OnStateChange: cfg.OnStateChange,
	}
	return &BreakerExtractor{
		next: next,
		cb:   gobreaker.NewCircuitBreaker[string](settings),
	}
}

// Extract runs the wrapped extractor through the breaker
func (b *BreakerExtractor) Extract(ctx context.Context, data []byte) (string, error) {
	text, err := b.cb.Execute(func() (string, error) {
		return b.next.Extract(ctx, data)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return "", ErrExtractionUnavailable
	}
	return text, err
}

// State reports the breaker state for health output
func (b *BreakerExtractor) State() string {
	return b.cb.State().String()
}
