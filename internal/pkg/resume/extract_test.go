package resume

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubExtractor struct {
	text  string
	err   error
	calls int
}

func (s *stubExtractor) Extract(ctx context.Context, data []byte) (string, error) {
	s.calls++
	return s.text, s.err
}

func TestIsPDF(t *testing.T) {
	pdfHead := []byte("%PDF-1.7\n%âãÏÓ\n")

	assert.True(t, IsPDF("cv.pdf", pdfHead))
	assert.True(t, IsPDF("CV.PDF", pdfHead))
	assert.False(t, IsPDF("cv.docx", pdfHead))
	assert.False(t, IsPDF("cv.pdf", []byte("PK\x03\x04 not a pdf")))
}

func TestPDFExtractor_RejectsGarbage(t *testing.T) {
	_, err := PDFExtractor{}.Extract(context.Background(), []byte("definitely not a pdf"))
	require.Error(t, err)
}

// mislabeledObjectPDF has a well-formed header, xref and trailer, but the
// xref entry for object 1 points at the body of object 2.
func mislabeledObjectPDF() []byte {
	var sb strings.Builder
	sb.WriteString("%PDF-1.4\n")
	objOffset := sb.Len()
	sb.WriteString("2 0 obj\n<< /Type /Catalog /Pages 3 0 R >>\nendobj\n")
	xrefOffset := sb.Len()
	sb.WriteString("xref\n0 2\n")
	sb.WriteString("0000000000 65535 f \n")
	sb.WriteString(fmt.Sprintf("%010d 00000 n \n", objOffset))
	sb.WriteString("trailer\n<< /Size 2 /Root 1 0 R >>\n")
	sb.WriteString(fmt.Sprintf("startxref\n%d\n%%%%EOF\n", xrefOffset))
	return []byte(sb.String())
}

func TestPDFExtractor_BrokenObjectGraph(t *testing.T) {
	data := mislabeledObjectPDF()
	require.True(t, IsPDF("cv.pdf", data))

	var err error
	assert.NotPanics(t, func() {
		_, err = PDFExtractor{MaxPages: 10}.Extract(context.Background(), data)
	})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNoText)
}

func TestBreakerExtractor_BrokenPDFCountsAsFailure(t *testing.T) {
	b := NewBreakerExtractor(PDFExtractor{MaxPages: 10}, BreakerConfig{Name: "test", FailureThreshold: 1, Timeout: time.Minute})

	_, err := b.Extract(context.Background(), mislabeledObjectPDF())
	require.Error(t, err)
	assert.Equal(t, "open", b.State())
}

func TestBreakerExtractor_OpensAfterFailures(t *testing.T) {
	stub := &stubExtractor{err: errors.New("corrupt xref")}
	b := NewBreakerExtractor(stub, BreakerConfig{Name: "test", FailureThreshold: 2, Timeout: time.Minute})

	for i := 0; i < 2; i++ {
		_, err := b.Extract(context.Background(), nil)
		assert.EqualError(t, err, "corrupt xref")
	}
	assert.Equal(t, "open", b.State())

	_, err := b.Extract(context.Background(), nil)
	assert.ErrorIs(t, err, ErrExtractionUnavailable)
	assert.Equal(t, 2, stub.calls)
}

func TestBreakerExtractor_NoTextDoesNotTrip(t *testing.T) {
	stub := &stubExtractor{err: ErrNoText}
	b := NewBreakerExtractor(stub, BreakerConfig{Name: "test", FailureThreshold: 1, Timeout: time.Minute})

	for i := 0; i < 3; i++ {
		_, err := b.Extract(context.Background(), nil)
		assert.ErrorIs(t, err, ErrNoText)
	}
	assert.Equal(t, "closed", b.State())
	assert.Equal(t, 3, stub.calls)
}

func TestBreakerExtractor_PassesText(t *testing.T) {
	b := NewBreakerExtractor(&stubExtractor{text: "Go and AWS"}, BreakerConfig{Name: "test"})

	text, err := b.Extract(context.Background(), []byte("%PDF"))
	require.NoError(t, err)
	assert.Equal(t, "Go and AWS", text)
}
