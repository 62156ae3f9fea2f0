package extract

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"

	"simplimed/internal/domain"
)

// PDFExtractor extracts the embedded text layer from PDF bytes.
type PDFExtractor struct{}

// NewPDFExtractor creates a PDFExtractor.
func NewPDFExtractor() *PDFExtractor {
	return &PDFExtractor{}
}

// Extract parses the PDF and returns its concatenated text. A document that
// parses cleanly but yields no text after trimming is a scan, not a parse
// failure: callers must branch on success=false with method=pdf_parse to
// route such documents toward OCR instead of aborting.
func (e *PDFExtractor) Extract(data []byte) (result domain.ExtractionResult) {
	// ledongthuc/pdf panics on some malformed inputs; keep that contained.
	defer func() {
		if rec := recover(); rec != nil {
			result = errorResult(fmt.Errorf("pdf parse: %v", rec))
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return errorResult(fmt.Errorf("pdf parse: %w", err))
	}

	textReader, err := reader.GetPlainText()
	if err != nil {
		return errorResult(fmt.Errorf("pdf text extraction: %w", err))
	}

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(textReader); err != nil {
		return errorResult(fmt.Errorf("reading pdf text: %w", err))
	}

	text := buf.String()
	if strings.TrimSpace(text) == "" {
		return domain.ExtractionResult{
			Success: false,
			Method:  domain.MethodPDFParse,
			Message: "scanned/image-based PDF; OCR required",
		}
	}

	return domain.ExtractionResult{
		Success: true,
		Text:    text,
		Method:  domain.MethodPDFParse,
	}
}
