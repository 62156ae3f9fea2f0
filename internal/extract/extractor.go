// Package extract converts stored upload bytes into plain text usable as
// model input. Every path returns a domain.ExtractionResult; no failure
// escapes as an error or panic.
package extract

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"simplimed/internal/domain"
)

// Router selects an extraction strategy from the file's declared media type.
type Router struct {
	pdf *PDFExtractor
}

// NewRouter creates an extraction Router.
func NewRouter() *Router {
	return &Router{pdf: NewPDFExtractor()}
}

// Extract routes a stored file to the extraction strategy for its declared
// media type.
//
// Image files are never read from disk: they immediately yield an
// image_requires_ocr result, the signal for the caller to run an external
// recognition pass and resubmit the text through the analysis endpoint.
func (r *Router) Extract(path, mediaType string) domain.ExtractionResult {
	log.Printf("extract.Router: extracting %s (%s)", filepath.Base(path), mediaType)

	switch {
	case mediaType == "text/plain":
		data, err := os.ReadFile(path)
		if err != nil {
			return errorResult(fmt.Errorf("reading text file: %w", err))
		}
		log.Printf("extract.Router: read %d characters from text file", len(data))
		return domain.ExtractionResult{
			Success: true,
			Text:    string(data),
			Method:  domain.MethodDirectTextRead,
		}

	case mediaType == "application/pdf":
		data, err := os.ReadFile(path)
		if err != nil {
			return errorResult(fmt.Errorf("reading pdf file: %w", err))
		}
		return r.pdf.Extract(data)

	case strings.HasPrefix(mediaType, "image/"):
		return domain.ExtractionResult{
			Success: false,
			Method:  domain.MethodImageRequiresOCR,
			Message: "requires client-side or external OCR",
		}

	default:
		return domain.ExtractionResult{
			Success: false,
			Method:  domain.MethodUnsupported,
			Message: "Unsupported file type for text extraction",
		}
	}
}

func errorResult(err error) domain.ExtractionResult {
	log.Printf("extract: extraction error: %v", err)
	return domain.ExtractionResult{
		Success: false,
		Method:  domain.MethodError,
		Message: "Text extraction failed: " + err.Error(),
	}
}
