package domain

// ExtractionMethod identifies which extraction path produced a result.
type ExtractionMethod string

const (
	MethodDirectTextRead   ExtractionMethod = "direct_text_read"
	MethodPDFParse         ExtractionMethod = "pdf_parse"
	MethodImageRequiresOCR ExtractionMethod = "image_requires_ocr"
	MethodUnsupported      ExtractionMethod = "unsupported"
	MethodError            ExtractionMethod = "error"
)

// Severity classifies a report parameter in patient-facing terms.
type Severity string

const (
	SeverityNormal     Severity = "normal"
	SeverityBorderline Severity = "borderline"
	SeverityAbnormal   Severity = "abnormal"
)

// Confidence is the model's stated confidence for a parameter. The
// presentation layer also tolerates percentage strings, so this stays a plain
// string type rather than a closed set.
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// AllowedContentTypes lists the declared media types accepted for upload.
// image/jpg is a common browser alias for image/jpeg.
var AllowedContentTypes = map[string]bool{
	"text/plain":      true,
	"application/pdf": true,
	"image/jpeg":      true,
	"image/jpg":       true,
	"image/png":       true,
}
