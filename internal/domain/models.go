package domain

import (
	"time"

	"github.com/google/uuid"
)

// ExtractionResult is the uniform envelope returned by every extraction path.
// Success=true implies Method is direct_text_read or pdf_parse; it does NOT
// guarantee Text is non-empty. Method=image_requires_ocr is a routing signal
// to the caller, not a failure.
type ExtractionResult struct {
	Success bool             `json:"success"`
	Text    string           `json:"text"`
	Method  ExtractionMethod `json:"method"`
	Message string           `json:"message,omitempty"`
}

// AnalysisParameter is one simplified test value from the report.
type AnalysisParameter struct {
	Parameter      string     `json:"parameter"`
	OriginalValue  string     `json:"original_value"`
	NormalRange    string     `json:"normal_range"`
	Interpretation string     `json:"interpretation"`
	Severity       Severity   `json:"severity"`
	Confidence     Confidence `json:"confidence"`
}

// AnalysisResult is the structured interpretation of a report. Parameters and
// Recommendations are always present (empty slices, never null) so the
// consuming layer needn't special-case the shape. Degraded marks the fallback
// produced when the model's output could not be parsed; RawResponse carries
// the unparsed model text in that case only.
type AnalysisResult struct {
	Summary         string              `json:"summary"`
	Parameters      []AnalysisParameter `json:"parameters"`
	Recommendations []string            `json:"recommendations"`
	Disclaimer      string              `json:"disclaimer"`
	Degraded        bool                `json:"degraded"`
	RawResponse     string              `json:"raw_response,omitempty"`
}

// Normalize replaces nil sequences with empty ones.
func (a *AnalysisResult) Normalize() {
	if a.Parameters == nil {
		a.Parameters = []AnalysisParameter{}
	}
	if a.Recommendations == nil {
		a.Recommendations = []string{}
	}
}

// AnalysisEnvelope is the HTTP-facing shape for POST /api/analyze.
type AnalysisEnvelope struct {
	Success    bool            `json:"success"`
	Analysis   *AnalysisResult `json:"analysis,omitempty"`
	TokensUsed int             `json:"tokensUsed"`
	Timestamp  string          `json:"timestamp,omitempty"`
	Error      string          `json:"error,omitempty"`
	Message    string          `json:"message,omitempty"`
}

// Upload describes a file persisted to transient storage. Value object,
// request-scoped; only the file on disk outlives the request.
type Upload struct {
	OriginalName string
	StoredName   string
	SizeBytes    int64
	ContentType  string
	StoragePath  string
	UploadedAt   time.Time
	Extraction   ExtractionResult
}

// UploadEnvelope is the HTTP-facing shape for POST /api/upload.
type UploadEnvelope struct {
	Success    bool             `json:"success"`
	Message    string           `json:"message"`
	Filename   string           `json:"filename"`
	SavedAs    string           `json:"savedAs"`
	Size       int64            `json:"size"`
	Type       string           `json:"type"`
	UploadTime string           `json:"uploadTime"`
	Extraction ExtractionResult `json:"extraction"`
}

// UploadRecord is the optional uploads-log row. Metadata only: stored names,
// sizes and extraction outcome, never extracted text.
type UploadRecord struct {
	ID                uuid.UUID        `db:"id"`
	OriginalName      string           `db:"original_name"`
	StoredName        string           `db:"stored_name"`
	SizeBytes         int64            `db:"size_bytes"`
	ContentType       string           `db:"content_type"`
	ExtractionMethod  ExtractionMethod `db:"extraction_method"`
	ExtractionSuccess bool             `db:"extraction_success"`
	UploadedAt        time.Time        `db:"uploaded_at"`
}
