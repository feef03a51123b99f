package domain

import "strings"

// ExtractedURL is a single URL found in OCR text, corrected for common OCR
// corruption, optionally paired with the snippet it was found in.
type ExtractedURL struct {
	URL             string `json:"url"`
	OriginalSnippet string `json:"original_ocr_snippet,omitempty"`
}

// ExtractionRecord is the structured result of LLM analysis of OCR text.
//
// ContainsURLs and ContainsText are always derived from the actual values of
// ExtractedURLs and MessageText; the model's own booleans are never trusted.
type ExtractionRecord struct {
	ExtractedURLs []ExtractedURL `json:"extracted_urls"`
	MessageText   string         `json:"message_text"`
	ContainsURLs  bool           `json:"contains_urls"`
	ContainsText  bool           `json:"contains_text"`
}

// EmptyExtractionRecord returns the canonical record for blank OCR input:
// no URLs, empty message, both flags false.
func EmptyExtractionRecord() *ExtractionRecord {
	return &ExtractionRecord{ExtractedURLs: []ExtractedURL{}}
}

// Reconcile re-derives the boolean flags from the actual slice and string
// values and normalizes a nil URL slice to an empty one.
func (r *ExtractionRecord) Reconcile() {
	if r.ExtractedURLs == nil {
		r.ExtractedURLs = []ExtractedURL{}
	}
	r.ContainsURLs = len(r.ExtractedURLs) > 0
	r.ContainsText = strings.TrimSpace(r.MessageText) != ""
}

// DispatchOutcome is the uniform result of handing text or a URL to a
// downstream classifier: either the provider's payload passed through as-is,
// or an {"error": ...} record for a local failure.
type DispatchOutcome map[string]any

// ErrorOutcome wraps a local dispatch failure as outcome data.
func ErrorOutcome(msg string) DispatchOutcome {
	return DispatchOutcome{"error": msg}
}

// IsError reports whether the outcome describes a local dispatch failure.
func (o DispatchOutcome) IsError() bool {
	_, ok := o["error"]
	return ok
}

// SpamResult pairs the analyzed text with the classifier's outcome.
type SpamResult struct {
	AnalyzedTextSnippet string          `json:"analyzed_text_snippet"`
	DetectionResult     DispatchOutcome `json:"detection_result"`
}

// PhishingResult pairs one extracted URL with its classifier outcome.
type PhishingResult struct {
	URL             string          `json:"url"`
	DetectionResult DispatchOutcome `json:"detection_result"`
}

// PipelineResponse is the per-request aggregate of all pipeline stages.
type PipelineResponse struct {
	OCRTextSnippet  string           `json:"ocr_output_snippet"`
	Extraction      ExtractionRecord `json:"llm_extraction"`
	SpamResults     []SpamResult     `json:"spam_detection_results"`
	PhishingResults []PhishingResult `json:"phishing_detection_results"`
}

// Snippet returns s truncated to maxLen characters, with an ellipsis marker
// when truncation occurred.
func Snippet(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
