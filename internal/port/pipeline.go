package port

import (
	"context"

	"screenguard/internal/domain"
)

// TextExtractor abstracts the OCR engine: raster image on disk in, raw text out.
type TextExtractor interface {
	ExtractText(ctx context.Context, imagePath string) (string, error)
}

// RecordExtractor abstracts LLM-based structured extraction of OCR text.
type RecordExtractor interface {
	Extract(ctx context.Context, ocrText string) (*domain.ExtractionRecord, error)
}

// SpamClassifier hands message text to a downstream spam classifier.
// Failures are returned as outcome data, never as an error.
type SpamClassifier interface {
	Check(ctx context.Context, text string) domain.DispatchOutcome
}

// PhishingClassifier classifies a single extracted URL. One outcome per URL,
// independent of the others, so a real classifier can replace the stub without
// touching the orchestrator.
type PhishingClassifier interface {
	Check(ctx context.Context, url string) domain.DispatchOutcome
}
