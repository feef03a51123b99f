package service

import (
	"context"
	"log"
	"strings"

	"screenguard/internal/domain"
	"screenguard/internal/port"
)

const (
	ocrSnippetLen  = 500
	textSnippetLen = 200
)

// PipelineService runs one staged screenshot through the full pipeline:
// OCR, structured LLM extraction, and the downstream classifier dispatches.
type PipelineService interface {
	ProcessScreenshot(ctx context.Context, imagePath string) (*domain.PipelineResponse, error)
}

type pipelineService struct {
	ocr      port.TextExtractor
	records  port.RecordExtractor
	spam     port.SpamClassifier
	phishing port.PhishingClassifier
}

// NewPipelineService creates a PipelineService from its stage collaborators.
func NewPipelineService(
	ocr port.TextExtractor,
	records port.RecordExtractor,
	spam port.SpamClassifier,
	phishing port.PhishingClassifier,
) PipelineService {
	return &pipelineService{
		ocr:      ocr,
		records:  records,
		spam:     spam,
		phishing: phishing,
	}
}

// ProcessScreenshot sequences the stages. OCR and extraction failures abort
// the request with the stage's error and nothing after them runs. The two
// dispatch stages never fail the request: their failures are recorded as
// per-item outcome data and the merged response is still returned.
func (s *pipelineService) ProcessScreenshot(ctx context.Context, imagePath string) (*domain.PipelineResponse, error) {
	ocrText, err := s.ocr.ExtractText(ctx, imagePath)
	if err != nil {
		return nil, err
	}

	record, err := s.records.Extract(ctx, ocrText)
	if err != nil {
		return nil, err
	}

	resp := &domain.PipelineResponse{
		OCRTextSnippet:  domain.Snippet(ocrText, ocrSnippetLen),
		Extraction:      *record,
		SpamResults:     []domain.SpamResult{},
		PhishingResults: []domain.PhishingResult{},
	}

	if record.ContainsText && strings.TrimSpace(record.MessageText) != "" {
		log.Printf("pipeline: message text detected, dispatching to spam classifier")
		outcome := s.spam.Check(ctx, record.MessageText)
		resp.SpamResults = append(resp.SpamResults, domain.SpamResult{
			AnalyzedTextSnippet: domain.Snippet(record.MessageText, textSnippetLen),
			DetectionResult:     outcome,
		})
	}

	if record.ContainsURLs {
		for _, u := range record.ExtractedURLs {
			if u.URL == "" {
				continue
			}
			resp.PhishingResults = append(resp.PhishingResults, domain.PhishingResult{
				URL:             u.URL,
				DetectionResult: s.phishing.Check(ctx, u.URL),
			})
		}
	}

	return resp, nil
}
