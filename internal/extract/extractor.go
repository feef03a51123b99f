package extract

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"screenguard/internal/config"
	"screenguard/internal/domain"
)

const apiBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// Extractor implements port.RecordExtractor using Google's Gemini API.
type Extractor struct {
	apiKey           string
	model            string
	generateEndpoint string
	modelsEndpoint   string
	maxInputChars    int
	client           *http.Client
}

// NewExtractor creates a Gemini-based record extractor.
func NewExtractor(cfg *config.LLMConfig) *Extractor {
	return newExtractor(cfg, "", "")
}

// NewExtractorWithEndpoints creates an extractor pointing at custom API
// endpoints (for testing).
func NewExtractorWithEndpoints(cfg *config.LLMConfig, generateEndpoint, modelsEndpoint string) *Extractor {
	return newExtractor(cfg, generateEndpoint, modelsEndpoint)
}

func newExtractor(cfg *config.LLMConfig, generateEndpoint, modelsEndpoint string) *Extractor {
	model := cfg.Model
	if model == "" {
		model = "gemini-1.5-flash"
	}
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout == 0 {
		timeout = 60 * time.Second
	}
	maxInput := cfg.MaxInputChars
	if maxInput <= 0 {
		maxInput = 16000
	}
	if generateEndpoint == "" {
		generateEndpoint = fmt.Sprintf("%s/models/%s:generateContent", apiBaseURL, model)
	}
	if modelsEndpoint == "" {
		modelsEndpoint = apiBaseURL + "/models"
	}
	return &Extractor{
		apiKey:           cfg.APIKey,
		model:            model,
		generateEndpoint: generateEndpoint,
		modelsEndpoint:   modelsEndpoint,
		maxInputChars:    maxInput,
		client:           &http.Client{Timeout: timeout},
	}
}

// Extract asks the model to split ocrText into URLs and message content.
//
// Blank input short-circuits to the canonical empty record without a network
// call. Over-long input is truncated to the configured bound before
// prompting. Transport and API errors surface as domain.ErrModelUnreachable;
// an unparseable reply surfaces as domain.ErrModelOutputMalformed. Neither is
// retried.
func (e *Extractor) Extract(ctx context.Context, ocrText string) (*domain.ExtractionRecord, error) {
	if strings.TrimSpace(ocrText) == "" {
		return domain.EmptyExtractionRecord(), nil
	}
	if len(ocrText) > e.maxInputChars {
		log.Printf("extract: truncating OCR text from %d to %d chars", len(ocrText), e.maxInputChars)
		ocrText = ocrText[:e.maxInputChars]
	}

	prompt := BuildExtractionPrompt(ocrText)

	// Low-randomness decoding: literal extraction, not rephrasing.
	reqBody := map[string]interface{}{
		"contents": []map[string]interface{}{
			{
				"role": "user",
				"parts": []map[string]interface{}{
					{"text": prompt},
				},
			},
		},
		"generationConfig": map[string]interface{}{
			"temperature":     0.1,
			"topP":            0.95,
			"topK":            40,
			"maxOutputTokens": 1024,
		},
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.generateEndpoint, bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", e.apiKey)

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: calling gemini API: %v", domain.ErrModelUnreachable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading response: %v", domain.ErrModelUnreachable, err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: gemini API status %d: %s",
			domain.ErrModelUnreachable, resp.StatusCode, domain.Snippet(string(respBody), 500))
	}

	text, err := replyText(respBody)
	if err != nil {
		return nil, err
	}
	return DecodeRecord(text)
}

// geminiResponse models the Gemini generateContent response.
type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
		FinishReason string `json:"finishReason"`
	} `json:"candidates"`
}

func replyText(body []byte) (string, error) {
	var resp geminiResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("%w: unmarshaling response: %v", domain.ErrModelOutputMalformed, err)
	}
	if len(resp.Candidates) == 0 {
		return "", fmt.Errorf("%w: empty reply: no candidates", domain.ErrModelOutputMalformed)
	}
	if len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("%w: empty reply: no parts", domain.ErrModelOutputMalformed)
	}
	return resp.Candidates[0].Content.Parts[0].Text, nil
}

// modelsResponse models the Gemini model-listing response.
type modelsResponse struct {
	Models []struct {
		Name                       string   `json:"name"`
		SupportedGenerationMethods []string `json:"supportedGenerationMethods"`
	} `json:"models"`
}

// ValidateCredentials lists the available models and requires at least one
// supporting generateContent. Called once at startup; a failure here means
// the process must not start serving traffic.
func (e *Extractor) ValidateCredentials(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, e.modelsEndpoint, http.NoBody)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("x-goog-api-key", e.apiKey)

	resp, err := e.client.Do(req)
	if err != nil {
		return fmt.Errorf("listing gemini models: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading model list: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("gemini model list status %d: %s", resp.StatusCode, domain.Snippet(string(respBody), 500))
	}

	var models modelsResponse
	if err := json.Unmarshal(respBody, &models); err != nil {
		return fmt.Errorf("unmarshaling model list: %w", err)
	}
	for _, m := range models.Models {
		for _, method := range m.SupportedGenerationMethods {
			if method == "generateContent" {
				return nil
			}
		}
	}
	return fmt.Errorf("no gemini model supports generateContent; check the API key")
}
