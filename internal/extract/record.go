package extract

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"screenguard/internal/domain"
)

// recordSchema is the shape every repaired ExtractionRecord must satisfy
// before it leaves this stage.
var recordSchema = map[string]any{
	"type":     "object",
	"required": []any{"extracted_urls", "message_text", "contains_urls", "contains_text"},
	"properties": map[string]any{
		"extracted_urls": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type":     "object",
				"required": []any{"url"},
				"properties": map[string]any{
					"url":                  map[string]any{"type": "string"},
					"original_ocr_snippet": map[string]any{"type": "string"},
				},
			},
		},
		"message_text":  map[string]any{"type": "string"},
		"contains_urls": map[string]any{"type": "boolean"},
		"contains_text": map[string]any{"type": "boolean"},
	},
}

// StripCodeFences removes a markdown code fence wrapping a model reply.
func StripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// DecodeRecord turns a raw model reply into a repaired ExtractionRecord.
//
// The model is treated as a partially-adversarial data source: code fences are
// stripped, message_text is accepted as either a string or a list of strings
// (a list is joined with single spaces), and the boolean flags are re-derived
// from the actual values instead of trusting the model's own booleans.
func DecodeRecord(raw string) (*domain.ExtractionRecord, error) {
	clean := StripCodeFences(raw)

	var wire struct {
		ExtractedURLs []domain.ExtractedURL `json:"extracted_urls"`
		MessageText   json.RawMessage       `json:"message_text"`
	}
	if err := json.Unmarshal([]byte(clean), &wire); err != nil {
		return nil, fmt.Errorf("%w: %v (raw: %s)", domain.ErrModelOutputMalformed, err, domain.Snippet(clean, 500))
	}

	msg, err := decodeMessageText(wire.MessageText)
	if err != nil {
		return nil, err
	}

	rec := &domain.ExtractionRecord{
		ExtractedURLs: wire.ExtractedURLs,
		MessageText:   msg,
	}
	rec.Reconcile()

	if err := validateRecord(rec); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrModelOutputMalformed, err)
	}
	return rec, nil
}

// decodeMessageText accepts the message field as a single string or a list of
// strings; anything else is malformed.
func decodeMessageText(raw json.RawMessage) (string, error) {
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return "", nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s, nil
	}
	var parts []string
	if err := json.Unmarshal(raw, &parts); err == nil {
		return strings.Join(parts, " "), nil
	}
	return "", fmt.Errorf("%w: message_text is neither a string nor a list of strings", domain.ErrModelOutputMalformed)
}

// validateRecord checks the repaired record against recordSchema.
func validateRecord(rec *domain.ExtractionRecord) error {
	schemaBytes, err := json.Marshal(recordSchema)
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("record.json", bytes.NewReader(schemaBytes)); err != nil {
		return fmt.Errorf("add schema: %w", err)
	}
	schema, err := compiler.Compile("record.json")
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal record: %w", err)
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("unmarshal record: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("record does not match schema: %w", err)
	}
	return nil
}
