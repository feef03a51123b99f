package extract_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"screenguard/internal/config"
	"screenguard/internal/domain"
	"screenguard/internal/extract"
)

func newTestExtractor(generateURL, modelsURL string, maxInput int) *extract.Extractor {
	cfg := &config.LLMConfig{
		APIKey:        "test-gemini-key",
		Model:         "gemini-1.5-flash",
		TimeoutSecs:   5,
		MaxInputChars: maxInput,
	}
	return extract.NewExtractorWithEndpoints(cfg, generateURL, modelsURL)
}

func geminiSuccessResponse(text string) map[string]interface{} {
	return map[string]interface{}{
		"candidates": []map[string]interface{}{
			{
				"content": map[string]interface{}{
					"role": "model",
					"parts": []map[string]interface{}{
						{"text": text},
					},
				},
				"finishReason": "STOP",
			},
		},
	}
}

func TestExtract_Success(t *testing.T) {
	llmJSON := `{"extracted_urls":[{"url":"http://bad-link.test"}],"message_text":"Claim your prize at http://bad-link.test now!","contains_urls":true,"contains_text":true}`

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-gemini-key", r.Header.Get("x-goog-api-key"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var reqBody map[string]interface{}
		err := json.NewDecoder(r.Body).Decode(&reqBody)
		assert.NoError(t, err)

		contents := reqBody["contents"].([]interface{})
		assert.Len(t, contents, 1)
		msg := contents[0].(map[string]interface{})
		assert.Equal(t, "user", msg["role"])

		parts := msg["parts"].([]interface{})
		assert.Len(t, parts, 1)
		prompt := parts[0].(map[string]interface{})["text"].(string)
		assert.Contains(t, prompt, "Claim your prize")

		genConfig := reqBody["generationConfig"].(map[string]interface{})
		assert.Equal(t, 0.1, genConfig["temperature"])
		assert.Equal(t, 0.95, genConfig["topP"])
		assert.Equal(t, float64(40), genConfig["topK"])
		assert.Equal(t, float64(1024), genConfig["maxOutputTokens"])

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(geminiSuccessResponse(llmJSON))
	}))
	defer server.Close()

	e := newTestExtractor(server.URL, "", 0)
	rec, err := e.Extract(context.Background(), "Claim your prize at http:ll bad-link. test now!")
	require.NoError(t, err)

	require.Len(t, rec.ExtractedURLs, 1)
	assert.Equal(t, "http://bad-link.test", rec.ExtractedURLs[0].URL)
	assert.True(t, rec.ContainsURLs)
	assert.True(t, rec.ContainsText)
}

func TestExtract_BlankInput_NoNetworkCall(t *testing.T) {
	called := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer server.Close()

	e := newTestExtractor(server.URL, "", 0)
	for _, input := range []string{"", "   ", "\n\t "} {
		rec, err := e.Extract(context.Background(), input)
		require.NoError(t, err)
		assert.Empty(t, rec.ExtractedURLs)
		assert.Empty(t, rec.MessageText)
		assert.False(t, rec.ContainsURLs)
		assert.False(t, rec.ContainsText)
	}
	assert.False(t, called)
}

func TestExtract_TruncatesOverlongInput(t *testing.T) {
	var promptLen int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var reqBody struct {
			Contents []struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"contents"`
		}
		_ = json.NewDecoder(r.Body).Decode(&reqBody)
		promptLen = len(reqBody.Contents[0].Parts[0].Text)
		_ = json.NewEncoder(w).Encode(geminiSuccessResponse(`{"extracted_urls":[],"message_text":""}`))
	}))
	defer server.Close()

	e := newTestExtractor(server.URL, "", 100)
	_, err := e.Extract(context.Background(), strings.Repeat("x", 5000))
	require.NoError(t, err)

	// prompt = template + at most 100 chars of OCR text
	assert.Less(t, promptLen, 3000)
}

func TestExtract_FencedReply(t *testing.T) {
	fenced := "```json\n{\"extracted_urls\":[],\"message_text\":\"hello\"}\n```"
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(geminiSuccessResponse(fenced))
	}))
	defer server.Close()

	e := newTestExtractor(server.URL, "", 0)
	rec, err := e.Extract(context.Background(), "some ocr text")
	require.NoError(t, err)
	assert.Equal(t, "hello", rec.MessageText)
	assert.True(t, rec.ContainsText)
}

func TestExtract_MalformedReply(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(geminiSuccessResponse("I could not find any JSON to return."))
	}))
	defer server.Close()

	e := newTestExtractor(server.URL, "", 0)
	_, err := e.Extract(context.Background(), "some ocr text")
	assert.True(t, errors.Is(err, domain.ErrModelOutputMalformed))
}

func TestExtract_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error":{"message":"API key not valid"}}`))
	}))
	defer server.Close()

	e := newTestExtractor(server.URL, "", 0)
	_, err := e.Extract(context.Background(), "some ocr text")
	assert.True(t, errors.Is(err, domain.ErrModelUnreachable))
}

func TestExtract_TransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // connection refused

	e := newTestExtractor(server.URL, "", 0)
	_, err := e.Extract(context.Background(), "some ocr text")
	assert.True(t, errors.Is(err, domain.ErrModelUnreachable))
}

func TestValidateCredentials_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-gemini-key", r.Header.Get("x-goog-api-key"))
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"models": []map[string]interface{}{
				{"name": "models/embedding-001", "supportedGenerationMethods": []string{"embedContent"}},
				{"name": "models/gemini-1.5-flash", "supportedGenerationMethods": []string{"generateContent", "countTokens"}},
			},
		})
	}))
	defer server.Close()

	e := newTestExtractor("", server.URL, 0)
	assert.NoError(t, e.ValidateCredentials(context.Background()))
}

func TestValidateCredentials_NoGenerateContentModels(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"models": []map[string]interface{}{
				{"name": "models/embedding-001", "supportedGenerationMethods": []string{"embedContent"}},
			},
		})
	}))
	defer server.Close()

	e := newTestExtractor("", server.URL, 0)
	err := e.ValidateCredentials(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "generateContent")
}

func TestValidateCredentials_RejectedKey(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"status":"INVALID_ARGUMENT"}}`))
	}))
	defer server.Close()

	e := newTestExtractor("", server.URL, 0)
	assert.Error(t, e.ValidateCredentials(context.Background()))
}
