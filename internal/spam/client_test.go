package spam_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"screenguard/internal/config"
	"screenguard/internal/spam"
)

func TestCheck_NotConfigured(t *testing.T) {
	c := spam.NewClient(&config.SpamConfig{})

	outcome := c.Check(context.Background(), "win a prize")
	assert.True(t, outcome.IsError())
	assert.Contains(t, outcome["error"], "not configured")
}

func TestCheck_Success_PayloadPassedThrough(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]string
		err := json.NewDecoder(r.Body).Decode(&body)
		assert.NoError(t, err)
		assert.Equal(t, "Claim your prize at http://bad-link.test now!", body["text"])

		_ = json.NewEncoder(w).Encode(map[string]interface{}{"label": "spam", "score": 0.93})
	}))
	defer server.Close()

	c := spam.NewClient(&config.SpamConfig{Endpoint: server.URL})
	outcome := c.Check(context.Background(), "Claim your prize at http://bad-link.test now!")

	require.False(t, outcome.IsError())
	assert.Equal(t, "spam", outcome["label"])
	assert.Equal(t, 0.93, outcome["score"])
}

func TestCheck_Non2xxStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	c := spam.NewClient(&config.SpamConfig{Endpoint: server.URL})
	outcome := c.Check(context.Background(), "hello")

	assert.True(t, outcome.IsError())
	assert.Contains(t, outcome["error"], "502")
}

func TestCheck_NonJSONResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html>gateway error</html>"))
	}))
	defer server.Close()

	c := spam.NewClient(&config.SpamConfig{Endpoint: server.URL})
	outcome := c.Check(context.Background(), "hello")

	assert.True(t, outcome.IsError())
	assert.Contains(t, outcome["error"], "non-JSON")
}

func TestCheck_ConnectionFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // connection refused

	c := spam.NewClient(&config.SpamConfig{Endpoint: server.URL})
	outcome := c.Check(context.Background(), "hello")

	assert.True(t, outcome.IsError())
}

func TestCheck_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(1500 * time.Millisecond)
	}))
	defer server.Close()

	c := spam.NewClient(&config.SpamConfig{Endpoint: server.URL, TimeoutSecs: 1})
	outcome := c.Check(context.Background(), "hello")

	assert.True(t, outcome.IsError())
	assert.Contains(t, outcome["error"], "timed out")
}
