package copilot

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenAIComplete(t *testing.T) {
	var gotAuth string
	var gotReq openAIRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"role": "assistant", "content": "Instagram leads on CTR."}},
			},
		})
	}))
	defer srv.Close()

	c := NewOpenAIClient("test-key", "", time.Second)
	c.baseURL = srv.URL

	reply, err := c.Complete(context.Background(), "system prompt", "which channel wins?")
	require.NoError(t, err)
	assert.Equal(t, "Instagram leads on CTR.", reply)

	assert.Equal(t, "Bearer test-key", gotAuth)
	assert.Equal(t, defaultOpenAIModel, gotReq.Model)
	require.Len(t, gotReq.Messages, 2)
	assert.Equal(t, "system", gotReq.Messages[0].Role)
	assert.Equal(t, "user", gotReq.Messages[1].Role)
	assert.InDelta(t, completionTemperature, gotReq.Temperature, 1e-9)
}

func TestOpenAICompleteMissingKey(t *testing.T) {
	c := NewOpenAIClient("", "", time.Second)
	_, err := c.Complete(context.Background(), "", "hello")
	assert.Error(t, err)
}

func TestOpenAICompleteHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"rate limited"}}`, http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := NewOpenAIClient("test-key", "", time.Second)
	c.baseURL = srv.URL

	_, err := c.Complete(context.Background(), "", "hello")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 429")
}

func TestOpenAICompleteEmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"choices": []interface{}{}})
	}))
	defer srv.Close()

	c := NewOpenAIClient("test-key", "", time.Second)
	c.baseURL = srv.URL

	_, err := c.Complete(context.Background(), "", "hello")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no text returned")
}

func TestOpenAIDefaults(t *testing.T) {
	c := NewOpenAIClient("k", "", 0)
	assert.Equal(t, defaultOpenAIModel, c.Model())
	assert.Equal(t, "openai", c.Name())
}
