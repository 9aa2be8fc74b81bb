package perplexity

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChatCompletion(t *testing.T) {
	var gotAuth string
	var gotReq ChatCompletionRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/chat/completions", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))

		json.NewEncoder(w).Encode(ChatCompletionResponse{
			ID: "resp-1",
			Choices: []Choice{
				{Index: 0, Message: Message{Role: "assistant", Content: "research findings"}},
			},
			Usage: Usage{PromptTokens: 120, CompletionTokens: 450, TotalTokens: 570},
		})
	}))
	defer server.Close()

	c := NewClient("pk-test", WithBaseURL(server.URL))
	temp := 1.0
	resp, err := c.ChatCompletion(context.Background(), ChatCompletionRequest{
		Model:               "sonar-pro",
		Messages:            []Message{{Role: "user", Content: "research Acme"}},
		Temperature:         &temp,
		SearchRecencyFilter: "year",
	})
	require.NoError(t, err)

	assert.Equal(t, "Bearer pk-test", gotAuth)
	assert.Equal(t, "sonar-pro", gotReq.Model)
	assert.Equal(t, "year", gotReq.SearchRecencyFilter)
	require.NotNil(t, gotReq.Temperature)
	assert.InDelta(t, 1.0, *gotReq.Temperature, 0.001)

	assert.Equal(t, "research findings", resp.Text())
	assert.Equal(t, 120, resp.Usage.PromptTokens)
	assert.Equal(t, 450, resp.Usage.CompletionTokens)
}

func TestChatCompletion_DefaultModel(t *testing.T) {
	var gotReq ChatCompletionRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		json.NewEncoder(w).Encode(ChatCompletionResponse{})
	}))
	defer server.Close()

	c := NewClient("pk", WithBaseURL(server.URL))
	_, err := c.ChatCompletion(context.Background(), ChatCompletionRequest{
		Messages: []Message{{Role: "user", Content: "hi"}},
	})
	require.NoError(t, err)
	assert.Equal(t, defaultModel, gotReq.Model)
}

func TestChatCompletion_Non200(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"error": "invalid key"}`, http.StatusUnauthorized)
	}))
	defer server.Close()

	c := NewClient("bad", WithBaseURL(server.URL))
	_, err := c.ChatCompletion(context.Background(), ChatCompletionRequest{
		Messages: []Message{{Role: "user", Content: "hi"}},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 401")
}

func TestText_NoChoices(t *testing.T) {
	resp := &ChatCompletionResponse{}
	assert.Equal(t, "", resp.Text())
}
