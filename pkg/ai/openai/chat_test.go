package openai

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/OFFIS-RIT/resumegraph/pkg/ai"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type chatRequest struct {
	Model           string  `json:"model"`
	Temperature     float64 `json:"temperature"`
	ReasoningEffort string  `json:"reasoning_effort"`
	ResponseFormat  struct {
		Type       string `json:"type"`
		JSONSchema struct {
			Name   string         `json:"name"`
			Strict bool           `json:"strict"`
			Schema map[string]any `json:"schema"`
		} `json:"json_schema"`
	} `json:"response_format"`
	Messages []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"messages"`
}

const chatCompletion = `{
  "id": "chatcmpl-1",
  "object": "chat.completion",
  "created": 1700000000,
  "model": "gpt-4o",
  "choices": [{
    "index": 0,
    "finish_reason": "stop",
    "message": {"role": "assistant", "content": "{\"name\": \"Acme\"}"}
  }],
  "usage": {"prompt_tokens": 12, "completion_tokens": 5, "total_tokens": 17}
}`

func newTestChatServer(t *testing.T) (string, *chatRequest) {
	t.Helper()
	got := &chatRequest{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "/chat/completions"), r.URL.Path)
		body, err := io.ReadAll(r.Body)
		assert.NoError(t, err)
		assert.NoError(t, json.Unmarshal(body, got))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(chatCompletion))
	}))
	t.Cleanup(srv.Close)
	return srv.URL, got
}

func TestGenerateCompletionWithFormat_DefaultRequest(t *testing.T) {
	url, got := newTestChatServer(t)
	c := NewGraphOpenAIClient(NewGraphOpenAIClientParams{ChatURL: url, ChatKey: "secret"})

	var out struct {
		Name string `json:"name"`
	}
	err := c.GenerateCompletionWithFormat(
		t.Context(), "extract_graph", "Extract a graph", "John works at Acme.", &out,
		ai.WithSystemPrompts("system"),
	)
	require.NoError(t, err)
	assert.Equal(t, "Acme", out.Name)

	assert.Equal(t, DefaultExtractionModel, got.Model)
	assert.Equal(t, "json_schema", got.ResponseFormat.Type)
	assert.Equal(t, "extract_graph", got.ResponseFormat.JSONSchema.Name)
	assert.True(t, got.ResponseFormat.JSONSchema.Strict)
	assert.NotEmpty(t, got.ResponseFormat.JSONSchema.Schema)
	assert.Equal(t, float64(0), got.Temperature)
	assert.Empty(t, got.ReasoningEffort)

	require.Len(t, got.Messages, 2)
	assert.Equal(t, "system", got.Messages[0].Role)
	assert.Equal(t, "user", got.Messages[1].Role)

	m := c.GetMetrics()
	assert.Equal(t, 12, m.InputTokens)
	assert.Equal(t, 5, m.OutputTokens)
	assert.Equal(t, 17, m.TotalTokens)
}

func TestGenerateCompletionWithFormat_Options(t *testing.T) {
	url, got := newTestChatServer(t)
	c := NewGraphOpenAIClient(NewGraphOpenAIClientParams{
		ExtractionModel: "o3-mini",
		ChatURL:         url,
		ChatKey:         "secret",
	})

	var out struct {
		Name string `json:"name"`
	}
	err := c.GenerateCompletionWithFormat(
		t.Context(), "extract_graph", "Extract a graph", "text", &out,
		ai.WithTemperature(0.2),
		ai.WithThinking("low"),
	)
	require.NoError(t, err)

	assert.Equal(t, "o3-mini", got.Model)
	assert.Equal(t, 0.2, got.Temperature)
	assert.Equal(t, "low", got.ReasoningEffort)
}

func TestGenerateCompletionWithFormat_NoClient(t *testing.T) {
	c := NewGraphOpenAIClient(NewGraphOpenAIClientParams{})

	var out struct {
		Name string `json:"name"`
	}
	err := c.GenerateCompletionWithFormat(t.Context(), "x", "x", "text", &out)
	assert.ErrorIs(t, err, ErrNoClient)
}

func TestLoadModel(t *testing.T) {
	c := NewGraphOpenAIClient(NewGraphOpenAIClientParams{})
	assert.NoError(t, c.LoadModel(t.Context()))
}
