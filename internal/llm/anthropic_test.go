package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAnthropicProvider(t *testing.T, handler http.HandlerFunc) *AnthropicProvider {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := anthropic.NewClient(
		option.WithAPIKey("test-key"),
		option.WithBaseURL(server.URL),
		option.WithMaxRetries(0),
	)
	return &AnthropicProvider{
		client: &client,
		model:  "claude-sonnet-4-20250514",
	}
}

// anthropicReply serves a single text block with the given stop reason.
func anthropicReply(text, stopReason string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"id":          "msg_test",
			"type":        "message",
			"role":        "assistant",
			"content":     []map[string]any{{"type": "text", "text": text}},
			"model":       "claude-sonnet-4-20250514",
			"stop_reason": stopReason,
			"usage":       map[string]any{"input_tokens": 50, "output_tokens": 30},
		})
	}
}

func anthropicError(status int, errType string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(map[string]any{
			"type":  "error",
			"error": map[string]any{"type": errType, "message": http.StatusText(status)},
		})
	}
}

func TestAnthropicProvider_HappyPath(t *testing.T) {
	p := newTestAnthropicProvider(t, anthropicReply(
		`{"english_answer":"Use formal greetings.","arabic_answer":"استخدم التحيات الرسمية."}`, "end_turn"))

	resp, err := p.Generate(context.Background(), Request{
		System:    "You are a bilingual assistant.",
		Messages:  []Message{{Role: RoleUser, Content: "How do I greet my professor?"}},
		MaxTokens: 256,
	})
	require.NoError(t, err)
	assert.Equal(t, 50, resp.Usage.InputTokens)
	assert.Equal(t, 30, resp.Usage.OutputTokens)
	assert.Equal(t, "end", resp.StopReason)
	assert.Contains(t, string(resp.Content), "Use formal greetings.")
}

func TestAnthropicProvider_SendsSystemAndSchema(t *testing.T) {
	var body map[string]any
	reply := anthropicReply(`{"task_type":"explanation","confidence":0.9}`, "end_turn")
	p := newTestAnthropicProvider(t, func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		reply(w, r)
	})

	_, err := p.Generate(context.Background(), Request{
		System:    "Classify the input.",
		Messages:  []Message{{Role: RoleUser, Content: "What is osmosis?"}},
		Schema:    testSchema(),
		MaxTokens: 128,
	})
	require.NoError(t, err)

	system, ok := body["system"].([]any)
	require.True(t, ok, "system should be a list of text blocks")
	require.Len(t, system, 1)
	assert.Equal(t, "Classify the input.", system[0].(map[string]any)["text"])

	outputConfig, ok := body["output_config"].(map[string]any)
	require.True(t, ok, "schema requests carry output_config")
	format := outputConfig["format"].(map[string]any)
	assert.Equal(t, "json_schema", format["type"])
	assert.NotNil(t, format["schema"])
}

func TestAnthropicProvider_NoSchemaOmitsOutputConfig(t *testing.T) {
	var body map[string]any
	reply := anthropicReply("Hello!", "end_turn")
	p := newTestAnthropicProvider(t, func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		reply(w, r)
	})

	resp, err := p.Generate(context.Background(), Request{
		Messages:  []Message{{Role: RoleUser, Content: "hi"}},
		MaxTokens: 16,
	})
	require.NoError(t, err)
	assert.Equal(t, "Hello!", string(resp.Content))
	assert.NotContains(t, body, "output_config")
	assert.NotContains(t, body, "system")
}

func TestAnthropicProvider_MaxTokensStop(t *testing.T) {
	p := newTestAnthropicProvider(t, anthropicReply(`{"english_explanation":"Photosynthesis is`, "max_tokens"))

	_, err := p.Generate(context.Background(), Request{
		Messages:  []Message{{Role: RoleUser, Content: "Explain photosynthesis"}},
		Schema:    testSchema(),
		MaxTokens: 8,
	})
	var mt *ErrMaxTokensExceeded
	require.True(t, errors.As(err, &mt), "expected ErrMaxTokensExceeded, got %T (%v)", err, err)
	assert.Contains(t, string(mt.Content), "Photosynthesis is")
}

func TestAnthropicProvider_FencedReplyAfterPreamble(t *testing.T) {
	p := newTestAnthropicProvider(t, anthropicReply(
		"Here is the classification:\n```json\n{\"task_type\":\"writing_improvement\",\"confidence\":0.8}\n```", "end_turn"))

	resp, err := p.Generate(context.Background(), Request{
		Messages:  []Message{{Role: RoleUser, Content: "Check my paragraph"}},
		Schema:    testSchema(),
		MaxTokens: 64,
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"task_type":"writing_improvement","confidence":0.8}`, string(resp.Content))
}

func TestAnthropicProvider_ProseWithSchemaIsParseError(t *testing.T) {
	p := newTestAnthropicProvider(t, anthropicReply("I think this is an explanation request.", "end_turn"))

	_, err := p.Generate(context.Background(), Request{
		Messages:  []Message{{Role: RoleUser, Content: "What is entropy?"}},
		Schema:    testSchema(),
		MaxTokens: 64,
	})
	require.Error(t, err)
	assert.True(t, IsParseError(err))
}

func TestAnthropicProvider_RateLimit(t *testing.T) {
	p := newTestAnthropicProvider(t, anthropicError(http.StatusTooManyRequests, "rate_limit_error"))

	_, err := p.Generate(context.Background(), Request{
		Messages:  []Message{{Role: RoleUser, Content: "test"}},
		MaxTokens: 100,
	})
	var rl *ErrRateLimit
	assert.True(t, errors.As(err, &rl), "expected ErrRateLimit, got %T (%v)", err, err)
}

func TestAnthropicProvider_ServerError(t *testing.T) {
	p := newTestAnthropicProvider(t, anthropicError(http.StatusInternalServerError, "api_error"))

	_, err := p.Generate(context.Background(), Request{
		Messages:  []Message{{Role: RoleUser, Content: "test"}},
		MaxTokens: 100,
	})
	var unavail *ErrProviderUnavailable
	assert.True(t, errors.As(err, &unavail), "expected ErrProviderUnavailable, got %T (%v)", err, err)
	assert.True(t, IsServiceError(err))
}

func TestAnthropicProvider_ModelID(t *testing.T) {
	p := &AnthropicProvider{model: "claude-sonnet-4-20250514"}
	assert.Equal(t, "claude-sonnet-4-20250514", p.ModelID())
}

func TestAnthropicModelMapping(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"claude-sonnet", "claude-sonnet-4-20250514"},
		{"claude-haiku", "claude-haiku-4-5-20251001"},
		{"claude-sonnet-4-20250514", "claude-sonnet-4-20250514"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, resolveModel(tt.input, anthropicModels), "resolveModel(%q)", tt.input)
	}
}
