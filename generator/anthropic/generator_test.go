package anthropic

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/w-h-a/medrag/conversation"
	"github.com/w-h-a/medrag/generator"
)

func TestGenerate(t *testing.T) {
	var got map[string]any

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/messages", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"msg_1","type":"message","role":"assistant","model":"claude-test","content":[{"type":"text","text":"Rest and fluids."}],"stop_reason":"end_turn","usage":{"input_tokens":3,"output_tokens":4}}`))
	}))
	defer srv.Close()

	g := NewGenerator(
		generator.WithApiKey("key"),
		generator.WithModel("claude-test"),
		generator.WithBaseURL(srv.URL),
	)

	text, err := g.Generate(t.Context(), []conversation.Message{
		conversation.NewUserMessage("policy"),
		conversation.NewAssistantMessage("ack"),
		conversation.NewUserMessage("I have a cold."),
	})
	require.NoError(t, err)
	assert.Equal(t, "Rest and fluids.", text)

	assert.Equal(t, "claude-test", got["model"])
	assert.EqualValues(t, 2048, got["max_tokens"])
	assert.EqualValues(t, 40, got["top_k"])

	msgs := got["messages"].([]any)
	require.Len(t, msgs, 3)
	assert.Equal(t, "user", msgs[0].(map[string]any)["role"])
	assert.Equal(t, "assistant", msgs[1].(map[string]any)["role"])
}

func TestGenerateFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"type":"error","error":{"type":"invalid_request_error","message":"bad"}}`))
	}))
	defer srv.Close()

	g := NewGenerator(generator.WithBaseURL(srv.URL))

	_, err := g.Generate(t.Context(), []conversation.Message{conversation.NewUserMessage("q")})
	require.ErrorIs(t, err, generator.ErrGeneration)
}
