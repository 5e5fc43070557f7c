package chat

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/w-h-a/medrag/conversation"
	"github.com/w-h-a/medrag/generator"
	"github.com/w-h-a/medrag/internal/service/query"
)

type fakeResponder struct {
	got  []conversation.Message
	text string
	err  error
}

func (f *fakeResponder) Respond(ctx context.Context, conv []conversation.Message) (string, error) {
	f.got = conv
	return f.text, f.err
}

func post(t *testing.T, h *chatHandler, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(body)))

	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return rec, out
}

func TestChatSuccess(t *testing.T) {
	f := &fakeResponder{text: "Influenza is a viral infection."}
	h := NewHandler(f)

	rec, out := post(t, h, `{"messages":[{"role":"user","content":"hi"},{"role":"assistant","content":"hello"},{"role":"user","content":"what is flu?"}]}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, out["success"])
	assert.Equal(t, "Influenza is a viral infection.", out["message"])
	assert.NotContains(t, out, "error")

	require.Len(t, f.got, 3)
	assert.Equal(t, conversation.Assistant, f.got[1].Role)
	assert.Equal(t, "what is flu?", f.got[2].Content)
}

func TestChatEmptyAnswerKeepsMessage(t *testing.T) {
	rec, out := post(t, NewHandler(&fakeResponder{}), `{"messages":[{"role":"user","content":"hi"}]}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, out["success"])
	require.Contains(t, out, "message")
	assert.Equal(t, "", out["message"])
	assert.NotContains(t, out, "error")
}

func TestChatGenerationFailure(t *testing.T) {
	f := &fakeResponder{err: fmt.Errorf("%w: api key leaked-ABC", generator.ErrGeneration)}
	h := NewHandler(f)

	rec, out := post(t, h, `{"messages":[{"role":"user","content":"hi"}]}`)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, false, out["success"])
	assert.Equal(t, "Internal server error", out["error"])
	assert.NotContains(t, out, "message")
	assert.NotContains(t, rec.Body.String(), "leaked")
}

func TestChatBadRequests(t *testing.T) {
	tests := map[string]string{
		"malformed json": `{"messages":`,
		"unknown role":   `{"messages":[{"role":"system","content":"hi"}]}`,
		"empty messages": `{"messages":[]}`,
		"no messages":    `{}`,
	}

	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			f := &fakeResponder{text: "unused"}
			rec, out := post(t, NewHandler(f), body)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, false, out["success"])
			assert.NotEmpty(t, out["error"])
			assert.Nil(t, f.got)
		})
	}
}

func TestChatInvalidConversation(t *testing.T) {
	f := &fakeResponder{err: query.ErrInvalidConversation}

	rec, out := post(t, NewHandler(f), `{"messages":[{"role":"user","content":"   "}]}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, false, out["success"])
}
