package conversation

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoleJSON(t *testing.T) {
	var msgs []Message
	err := json.Unmarshal([]byte(`[{"role":"user","content":"hi"},{"role":"assistant","content":"hello"}]`), &msgs)
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, User, msgs[0].Role)
	assert.Equal(t, Assistant, msgs[1].Role)

	out, err := json.Marshal(msgs[1])
	require.NoError(t, err)
	assert.JSONEq(t, `{"role":"assistant","content":"hello"}`, string(out))
}

func TestRoleRejectsUnknown(t *testing.T) {
	var m Message
	err := json.Unmarshal([]byte(`{"role":"model","content":"x"}`), &m)
	require.Error(t, err)

	_, err = json.Marshal(Message{Role: Role(7)})
	require.Error(t, err)
}

func TestLast(t *testing.T) {
	_, ok := Last(nil)
	assert.False(t, ok)

	m, ok := Last([]Message{NewAssistantMessage("a"), NewUserMessage("b")})
	require.True(t, ok)
	assert.Equal(t, "b", m.Content)
}
