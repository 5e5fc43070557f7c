package prompt

import (
	"encoding/json"
	"strings"

	"github.com/w-h-a/medrag/conversation"
)

// Assembler builds the message sequence sent to the generator: the policy
// with retrieved context, the acknowledgment, then the conversation.
type Assembler struct {
	options Options
}

func (a *Assembler) Assemble(docs []string, conv []conversation.Message) []conversation.Message {
	msgs := make([]conversation.Message, 0, len(conv)+2)

	msgs = append(msgs,
		conversation.NewUserMessage(strings.ReplaceAll(a.options.SystemPolicy, ContextPlaceholder, serialize(docs))),
		conversation.NewAssistantMessage(a.options.Acknowledgment),
	)

	return append(msgs, conv...)
}

// serialize renders the context as a JSON array of strings, "[]" when empty.
func serialize(docs []string) string {
	if docs == nil {
		docs = []string{}
	}
	bs, err := json.Marshal(docs)
	if err != nil {
		return "[]"
	}
	return string(bs)
}

func New(opts ...Option) *Assembler {
	options := NewOptions(opts...)

	if !strings.Contains(options.SystemPolicy, ContextPlaceholder) {
		panic("system policy must contain " + ContextPlaceholder)
	}

	return &Assembler{
		options: options,
	}
}
