// Package gatewaytest provides a scripted chat model for pipeline tests.
package gatewaytest

import (
	"context"
	"errors"
	"sync"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
)

// FakeChatModel replays scripted replies in call order. Errs entries (when
// set) take precedence over the reply at the same index. Prompts of every
// call are captured for assertions.
type FakeChatModel struct {
	mu      sync.Mutex
	Replies []string
	Errs    []error
	Calls   []string
}

func (m *FakeChatModel) Generate(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.Message, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	prompt := ""
	if len(input) > 0 {
		prompt = input[len(input)-1].Content
	}
	idx := len(m.Calls)
	m.Calls = append(m.Calls, prompt)

	if idx < len(m.Errs) && m.Errs[idx] != nil {
		return nil, m.Errs[idx]
	}
	reply := ""
	if idx < len(m.Replies) {
		reply = m.Replies[idx]
	} else if len(m.Replies) > 0 {
		reply = m.Replies[len(m.Replies)-1]
	}
	return &schema.Message{
		Role:    schema.Assistant,
		Content: reply,
		ResponseMeta: &schema.ResponseMeta{
			Usage: &schema.TokenUsage{PromptTokens: 10, CompletionTokens: 20, TotalTokens: 30},
		},
	}, nil
}

func (m *FakeChatModel) Stream(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	return nil, errors.New("streaming not supported by fake")
}

func (m *FakeChatModel) WithTools(tools []*schema.ToolInfo) (model.ToolCallingChatModel, error) {
	return m, nil
}

// CallCount returns how many Generate calls the fake served.
func (m *FakeChatModel) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}
