package mock

import (
	"context"
	"sync"

	"retail-assistant-be/pkg/llm"
)

// Provider is a scriptable LLMProvider for tests.
type Provider struct {
	mu        sync.Mutex
	Response  string
	Err       error
	ChatCalls [][]llm.Message
}

var _ llm.LLMProvider = &Provider{}

func NewProvider(response string, err error) *Provider {
	return &Provider{
		Response: response,
		Err:      err,
	}
}

func (p *Provider) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	p.mu.Lock()
	p.ChatCalls = append(p.ChatCalls, history)
	p.mu.Unlock()

	if p.Err != nil {
		return "", p.Err
	}
	return p.Response, nil
}

func (p *Provider) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return p.Chat(ctx, []llm.Message{{Role: "user", Content: prompt}}, opts...)
}

func (p *Provider) Calls() [][]llm.Message {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.ChatCalls
}
