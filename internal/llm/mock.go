package llm

import (
	"context"
	"errors"
	"sync"
)

// ErrEmptyResponse indica que el proveedor respondio sin texto.
var ErrEmptyResponse = errors.New("llm empty response")

// MockClient permite tests sin llamar a un LLM real.
type MockClient struct {
	Response string
	Err      error

	mu         sync.Mutex
	Calls      int
	LastPrompt string
}

func (m *MockClient) Generate(ctx context.Context, prompt string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls++
	m.LastPrompt = prompt
	return m.Response, m.Err
}

type disabledClient struct {
	reason string
}

// NewDisabledClient devuelve un cliente que siempre falla; quien llama usa su texto de respaldo.
func NewDisabledClient(reason string) LLMClient {
	return &disabledClient{reason: reason}
}

func (c *disabledClient) Generate(_ context.Context, _ string) (string, error) {
	if c.reason == "" {
		return "", errors.New("llm client disabled")
	}
	return "", errors.New(c.reason)
}
