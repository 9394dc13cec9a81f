package llm

import (
	"context"
	"sync"
)

// MockClient permite tests sin llamar a un LLM real. Guarda cada transcript recibido.
type MockClient struct {
	Response string
	Err      error

	mu    sync.Mutex
	Calls [][]Message
}

func (m *MockClient) Complete(_ context.Context, messages []Message) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = append(m.Calls, append([]Message(nil), messages...))
	return m.Response, m.Err
}

// LastCall devuelve el ultimo transcript recibido, o nil si no hubo llamadas.
func (m *MockClient) LastCall() []Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Calls) == 0 {
		return nil
	}
	return m.Calls[len(m.Calls)-1]
}
