package llmclient

import (
	"context"
	"encoding/json"
	"sync"
)

// FakeClient returns scripted JSON payloads for offline runs and tests.
// Responses are consumed in order; the last one repeats.
type FakeClient struct {
	mu        sync.Mutex
	responses []json.RawMessage
	err       error
	calls     int
}

func NewFakeClient(responses ...json.RawMessage) *FakeClient {
	return &FakeClient{responses: responses}
}

// Fail makes every subsequent call return err.
func (f *FakeClient) Fail(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.err = err
}

func (f *FakeClient) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func (f *FakeClient) Name() string { return "FakeLLM" }
func (f *FakeClient) Close() error { return nil }

func (f *FakeClient) GenerateJSON(_ context.Context, _ string, _ any) (json.RawMessage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	if len(f.responses) == 0 {
		return json.RawMessage(`{}`), nil
	}
	resp := f.responses[0]
	if len(f.responses) > 1 {
		f.responses = f.responses[1:]
	}
	return resp, nil
}
