package llm

import (
	"context"
	"errors"
	"testing"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockAnthropicClient returns canned messages for testing.
type mockAnthropicClient struct {
	lastParams anthropic.MessageNewParams
	message    *anthropic.Message
	err        error
}

func (m *mockAnthropicClient) CreateMessage(_ context.Context, params anthropic.MessageNewParams) (*anthropic.Message, error) {
	m.lastParams = params
	return m.message, m.err
}

func TestNewAnthropicProvider_RequiresAPIKey(t *testing.T) {
	_, err := NewAnthropicProvider("", "")
	assert.Error(t, err)
}

func TestNewAnthropicProvider_RejectsUnknownModel(t *testing.T) {
	_, err := NewAnthropicProvider("ant-test", "claude-imaginary")
	assert.Error(t, err)
}

func TestAnthropicProvider_Complete(t *testing.T) {
	mock := &mockAnthropicClient{
		message: &anthropic.Message{
			Model:      anthropic.Model(DefaultAnthropicModel),
			StopReason: "end_turn",
			Content: []anthropic.ContentBlockUnion{
				{Type: "text", Text: `{"type": "object"}`},
			},
			Usage: anthropic.Usage{InputTokens: 12, OutputTokens: 6},
		},
	}
	p := NewAnthropicProviderWithClient(mock, "")

	resp, err := p.Complete(context.Background(), []Message{
		NewSystemMessage("be terse"),
		NewUserMessage("schema please"),
	}, Options{Temperature: 0})
	require.NoError(t, err)

	assert.Equal(t, `{"type": "object"}`, resp.Content)
	assert.Equal(t, "end_turn", resp.FinishReason)
	assert.Equal(t, 18, resp.Usage.TotalTokens)

	// System messages land in the dedicated system parameter.
	require.Len(t, mock.lastParams.System, 1)
	assert.Equal(t, "be terse", mock.lastParams.System[0].Text)
	require.Len(t, mock.lastParams.Messages, 1)
}

func TestAnthropicProvider_CompleteError(t *testing.T) {
	mock := &mockAnthropicClient{err: errors.New("overloaded")}
	p := NewAnthropicProviderWithClient(mock, "")

	_, err := p.Complete(context.Background(), []Message{NewUserMessage("hi")}, Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "overloaded")
}
