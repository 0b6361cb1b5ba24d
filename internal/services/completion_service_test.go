package services

import (
	"context"
	"errors"
	"testing"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/javajoker/outfit-backend/internal/config"
	"github.com/javajoker/outfit-backend/internal/outfit"
)

type mockChatCompletions struct {
	response   *openai.ChatCompletion
	err        error
	lastParams openai.ChatCompletionNewParams
	calls      int
}

func (m *mockChatCompletions) New(ctx context.Context, params openai.ChatCompletionNewParams, opts ...option.RequestOption) (*openai.ChatCompletion, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	m.calls++
	m.lastParams = params
	return m.response, m.err
}

func chatResponse(content string) *openai.ChatCompletion {
	return &openai.ChatCompletion{
		Choices: []openai.ChatCompletionChoice{
			{Message: openai.ChatCompletionMessage{Content: content}},
		},
	}
}

func TestCompletionService_Complete(t *testing.T) {
	mock := &mockChatCompletions{response: chatResponse(`{"outfits":[]}`)}
	svc := NewCompletionServiceWith(mock, "gpt-4o-mini")

	body, err := svc.Complete(context.Background(), outfit.Prompt{System: "sys", User: "usr"}, outfit.CompletionOptions{
		ResponseFormat: outfit.ResponseFormatJSONObject,
		Temperature:    0.8,
	})

	require.NoError(t, err)
	assert.Equal(t, `{"outfits":[]}`, body)
	assert.Equal(t, 1, mock.calls)
	assert.Equal(t, openai.ChatModel("gpt-4o-mini"), mock.lastParams.Model.Value)
	assert.Equal(t, 0.8, mock.lastParams.Temperature.Value)
	assert.Len(t, mock.lastParams.Messages.Value, 2)
	assert.True(t, mock.lastParams.ResponseFormat.Present)
	assert.Equal(t, "gpt-4o-mini", svc.ModelName())
}

func TestCompletionService_Errors(t *testing.T) {
	mock := &mockChatCompletions{err: errors.New("401 unauthorized")}
	svc := NewCompletionServiceWith(mock, "gpt-4o-mini")

	_, err := svc.Complete(context.Background(), outfit.Prompt{}, outfit.CompletionOptions{})
	assert.ErrorContains(t, err, "401 unauthorized")

	mock.err = nil
	mock.response = &openai.ChatCompletion{}
	_, err = svc.Complete(context.Background(), outfit.Prompt{}, outfit.CompletionOptions{})
	assert.ErrorIs(t, err, errEmptyCompletion)
	assert.False(t, mock.lastParams.ResponseFormat.Present)
}

func TestCompletionService_CancelledContext(t *testing.T) {
	mock := &mockChatCompletions{response: chatResponse("{}")}
	svc := NewCompletionServiceWith(mock, "gpt-4o-mini")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.Complete(ctx, outfit.Prompt{}, outfit.CompletionOptions{})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, mock.calls)
}

func TestNewCachedCompleter_FallsBackToLRU(t *testing.T) {
	cfg := testConfig()
	cfg.OpenAI = config.OpenAIConfig{APIKey: "test", Model: "gpt-4o-mini"}
	cfg.Redis = config.RedisConfig{Enabled: true, Host: "127.0.0.1", Port: "1"}
	cfg.Cache.Size = 8

	completer, closeFn, err := NewCachedCompleter(context.Background(), cfg)
	require.NoError(t, err)
	defer closeFn()

	assert.IsType(t, &outfit.CachingCompleter{}, completer)

	cfg.Redis.Enabled = false
	cfg.Cache.Size = 0
	completer, _, err = NewCachedCompleter(context.Background(), cfg)
	require.NoError(t, err)
	assert.IsType(t, &CompletionService{}, completer)
}
