// internal/services/completion_service.go
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/sirupsen/logrus"

	"github.com/javajoker/outfit-backend/internal/cache"
	"github.com/javajoker/outfit-backend/internal/config"
	"github.com/javajoker/outfit-backend/internal/outfit"
)

var errEmptyCompletion = errors.New("completion returned no choices")

// ChatCompletionsService is the subset of the OpenAI client used here.
type ChatCompletionsService interface {
	New(ctx context.Context, params openai.ChatCompletionNewParams, opts ...option.RequestOption) (*openai.ChatCompletion, error)
}

// CompletionService sends outfit prompts to an OpenAI compatible chat
// completions endpoint.
type CompletionService struct {
	completions ChatCompletionsService
	model       openai.ChatModel
}

var _ outfit.Completer = (*CompletionService)(nil)

func NewCompletionService(cfg config.OpenAIConfig) *CompletionService {
	opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	client := openai.NewClient(opts...)
	return NewCompletionServiceWith(client.Chat.Completions, cfg.Model)
}

// NewCompletionServiceWith wires an existing completions client.
func NewCompletionServiceWith(completions ChatCompletionsService, model string) *CompletionService {
	return &CompletionService{
		completions: completions,
		model:       openai.ChatModel(model),
	}
}

func (s *CompletionService) Complete(ctx context.Context, prompt outfit.Prompt, opts outfit.CompletionOptions) (string, error) {
	params := openai.ChatCompletionNewParams{
		Messages: openai.F([]openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(prompt.System),
			openai.UserMessage(prompt.User),
		}),
		Model:       openai.F(s.model),
		Temperature: openai.F(opts.Temperature),
	}
	if opts.ResponseFormat == outfit.ResponseFormatJSONObject {
		params.ResponseFormat = openai.F[openai.ChatCompletionNewParamsResponseFormatUnion](
			openai.ResponseFormatJSONObjectParam{
				Type: openai.F(openai.ResponseFormatJSONObjectTypeJSONObject),
			},
		)
	}

	resp, err := s.completions.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errEmptyCompletion
	}
	return resp.Choices[0].Message.Content, nil
}

func (s *CompletionService) ModelName() string {
	return string(s.model)
}

// NewCachedCompleter builds the OpenAI completer wrapped in the configured
// completion cache: Redis when enabled and reachable, else an in-process
// LRU. The returned func releases the cache connection.
func NewCachedCompleter(ctx context.Context, cfg *config.Config) (outfit.Completer, func(), error) {
	completer := NewCompletionService(cfg.OpenAI)
	log := logrus.WithField("component", "completion_cache")

	if cfg.Redis.Enabled {
		rdb, err := cache.Dial(ctx, cfg.Redis.Addr(), cfg.Redis.Password, cfg.Redis.DB)
		if err == nil {
			log.WithField("addr", cfg.Redis.Addr()).Info("Using redis completion cache")
			closeFn := func() {
				if err := rdb.Close(); err != nil {
					log.WithError(err).Warn("Error closing redis connection")
				}
			}
			return outfit.NewCachingCompleter(completer, cache.NewRedis(rdb, "", cfg.Cache.TTL), log), closeFn, nil
		}
		log.WithError(err).Warn("Redis unavailable, falling back to in-process completion cache")
	}

	if cfg.Cache.Size <= 0 {
		return completer, func() {}, nil
	}

	lruCache, err := cache.NewLRU(cfg.Cache.Size)
	if err != nil {
		return nil, nil, err
	}
	return outfit.NewCachingCompleter(completer, lruCache, log), func() {}, nil
}
