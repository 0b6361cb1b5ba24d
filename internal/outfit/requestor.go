// internal/outfit/requestor.go
package outfit

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrMalformedResponse = errors.New("malformed completion response")
	ErrCompletionFailed  = errors.New("completion request failed")
)

const ResponseFormatJSONObject = "json_object"

type CompletionOptions struct {
	ResponseFormat string
	Temperature    float64
}

// Completer is the generative completion service boundary.
type Completer interface {
	Complete(ctx context.Context, prompt Prompt, opts CompletionOptions) (string, error)
}

// CompleterFunc adapts a plain function to Completer.
type CompleterFunc func(ctx context.Context, prompt Prompt, opts CompletionOptions) (string, error)

func (f CompleterFunc) Complete(ctx context.Context, prompt Prompt, opts CompletionOptions) (string, error) {
	return f(ctx, prompt, opts)
}

// Requestor asks the completion service for one batch of proposals.
type Requestor struct {
	completer   Completer
	temperature float64
	timeout     time.Duration
}

func NewRequestor(completer Completer, temperature float64, timeout time.Duration) *Requestor {
	return &Requestor{
		completer:   completer,
		temperature: temperature,
		timeout:     timeout,
	}
}

// Request builds the prompt, performs a single completion call and parses the
// result. It does not retry.
func (r *Requestor) Request(ctx context.Context, pool CandidatePool, profile UserProfile, feedback []Feedback, batchSize int) ([]Proposal, error) {
	prompt := BuildPrompt(pool, profile, feedback, batchSize)

	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	raw, err := r.completer.Complete(ctx, prompt, CompletionOptions{
		ResponseFormat: ResponseFormatJSONObject,
		Temperature:    r.temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCompletionFailed, err)
	}

	return ParseProposals(raw, batchSize)
}

type proposalEnvelope struct {
	Outfits *[]Proposal `json:"outfits"`
}

// ParseProposals decodes a completion body into exactly batchSize proposals.
// Markdown code fences around the JSON are tolerated.
func ParseProposals(raw string, batchSize int) ([]Proposal, error) {
	body := stripCodeFence(raw)
	if body == "" {
		return nil, fmt.Errorf("%w: empty response", ErrMalformedResponse)
	}

	var env proposalEnvelope
	if err := json.Unmarshal([]byte(body), &env); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}
	if env.Outfits == nil {
		return nil, fmt.Errorf("%w: missing outfits array", ErrMalformedResponse)
	}
	proposals := *env.Outfits
	if len(proposals) != batchSize {
		return nil, fmt.Errorf("%w: expected %d outfits, got %d", ErrMalformedResponse, batchSize, len(proposals))
	}
	return proposals, nil
}

func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[i+1:]
	}
	return strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "```"))
}
