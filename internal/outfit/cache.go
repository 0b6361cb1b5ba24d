// internal/outfit/cache.go
package outfit

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strconv"

	"github.com/sirupsen/logrus"
)

// Cache stores raw completion bodies by key. Implementations live in
// internal/cache; the caller owns the instance and its eviction policy.
type Cache interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

// CachingCompleter memoizes completions of identical prompts.
type CachingCompleter struct {
	inner Completer
	cache Cache
	log   logrus.FieldLogger
}

var _ Completer = (*CachingCompleter)(nil)

func NewCachingCompleter(inner Completer, cache Cache, log logrus.FieldLogger) *CachingCompleter {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &CachingCompleter{inner: inner, cache: cache, log: log}
}

func (c *CachingCompleter) Complete(ctx context.Context, prompt Prompt, opts CompletionOptions) (string, error) {
	key := CacheKey(prompt, opts)

	if cached, ok, err := c.cache.Get(ctx, key); err != nil {
		c.log.WithError(err).Warn("Completion cache lookup failed")
	} else if ok {
		c.log.WithField("cache_key", key[:12]).Debug("Completion cache hit")
		return cached, nil
	}

	body, err := c.inner.Complete(ctx, prompt, opts)
	if err != nil {
		return "", err
	}

	// Malformed bodies are never stored.
	if hasOutfits(body) {
		if err := c.cache.Set(ctx, key, body); err != nil {
			c.log.WithError(err).Warn("Completion cache store failed")
		}
	}
	return body, nil
}

func hasOutfits(body string) bool {
	var env proposalEnvelope
	if err := json.Unmarshal([]byte(stripCodeFence(body)), &env); err != nil {
		return false
	}
	return env.Outfits != nil
}

// CacheKey derives a stable key from the prompt and options.
func CacheKey(prompt Prompt, opts CompletionOptions) string {
	h := sha256.New()
	h.Write([]byte(prompt.System))
	h.Write([]byte{0})
	h.Write([]byte(prompt.User))
	h.Write([]byte{0})
	h.Write([]byte(opts.ResponseFormat))
	h.Write([]byte{0})
	h.Write([]byte(strconv.FormatFloat(opts.Temperature, 'f', -1, 64)))
	return hex.EncodeToString(h.Sum(nil))
}
