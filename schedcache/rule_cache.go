package schedcache

import (
	"context"
	"time"

	"github.com/TingTung93/AI-Schedule-Manager-sub003/cache"
	"github.com/TingTung93/AI-Schedule-Manager-sub003/internal/cacheinfra"
)

// ruleKeyPrefix namespaces every parsed-rule entry.
const ruleKeyPrefix = "rule:"

// DefaultRuleTTL is deliberately long-lived: a given rule text always
// parses to the same structure, so entries only need to turn over when the
// parser itself changes (see InvalidateAll).
const DefaultRuleTTL = 24 * time.Hour

// RuleCache caches the expensive natural-language parse of scheduling rule
// texts. The key is a content hash of the raw text alone: identical texts
// share an entry no matter who submitted them. T is the parsed rule shape;
// it must survive a lossless JSON round trip.
type RuleCache[T any] struct {
	store cache.Store
	ttl   time.Duration
}

// NewRuleCache builds a rule cache over the given store. A zero ttl uses
// DefaultRuleTTL.
func NewRuleCache[T any](store cache.Store, ttl time.Duration) *RuleCache[T] {
	if ttl <= 0 {
		ttl = DefaultRuleTTL
	}
	return &RuleCache[T]{store: store, ttl: ttl}
}

// NewInProcessRuleCache builds a rule cache backed by a private bounded
// in-process store: once more than capacity distinct rule texts are cached,
// the oldest-inserted entries are dropped. For deployments without a
// networked backend.
func NewInProcessRuleCache[T any](capacity int, ttl time.Duration) *RuleCache[T] {
	return NewRuleCache[T](cacheinfra.NewMemoryStore(capacity, nil), ttl)
}

// ruleKey is the content-addressed key for a rule text.
func ruleKey(text string) string {
	return ruleKeyPrefix + cache.HashText(text)
}

// GetParsedRule returns the cached parse of text, if present.
func (c *RuleCache[T]) GetParsedRule(ctx context.Context, text string) (T, bool) {
	return cache.GetJSON[T](ctx, c.store, ruleKey(text))
}

// SetParsedRule stores the parse of text.
func (c *RuleCache[T]) SetParsedRule(ctx context.Context, text string, parsed T) bool {
	return c.store.Set(ctx, ruleKey(text), parsed, c.ttl)
}

// DeleteRule drops the cached parse of a single text. Idempotent.
func (c *RuleCache[T]) DeleteRule(ctx context.Context, text string) bool {
	return c.store.Delete(ctx, ruleKey(text))
}

// InvalidateAll clears the whole rule namespace, e.g. after a parser
// upgrade changes what a text parses to. Returns the number of entries
// cleared.
func (c *RuleCache[T]) InvalidateAll(ctx context.Context) int {
	return c.store.ClearPattern(ctx, ruleKeyPrefix+"*")
}
