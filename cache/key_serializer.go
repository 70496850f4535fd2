package cache

import (
	"encoding/json"
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// KeySeparator defines the delimiter used between cache key segments.
const KeySeparator = "::"

// KeySerializer builds a cache key from a namespace plus arbitrary
// positional and keyword-style arguments. Implementations must produce
// stable keys across calls and across process restarts.
type KeySerializer interface {
	SerializeKey(namespace string, args []any, kwargs map[string]any) string
}

// DeriveKey canonicalizes the argument tree into {"args": [...],
// "kwargs": {...}} with map keys serialized in sorted order at every level,
// then digests the canonical form with xxhash into a fixed-length
// 16-hex-character key.
//
// Structurally equal argument sets produce identical keys regardless of map
// insertion order. The digest is not collision-proof; it trades
// cryptographic strength for speed, which is acceptable for cache keys.
//
// An error means the arguments are not representable in a JSON-compatible
// encoding, which is a caller error. Callers that cannot surface it should
// fall back to running uncached.
func DeriveKey(args []any, kwargs map[string]any) (string, error) {
	canonical, err := json.Marshal(map[string]any{
		"args":   args,
		"kwargs": kwargs,
	})
	if err != nil {
		return "", fmt.Errorf("cache: derive key: %w", err)
	}
	return fmt.Sprintf("%016x", xxhash.Sum64(canonical)), nil
}

// defaultKeySerializer joins the namespace with the derived digest of the
// arguments. When the digest cannot be computed it degrades to the
// namespace alone, which keeps lookups working (they will simply collide
// within the namespace and be refreshed on every write).
type defaultKeySerializer struct{}

// NewDefaultKeySerializer creates a new instance of the default key serializer.
func NewDefaultKeySerializer() KeySerializer {
	return &defaultKeySerializer{}
}

func (s *defaultKeySerializer) SerializeKey(namespace string, args []any, kwargs map[string]any) string {
	if len(args) == 0 && len(kwargs) == 0 {
		return namespace
	}
	digest, err := DeriveKey(args, kwargs)
	if err != nil {
		return namespace
	}
	if namespace == "" {
		return digest
	}
	return namespace + KeySeparator + digest
}

// HashText digests a blob of text into the same fixed-length hex form used
// by DeriveKey. Useful for content-addressed keys where the raw text alone
// identifies the entry.
func HashText(text string) string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(text))
}
