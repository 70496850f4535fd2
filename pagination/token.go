package pagination

import (
	"encoding/base64"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
)

// EncodeCursor renders a cursor value as an opaque URL-safe token for the
// HTTP boundary. Callers treat tokens as opaque: the encoding may change
// between releases and tokens carry no authenticity guarantee.
func EncodeCursor[K any](cursor K) (string, error) {
	packed, err := msgpack.Marshal(cursor)
	if err != nil {
		return "", fmt.Errorf("pagination: encode cursor: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(packed), nil
}

// DecodeCursor parses a token produced by EncodeCursor back into a cursor
// value. Any malformed token, whatever the layer it is broken at, reports
// ErrInvalidCursor.
func DecodeCursor[K any](token string) (K, error) {
	var zero K
	packed, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return zero, fmt.Errorf("%w: %v", ErrInvalidCursor, err)
	}
	var cursor K
	if err := msgpack.Unmarshal(packed, &cursor); err != nil {
		return zero, fmt.Errorf("%w: %v", ErrInvalidCursor, err)
	}
	return cursor, nil
}
