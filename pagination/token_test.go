package pagination

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestCursorTokenRoundTrip(t *testing.T) {
	t.Run("int64", func(t *testing.T) {
		token, err := EncodeCursor(int64(9001))
		if err != nil {
			t.Fatal(err)
		}
		got, err := DecodeCursor[int64](token)
		if err != nil {
			t.Fatal(err)
		}
		if got != 9001 {
			t.Errorf("decoded %d, want 9001", got)
		}
	})

	t.Run("string", func(t *testing.T) {
		token, err := EncodeCursor("emp-42/shift-7")
		if err != nil {
			t.Fatal(err)
		}
		got, err := DecodeCursor[string](token)
		if err != nil {
			t.Fatal(err)
		}
		if got != "emp-42/shift-7" {
			t.Errorf("decoded %q", got)
		}
	})

	t.Run("time", func(t *testing.T) {
		at := time.Date(2025, 6, 1, 9, 30, 0, 0, time.UTC)
		token, err := EncodeCursor(at)
		if err != nil {
			t.Fatal(err)
		}
		got, err := DecodeCursor[time.Time](token)
		if err != nil {
			t.Fatal(err)
		}
		if !got.Equal(at) {
			t.Errorf("decoded %v, want %v", got, at)
		}
	})
}

func TestCursorTokenIsURLSafe(t *testing.T) {
	token, err := EncodeCursor("values that pad oddly & contain bytes + / =")
	if err != nil {
		t.Fatal(err)
	}
	if strings.ContainsAny(token, "+/=") {
		t.Errorf("token %q contains characters unsafe in a query string", token)
	}
}

func TestDecodeCursorRejectsMalformedTokens(t *testing.T) {
	tests := []struct {
		name  string
		token string
	}{
		{"not base64", "%%%not-base64%%%"},
		{"base64 but not msgpack", "wQ"}, // decodes to 0xc1, a reserved msgpack code
		{"empty", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := DecodeCursor[int64](tt.token); !errors.Is(err, ErrInvalidCursor) {
				t.Errorf("expected ErrInvalidCursor, got %v", err)
			}
		})
	}
}

func TestDecodeCursorRejectsTypeMismatch(t *testing.T) {
	token, err := EncodeCursor("not a number")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := DecodeCursor[int64](token); !errors.Is(err, ErrInvalidCursor) {
		t.Errorf("expected ErrInvalidCursor for mismatched payload type, got %v", err)
	}
}
