package cache

import (
	"strings"
	"testing"
)

func TestDeriveKey_Deterministic(t *testing.T) {
	args := []any{1, "hello", true}
	kwargs := map[string]any{"department": "kitchen", "week": 32}

	first, err := DeriveKey(args, kwargs)
	if err != nil {
		t.Fatalf("DeriveKey() error: %v", err)
	}
	second, err := DeriveKey(args, kwargs)
	if err != nil {
		t.Fatalf("DeriveKey() error: %v", err)
	}

	if first != second {
		t.Errorf("expected identical keys, got %q and %q", first, second)
	}
	if len(first) != 16 {
		t.Errorf("expected fixed 16-char key, got %d chars: %q", len(first), first)
	}
}

func TestDeriveKey_MapOrderIndependence(t *testing.T) {
	// Two maps built in different insertion order must canonicalize to the
	// same key.
	a := map[string]any{}
	a["alpha"] = 1
	a["beta"] = 2
	a["gamma"] = 3

	b := map[string]any{}
	b["gamma"] = 3
	b["alpha"] = 1
	b["beta"] = 2

	keyA, err := DeriveKey(nil, a)
	if err != nil {
		t.Fatalf("DeriveKey() error: %v", err)
	}
	keyB, err := DeriveKey(nil, b)
	if err != nil {
		t.Fatalf("DeriveKey() error: %v", err)
	}

	if keyA != keyB {
		t.Errorf("expected order-independent keys, got %q and %q", keyA, keyB)
	}
}

func TestDeriveKey_StructurallyDifferentArgsDiffer(t *testing.T) {
	tests := []struct {
		name    string
		argsA   []any
		kwargsA map[string]any
		argsB   []any
		kwargsB map[string]any
	}{
		{
			name:  "different positional values",
			argsA: []any{1, 2},
			argsB: []any{2, 1},
		},
		{
			name:    "different keyword values",
			kwargsA: map[string]any{"week": 1},
			kwargsB: map[string]any{"week": 2},
		},
		{
			name:    "positional vs keyword",
			argsA:   []any{"x"},
			kwargsB: map[string]any{"0": "x"},
		},
		{
			name:  "nested slices in different order",
			argsA: []any{[]any{1, 2}},
			argsB: []any{[]any{2, 1}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			keyA, err := DeriveKey(tt.argsA, tt.kwargsA)
			if err != nil {
				t.Fatalf("DeriveKey(A) error: %v", err)
			}
			keyB, err := DeriveKey(tt.argsB, tt.kwargsB)
			if err != nil {
				t.Fatalf("DeriveKey(B) error: %v", err)
			}
			if keyA == keyB {
				t.Errorf("expected distinct keys, both were %q", keyA)
			}
		})
	}
}

func TestDeriveKey_NonSerializableArgs(t *testing.T) {
	if _, err := DeriveKey([]any{make(chan int)}, nil); err == nil {
		t.Error("expected error for non-serializable argument")
	}
}

func TestDefaultKeySerializer(t *testing.T) {
	serializer := NewDefaultKeySerializer()

	t.Run("namespace only", func(t *testing.T) {
		if got := serializer.SerializeKey("schedules", nil, nil); got != "schedules" {
			t.Errorf("SerializeKey() = %q, want %q", got, "schedules")
		}
	})

	t.Run("namespace with args", func(t *testing.T) {
		got := serializer.SerializeKey("schedules", []any{1, 2}, nil)
		if !strings.HasPrefix(got, "schedules"+KeySeparator) {
			t.Errorf("expected namespace prefix, got %q", got)
		}
		if len(got) != len("schedules")+len(KeySeparator)+16 {
			t.Errorf("unexpected key length for %q", got)
		}
	})

	t.Run("empty namespace", func(t *testing.T) {
		got := serializer.SerializeKey("", []any{1}, nil)
		if strings.Contains(got, KeySeparator) {
			t.Errorf("expected bare digest, got %q", got)
		}
		if len(got) != 16 {
			t.Errorf("expected 16-char digest, got %q", got)
		}
	})

	t.Run("degrades to namespace on bad args", func(t *testing.T) {
		got := serializer.SerializeKey("schedules", []any{make(chan int)}, nil)
		if got != "schedules" {
			t.Errorf("SerializeKey() = %q, want namespace fallback", got)
		}
	})
}

func TestHashText(t *testing.T) {
	a := HashText("Every employee needs two days off per week")
	b := HashText("Every employee needs two days off per week")
	c := HashText("No employee works more than five shifts")

	if a != b {
		t.Errorf("expected stable hash, got %q and %q", a, b)
	}
	if a == c {
		t.Error("expected different texts to hash differently")
	}
	if len(a) != 16 {
		t.Errorf("expected 16-char hash, got %q", a)
	}
}
