package readthrough

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func testConfig() Config {
	return Config{
		Capacity:           128,
		NumShards:          4,
		TTL:                time.Minute,
		EvictionPercentage: 10,
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*Config)
		wantField string
	}{
		{
			name:   "valid",
			mutate: func(c *Config) {},
		},
		{
			name:      "zero capacity",
			mutate:    func(c *Config) { c.Capacity = 0 },
			wantField: "Capacity",
		},
		{
			name:      "zero shards",
			mutate:    func(c *Config) { c.NumShards = 0 },
			wantField: "NumShards",
		},
		{
			name:      "zero ttl",
			mutate:    func(c *Config) { c.TTL = 0 },
			wantField: "TTL",
		},
		{
			name:      "eviction percentage too high",
			mutate:    func(c *Config) { c.EvictionPercentage = 101 },
			wantField: "EvictionPercentage",
		},
		{
			name: "negative early refresh",
			mutate: func(c *Config) {
				c.EarlyRefresh = &EarlyRefreshConfig{MinAsyncRefreshTime: -time.Second}
			},
			wantField: "EarlyRefresh.MinAsyncRefreshTime",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantField == "" {
				if err != nil {
					t.Errorf("expected valid config, got %v", err)
				}
				return
			}

			var cfgErr *ConfigError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("expected ConfigError, got %v", err)
			}
			if cfgErr.Field != tt.wantField {
				t.Errorf("expected field %q, got %q", tt.wantField, cfgErr.Field)
			}
		})
	}
}

func TestGetOrFetch_CachesResult(t *testing.T) {
	svc, err := New(testConfig())
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	ctx := context.Background()
	calls := 0
	fetch := func(ctx context.Context) (string, error) {
		calls++
		return "computed", nil
	}

	for i := 0; i < 3; i++ {
		got, err := GetOrFetch(ctx, svc, "schedule:week-32", fetch)
		if err != nil {
			t.Fatalf("GetOrFetch() error: %v", err)
		}
		if got != "computed" {
			t.Errorf("expected %q, got %q", "computed", got)
		}
	}

	if calls != 1 {
		t.Errorf("expected 1 fetch execution, got %d", calls)
	}
}

func TestGetOrFetch_ErrorNotCached(t *testing.T) {
	svc, err := New(testConfig())
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	ctx := context.Background()
	calls := 0
	boom := errors.New("solver exploded")
	fetch := func(ctx context.Context) (int, error) {
		calls++
		if calls == 1 {
			return 0, boom
		}
		return 42, nil
	}

	if _, err := GetOrFetch(ctx, svc, "k", fetch); !errors.Is(err, boom) {
		t.Fatalf("expected solver error, got %v", err)
	}

	got, err := GetOrFetch(ctx, svc, "k", fetch)
	if err != nil {
		t.Fatalf("GetOrFetch() after failure: %v", err)
	}
	if got != 42 {
		t.Errorf("expected recomputed value 42, got %d", got)
	}
}

func TestGetOrFetch_ConcurrentMissesShareOneFetch(t *testing.T) {
	svc, err := New(testConfig())
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	ctx := context.Background()
	var calls atomic.Int64
	fetch := func(ctx context.Context) (int, error) {
		calls.Add(1)
		time.Sleep(20 * time.Millisecond)
		return 7, nil
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := GetOrFetch(ctx, svc, "shared", fetch)
			if err != nil {
				t.Errorf("GetOrFetch() error: %v", err)
			}
			if got != 7 {
				t.Errorf("expected 7, got %d", got)
			}
		}()
	}
	wg.Wait()

	if calls.Load() != 1 {
		t.Errorf("expected a single shared fetch, got %d", calls.Load())
	}
}

func TestDelete_ForcesRecompute(t *testing.T) {
	svc, err := New(testConfig())
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	ctx := context.Background()
	calls := 0
	fetch := func(ctx context.Context) (int, error) {
		calls++
		return calls, nil
	}

	if _, err := GetOrFetch(ctx, svc, "k", fetch); err != nil {
		t.Fatal(err)
	}
	svc.Delete("k")
	got, err := GetOrFetch(ctx, svc, "k", fetch)
	if err != nil {
		t.Fatal(err)
	}
	if got != 2 {
		t.Errorf("expected recompute after Delete, got %d", got)
	}
}
