package di

import (
	"context"
	"testing"
	"time"

	"github.com/TingTung93/AI-Schedule-Manager-sub003/cache"
	"github.com/TingTung93/AI-Schedule-Manager-sub003/schedcache"
)

func TestNewContainer(t *testing.T) {
	config := cache.Config{
		DialTimeout: time.Second,
		DefaultTTL:  time.Minute,
		Capacity:    512,
	}

	container, err := NewContainer(config)
	if err != nil {
		t.Fatalf("NewContainer() failed: %v", err)
	}

	if container.Store() == nil {
		t.Error("Container should have a non-nil store")
	}
	if container.KeySerializer() == nil {
		t.Error("Container should have a non-nil key serializer")
	}

	stored := container.Config()
	if stored.DefaultTTL != config.DefaultTTL {
		t.Errorf("Expected DefaultTTL %v, got %v", config.DefaultTTL, stored.DefaultTTL)
	}
	if stored.Capacity != config.Capacity {
		t.Errorf("Expected capacity %d, got %d", config.Capacity, stored.Capacity)
	}
}

func TestNewContainerWithDefaults(t *testing.T) {
	container, err := NewContainerWithDefaults()
	if err != nil {
		t.Fatalf("NewContainerWithDefaults() failed: %v", err)
	}

	defaults := cache.DefaultConfig()
	if got := container.Config().DefaultTTL; got != defaults.DefaultTTL {
		t.Errorf("Expected default TTL %v, got %v", defaults.DefaultTTL, got)
	}
}

func TestNewContainerRejectsInvalidConfig(t *testing.T) {
	if _, err := NewContainer(cache.Config{DefaultTTL: time.Minute, Capacity: -1}); err == nil {
		t.Error("expected error for negative capacity")
	}
}

func TestCachesShareStoreAcrossFactories(t *testing.T) {
	container, err := NewContainerWithDefaults()
	if err != nil {
		t.Fatal(err)
	}

	ctx := context.Background()
	rules := NewRuleCache[string](container, 0)
	rules.SetParsedRule(ctx, "No more than 5 shifts per week", "parsed")

	// The rule lives in the container's shared store, so it is reachable
	// through the store handle directly.
	schedules := NewScheduleCache[[]string](container)
	key := schedcache.ScheduleKey{Date: "2025-06-01", EmployeeIDs: []int64{1, 2}}
	if !schedules.SetSchedule(ctx, key, []string{"s1"}) {
		t.Fatal("SetSchedule rejected a serializable value")
	}

	if got, ok := rules.GetParsedRule(ctx, "No more than 5 shifts per week"); !ok || got != "parsed" {
		t.Errorf("rule lookup = %q/%v, want parsed/true", got, ok)
	}
	if got, ok := schedules.GetSchedule(ctx, key); !ok || len(got) != 1 {
		t.Errorf("schedule lookup = %v/%v", got, ok)
	}

	// Clearing everything through one cache's store clears the other's
	// entries too.
	if n := container.Store().ClearPattern(ctx, "*"); n == 0 {
		t.Error("expected shared store to report cleared entries")
	}
	if _, ok := rules.GetParsedRule(ctx, "No more than 5 shifts per week"); ok {
		t.Error("rule survived a full clear of the shared store")
	}
}
