package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mamadbah2/ranch/internal/domain/models"
)

// fakeRedis keeps GET/SET in memory; every other command panics.
type fakeRedis struct {
	redis.Cmdable
	store   map[string]string
	ttl     time.Duration
	failGet error
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{store: map[string]string{}}
}

func (f *fakeRedis) Get(ctx context.Context, key string) *redis.StringCmd {
	cmd := redis.NewStringCmd(ctx, "get", key)
	if f.failGet != nil {
		cmd.SetErr(f.failGet)
		return cmd
	}
	v, ok := f.store[key]
	if !ok {
		cmd.SetErr(redis.Nil)
		return cmd
	}
	cmd.SetVal(v)
	return cmd
}

func (f *fakeRedis) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	cmd := redis.NewStatusCmd(ctx, "set", key, value)
	f.store[key] = string(value.([]byte))
	f.ttl = expiration
	cmd.SetVal("OK")
	return cmd
}

func TestRedisCache_RoundTrip(t *testing.T) {
	ctx := context.Background()
	fake := newFakeRedis()
	c := newRedisCache(fake, 10*time.Minute, nil)

	if _, ok, err := c.Get(ctx, "k"); ok || err != nil {
		t.Fatalf("empty cache: ok=%v err=%v", ok, err)
	}

	record := models.AnalysisRecord{
		ID:     "a-1",
		FarmID: "farm-1",
		Result: &models.ProfitabilityResult{NetProfit: 63423.5, ROI: models.Defined(126.8), PaybackPeriod: models.Undefined},
	}
	if err := c.Set(ctx, "k", record); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if fake.ttl != 10*time.Minute {
		t.Errorf("ttl = %v", fake.ttl)
	}
	if _, stored := fake.store["ranch:analysis:k"]; !stored {
		t.Errorf("keys = %v, want prefixed key", fake.store)
	}

	got, ok, err := c.Get(ctx, "k")
	if err != nil || !ok {
		t.Fatalf("Get: ok=%v err=%v", ok, err)
	}
	if got.ID != "a-1" || got.Result.NetProfit != 63423.5 || got.Result.ROI != models.Defined(126.8) || got.Result.PaybackPeriod.Defined {
		t.Errorf("record = %+v", got.Result)
	}
}

func TestRedisCache_Failures(t *testing.T) {
	ctx := context.Background()
	fake := newFakeRedis()
	c := newRedisCache(fake, 0, nil)

	fake.store["ranch:analysis:bad"] = "{not json"
	if _, ok, err := c.Get(ctx, "bad"); ok || err != nil {
		t.Errorf("corrupt entry: ok=%v err=%v, want silent miss", ok, err)
	}

	fake.failGet = errors.New("connection refused")
	if _, _, err := c.Get(ctx, "bad"); err == nil {
		t.Error("expected error when redis fails")
	}
	if c.ttl != DefaultTTL {
		t.Errorf("ttl = %v, want default", c.ttl)
	}
}

func TestKey(t *testing.T) {
	data := models.LivestockData{FarmID: "farm-1", InitialInventory: 100, SalePrice: 3.5}
	locale := models.DefaultLocale(models.CountryColombia)

	a, err := Key(data, locale, "2.1.0")
	if err != nil {
		t.Fatalf("Key: %v", err)
	}
	b, _ := Key(data, locale, "2.1.0")
	if a != b || len(a) != 64 {
		t.Errorf("keys %q / %q", a, b)
	}

	data.SalePrice = 3.6
	if c, _ := Key(data, locale, "2.1.0"); c == a {
		t.Error("different input produced the same key")
	}
	if d, _ := Key(models.LivestockData{FarmID: "farm-1", InitialInventory: 100, SalePrice: 3.5}, locale, "2.2.0"); d == a {
		t.Error("different engine version produced the same key")
	}
}
