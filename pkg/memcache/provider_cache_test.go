package mem

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestLocalCache_JSONRoundTripAndExpiry(t *testing.T) {
	ctx := context.Background()
	c := NewProviderCache(nil, time.Minute)

	type point struct{ Lat, Lng float64 }
	if err := SetJSON(ctx, c, "paris", point{48.85, 2.35}, time.Minute); err != nil {
		t.Fatalf("SetJSON: %v", err)
	}
	var got point
	if err := GetJSON(ctx, c, "paris", &got); err != nil {
		t.Fatalf("GetJSON: %v", err)
	}
	if got.Lat != 48.85 || got.Lng != 2.35 {
		t.Errorf("unexpected value %+v", got)
	}

	if err := c.Set(ctx, "short", []byte("x"), time.Millisecond); err != nil {
		t.Fatalf("Set: %v", err)
	}
	time.Sleep(20 * time.Millisecond)
	if _, err := c.Get(ctx, "short"); !errors.Is(err, ErrCacheMiss) {
		t.Errorf("expected miss after expiry, got %v", err)
	}
	if _, err := c.Get(ctx, "absent"); !errors.Is(err, ErrCacheMiss) {
		t.Errorf("expected miss for unknown key, got %v", err)
	}
}
