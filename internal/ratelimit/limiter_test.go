package ratelimit

import (
	"context"
	"testing"
	"time"
)

func TestHostLimiter_BurstThenThrottle(t *testing.T) {
	hl := NewHostLimiter(1, 2)

	if !hl.Allow("https://example.com/a") {
		t.Error("First request should pass")
	}
	if !hl.Allow("https://example.com/b") {
		t.Error("Second request should fit in the burst")
	}
	if hl.Allow("https://example.com/c") {
		t.Error("Third immediate request should be throttled")
	}
}

func TestHostLimiter_PerHostBudgets(t *testing.T) {
	hl := NewHostLimiter(1, 1)

	if !hl.Allow("https://one.test/page") {
		t.Error("First host should pass")
	}
	if hl.Allow("https://one.test/other") {
		t.Error("Same host should be throttled")
	}
	if !hl.Allow("https://two.test/page") {
		t.Error("Different host has its own budget")
	}
}

func TestHostLimiter_WaitBlocks(t *testing.T) {
	hl := NewHostLimiter(20, 1)
	ctx := context.Background()

	if err := hl.Wait(ctx, "https://example.com/"); err != nil {
		t.Fatalf("First wait failed: %v", err)
	}

	start := time.Now()
	if err := hl.Wait(ctx, "https://example.com/"); err != nil {
		t.Fatalf("Second wait failed: %v", err)
	}
	if elapsed := time.Since(start); elapsed < 20*time.Millisecond {
		t.Errorf("Second wait returned after %v, expected throttling delay", elapsed)
	}
}

func TestHostLimiter_WaitCancelled(t *testing.T) {
	hl := NewHostLimiter(0.1, 1)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_ = hl.Wait(ctx, "https://example.com/")
	if err := hl.Wait(ctx, "https://example.com/"); err == nil {
		t.Error("Expected error when context expires before a token is available")
	}
}

func TestHostLimiter_InvalidURLPassesThrough(t *testing.T) {
	hl := NewHostLimiter(1, 1)
	if !hl.Allow("://not-a-url") {
		t.Error("Unparsable URL must not be rate limited")
	}
	if err := hl.Wait(context.Background(), "://not-a-url"); err != nil {
		t.Errorf("Wait on unparsable URL: %v", err)
	}
}

func TestNewHostLimiter_Defaults(t *testing.T) {
	hl := NewHostLimiter(0, 0)
	if hl.perHost != 0.2 || hl.burst != 1 {
		t.Errorf("Defaults: got rps=%v burst=%d", hl.perHost, hl.burst)
	}
}
