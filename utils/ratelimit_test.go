package utils

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestRateLimiterWindow(t *testing.T) {
	base := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	now := base
	rl := NewRateLimiter(10, 60*time.Second)
	rl.now = func() time.Time { return now }

	// 前10次放行
	for i := 0; i < 10; i++ {
		if err := rl.Check("user-1"); err != nil {
			t.Fatalf("request %d unexpectedly limited: %v", i+1, err)
		}
	}
	// 第11次拒绝
	err := rl.Check("user-1")
	if err == nil {
		t.Fatal("11th request within the window was not limited")
	}
	var appErr *AppError
	if !errors.As(err, &appErr) || appErr.Code != "RATE_LIMIT_EXCEEDED" {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(appErr.Message, "60 seconds") {
		t.Fatalf("expected seconds-to-reset in message, got %q", appErr.Message)
	}

	// 其他用户不受影响
	if err := rl.Check("user-2"); err != nil {
		t.Fatalf("other key was limited: %v", err)
	}

	// 窗口过了计数清零
	now = base.Add(61 * time.Second)
	for i := 0; i < 10; i++ {
		if err := rl.Check("user-1"); err != nil {
			t.Fatalf("request %d after reset unexpectedly limited: %v", i+1, err)
		}
	}
	if err := rl.Check("user-1"); err == nil {
		t.Fatal("11th request after reset was not limited")
	}
}
