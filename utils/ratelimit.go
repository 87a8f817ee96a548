package utils

// 固定窗口限流器-进程内计数
// 多实例部署时各进程独立计数，全局会低估请求速率，单实例部署下够用
import (
	"fmt"
	"sync"
	"time"
)

type windowEntry struct {
	count   int
	resetAt time.Time
}

type RateLimiter struct {
	mu      sync.Mutex
	limit   int
	window  time.Duration
	buckets map[string]*windowEntry
	now     func() time.Time //便于测试注入时间
}

func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		limit:   limit,
		window:  window,
		buckets: make(map[string]*windowEntry),
		now:     time.Now,
	}
}

// Check 给key计一次数，窗口内超出配额时返回RateLimitError
func (r *RateLimiter) Check(key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	entry, ok := r.buckets[key]
	if !ok || !entry.resetAt.After(now) {
		r.buckets[key] = &windowEntry{count: 1, resetAt: now.Add(r.window)}
		return nil
	}
	if entry.count >= r.limit {
		wait := entry.resetAt.Sub(now)
		seconds := int((wait + time.Second - 1) / time.Second)
		return NewRateLimitError(fmt.Sprintf("Rate limit exceeded. Try again in %d seconds", seconds))
	}
	entry.count++
	return nil
}
