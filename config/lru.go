package config

import (
	"fmt"
	"sync"
	"time"

	"github.com/aviroopjana/versa/global"
	"github.com/aviroopjana/versa/models"

	"golang.org/x/time/rate"

	lru "github.com/hashicorp/golang-lru/v2" //本质上是双向链表+Hash表
)

var (
	// 全局LRU缓存实例-auth中间件用，省掉每次请求的用户查询
	LocalUserCache *lru.Cache[string, models.Users]
	cacheOnce      sync.Once
	// 登录限流器-按IP，防止爆破
	cleanupOnce   sync.Once
	LoginAttempts = sync.Map{}
)

func initUserCache(size int) {
	cacheOnce.Do(func() { //确保只初始化一次
		cache, err := lru.New[string, models.Users](size)
		if err != nil {
			panic(err)
		}
		LocalUserCache = cache
	})
}

// ClearUserCache 用户资料变更后调用（邮箱验证、改名等）
func ClearUserCache(email string) {
	cacheKey := fmt.Sprintf(RedisKeyUsers, email)
	if LocalUserCache != nil {
		LocalUserCache.Remove(cacheKey)
	}
	global.RedisDB.Del(cacheKey)
}

// GetLoginLimiter 每个IP一个令牌桶：2秒回填一个，突发5次
func GetLoginLimiter(ip string) *rate.Limiter {
	ensureCleanupRunning()
	v, _ := LoginAttempts.LoadOrStore(ip, rate.NewLimiter(rate.Every(2*time.Second), 5))
	return v.(*rate.Limiter)
}

func ensureCleanupRunning() {
	cleanupOnce.Do(func() {
		go cleanupOldLimiters()
	})
}

func cleanupOldLimiters() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		LoginAttempts.Range(func(key, value interface{}) bool {
			limiter := value.(*rate.Limiter)
			// 桶已满说明5分钟内没人用过，可以清掉
			if limiter.TokensAt(time.Now().Add(-5*time.Minute)) == float64(limiter.Burst()) {
				LoginAttempts.Delete(key)
			}
			return true
		})
	}
}
