package config

import (
	"fmt"
	"time"

	"github.com/aviroopjana/versa/global"
	"github.com/aviroopjana/versa/log"

	"github.com/go-redis/redis"
	"go.uber.org/zap"
)

// redis键的格式
const (
	RedisKeyOTP        = "auth:otp:%s"         // 邮箱验证码，按邮箱
	RedisKeyOAuthState = "auth:oauth:state:%s" // OAuth登录的state
	RedisKeyUsers      = "user:%s"             // 用户缓存，按邮箱
)

const (
	OTPExpiry     = 10 * time.Minute // 验证码有效期
	OAuthStateTTL = 5 * time.Minute
)

func initRedis() {
	RedisClient := redis.NewClient(&redis.Options{
		Addr:         AppConfig.Redis.Addr,
		DB:           AppConfig.Redis.DB,
		Password:     AppConfig.Redis.Password,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  800 * time.Millisecond,
		WriteTimeout: 800 * time.Millisecond,
		PoolSize:     20,
		MinIdleConns: 5,
	})
	_, err := RedisClient.Ping().Result()
	if err != nil {
		log.L().Error("Redis connection failed ,got error:", zap.Error(err))
	}
	global.RedisDB = RedisClient
	fmt.Println("2. Redis DataBase connection success!")
}
