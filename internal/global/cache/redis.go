package cache

import (
	"campus-event-system/config"
	"campus-event-system/internal/global/logger"
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Client 全局 redis 客户端，未配置 redis host 时保持 nil（缓存整体禁用）
var Client *redis.Client

func Init() {
	cfg := config.Get()
	if cfg.Redis.Host == "" {
		return
	}

	Client = redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.Redis.Host, cfg.Redis.Port),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := Client.Ping(ctx).Err(); err != nil {
		// redis 不可用时降级为无缓存，不阻止服务启动
		logger.New("Cache").Warn("redis 连接失败，报表缓存禁用", "error", err)
		Client = nil
	}
}

// Enabled 报表缓存是否可用
func Enabled() bool {
	return Client != nil && config.Get().Redis.ReportTTL > 0
}

// TTL 报表缓存有效期
func TTL() time.Duration {
	return time.Duration(config.Get().Redis.ReportTTL) * time.Second
}
