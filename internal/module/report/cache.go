package report

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"campus-event-system/internal/global/cache"
)

// 报表缓存走 cache-aside：redis 不可用或 TTL 为 0 时所有操作直接跳过，
// 缓存读写失败都不影响请求本身

func cacheKey(parts ...string) string {
	return "report:" + strings.Join(parts, ":")
}

func getCached(key string, dest any) bool {
	if !cache.Enabled() {
		return false
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	raw, err := cache.Client.Get(ctx, key).Bytes()
	if err != nil {
		return false
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		log.Warn("报表缓存反序列化失败", "key", key, "error", err)
		return false
	}
	return true
}

func setCached(key string, v any) {
	if !cache.Enabled() {
		return
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	if err := cache.Client.Set(ctx, key, raw, cache.TTL()).Err(); err != nil {
		log.Warn("报表缓存写入失败", "key", key, "error", err)
	}
}
