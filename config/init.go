package config

import (
	"fmt"
	"strings"
	"sync"

	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/viper"
)

var (
	instance *Config
	once     sync.Once
)

// Init 加载配置：先读 config.yaml（可缺省），再用 CES_ 前缀的环境变量覆盖
func Init() {
	once.Do(load)
}

// Get 获取全局配置，未显式 Init 时按默认值加载（测试场景）
func Get() *Config {
	once.Do(load)
	return instance
}

func load() {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	v.SetDefault("Host", "0.0.0.0")
	v.SetDefault("Port", "8080")
	v.SetDefault("Prefix", "api")
	v.SetDefault("Mode", string(ModeDebug))
	v.SetDefault("Mysql.Port", "3306")
	v.SetDefault("Redis.port", "6379")
	v.SetDefault("Redis.report_ttl", 60)
	v.SetDefault("Log.level", "info")

	if err := v.ReadInConfig(); err != nil {
		// 配置文件允许不存在，走默认值和环境变量
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			panic(fmt.Errorf("读取配置文件失败: %w", err))
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		panic(fmt.Errorf("解析配置失败: %w", err))
	}

	if err := envconfig.Process("CES", cfg); err != nil {
		panic(fmt.Errorf("读取环境变量失败: %w", err))
	}

	switch strings.ToLower(string(cfg.Mode)) {
	case string(ModeRelease):
		cfg.Mode = ModeRelease
	default:
		cfg.Mode = ModeDebug
	}

	instance = cfg
}
