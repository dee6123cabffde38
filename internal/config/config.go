package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config 全局配置结构体（完全匹配config.yaml）
type Config struct {
	Server    ServerConfig              `mapstructure:"server"`    // 服务器配置
	Postgres  PostgresConfig            `mapstructure:"postgres"`  // PostgreSQL配置
	Refresh   RefreshConfig             `mapstructure:"refresh"`   // 快照刷新调度配置
	Platforms map[string]PlatformConfig `mapstructure:"platforms"` // 多平台独立配置
}

// ServerConfig 服务器配置
type ServerConfig struct {
	Port int    `mapstructure:"port"` // 服务端口
	Mode string `mapstructure:"mode"` // Gin运行模式：debug/release/test
}

// PostgresConfig PostgreSQL数据库配置（仅关注/提醒存储使用）
type PostgresConfig struct {
	DSN             string        `mapstructure:"dsn"`               // 连接DSN
	MaxOpenConns    int           `mapstructure:"max_open_conns"`    // 最大打开连接数
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`    // 最大空闲连接数
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"` // 连接最大存活时间
}

// RefreshConfig 快照刷新调度配置
type RefreshConfig struct {
	Cron           string `mapstructure:"cron"`             // 定时刷新Cron表达式
	RefreshOnStart bool   `mapstructure:"refresh_on_start"` // 启动时是否先刷一轮
}

// PlatformConfig 单个平台的独立配置
type PlatformConfig struct {
	BaseURL     string `mapstructure:"base_url"`     // API基础地址
	Timeout     int    `mapstructure:"timeout"`      // 请求超时（秒）
	PageTimeout int    `mapstructure:"page_timeout"` // 单页抓取超时（秒），0用默认8秒
	PageLimit   int    `mapstructure:"page_limit"`   // 单页条数
	MaxPages    int    `mapstructure:"max_pages"`    // 最多翻页数（Kalshi≤3，Opinion≤5）
	Proxy       string `mapstructure:"proxy"`        // 代理地址
	RateBurst   int    `mapstructure:"rate_burst"`   // 限速器并发上限
	RateEveryMs int    `mapstructure:"rate_every_ms"` // 限速器最小请求间隔（毫秒）
}

// LoadConfig 加载配置文件（config/config.yaml），敏感项从 .env 覆盖（不提交 git）
func LoadConfig() (*Config, error) {
	// 1. 加载 .env（若存在），env 中的值会覆盖 config.yaml 中同名字段
	_ = godotenv.Load() // 忽略错误（.env 可不存在）

	// 2. 读取 config.yaml
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("读取配置文件失败: %w", err)
	}

	viper.SetTypeByDefaultValue(true)
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("解析配置文件失败: %w", err)
	}

	// 3. 敏感字段：用 env 覆盖（优先级 env > yaml）
	overrideFromEnv(&cfg)
	return &cfg, nil
}

// overrideFromEnv 用环境变量覆盖敏感配置
func overrideFromEnv(cfg *Config) {
	for name, p := range cfg.Platforms {
		prefix := strings.ToUpper(name)
		if v := os.Getenv(prefix + "_BASE_URL"); v != "" {
			p.BaseURL = v
		}
		if v := os.Getenv(prefix + "_PROXY"); v != "" {
			p.Proxy = v
		}
		cfg.Platforms[name] = p
	}
	if v := os.Getenv("POSTGRES_DSN"); v != "" {
		cfg.Postgres.DSN = v
	}
}

// PlatformOrDefault 取平台配置，缺失时返回零值配置（全部走默认）
func (c *Config) PlatformOrDefault(name string) PlatformConfig {
	if p, ok := c.Platforms[name]; ok {
		return p
	}
	return PlatformConfig{}
}
