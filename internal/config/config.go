package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// ==================== 配置结构 ====================

// Config 应用配置，全部来自环境变量
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	JWT       JWTConfig
	OneBound  OneBoundConfig
	Translate TranslateConfig
}

// ServerConfig HTTP 服务配置
type ServerConfig struct {
	Port string
	Env  string // development / production
}

// DatabaseConfig PostgreSQL 配置
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// DSN 拼 GORM 连接串
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// RedisConfig Redis 配置，Addr 为空时退化为进程内缓存
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// JWTConfig JWT 签名配置
type JWTConfig struct {
	Secret string
}

// OneBoundConfig 1688 网关配置
type OneBoundConfig struct {
	APIKey    string
	APISecret string
	BaseURL   string
}

// TranslateConfig 翻译接口配置
type TranslateConfig struct {
	BaseURL string
	APIKey  string
}

// ==================== 加载 ====================

// Load 读取 .env 和环境变量。.env 不存在不算错。
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		zap.L().Info("未找到 .env 文件，直接读环境变量")
	}

	return &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "8080"),
			Env:  getEnv("APP_ENV", "development"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "tradeon"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		JWT: JWTConfig{
			Secret: getEnv("JWT_SECRET", ""),
		},
		OneBound: OneBoundConfig{
			APIKey:    getEnv("ONEBOUND_API_KEY", ""),
			APISecret: getEnv("ONEBOUND_API_SECRET", ""),
			BaseURL:   getEnv("ONEBOUND_BASE_URL", ""),
		},
		Translate: TranslateConfig{
			BaseURL: getEnv("TRANSLATE_BASE_URL", ""),
			APIKey:  getEnv("TRANSLATE_API_KEY", ""),
		},
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
