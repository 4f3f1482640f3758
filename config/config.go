package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

const DefaultPath = "config/config.yaml"

type Config struct {
	Server struct {
		Port           string   `yaml:"port"`
		Mode           string   `yaml:"mode"`
		AllowedOrigins []string `yaml:"allowed_origins"`
	} `yaml:"server"`

	Store struct {
		Driver    string `yaml:"driver"` // memory / mysql / redis
		KeyPrefix string `yaml:"key_prefix"`
	} `yaml:"store"`

	MySQL struct {
		DSN string `yaml:"dsn"`
	} `yaml:"mysql"`

	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
	} `yaml:"redis"`

	Queue struct {
		Enabled     bool          `yaml:"enabled"`
		Concurrency int           `yaml:"concurrency"`
		MaxRetry    int           `yaml:"max_retry"`
		Timeout     time.Duration `yaml:"timeout"`
	} `yaml:"queue"`

	MinIO struct {
		Enabled   bool   `yaml:"enabled"`
		Endpoint  string `yaml:"endpoint"`
		AccessKey string `yaml:"access_key"`
		SecretKey string `yaml:"secret_key"`
		Bucket    string `yaml:"bucket"`
		UseSSL    bool   `yaml:"use_ssl"`
	} `yaml:"minio"`

	Generation struct {
		DefaultModel string        `yaml:"default_model"`
		BaseURL      string        `yaml:"base_url"`
		APIKey       string        `yaml:"api_key"`
		PollInterval time.Duration `yaml:"poll_interval"`
		DemoFallback bool          `yaml:"demo_fallback"`
		SimulateStep time.Duration `yaml:"simulate_step"`
	} `yaml:"generation"`

	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"` // console / json
	} `yaml:"log"`
}

var AppConfig *Config

// Default 不读取任何文件时的配置
func Default() *Config {
	c := &Config{}
	c.Server.Port = ":8080"
	c.Server.Mode = "debug"
	c.Server.AllowedOrigins = []string{"*"}
	c.Store.Driver = "memory"
	c.Redis.Addr = "127.0.0.1:6379"
	c.Queue.Concurrency = 5
	c.Queue.MaxRetry = 0
	c.Queue.Timeout = 20 * time.Minute
	c.MinIO.Bucket = "genvo"
	c.Generation.DefaultModel = "veo3"
	c.Generation.BaseURL = "https://queue.fal.run"
	c.Generation.PollInterval = 2 * time.Second
	c.Generation.DemoFallback = true
	c.Generation.SimulateStep = 800 * time.Millisecond
	c.Log.Level = "info"
	c.Log.Format = "console"
	return c
}

// Load 读取 yaml 配置，文件不存在时使用默认值；之后用 .env / 环境变量覆盖
func Load(path string) (*Config, error) {
	c := Default()

	f, err := os.Open(path)
	switch {
	case err == nil:
		defer f.Close()
		if err := yaml.NewDecoder(f).Decode(c); err != nil {
			return nil, fmt.Errorf("配置文件解析失败: %w", err)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return nil, fmt.Errorf("配置文件读取失败: %w", err)
	}

	// .env 不存在不算错误
	_ = godotenv.Load()
	applyEnv(c)
	return c, nil
}

func applyEnv(c *Config) {
	if v := os.Getenv("PORT"); v != "" {
		if !strings.HasPrefix(v, ":") {
			v = ":" + v
		}
		c.Server.Port = v
	}
	if v := os.Getenv("FAL_KEY"); v != "" {
		c.Generation.APIKey = v
	}
	if v := os.Getenv("MYSQL_DSN"); v != "" {
		c.MySQL.DSN = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		c.Redis.Addr = v
	}
	if v := os.Getenv("STORE_DRIVER"); v != "" {
		c.Store.Driver = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
}

// InitConfig 加载 config/config.yaml 到全局 AppConfig
func InitConfig() error {
	c, err := Load(DefaultPath)
	if err != nil {
		return err
	}
	AppConfig = c
	return nil
}
