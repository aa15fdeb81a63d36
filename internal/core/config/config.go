package config

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/spf13/viper"

	"candidate-tracker/pkg/utils"
)

type HTTP struct {
	Host            string
	Port            int
	ReadTimeoutSec  int
	WriteTimeoutSec int
	IdleTimeoutSec  int
}
type AdminHTTP struct {
	Host string
	Port int
}

// Guard 请求级保护：限流 / 并发 / 请求体 / 超时
type Guard struct {
	RPS         float64
	Burst       int
	MaxInflight int64
	MaxBodyMB   int64
	TimeoutSec  int
	AuthRPS     float64 // 每 IP 登录/注册
	AuthBurst   int
}

type App struct {
	Name  string
	Env   string
	HTTP  HTTP
	Admin AdminHTTP
	Guard Guard
}

type LogFile struct {
	Enable     bool
	Filename   string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

type Log struct {
	Level string
	JSON  bool
	File  LogFile
}

type JWT struct {
	Secret            string
	Issuer            string
	AccessTokenTTLMin int
}

// Storage 数据落在哪个 blob 后端：gorm / redis / memory
type Storage struct {
	Driver string
}

type Redis struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	Prefix   string `mapstructure:"prefix"`
}

type DB struct {
	Driver             string // sqlite / mysql / postgres
	DSN                string
	Username           string
	Password           string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeMin int
	AutoMigrate        bool
	LogLevel           string
}

// Seed 默认管理员，空字段用内置值
type Seed struct {
	ID       string
	Name     string
	Email    string
	Password string
}

type Archive struct {
	Enable    bool
	Bucket    string
	Region    string
	Endpoint  string
	AccessKey string
	SecretKey string
	Prefix    string
}

type Export struct {
	Archive Archive
}

type Config struct {
	App     App
	Log     Log
	JWT     JWT
	Storage Storage
	DB      DB
	Redis   Redis `mapstructure:"redis"`
	Seed    Seed
	Export  Export
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "candidate-tracker")
	v.SetDefault("app.env", "local")
	v.SetDefault("app.http.host", "0.0.0.0")
	v.SetDefault("app.http.port", 8080)
	v.SetDefault("app.http.readTimeoutSec", 15)
	v.SetDefault("app.http.writeTimeoutSec", 30)
	v.SetDefault("app.http.idleTimeoutSec", 60)
	v.SetDefault("app.admin.host", "127.0.0.1")
	v.SetDefault("app.admin.port", 8081)
	v.SetDefault("app.guard.rps", 50)
	v.SetDefault("app.guard.burst", 100)
	v.SetDefault("app.guard.maxInflight", 256)
	v.SetDefault("app.guard.maxBodyMB", 2)
	v.SetDefault("app.guard.timeoutSec", 20)
	v.SetDefault("app.guard.authRPS", 1)
	v.SetDefault("app.guard.authBurst", 10)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file.filename", "logs/app.log")
	v.SetDefault("log.file.maxSizeMB", 50)
	v.SetDefault("log.file.maxBackups", 5)
	v.SetDefault("log.file.maxAgeDays", 14)
	v.SetDefault("jwt.issuer", "candidate-tracker")
	v.SetDefault("jwt.accessTokenTTLMin", 720)
	v.SetDefault("storage.driver", "gorm")
	v.SetDefault("db.driver", "sqlite")
	v.SetDefault("db.dsn", "data/tracker.db")
	v.SetDefault("db.maxOpenConns", 10)
	v.SetDefault("db.maxIdleConns", 5)
	v.SetDefault("db.connMaxLifetimeMin", 30)
	v.SetDefault("db.autoMigrate", true)
	v.SetDefault("db.logLevel", "warn")
	v.SetDefault("redis.addr", "127.0.0.1:6379")
	v.SetDefault("redis.prefix", "tracker:")
	v.SetDefault("export.archive.prefix", "exports")
}

// LoadE 读取 yaml；APP_ 前缀的环境变量覆盖（app.http.port -> APP_APP_HTTP_PORT）
func LoadE(path string) (*Config, error) {
	v := viper.New()
	if path == "" {
		path = os.Getenv("CONFIG_PATH")
		if path == "" {
			path = "./configs/config.local.yaml"
		}
	}
	setDefaults(v)
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix("APP")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func Load(path string) *Config {
	c, err := LoadE(path)
	if err != nil {
		log.Fatalf("%v", err)
	}
	return c
}

func (c *Config) Validate() error {
	switch c.Storage.Driver {
	case "gorm", "redis", "memory":
	default:
		return fmt.Errorf("config: unknown storage.driver %q", c.Storage.Driver)
	}
	if c.Storage.Driver == "gorm" {
		switch c.DB.Driver {
		case "sqlite", "mysql", "postgres":
		default:
			return fmt.Errorf("config: unknown db.driver %q", c.DB.Driver)
		}
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("config: jwt.secret is empty")
	}
	if len(c.Seed.Password) > utils.MaxPasswordBytes {
		return fmt.Errorf("config: seed.password longer than %d bytes", utils.MaxPasswordBytes)
	}
	if c.Export.Archive.Enable && c.Export.Archive.Bucket == "" {
		return fmt.Errorf("config: export.archive.bucket is required when archive is enabled")
	}
	return nil
}
