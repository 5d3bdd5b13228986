package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config 配置信息
type Config struct {
	App     App     `json:"app" yaml:"app"`
	Server  Server  `json:"server" yaml:"server"`
	MySQL   MySQL   `json:"mysql" yaml:"mysql"`
	SQLite  SQLite  `json:"sqlite" yaml:"sqlite"`
	Redis   Redis   `json:"redis" yaml:"redis"`
	Jwt     Jwt     `json:"jwt" yaml:"jwt"`
	Account Account `json:"account" yaml:"account"`
}

type Server struct {
	Http int `json:"http" yaml:"http" env:"SERVER_HTTP"`
}

// New 读取配置文件，失败直接 panic
func New(filename string) *Config {
	conf, err := Load(filename)
	if err != nil {
		panic(err)
	}
	return conf
}

// Load 读取 yaml 配置，再用 .env 和环境变量覆盖
func Load(filename string) (*Config, error) {
	content, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", filename, err)
	}

	var conf Config
	if err := yaml.Unmarshal(content, &conf); err != nil {
		return nil, fmt.Errorf("解析 %s 错误: %w", filename, err)
	}
	conf.fillDefaults()

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	if err := cleanenv.ReadEnv(&conf); err != nil {
		return nil, fmt.Errorf("read env: %w", err)
	}

	return &conf, nil
}

func (c *Config) fillDefaults() {
	if c.App.LogLevel == "" {
		c.App.LogLevel = "info"
	}
	if c.Server.Http == 0 {
		c.Server.Http = 8080
	}
	if c.Jwt.ExpiresIn == 0 {
		c.Jwt.ExpiresIn = 7200
	}
	if c.Account.MainRole == "" {
		c.Account.MainRole = "ROLE_USER"
	}
	if c.Account.AdminRole == "" {
		c.Account.AdminRole = "ROLE_ADMIN"
	}
}

// Debug 调试模式
func (c *Config) Debug() bool {
	return c.App.Debug
}
