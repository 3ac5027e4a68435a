package store

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
	} `yaml:"server"`
	Data struct {
		TradeFile   string `yaml:"trade_file"`
		Permissions string `yaml:"permissions"`
		Teams       string `yaml:"teams"`
	} `yaml:"data"`
}

func (c *Config) Validate() error {
	if c.Data.TradeFile == "" {
		return fmt.Errorf("data.trade_file cannot be empty")
	}
	if c.Data.Permissions == "" {
		return fmt.Errorf("data.permissions cannot be empty")
	}
	if c.Data.Teams == "" {
		return fmt.Errorf("data.teams cannot be empty")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1-65535, got %d", c.Server.Port)
	}
	return nil
}

func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func LoadConfig(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, err
	}

	if c.Server.Host == "" {
		c.Server.Host = "localhost"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 1337
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &c, nil
}
