package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type fileConfig struct {
	ServerPort   string `yaml:"server_port"`
	Store        string `yaml:"store"`
	DataFile     string `yaml:"data_file"`
	PlaylistPath string `yaml:"playlist"`
	RedisURL     string `yaml:"redis_url"`
	RedisKey     string `yaml:"redis_key"`
	DatabaseURL  string `yaml:"database_url"`
	UserAgent    string `yaml:"user_agent"`
	Timeout      string `yaml:"timeout"`
	LogLevel     string `yaml:"log_level"`
	LogFormat    string `yaml:"log_format"`
}

// LoadFromFile loads config from a YAML file.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var f fileConfig
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	c := &Config{
		ServerPort:   f.ServerPort,
		Store:        f.Store,
		DataFile:     f.DataFile,
		PlaylistPath: f.PlaylistPath,
		RedisURL:     f.RedisURL,
		RedisKey:     f.RedisKey,
		DatabaseURL:  f.DatabaseURL,
		UserAgent:    f.UserAgent,
		LogLevel:     f.LogLevel,
		LogFormat:    f.LogFormat,
	}
	if f.Timeout != "" {
		if d, err := time.ParseDuration(f.Timeout); err == nil {
			c.Timeout = d
		}
	}
	c.applyDefaults()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}
