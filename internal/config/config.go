package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
)

// Dataset store kinds.
const (
	StoreFile     = "file"
	StoreRedis    = "redis"
	StorePostgres = "postgres"
)

var (
	ErrUnknownStore       = errors.New("unknown store (use file, redis or postgres)")
	ErrMissingRedisURL    = errors.New("REDIS_URL is required for the redis store")
	ErrMissingDatabaseURL = errors.New("DATABASE_URL is required for the postgres store")
)

// Config holds application configuration shared by the parser and the
// query service.
type Config struct {
	ServerPort   string        `yaml:"server_port" env:"SERVER_PORT"`
	Store        string        `yaml:"store" env:"CHANNEL_STORE"`
	DataFile     string        `yaml:"data_file" env:"CHANNELS_FILE"`
	PlaylistPath string        `yaml:"playlist" env:"PLAYLIST_PATH"`
	RedisURL     string        `yaml:"redis_url" env:"REDIS_URL"`
	RedisKey     string        `yaml:"redis_key" env:"REDIS_KEY"`
	DatabaseURL  string        `yaml:"database_url" env:"DATABASE_URL"`
	UserAgent    string        `yaml:"user_agent" env:"FETCHER_USER_AGENT"`
	Timeout      time.Duration `yaml:"timeout" env:"FETCHER_TIMEOUT"`
	LogLevel     string        `yaml:"log_level" env:"LOG_LEVEL"`
	LogFormat    string        `yaml:"log_format" env:"LOG_FORMAT"`
}

// Load builds config from environment variables. Values missing from the
// environment are taken from .env.local and .env when present.
// Every setting is optional; see Validate for the store requirements.
func Load() (*Config, error) {
	loadEnvFiles()
	c := &Config{
		ServerPort:   os.Getenv("SERVER_PORT"),
		Store:        os.Getenv("CHANNEL_STORE"),
		DataFile:     os.Getenv("CHANNELS_FILE"),
		PlaylistPath: os.Getenv("PLAYLIST_PATH"),
		RedisURL:     os.Getenv("REDIS_URL"),
		RedisKey:     os.Getenv("REDIS_KEY"),
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		UserAgent:    os.Getenv("FETCHER_USER_AGENT"),
		LogLevel:     os.Getenv("LOG_LEVEL"),
		LogFormat:    os.Getenv("LOG_FORMAT"),
	}
	if s := os.Getenv("FETCHER_TIMEOUT"); s != "" {
		if d, err := time.ParseDuration(s); err == nil {
			c.Timeout = d
		}
	}
	c.applyDefaults()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) applyDefaults() {
	if c.ServerPort == "" {
		c.ServerPort = "8080"
	}
	c.Store = strings.ToLower(strings.TrimSpace(c.Store))
	if c.Store == "" {
		c.Store = StoreFile
	}
	if c.DataFile == "" {
		c.DataFile = "channels.json"
	}
	if c.PlaylistPath == "" {
		c.PlaylistPath = "iptv.m3u"
	}
	if c.RedisKey == "" {
		c.RedisKey = "iptvindex:channels"
	}
	if c.UserAgent == "" {
		c.UserAgent = "iptvindex/1.0"
	}
	if c.Timeout <= 0 {
		c.Timeout = 30 * time.Second
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.LogFormat == "" {
		c.LogFormat = "text"
	}
}

// Validate checks that the selected store has what it needs.
func (c *Config) Validate() error {
	switch c.Store {
	case StoreFile:
	case StoreRedis:
		if c.RedisURL == "" {
			return ErrMissingRedisURL
		}
	case StorePostgres:
		if c.DatabaseURL == "" {
			return ErrMissingDatabaseURL
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownStore, c.Store)
	}
	return nil
}
