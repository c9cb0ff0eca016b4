package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	defaultConfigPath = "./config.yaml"
	defaultListenAddr = ":8080"
	defaultMetaDSN    = "memory://"
	defaultLogLevel   = "info"
	defaultChunkSize  = 32 << 10
	defaultTempTTL    = 24 * time.Hour
	defaultSweepEvery = 30 * time.Minute
)

type Config struct {
	ListenAddr  string        `yaml:"listen_addr" json:"listen_addr"`
	StorageRoot string        `yaml:"storage_root" json:"storage_root"`
	MetaDSN     string        `yaml:"meta_dsn" json:"-"`
	LogLevel    string        `yaml:"log_level" json:"log_level"`
	ChunkSize   int           `yaml:"chunk_size" json:"chunk_size"`
	TempTTL     time.Duration `yaml:"temp_ttl" json:"temp_ttl"`
	SweepEvery  time.Duration `yaml:"sweep_every" json:"sweep_every"`
}

// Load читает YAML-конфигурацию, применяет ENV-переопределения и возвращает проверенную структуру.
// Отсутствие файла по умолчанию допустимо, явно заданный CONFIG_PATH обязан существовать.
func Load() (*Config, error) {
	path, explicit := os.LookupEnv("CONFIG_PATH")
	if !explicit || path == "" {
		path = defaultConfigPath
		explicit = false
	}

	var raw []byte
	b, err := os.ReadFile(path)
	switch {
	case err == nil:
		raw = b
	case errors.Is(err, os.ErrNotExist) && !explicit:
	default:
		return nil, fmt.Errorf("read config %q: %w", path, err)
	}

	c, err := Parse(raw)
	if err != nil {
		return nil, err
	}

	// ENV override
	if err := c.applyEnv(); err != nil {
		return nil, err
	}

	if err := c.validate(); err != nil {
		return nil, err
	}

	return c, nil
}

// Parse разбирает YAML с дефолтами; неизвестные ключи считаются ошибкой.
func Parse(b []byte) (*Config, error) {
	c := &Config{
		ListenAddr: defaultListenAddr,
		MetaDSN:    defaultMetaDSN,
		LogLevel:   defaultLogLevel,
		ChunkSize:  defaultChunkSize,
		TempTTL:    defaultTempTTL,
		SweepEvery: defaultSweepEvery,
	}
	if len(bytes.TrimSpace(b)) == 0 {
		return c, nil
	}

	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	return c, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("LISTEN_ADDR"); v != "" {
		c.ListenAddr = v
	}
	if v := os.Getenv("STORAGE_ROOT"); v != "" {
		c.StorageRoot = v
	}
	if v := os.Getenv("META_DSN"); v != "" {
		c.MetaDSN = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("CHUNK_SIZE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("CHUNK_SIZE: %w", err)
		}
		c.ChunkSize = n
	}
	if v := os.Getenv("TEMP_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("TEMP_TTL: %w", err)
		}
		c.TempTTL = d
	}
	if v := os.Getenv("SWEEP_EVERY"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("SWEEP_EVERY: %w", err)
		}
		c.SweepEvery = d
	}

	return nil
}

func (c *Config) validate() error {
	c.StorageRoot = strings.TrimSpace(c.StorageRoot)
	if c.StorageRoot == "" {
		return fmt.Errorf("storage_root is not configured")
	}
	if c.ChunkSize <= 0 {
		return fmt.Errorf("chunk_size must be > 0, got %d", c.ChunkSize)
	}
	if c.TempTTL <= 0 {
		return fmt.Errorf("temp_ttl must be > 0, got %s", c.TempTTL)
	}
	if c.SweepEvery < 0 {
		return fmt.Errorf("sweep_every must be >= 0, got %s", c.SweepEvery)
	}
	if strings.TrimSpace(c.MetaDSN) == "" {
		c.MetaDSN = defaultMetaDSN
	}

	return nil
}
