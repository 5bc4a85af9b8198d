package config

import (
	"os"
	"path"
	"time"

	"gopkg.in/yaml.v2"
)

type Config struct {
	Public  Public
	Private Private
}

type Public struct {
	Addr            string `yaml:"addr"`
	BaseURL         string `yaml:"base_url"` // external URL embedded in emailed verification links
	TokenTTLMinutes int    `yaml:"token_ttl_minutes"`
	LogLevel        string `yaml:"log_level"`
	LogJSON         bool   `yaml:"log_json"`
}

type Private struct {
	Pg            Pg     `yaml:"pg"`
	SigningSecret string `yaml:"signing_secret"`
	EncryptionKey string `yaml:"encryption_key"` // base64, 32 bytes decoded
	Smtp          Smtp   `yaml:"smtp"`
}

type Pg struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Dbname   string `yaml:"dbname"`
}

type Smtp struct {
	Host       string `yaml:"host"`
	Port       int    `yaml:"port"`
	Username   string `yaml:"username"`
	Password   string `yaml:"password"`
	SenderName string `yaml:"sender_name"`
}

func (c *Config) SigningSecret() string {
	return c.Private.SigningSecret
}

func (c *Config) TokenTTL() time.Duration {
	return time.Duration(c.Public.TokenTTLMinutes) * time.Minute
}

func mustLoadPath(configPath string, output interface{}) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		panic("config file does not exist: " + configPath)
	}
	configFile, err := os.ReadFile(configPath)
	if err != nil {
		panic("can't read config file")
	}

	err = yaml.Unmarshal(configFile, output)
	if err != nil {
		panic("can't unmarshal config file")
	}
}

// MustLoad reads public.yaml and private.yaml from configFolder.
// The signing secret, encryption key and token TTL have no production-safe
// defaults, so a config missing any of them fails startup.
func MustLoad(configFolder string) *Config {
	var public Public
	mustLoadPath(path.Join(configFolder, "public.yaml"), &public)

	var private Private
	mustLoadPath(path.Join(configFolder, "private.yaml"), &private)

	cfg := &Config{public, private}

	if cfg.Private.SigningSecret == "" {
		panic("config: signing_secret is required")
	}
	if cfg.Private.EncryptionKey == "" {
		panic("config: encryption_key is required")
	}
	if cfg.Public.TokenTTLMinutes <= 0 {
		panic("config: token_ttl_minutes must be positive")
	}

	return cfg
}
