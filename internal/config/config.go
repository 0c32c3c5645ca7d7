// Package config loads the service configuration from an optional YAML file
// with environment variable overrides on top. Every knob has a sane default so
// a bare `api serve` works against the in-memory drivers.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	App struct {
		// dev | prod
		Env string `yaml:"env"`
	} `yaml:"app"`

	Log struct {
		Level string `yaml:"level"`
	} `yaml:"log"`

	Server struct {
		Addr               string   `yaml:"addr"`
		CORSAllowedOrigins []string `yaml:"cors_allowed_origins"`
	} `yaml:"server"`

	// Frontend is where the browser ends up after a callback: the login page
	// on failure, /dashboard/{provider} on success.
	Frontend struct {
		BaseURL string `yaml:"base_url"`
	} `yaml:"frontend"`

	Cookie struct {
		Domain string `yaml:"domain"`
		Secure bool   `yaml:"secure"`
	} `yaml:"cookie"`

	Storage struct {
		// memory | postgres
		Driver string `yaml:"driver"`
		DSN    string `yaml:"dsn"`
	} `yaml:"storage"`

	State struct {
		// memory | redis
		Kind  string `yaml:"kind"`
		TTL   string `yaml:"ttl"`
		Redis struct {
			Addr   string `yaml:"addr"`
			DB     int    `yaml:"db"`
			Prefix string `yaml:"prefix"`
		} `yaml:"redis"`
	} `yaml:"state"`

	JWT struct {
		Secret string `yaml:"secret"`
		TTL    string `yaml:"ttl"`
	} `yaml:"jwt"`

	Providers struct {
		Kakao  Provider `yaml:"kakao"`
		Google Provider `yaml:"google"`
		Naver  Provider `yaml:"naver"`
	} `yaml:"providers"`
}

// Provider holds the OAuth client registration for one provider.
type Provider struct {
	ClientID     string `yaml:"client_id"`
	ClientSecret string `yaml:"client_secret"`
	RedirectURI  string `yaml:"redirect_uri"`
}

// Load reads the YAML file at path (skipped when path is empty or missing),
// applies env overrides and fills defaults.
func Load(path string) (*Config, error) {
	var c Config

	if path != "" {
		b, err := os.ReadFile(path)
		if err == nil {
			if err := yaml.Unmarshal(b, &c); err != nil {
				return nil, fmt.Errorf("config: parse %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, err
		}
	}

	c.applyEnv()
	c.applyDefaults()
	return &c, nil
}

func (c *Config) applyEnv() {
	if v, ok := getEnvStr("APP_ENV"); ok {
		c.App.Env = v
	}
	if v, ok := getEnvStr("LOG_LEVEL"); ok {
		c.Log.Level = v
	}
	if v, ok := getEnvStr("SERVER_ADDR"); ok {
		c.Server.Addr = v
	}
	if v, ok := getEnvStr("CORS_ALLOWED_ORIGINS"); ok {
		c.Server.CORSAllowedOrigins = splitList(v)
	}
	if v, ok := getEnvStr("FRONTEND_BASE_URL"); ok {
		c.Frontend.BaseURL = v
	}
	if v, ok := getEnvStr("COOKIE_DOMAIN"); ok {
		c.Cookie.Domain = v
	}
	if v, ok := getEnvBool("COOKIE_SECURE"); ok {
		c.Cookie.Secure = v
	}
	if v, ok := getEnvStr("STORAGE_DRIVER"); ok {
		c.Storage.Driver = v
	}
	if v, ok := getEnvStr("DATABASE_URL"); ok {
		c.Storage.DSN = v
	}
	if v, ok := getEnvStr("STATE_STORE"); ok {
		c.State.Kind = v
	}
	if v, ok := getEnvStr("STATE_TTL"); ok {
		c.State.TTL = v
	}
	if v, ok := getEnvStr("REDIS_ADDR"); ok {
		c.State.Redis.Addr = v
	}
	if v, ok := getEnvInt("REDIS_DB"); ok {
		c.State.Redis.DB = v
	}
	if v, ok := getEnvStr("JWT_SECRET"); ok {
		c.JWT.Secret = v
	}
	if v, ok := getEnvStr("JWT_TTL"); ok {
		c.JWT.TTL = v
	}

	overrideProvider(&c.Providers.Kakao, "KAKAO")
	overrideProvider(&c.Providers.Google, "GOOGLE")
	overrideProvider(&c.Providers.Naver, "NAVER")

	// Kakao console calls the client id "REST API key"; accept both names.
	if c.Providers.Kakao.ClientID == "" {
		if v, ok := getEnvStr("KAKAO_REST_API_KEY"); ok {
			c.Providers.Kakao.ClientID = v
		}
	}
}

func overrideProvider(p *Provider, prefix string) {
	if v, ok := getEnvStr(prefix + "_CLIENT_ID"); ok {
		p.ClientID = v
	}
	if v, ok := getEnvStr(prefix + "_CLIENT_SECRET"); ok {
		p.ClientSecret = v
	}
	if v, ok := getEnvStr(prefix + "_REDIRECT_URI"); ok {
		p.RedirectURI = v
	}
}

func (c *Config) applyDefaults() {
	if c.App.Env == "" {
		c.App.Env = "dev"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if len(c.Server.CORSAllowedOrigins) == 0 {
		c.Server.CORSAllowedOrigins = []string{"http://localhost:3000"}
	}
	if c.Frontend.BaseURL == "" {
		c.Frontend.BaseURL = "http://localhost:3000"
	}
	if c.Cookie.Domain == "" {
		c.Cookie.Domain = "localhost"
	}
	if c.Storage.Driver == "" {
		c.Storage.Driver = "memory"
	}
	if c.State.Kind == "" {
		c.State.Kind = "memory"
	}
	if c.State.TTL == "" {
		c.State.TTL = "10m"
	}
	if c.State.Redis.Prefix == "" {
		c.State.Redis.Prefix = "oauth:state:"
	}
	if c.JWT.TTL == "" {
		c.JWT.TTL = "24h"
	}

	base := "http://localhost:8080"
	if c.Providers.Kakao.RedirectURI == "" {
		c.Providers.Kakao.RedirectURI = base + "/kakao/callback"
	}
	if c.Providers.Google.RedirectURI == "" {
		c.Providers.Google.RedirectURI = base + "/google/callback"
	}
	if c.Providers.Naver.RedirectURI == "" {
		c.Providers.Naver.RedirectURI = base + "/naver/callback"
	}
}

// StateTTL returns the parsed state entry TTL.
func (c *Config) StateTTL() time.Duration {
	d, err := time.ParseDuration(c.State.TTL)
	if err != nil || d <= 0 {
		return 10 * time.Minute
	}
	return d
}

// JWTTTL returns the parsed session token lifetime.
func (c *Config) JWTTTL() time.Duration {
	d, err := time.ParseDuration(c.JWT.TTL)
	if err != nil || d <= 0 {
		return 24 * time.Hour
	}
	return d
}

// ---- env helpers ----

func getEnvStr(key string) (string, bool) {
	v := os.Getenv(key)
	return v, v != ""
}

func getEnvInt(key string) (int, bool) {
	if s, ok := getEnvStr(key); ok {
		if i, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
			return i, true
		}
	}
	return 0, false
}

func getEnvBool(key string) (bool, bool) {
	if s, ok := getEnvStr(key); ok {
		if b, err := strconv.ParseBool(strings.TrimSpace(s)); err == nil {
			return b, true
		}
	}
	return false, false
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
