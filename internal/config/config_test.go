package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaults(t *testing.T) {
	c, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Server.Addr != ":8080" {
		t.Fatalf("addr = %q", c.Server.Addr)
	}
	if c.Frontend.BaseURL != "http://localhost:3000" {
		t.Fatalf("frontend = %q", c.Frontend.BaseURL)
	}
	if c.Storage.Driver != "memory" || c.State.Kind != "memory" {
		t.Fatalf("drivers: %q %q", c.Storage.Driver, c.State.Kind)
	}
	if c.StateTTL() != 10*time.Minute {
		t.Fatalf("state ttl = %v", c.StateTTL())
	}
	if c.JWTTTL() != 24*time.Hour {
		t.Fatalf("jwt ttl = %v", c.JWTTTL())
	}
	if c.Providers.Kakao.RedirectURI != "http://localhost:8080/kakao/callback" {
		t.Fatalf("kakao redirect = %q", c.Providers.Kakao.RedirectURI)
	}
}

func TestYAMLFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yaml := `
server:
  addr: ":9090"
frontend:
  base_url: https://app.example.com
providers:
  naver:
    client_id: naver-id
    client_secret: naver-secret
`
	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Server.Addr != ":9090" {
		t.Fatalf("addr = %q", c.Server.Addr)
	}
	if c.Frontend.BaseURL != "https://app.example.com" {
		t.Fatalf("frontend = %q", c.Frontend.BaseURL)
	}
	if c.Providers.Naver.ClientID != "naver-id" {
		t.Fatalf("naver client id = %q", c.Providers.Naver.ClientID)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("SERVER_ADDR", ":7070")
	t.Setenv("JWT_SECRET", "env-secret")
	t.Setenv("STATE_STORE", "redis")
	t.Setenv("REDIS_ADDR", "redis:6379")
	t.Setenv("GOOGLE_CLIENT_ID", "g-id")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.example, http://b.example")

	c, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Server.Addr != ":7070" {
		t.Fatalf("addr = %q", c.Server.Addr)
	}
	if c.JWT.Secret != "env-secret" {
		t.Fatalf("jwt secret = %q", c.JWT.Secret)
	}
	if c.State.Kind != "redis" || c.State.Redis.Addr != "redis:6379" {
		t.Fatalf("state: %q %q", c.State.Kind, c.State.Redis.Addr)
	}
	if c.Providers.Google.ClientID != "g-id" {
		t.Fatalf("google client id = %q", c.Providers.Google.ClientID)
	}
	if len(c.Server.CORSAllowedOrigins) != 2 || c.Server.CORSAllowedOrigins[1] != "http://b.example" {
		t.Fatalf("cors = %v", c.Server.CORSAllowedOrigins)
	}
}

func TestKakaoRestAPIKeyFallback(t *testing.T) {
	t.Setenv("KAKAO_REST_API_KEY", "rest-key")

	c, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Providers.Kakao.ClientID != "rest-key" {
		t.Fatalf("kakao client id = %q, want REST API key fallback", c.Providers.Kakao.ClientID)
	}

	t.Setenv("KAKAO_CLIENT_ID", "direct-id")
	c, _ = Load("")
	if c.Providers.Kakao.ClientID != "direct-id" {
		t.Fatalf("kakao client id = %q, KAKAO_CLIENT_ID must win", c.Providers.Kakao.ClientID)
	}
}

func TestBadTTLFallsBack(t *testing.T) {
	t.Setenv("STATE_TTL", "banana")
	t.Setenv("JWT_TTL", "-5m")

	c, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.StateTTL() != 10*time.Minute {
		t.Fatalf("state ttl = %v", c.StateTTL())
	}
	if c.JWTTTL() != 24*time.Hour {
		t.Fatalf("jwt ttl = %v", c.JWTTTL())
	}
}
