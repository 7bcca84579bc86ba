package config

import (
	"testing"
	"time"
)

func TestParseMethods(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"single", "GET", []string{"GET"}},
		{"lowercase", "get", []string{"GET"}},
		{"multiple with spaces", "GET, head ,POST", []string{"GET", "HEAD", "POST"}},
		{"empty entries skipped", "GET,,", []string{"GET"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseMethods(tt.in)
			if len(got) != len(tt.want) {
				t.Fatalf("parseMethods(%q) = %v, want %v", tt.in, got, tt.want)
			}
			for _, m := range tt.want {
				if !got[m] {
					t.Errorf("parseMethods(%q) missing %q", tt.in, m)
				}
			}
		})
	}
}

func TestLoadCacheConfigDefaults(t *testing.T) {
	for _, k := range []string{"CACHE_ENABLED", "CACHE_METHODS", "CACHE_TTL", "CACHE_PREFIX"} {
		t.Setenv(k, "")
	}
	cfg := LoadCacheConfig()
	if !cfg.Enabled {
		t.Error("cache should default to enabled")
	}
	if !cfg.Methods["GET"] {
		t.Error("GET should be cacheable by default")
	}
	if cfg.TTL != 30*time.Second {
		t.Errorf("TTL = %v, want 30s", cfg.TTL)
	}
	if cfg.Prefix == "" {
		t.Error("prefix must not be empty")
	}
}

func TestLoadCacheConfigOverrides(t *testing.T) {
	t.Setenv("CACHE_ENABLED", "false")
	t.Setenv("CACHE_TTL", "2m")
	t.Setenv("CACHE_METHODS", "GET,HEAD")

	cfg := LoadCacheConfig()
	if cfg.Enabled {
		t.Error("CACHE_ENABLED=false not honored")
	}
	if cfg.TTL != 2*time.Minute {
		t.Errorf("TTL = %v, want 2m", cfg.TTL)
	}
	if !cfg.Methods["HEAD"] {
		t.Error("CACHE_METHODS not honored")
	}
}

func TestLoadRateLimitConfigClamps(t *testing.T) {
	t.Setenv("RATE_LIMIT_CAPACITY", "0")
	t.Setenv("RATE_LIMIT_REFILL_TOKENS", "-3")
	t.Setenv("RATE_LIMIT_REFILL_INTERVAL", "2s")
	t.Setenv("RATE_LIMIT_TTL", "1s")

	cfg := LoadRateLimitConfig()
	if cfg.Capacity < 1 {
		t.Errorf("Capacity = %d, want >= 1", cfg.Capacity)
	}
	if cfg.RefillTokens < 1 {
		t.Errorf("RefillTokens = %d, want >= 1", cfg.RefillTokens)
	}
	// TTL is stretched so bucket state outlives several refill cycles.
	if cfg.TTL < 5*cfg.RefillInterval {
		t.Errorf("TTL = %v, want >= %v", cfg.TTL, 5*cfg.RefillInterval)
	}
}

func TestEnvHelpers(t *testing.T) {
	t.Setenv("X_BOOL", "yes")
	t.Setenv("X_INT", "42")
	t.Setenv("X_DUR", "150ms")

	if !envBool("X_BOOL", false) {
		t.Error("envBool(yes) = false")
	}
	if envBool("X_BOOL_MISSING", true) != true {
		t.Error("envBool default not returned")
	}
	if got := envInt("X_INT", 0); got != 42 {
		t.Errorf("envInt = %d, want 42", got)
	}
	if got := envInt("X_INT_MISSING", 7); got != 7 {
		t.Errorf("envInt default = %d, want 7", got)
	}
	if got := envDur("X_DUR", 0); got != 150*time.Millisecond {
		t.Errorf("envDur = %v, want 150ms", got)
	}
}
