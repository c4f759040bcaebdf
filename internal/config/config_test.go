package config

import (
	"strings"
	"testing"
	"time"
)

func validConfig() Config {
	return Config{
		Port:           "8081",
		DataBackend:    BackendREST,
		BackendURL:     "http://localhost:5000",
		FetchTimeout:   10 * time.Second,
		SeedDir:        "data",
		SQLiteDBPath:   "data/ledgerview.db",
		ViewTTL:        30 * time.Minute,
		ViewMax:        100,
		RateLimitRPS:   20,
		RateLimitBurst: 40,
		LogLevel:       "info",
		LogFormat:      "text",
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(c *Config)
		wantErr     bool
		errorString string
	}{
		{
			name:    "valid rest backend config",
			mutate:  func(c *Config) {},
			wantErr: false,
		},
		{
			name: "valid memory backend config",
			mutate: func(c *Config) {
				c.DataBackend = BackendMemory
				c.BackendURL = ""
			},
			wantErr: false,
		},
		{
			name:        "invalid port - non-numeric",
			mutate:      func(c *Config) { c.Port = "abc" },
			wantErr:     true,
			errorString: "invalid port 'abc': must be a number",
		},
		{
			name:        "invalid port - out of range high",
			mutate:      func(c *Config) { c.Port = "70000" },
			wantErr:     true,
			errorString: "invalid port 70000: must be between 1 and 65535",
		},
		{
			name:        "invalid data backend",
			mutate:      func(c *Config) { c.DataBackend = "sheets" },
			wantErr:     true,
			errorString: "invalid data backend 'sheets': must be one of [rest memory sqlite]",
		},
		{
			name:        "rest backend without url",
			mutate:      func(c *Config) { c.BackendURL = "" },
			wantErr:     true,
			errorString: "backend URL cannot be empty",
		},
		{
			name:        "rest backend with bad scheme",
			mutate:      func(c *Config) { c.BackendURL = "ftp://localhost:5000" },
			wantErr:     true,
			errorString: "invalid backend URL scheme 'ftp'",
		},
		{
			name:        "rest backend without host",
			mutate:      func(c *Config) { c.BackendURL = "http://" },
			wantErr:     true,
			errorString: "missing host",
		},
		{
			name: "memory backend without seed dir",
			mutate: func(c *Config) {
				c.DataBackend = BackendMemory
				c.SeedDir = ""
			},
			wantErr:     true,
			errorString: "seed directory cannot be empty",
		},
		{
			name: "valid sqlite backend config",
			mutate: func(c *Config) {
				c.DataBackend = BackendSQLite
				c.BackendURL = ""
			},
			wantErr: false,
		},
		{
			name: "sqlite backend without database path",
			mutate: func(c *Config) {
				c.DataBackend = BackendSQLite
				c.SQLiteDBPath = ""
			},
			wantErr:     true,
			errorString: "SQLite database path cannot be empty",
		},
		{
			name:        "fetch timeout too small",
			mutate:      func(c *Config) { c.FetchTimeout = time.Millisecond },
			wantErr:     true,
			errorString: "invalid fetch timeout 1ms",
		},
		{
			name:        "view ttl too small",
			mutate:      func(c *Config) { c.ViewTTL = time.Second },
			wantErr:     true,
			errorString: "invalid view TTL 1s",
		},
		{
			name:        "rate limit not positive",
			mutate:      func(c *Config) { c.RateLimitRPS = 0 },
			wantErr:     true,
			errorString: "invalid rate limit 0",
		},
		{
			name:        "unknown log format",
			mutate:      func(c *Config) { c.LogFormat = "xml" },
			wantErr:     true,
			errorString: "invalid log format 'xml'",
		},
		{
			name: "multiple errors are reported together",
			mutate: func(c *Config) {
				c.Port = "abc"
				c.ViewMax = 0
			},
			wantErr:     true,
			errorString: "invalid view max 0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Config.Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.errorString != "" && !strings.Contains(err.Error(), tt.errorString) {
				t.Errorf("Config.Validate() error = %v, want it to contain %q", err, tt.errorString)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	for _, key := range []string{"PORT", "DATA_BACKEND", "BACKEND_URL", "FETCH_TIMEOUT", "VIEW_MAX", "RATE_LIMIT_RPS"} {
		t.Setenv(key, "")
	}

	t.Run("default values", func(t *testing.T) {
		cfg := Load()

		if cfg.Port != "8081" {
			t.Errorf("Load() Port = %v, want 8081", cfg.Port)
		}
		if cfg.DataBackend != BackendREST {
			t.Errorf("Load() DataBackend = %v, want rest", cfg.DataBackend)
		}
		if cfg.BackendURL != "http://localhost:5000" {
			t.Errorf("Load() BackendURL = %v, want http://localhost:5000", cfg.BackendURL)
		}
		if cfg.FetchTimeout != 10*time.Second {
			t.Errorf("Load() FetchTimeout = %v, want 10s", cfg.FetchTimeout)
		}
		if err := cfg.Validate(); err != nil {
			t.Errorf("defaults must validate: %v", err)
		}
	})

	t.Run("environment variables", func(t *testing.T) {
		t.Setenv("PORT", "9090")
		t.Setenv("DATA_BACKEND", "memory")
		t.Setenv("BACKEND_URL", "http://api.internal:5000/")
		t.Setenv("FETCH_TIMEOUT", "3s")
		t.Setenv("RATE_LIMIT_RPS", "2.5")

		cfg := Load()

		if cfg.Port != "9090" {
			t.Errorf("Load() Port = %v, want 9090", cfg.Port)
		}
		if cfg.DataBackend != BackendMemory {
			t.Errorf("Load() DataBackend = %v, want memory", cfg.DataBackend)
		}
		if cfg.BackendURL != "http://api.internal:5000" {
			t.Errorf("Load() BackendURL = %v, want trailing slash trimmed", cfg.BackendURL)
		}
		if cfg.FetchTimeout != 3*time.Second {
			t.Errorf("Load() FetchTimeout = %v, want 3s", cfg.FetchTimeout)
		}
		if cfg.RateLimitRPS != 2.5 {
			t.Errorf("Load() RateLimitRPS = %v, want 2.5", cfg.RateLimitRPS)
		}
		if cfg.Addr() != ":9090" {
			t.Errorf("Addr() = %v, want :9090", cfg.Addr())
		}
	})

	t.Run("invalid environment variables use defaults", func(t *testing.T) {
		t.Setenv("VIEW_MAX", "invalid")
		t.Setenv("FETCH_TIMEOUT", "invalid")

		cfg := Load()

		if cfg.ViewMax != 1000 {
			t.Errorf("Load() ViewMax = %v, want 1000 (default for invalid input)", cfg.ViewMax)
		}
		if cfg.FetchTimeout != 10*time.Second {
			t.Errorf("Load() FetchTimeout = %v, want 10s (default for invalid input)", cfg.FetchTimeout)
		}
	})
}
