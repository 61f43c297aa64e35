package config

import (
	"errors"
	"testing"
	"time"
)

// valid returns a configuration that passes Validate().
func valid() *Config {
	return &Config{
		ModelName:              DefaultModelName,
		Temperature:            0.7,
		TopP:                   0.95,
		TopK:                   40,
		MaxTokens:              2048,
		GenerateTimeoutSeconds: 45,
		DatabasePath:           "/tmp/minbar.db",
		HistoryLimit:           5,
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{
			name:    "valid config",
			mutate:  func(*Config) {},
			wantErr: nil,
		},
		{
			name:    "empty model name",
			mutate:  func(c *Config) { c.ModelName = "" },
			wantErr: ErrInvalidModelName,
		},
		{
			name:    "temperature too high",
			mutate:  func(c *Config) { c.Temperature = 2.5 },
			wantErr: ErrInvalidTemperature,
		},
		{
			name:    "negative temperature",
			mutate:  func(c *Config) { c.Temperature = -0.1 },
			wantErr: ErrInvalidTemperature,
		},
		{
			name:    "top_p out of range",
			mutate:  func(c *Config) { c.TopP = 1.5 },
			wantErr: ErrInvalidTopP,
		},
		{
			name:    "top_k zero",
			mutate:  func(c *Config) { c.TopK = 0 },
			wantErr: ErrInvalidTopK,
		},
		{
			name:    "max tokens zero",
			mutate:  func(c *Config) { c.MaxTokens = 0 },
			wantErr: ErrInvalidMaxTokens,
		},
		{
			name:    "timeout too long",
			mutate:  func(c *Config) { c.GenerateTimeoutSeconds = 601 },
			wantErr: ErrInvalidTimeout,
		},
		{
			name:    "empty database path",
			mutate:  func(c *Config) { c.DatabasePath = "" },
			wantErr: ErrInvalidDatabasePath,
		},
		{
			name:    "history limit too large",
			mutate:  func(c *Config) { c.HistoryLimit = MaxHistoryLimit + 1 },
			wantErr: ErrInvalidHistoryLimit,
		},
		{
			name:    "negative rate limit",
			mutate:  func(c *Config) { c.RateLimit = -1 },
			wantErr: ErrInvalidRateLimit,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidate_NilConfig(t *testing.T) {
	var cfg *Config
	if err := cfg.Validate(); !errors.Is(err, ErrConfigNil) {
		t.Fatalf("Validate() on nil = %v, want ErrConfigNil", err)
	}
}

func TestValidateServe_RequiresAPIKey(t *testing.T) {
	cfg := valid()
	cfg.GeminiAPIKey = ""
	if err := cfg.ValidateServe(); !errors.Is(err, ErrMissingAPIKey) {
		t.Fatalf("ValidateServe() = %v, want ErrMissingAPIKey", err)
	}

	cfg.GeminiAPIKey = "test-key"
	if err := cfg.ValidateServe(); err != nil {
		t.Fatalf("ValidateServe() with key = %v, want nil", err)
	}
}

func TestGenerateTimeout(t *testing.T) {
	cfg := valid()
	if got := cfg.GenerateTimeout(); got != 45*time.Second {
		t.Errorf("GenerateTimeout() = %v, want 45s", got)
	}

	cfg.GenerateTimeoutSeconds = 0
	if got := cfg.GenerateTimeout(); got != DefaultGenerateTimeout {
		t.Errorf("GenerateTimeout() with zero = %v, want default %v", got, DefaultGenerateTimeout)
	}
}
