package config

import (
	"strings"
	"testing"
)

func validConfig() *Config {
	return &Config{
		MongoURI:          DefaultMongoURI,
		MongoDatabaseName: DefaultMongoDatabaseName,
		MongoConnTimeout:  DefaultMongoConnTimeout,

		Port: DefaultPort,

		JWTSecret:      strings.Repeat("s", 32),
		AccessTokenTTL: DefaultAccessTokenTTL,
		BcryptCost:     DefaultBcryptCost,

		RateLimitRequests: DefaultRateLimitRequests,
		RateLimitWindow:   DefaultRateLimitWindow,

		RequestTimeout: DefaultRequestTimeout,
		MaxRequestSize: DefaultMaxRequestSize,

		ReadTimeout:     DefaultReadTimeout,
		WriteTimeout:    DefaultWriteTimeout,
		IdleTimeout:     DefaultIdleTimeout,
		ShutdownTimeout: DefaultShutdownTimeout,

		AdmissionLockTTL:   DefaultAdmissionLockTTL,
		AdmissionLockWait:  DefaultAdmissionLockWait,
		AdmissionLockRetry: DefaultAdmissionLockRetry,
	}
}

func TestValidate_Defaults(t *testing.T) {
	if err := validConfig().Validate(); err != nil {
		t.Fatalf("default configuration must validate, got: %v", err)
	}
}

func TestValidate_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		problem string
	}{
		{
			name:    "lock TTL not above request timeout",
			mutate:  func(c *Config) { c.AdmissionLockTTL = c.RequestTimeout },
			problem: "AdmissionLockTTL must exceed RequestTimeout",
		},
		{
			name:    "lock wait below retry interval",
			mutate:  func(c *Config) { c.AdmissionLockWait = c.AdmissionLockRetry / 2 },
			problem: "AdmissionLockWait must be at least AdmissionLockRetry",
		},
		{
			name:    "short JWT secret",
			mutate:  func(c *Config) { c.JWTSecret = "short" },
			problem: "JWTSecret",
		},
		{
			name:    "empty database name",
			mutate:  func(c *Config) { c.MongoDatabaseName = "" },
			problem: "MongoDatabaseName",
		},
		{
			name:    "zero lock TTL",
			mutate:  func(c *Config) { c.AdmissionLockTTL = 0 },
			problem: "AdmissionLockTTL must be positive",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation to fail")
			}
			if !strings.Contains(err.Error(), tt.problem) {
				t.Errorf("expected problem mentioning %q, got: %v", tt.problem, err)
			}
		})
	}
}

func TestDefaultLockTTLOutlivesRequests(t *testing.T) {
	if DefaultAdmissionLockTTL <= DefaultRequestTimeout {
		t.Fatalf("lock TTL %s must outlive the request timeout %s", DefaultAdmissionLockTTL, DefaultRequestTimeout)
	}
}
