package config

import "time"

const (
	DefaultMongoURI          = "mongodb://localhost:27017"
	DefaultMongoDatabaseName = "tempo"
	DefaultMongoConnTimeout  = 10 * time.Second

	DefaultPort     = "8080"
	DefaultLogLevel = "info"

	DefaultAccessTokenTTL = 24 * time.Hour
	DefaultBcryptCost     = 12

	DefaultRateLimitRequests = 60
	DefaultRateLimitWindow   = 1 * time.Minute

	DefaultRequestTimeout = 30 * time.Second
	DefaultMaxRequestSize = 1 * 1024 * 1024 // 1MB

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second

	// Must exceed DefaultRequestTimeout: the TTL only reclaims locks
	// leaked by a crashed process, never one held by a live admission.
	DefaultAdmissionLockTTL   = 60 * time.Second
	DefaultAdmissionLockWait  = 2 * time.Second
	DefaultAdmissionLockRetry = 50 * time.Millisecond

	DefaultAuditEventTopic = "tempo.audit.deletions"
)
