package config

const (
	EnvMongoURI          = "MONGO_URI"
	EnvMongoDatabaseName = "MONGO_DATABASE_NAME"
	EnvMongoConnTimeout  = "MONGO_CONN_TIMEOUT"

	EnvPort     = "PORT"
	EnvLogLevel = "LOG_LEVEL"

	EnvJWTSecret      = "JWT_SECRET"
	EnvAccessTokenTTL = "ACCESS_TOKEN_TTL"
	EnvBcryptCost     = "BCRYPT_COST"

	EnvRateLimitRequests = "RATE_LIMIT_REQUESTS"
	EnvRateLimitWindow   = "RATE_LIMIT_WINDOW"

	EnvRequestTimeout = "REQUEST_TIMEOUT"
	EnvMaxRequestSize = "MAX_REQUEST_SIZE"

	EnvReadTimeout     = "READ_TIMEOUT"
	EnvWriteTimeout    = "WRITE_TIMEOUT"
	EnvIdleTimeout     = "IDLE_TIMEOUT"
	EnvShutdownTimeout = "SHUTDOWN_TIMEOUT"

	EnvAdmissionLockTTL   = "ADMISSION_LOCK_TTL"
	EnvAdmissionLockWait  = "ADMISSION_LOCK_WAIT"
	EnvAdmissionLockRetry = "ADMISSION_LOCK_RETRY"

	EnvKafkaBrokers    = "KAFKA_BROKERS"
	EnvAuditEventTopic = "AUDIT_EVENT_TOPIC"
)
