package config

const (
	EnvMongoURI          = "MONGO_URI"
	EnvMongoDatabaseName = "MONGO_DATABASE_NAME"
	EnvMongoConnTimeout  = "MONGO_CONN_TIMEOUT"

	EnvPort     = "PORT"
	EnvLogLevel = "LOG_LEVEL"

	EnvServiceFeePercent  = "SERVICE_FEE_PERCENT"
	EnvCheckoutReturnURL  = "CHECKOUT_RETURN_URL"
	EnvPaymentAPIBaseURL  = "PAYMENT_API_BASE_URL"
	EnvPaymentAPIKey      = "PAYMENT_API_KEY"
	EnvPaymentCallTimeout = "PAYMENT_CALL_TIMEOUT"

	EnvKafkaBrokers    = "KAFKA_BROKERS"
	EnvKafkaClickTopic = "KAFKA_CLICK_TOPIC"
	EnvKafkaDLQTopic   = "KAFKA_DLQ_TOPIC"

	EnvRateLimitRequests = "RATE_LIMIT_REQUESTS"
	EnvRateLimitWindow   = "RATE_LIMIT_WINDOW"

	EnvRequestTimeout = "REQUEST_TIMEOUT"
	EnvIdempotencyTTL = "IDEMPOTENCY_TTL"
	EnvMaxRequestSize = "MAX_REQUEST_SIZE"

	EnvReadTimeout     = "READ_TIMEOUT"
	EnvWriteTimeout    = "WRITE_TIMEOUT"
	EnvIdleTimeout     = "IDLE_TIMEOUT"
	EnvShutdownTimeout = "SHUTDOWN_TIMEOUT"
)
