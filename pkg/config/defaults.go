package config

import "time"

const (
	DefaultMongoURI          = "mongodb://localhost:27017"
	DefaultMongoDatabaseName = "stayhub"
	DefaultMongoConnTimeout  = 10 * time.Second

	DefaultPort     = "8080"
	DefaultLogLevel = "info"

	DefaultServiceFeePercent  = 12
	DefaultCheckoutReturnURL  = "http://localhost:3000/checkout/return"
	DefaultPaymentAPIBaseURL  = "https://api.payments.example.com"
	DefaultPaymentCallTimeout = 10 * time.Second

	DefaultKafkaClickTopic = "stayhub.clicks"
	DefaultKafkaDLQTopic   = "stayhub.clicks.dlq"

	DefaultRateLimitRequests = 10
	DefaultRateLimitWindow   = 1 * time.Minute

	DefaultRequestTimeout = 30 * time.Second
	DefaultIdempotencyTTL = 24 * time.Hour
	DefaultMaxRequestSize = 1 * 1024 * 1024 // 1MB

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second

	DefaultPaginationLimit = 100
)

func NormalizePaginationLimit(limit int) int {
	if limit <= 0 {
		limit = 10
	} else if limit > DefaultPaginationLimit {
		limit = DefaultPaginationLimit
	}
	return limit
}

func NormalizeOffset(offset int64) int64 {
	return max(0, offset)
}
