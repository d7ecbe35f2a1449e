package config

import (
	"fmt"
	"net/url"
	"os"
	"regexp"
	"stayhub/pkg/client"
	"stayhub/pkg/logger"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type Config struct {
	MongoURI          string
	MongoDatabaseName string
	MongoConnTimeout  time.Duration

	Port string

	ServiceFeePercent  int
	CheckoutReturnURL  string
	PaymentAPIBaseURL  string
	PaymentAPIKey      string
	PaymentCallTimeout time.Duration

	KafkaBrokers    []string
	KafkaClickTopic string
	KafkaDLQTopic   string

	RateLimitRequests int
	RateLimitWindow   time.Duration

	RequestTimeout time.Duration
	IdempotencyTTL time.Duration
	MaxRequestSize int

	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration

	Log    *logger.Logger
	Client *client.Client
}

func Load(serviceName string) *Config {
	cfg := &Config{
		MongoURI:          getEnvStr(EnvMongoURI, DefaultMongoURI),
		MongoDatabaseName: getEnvStr(EnvMongoDatabaseName, DefaultMongoDatabaseName),
		MongoConnTimeout:  getEnvDuration(EnvMongoConnTimeout, DefaultMongoConnTimeout),

		Port: getEnvStr(EnvPort, DefaultPort),

		ServiceFeePercent:  getEnvNum(EnvServiceFeePercent, DefaultServiceFeePercent),
		CheckoutReturnURL:  getEnvStr(EnvCheckoutReturnURL, DefaultCheckoutReturnURL),
		PaymentAPIBaseURL:  getEnvStr(EnvPaymentAPIBaseURL, DefaultPaymentAPIBaseURL),
		PaymentAPIKey:      getEnvStr(EnvPaymentAPIKey, ""),
		PaymentCallTimeout: getEnvDuration(EnvPaymentCallTimeout, DefaultPaymentCallTimeout),

		KafkaBrokers:    getEnvList(EnvKafkaBrokers, nil),
		KafkaClickTopic: getEnvStr(EnvKafkaClickTopic, DefaultKafkaClickTopic),
		KafkaDLQTopic:   getEnvStr(EnvKafkaDLQTopic, DefaultKafkaDLQTopic),

		RateLimitRequests: getEnvNum(EnvRateLimitRequests, DefaultRateLimitRequests),
		RateLimitWindow:   getEnvDuration(EnvRateLimitWindow, DefaultRateLimitWindow),

		RequestTimeout: getEnvDuration(EnvRequestTimeout, DefaultRequestTimeout),
		IdempotencyTTL: getEnvDuration(EnvIdempotencyTTL, DefaultIdempotencyTTL),
		MaxRequestSize: getEnvNum(EnvMaxRequestSize, DefaultMaxRequestSize),

		ReadTimeout:     getEnvDuration(EnvReadTimeout, DefaultReadTimeout),
		WriteTimeout:    getEnvDuration(EnvWriteTimeout, DefaultWriteTimeout),
		IdleTimeout:     getEnvDuration(EnvIdleTimeout, DefaultIdleTimeout),
		ShutdownTimeout: getEnvDuration(EnvShutdownTimeout, DefaultShutdownTimeout),

		Log: logger.New(logger.Config{
			Level:     getEnvStr(EnvLogLevel, DefaultLogLevel),
			Format:    logger.JSON,
			AddSource: true,
			Service:   serviceName,
		}),
		Client: client.NewClient(),
	}

	// Money fields serialize as plain JSON numbers, matching the
	// caller-facing contract (decimal money fields, integer nights).
	decimal.MarshalJSONWithoutQuotes = true

	err := cfg.Validate()
	if err != nil {
		cfg.Log.Fatal(err.Error())
	}
	cfg.LogConfiguration()
	return cfg
}

func (cfg *Config) SetMongo() {
	cfg.Client.SetMongo(cfg.Log, cfg.MongoURI, cfg.MongoConnTimeout)
}

func (cfg *Config) Validate() error {
	var errors []string

	if port, err := strconv.Atoi(cfg.Port); err != nil || port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("Port must be between 1 and 65535, got: %s", cfg.Port))
	}

	if cfg.MongoURI == "" {
		errors = append(errors, "MongoURI cannot be empty")
	} else if !regexp.MustCompile(`^mongodb(\+srv)?://`).MatchString(cfg.MongoURI) {
		errors = append(errors, fmt.Sprintf("MongoURI must start with 'mongodb://' or 'mongodb+srv://', got: %s", cfg.MongoURI))
	}

	if cfg.MongoDatabaseName == "" {
		errors = append(errors, "MongoDatabaseName cannot be empty")
	}

	if cfg.MongoConnTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("MongoConnTimeout must be positive, got: %s", cfg.MongoConnTimeout))
	}

	if cfg.ServiceFeePercent < 0 || cfg.ServiceFeePercent > 100 {
		errors = append(errors, fmt.Sprintf("ServiceFeePercent must be between 0 and 100, got: %d", cfg.ServiceFeePercent))
	}

	if !isAbsoluteHTTPURL(cfg.CheckoutReturnURL) {
		errors = append(errors, fmt.Sprintf("CheckoutReturnURL must be an absolute http(s) URL, got: %s", cfg.CheckoutReturnURL))
	}

	if !isAbsoluteHTTPURL(cfg.PaymentAPIBaseURL) {
		errors = append(errors, fmt.Sprintf("PaymentAPIBaseURL must be an absolute http(s) URL, got: %s", cfg.PaymentAPIBaseURL))
	}

	if cfg.PaymentCallTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("PaymentCallTimeout must be positive, got: %s", cfg.PaymentCallTimeout))
	}
	if cfg.RateLimitWindow <= 0 {
		errors = append(errors, fmt.Sprintf("RateLimitWindow must be positive, got: %s", cfg.RateLimitWindow))
	}
	if cfg.RequestTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("RequestTimeout must be positive, got: %s", cfg.RequestTimeout))
	}
	if cfg.IdempotencyTTL <= 0 {
		errors = append(errors, fmt.Sprintf("IdempotencyTTL must be positive, got: %s", cfg.IdempotencyTTL))
	}
	if cfg.ReadTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("ReadTimeout must be positive, got: %s", cfg.ReadTimeout))
	}
	if cfg.WriteTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("WriteTimeout must be positive, got: %s", cfg.WriteTimeout))
	}
	if cfg.IdleTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("IdleTimeout must be positive, got: %s", cfg.IdleTimeout))
	}
	if cfg.ShutdownTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("ShutdownTimeout must be positive, got: %s", cfg.ShutdownTimeout))
	}

	if cfg.RateLimitRequests <= 0 {
		errors = append(errors, fmt.Sprintf("RateLimitRequests must be positive, got: %d", cfg.RateLimitRequests))
	}
	if cfg.MaxRequestSize <= 0 {
		errors = append(errors, fmt.Sprintf("MaxRequestSize must be positive, got: %d", cfg.MaxRequestSize))
	}

	if len(cfg.KafkaBrokers) > 0 && cfg.KafkaClickTopic == "" {
		errors = append(errors, "KafkaClickTopic cannot be empty when KafkaBrokers are configured")
	}

	if len(errors) > 0 {
		errMsg := "Configuration validation failed:\n"
		for i, err := range errors {
			errMsg += fmt.Sprintf("  %d. %s\n", i+1, err)
		}
		return fmt.Errorf("%s", errMsg)
	}

	return nil
}

func isAbsoluteHTTPURL(raw string) bool {
	u, err := url.Parse(raw)
	return err == nil && u.IsAbs() && u.Host != "" && (u.Scheme == "http" || u.Scheme == "https")
}

func (cfg *Config) LogConfiguration() {
	cfg.Log.Info("Configuration loaded successfully",
		"mongo_uri", redactMongoURI(cfg.MongoURI),
		"mongo_database", cfg.MongoDatabaseName,
		"mongo_conn_timeout", cfg.MongoConnTimeout,
		"port", cfg.Port,
		"service_fee_percent", cfg.ServiceFeePercent,
		"checkout_return_url", cfg.CheckoutReturnURL,
		"payment_api_base_url", cfg.PaymentAPIBaseURL,
		"payment_api_key_set", cfg.PaymentAPIKey != "",
		"payment_call_timeout", cfg.PaymentCallTimeout,
		"kafka_brokers", cfg.KafkaBrokers,
		"kafka_click_topic", cfg.KafkaClickTopic,
		"rate_limit_requests", cfg.RateLimitRequests,
		"rate_limit_window", cfg.RateLimitWindow,
		"request_timeout", cfg.RequestTimeout,
		"idempotency_ttl", cfg.IdempotencyTTL,
		"max_request_size", cfg.MaxRequestSize,
		"read_timeout", cfg.ReadTimeout,
		"write_timeout", cfg.WriteTimeout,
		"idle_timeout", cfg.IdleTimeout,
		"shutdown_timeout", cfg.ShutdownTimeout,
	)
}

func redactMongoURI(uri string) string {
	credentialRegex := regexp.MustCompile(`(mongodb(\+srv)?://)[^:]+:[^@]+@`)
	return credentialRegex.ReplaceAllString(uri, "${1}***:***@")
}

func getEnvStr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvNum(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}

func getEnvList(key string, fallback []string) []string {
	if value := os.Getenv(key); value != "" {
		parts := strings.Split(value, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				out = append(out, trimmed)
			}
		}
		if len(out) > 0 {
			return out
		}
	}
	return fallback
}

func (cfg *Config) GracefulShutdown() {
	cfg.Client.GracefulShutdown(cfg.Log)
}
