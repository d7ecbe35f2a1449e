package kafka_config

import (
	"fmt"
	"strings"
	"time"
)

// Config holds producer configuration for the click-event publisher.
type Config struct {
	Brokers []string

	ProducerMaxAttempts  int
	ProducerBatchTimeout time.Duration
	ProducerRequireAcks  int    // -1 = all, 0 = none, 1 = leader only
	ProducerCompression  string // "none", "gzip", "snappy", "lz4", "zstd"
	ProducerAsync        bool
}

// New builds a producer config for the given brokers with conservative
// defaults (acks=all, snappy, synchronous writes).
func New(brokers []string) *Config {
	return &Config{
		Brokers:              brokers,
		ProducerMaxAttempts:  3,
		ProducerBatchTimeout: 100 * time.Millisecond,
		ProducerRequireAcks:  -1,
		ProducerCompression:  "snappy",
		ProducerAsync:        false,
	}
}

func (cfg *Config) Validate() error {
	var errors []string

	if len(cfg.Brokers) == 0 {
		errors = append(errors, "At least one Kafka broker is required")
	}

	for i, broker := range cfg.Brokers {
		if broker == "" {
			errors = append(errors, fmt.Sprintf("Broker %d cannot be empty", i))
		}
	}

	if cfg.ProducerMaxAttempts <= 0 {
		errors = append(errors, fmt.Sprintf("ProducerMaxAttempts must be positive, got: %d", cfg.ProducerMaxAttempts))
	}

	if cfg.ProducerBatchTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("ProducerBatchTimeout must be positive, got: %s", cfg.ProducerBatchTimeout))
	}

	validCompressions := map[string]bool{
		"none": true, "gzip": true, "snappy": true, "lz4": true, "zstd": true,
	}
	if !validCompressions[cfg.ProducerCompression] {
		errors = append(errors, fmt.Sprintf("ProducerCompression must be one of none/gzip/snappy/lz4/zstd, got: %s", cfg.ProducerCompression))
	}

	if cfg.ProducerRequireAcks < -1 || cfg.ProducerRequireAcks > 1 {
		errors = append(errors, fmt.Sprintf("ProducerRequireAcks must be -1, 0 or 1, got: %d", cfg.ProducerRequireAcks))
	}

	if len(errors) > 0 {
		return fmt.Errorf("kafka configuration invalid: %s", strings.Join(errors, "; "))
	}

	return nil
}
