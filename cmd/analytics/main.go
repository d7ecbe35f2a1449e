package main

import (
	"stayhub/internal/analytics/handler"
	"stayhub/internal/analytics/repository"
	"stayhub/internal/analytics/service"
	"stayhub/pkg/app"
	"stayhub/pkg/config"
	"stayhub/pkg/kafka"
	kafka_config "stayhub/pkg/kafka/config"
	"time"
)

func main() {
	cfg := config.Load("analytics")
	cfg.SetMongo()
	defer cfg.GracefulShutdown()

	producer := initProducer(cfg)
	if producer != nil {
		defer producer.Close()
	}

	analyticsService := initServices(cfg, producer)

	analyticsHandler := handler.NewAnalyticsHandler(analyticsService, cfg.Log)
	healthHandler := handler.NewHealthHandler(cfg.Client.Mongo, cfg.Log)

	application := app.NewApplication()
	application.SetApp(cfg, analyticsHandler, healthHandler)
	application.Run()
}

// initProducer builds the click-event producer. Brokers are optional: with
// none configured the service runs store-only and skips emission.
func initProducer(cfg *config.Config) *kafka.Producer {
	if len(cfg.KafkaBrokers) == 0 {
		cfg.Log.Warn("No Kafka brokers configured, click events will not be emitted")
		return nil
	}

	producer, err := kafka.NewProducer(
		kafka_config.New(cfg.KafkaBrokers),
		cfg.KafkaClickTopic,
		cfg.KafkaDLQTopic,
	)
	if err != nil {
		cfg.Log.Fatal("Failed to create Kafka producer", "error", err)
	}

	cfg.Log.Info("Kafka producer initialized",
		"topic", cfg.KafkaClickTopic,
		"dlq_topic", cfg.KafkaDLQTopic,
	)
	return producer
}

func initServices(cfg *config.Config, producer *kafka.Producer) service.AnalyticsService {
	repo := repository.NewMongoClickEventRepository(cfg)

	// The interface is satisfied by a typed nil, so pass nil explicitly
	// when no producer exists.
	var publisher service.EventPublisher
	if producer != nil {
		publisher = producer
	}

	analyticsService := service.NewAnalyticsService(repo, publisher, time.Local, cfg)

	cfg.Log.Info("Analytics service initialized")
	return analyticsService
}
