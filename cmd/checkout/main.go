package main

import (
	"stayhub/internal/checkout/handler"
	"stayhub/internal/checkout/pricing"
	"stayhub/internal/checkout/service"
	"stayhub/internal/checkout/session"
	"stayhub/internal/checkout/validator"
	propertieshandler "stayhub/internal/properties/handler"
	"stayhub/internal/properties/repository"
	propertiesservice "stayhub/internal/properties/service"
	propertiesvalidator "stayhub/internal/properties/validator"
	"stayhub/pkg/app"
	"stayhub/pkg/client"
	"stayhub/pkg/config"
	"stayhub/pkg/contracts"

	"github.com/julienschmidt/httprouter"
)

// routes mounts the checkout flow and the property catalog on one router.
type routes struct {
	checkout   *handler.CheckoutHandler
	properties *propertieshandler.PropertyHandler
}

func (r routes) RegisterRoutes(router *httprouter.Router) {
	r.checkout.RegisterRoutes(router)
	r.properties.RegisterRoutes(router)
}

func main() {
	cfg := config.Load("checkout")
	cfg.SetMongo()
	defer cfg.GracefulShutdown()

	propertyRepo := repository.NewMongoPropertyRepository(cfg)
	checkoutService := initCheckoutService(cfg, propertyRepo)
	propertyService := propertiesservice.NewPropertyService(
		propertyRepo,
		propertiesvalidator.NewPropertyValidator(cfg.Log),
		cfg,
	)

	appHandler := routes{
		checkout:   handler.NewCheckoutHandler(checkoutService, cfg.Log),
		properties: propertieshandler.NewPropertyHandler(propertyService, cfg.Log),
	}
	var healthHandler contracts.Handler = handler.NewHealthHandler(cfg.Client.Mongo, cfg.Log)

	application := app.NewApplication()
	application.SetApp(cfg, appHandler, healthHandler)
	application.Run()
}

func initCheckoutService(cfg *config.Config, propertyRepo repository.PropertyRepository) service.CheckoutService {
	builder, err := session.NewBuilder(cfg.CheckoutReturnURL, cfg.Log)
	if err != nil {
		cfg.Log.Fatal("Invalid checkout return URL", "error", err)
	}

	gateway := client.NewPaymentProvider(
		cfg.Log,
		cfg.PaymentAPIBaseURL,
		cfg.PaymentAPIKey,
		cfg.PaymentCallTimeout,
	)

	checkoutService := service.NewCheckoutService(
		propertyRepo,
		validator.NewStayValidator(cfg.Log),
		pricing.NewCalculator(cfg.ServiceFeePercent),
		builder,
		gateway,
		cfg,
	)

	cfg.Log.Info("Checkout service initialized")
	return checkoutService
}
