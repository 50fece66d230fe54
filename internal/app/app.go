package app

import (
	"fmt"

	"github.com/DIMO-Network/server-garage/pkg/fibercommon"
	_ "github.com/DIMO-Network/webhook-validator/docs" // Import Swagger docs
	"github.com/DIMO-Network/webhook-validator/internal/celcondition"
	"github.com/DIMO-Network/webhook-validator/internal/config"
	"github.com/DIMO-Network/webhook-validator/internal/controllers/probe"
	"github.com/DIMO-Network/webhook-validator/internal/services/classifier"
	"github.com/DIMO-Network/webhook-validator/internal/services/prober"
	"github.com/DIMO-Network/webhook-validator/internal/services/webhooksender"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/rs/zerolog"
)

// CreateServers wires the probe pipeline and returns the web app.
func CreateServers(settings *config.Settings, logger zerolog.Logger) (*fiber.App, error) {
	policy, err := NewPolicy(settings)
	if err != nil {
		return nil, fmt.Errorf("failed to create classifier policy: %w", err)
	}

	sender := webhooksender.NewWebhookSender(nil, webhooksender.Config{
		Timeout:          settings.ProbeTimeout,
		MaxBodyBytes:     settings.ProbeMaxBodyBytes,
		UserAgent:        settings.ProbeUserAgent,
		AllowInsecureTLS: settings.AllowInsecureTLS,
	})
	if settings.AllowInsecureTLS {
		logger.Warn().Msg("TLS certificate verification is disabled for probes")
	}
	// The classifier budget must match the ceiling the client enforces.
	policy.Timeout = sender.Timeout()
	logger.Info().Dur("timeout", policy.Timeout).Int64("maxBodyBytes", settings.ProbeMaxBodyBytes).Msg("Probe limits")

	return CreateFiberApp(logger, prober.New(sender, policy)), nil
}

// NewPolicy builds the classifier policy from settings.
func NewPolicy(settings *config.Settings) (classifier.Policy, error) {
	policy := classifier.Policy{
		Timeout:           settings.ProbeTimeout,
		WebpageMinBytes:   settings.WebpageMinBytes,
		SmallBodyMaxBytes: settings.SmallBodyMaxBytes,
		WebpageMarkers:    settings.WebpageMarkers,
		AckTokens:         settings.AckTokens,
	}
	if settings.AckCondition != "" {
		rule, err := celcondition.NewAckRule(settings.AckCondition)
		if err != nil {
			return classifier.Policy{}, fmt.Errorf("invalid ACK_CONDITION: %w", err)
		}
		policy.AckRule = rule
	}
	return policy.WithDefaults(), nil
}

// CreateFiberApp sets up the API routes.
func CreateFiberApp(logger zerolog.Logger, p probe.Prober) *fiber.App {
	logger.Info().Msg("Starting Webhook Validator...")

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return fibercommon.ErrorHandler(c, err)
		},
		DisableStartupMessage: true,
	})
	app.Use(fibercommon.ContextLoggerMiddleware)

	app.Get("/swagger/*", swagger.HandlerDefault)

	probeController := probe.NewProbeController(p)
	logger.Info().Msg("Registering routes...")

	app.Get("/", probeController.FormPage)
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"data": "Server is up and running",
		})
	})

	app.Post("/test_webhook", probeController.TestWebhook)
	app.Post("/v1/probes", probeController.TestWebhook)

	return app
}
