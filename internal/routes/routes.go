package routes

import (
	"github.com/gofiber/fiber/v2"

	"analytics-gateway/internal/controller"
)

// Controllers groups the handlers mounted by Register.
type Controllers struct {
	Analytics controller.AnalyticsController
	Mailchimp controller.MailchimpController
	Health    controller.HealthController
	// Metrics serves the Prometheus exposition; nil leaves /metrics unmounted.
	Metrics fiber.Handler
}

// Register attaches all HTTP routes to the Fiber app. API routes live under
// prefix, health and metrics at the root.
func Register(app *fiber.App, prefix string, ctrls Controllers) {
	app.Get("/", ctrls.Health.Root)
	app.Get("/health", ctrls.Health.Health)
	if ctrls.Metrics != nil {
		app.Get("/metrics", ctrls.Metrics)
	}

	api := app.Group(prefix)
	api.Get("/ga4", ctrls.Analytics.GetGA4Report)

	mc := api.Group("/mailchimp")
	mc.Get("/audiences", ctrls.Mailchimp.GetAudiences)
	mc.Get("/campaigns/summary", ctrls.Mailchimp.GetCampaignSummaries)
}
