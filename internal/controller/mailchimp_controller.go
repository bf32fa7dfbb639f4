package controller

import (
	"github.com/gofiber/fiber/v2"

	"analytics-gateway/internal/service"
)

type MailchimpController interface {
	GetAudiences(c *fiber.Ctx) error
	GetCampaignSummaries(c *fiber.Ctx) error
}

type mailchimpController struct {
	mailchimpService service.MailchimpService
}

// NewMailchimpController builds a MailchimpController.
func NewMailchimpController(svc service.MailchimpService) MailchimpController {
	return &mailchimpController{mailchimpService: svc}
}

// GetAudiences returns every audience and the total subscriber count.
func (h *mailchimpController) GetAudiences(c *fiber.Ctx) error {
	resp, err := h.mailchimpService.Audiences(requestContext(c))
	if err != nil {
		return toFiberError(err)
	}
	return c.JSON(resp)
}

// GetCampaignSummaries returns open and click figures of sent campaigns.
func (h *mailchimpController) GetCampaignSummaries(c *fiber.Ctx) error {
	resp, err := h.mailchimpService.CampaignSummaries(requestContext(c))
	if err != nil {
		return toFiberError(err)
	}
	return c.JSON(resp)
}
