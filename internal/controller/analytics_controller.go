package controller

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"

	"analytics-gateway/internal/model"
	"analytics-gateway/internal/oauth"
	"analytics-gateway/internal/service"
)

const dateLayout = "2006-01-02"

type AnalyticsController interface {
	GetGA4Report(c *fiber.Ctx) error
}

type analyticsController struct {
	analyticsService service.AnalyticsService
}

// NewAnalyticsController builds an AnalyticsController.
func NewAnalyticsController(svc service.AnalyticsService) AnalyticsController {
	return &analyticsController{analyticsService: svc}
}

// GetGA4Report runs a GA4 report with the caller's OAuth credentials taken
// from the X-OAuth-Credentials header.
func (h *analyticsController) GetGA4Report(c *fiber.Ctx) error {
	creds, err := oauth.DecodeCredentials(c.Get(oauth.CredentialsHeader))
	if err != nil {
		return toFiberError(err)
	}

	query, err := buildReportQuery(c)
	if err != nil {
		return err
	}

	resp, err := h.analyticsService.RunReport(requestContext(c), creds, query)
	if err != nil {
		return toFiberError(err)
	}

	return c.JSON(resp)
}

func buildReportQuery(c *fiber.Ctx) (model.ReportQuery, error) {
	propertyID := utils.Trim(c.Query("property_id"), ' ')
	if propertyID == "" {
		return model.ReportQuery{}, fiber.NewError(fiber.StatusBadRequest, "property_id is required")
	}

	start, err := parseDate(c, "start_date")
	if err != nil {
		return model.ReportQuery{}, err
	}
	end, err := parseDate(c, "end_date")
	if err != nil {
		return model.ReportQuery{}, err
	}

	pageSize := 0
	raw := utils.Trim(c.Query("page_size"), ' ')
	if raw == "" {
		raw = utils.Trim(c.Query("limit"), ' ')
	}
	if raw != "" {
		if pageSize, err = strconv.Atoi(raw); err != nil {
			return model.ReportQuery{}, fiber.NewError(fiber.StatusBadRequest, "page_size must be an integer")
		}
	}

	return model.ReportQuery{
		PropertyID: propertyID,
		StartDate:  start,
		EndDate:    end,
		Metrics:    queryList(c, "metrics"),
		Dimensions: queryList(c, "dimensions"),
		EventName:  utils.Trim(c.Query("event_name"), ' '),
		PageSize:   pageSize,
	}, nil
}

// parseDate reads an optional YYYY-MM-DD parameter as local midnight.
func parseDate(c *fiber.Ctx, key string) (time.Time, error) {
	raw := utils.Trim(c.Query(key), ' ')
	if raw == "" {
		return time.Time{}, nil
	}
	t, err := time.ParseInLocation(dateLayout, raw, time.Local)
	if err != nil {
		return time.Time{}, fiber.NewError(fiber.StatusBadRequest, "invalid "+key+", expected YYYY-MM-DD")
	}
	return t, nil
}

// queryList accepts both repeated (?m=a&m=b) and comma separated (?m=a,b) values.
func queryList(c *fiber.Ctx, key string) []string {
	var out []string
	for _, raw := range c.Context().QueryArgs().PeekMulti(key) {
		for _, part := range strings.Split(string(raw), ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// requestContext carries the request id assigned by the requestid middleware.
func requestContext(c *fiber.Ctx) context.Context {
	return service.WithRequestID(c.UserContext(), c.GetRespHeader(fiber.HeaderXRequestID))
}
