package handlers

import (
	"strconv"
	"time"
	"uandme/calendar"
	"uandme/config"
	"uandme/database"
	"uandme/middleware"
	"uandme/models"
	"uandme/services"

	"github.com/gofiber/fiber/v2"
)

// MonthView returns the month grid with events placed into day cells
func MonthView(c *fiber.Ctx) error {
	householdID := middleware.GetHouseholdID(c)

	// "Today" follows the household's configured zone, not the server's
	now := time.Now()
	if loc, err := time.LoadLocation(config.GetConfig().DefaultTimezone); err == nil {
		now = now.In(loc)
	}

	year, _ := strconv.Atoi(c.Query("year"))
	if year == 0 {
		year = now.Year()
	}
	month, _ := strconv.Atoi(c.Query("month"))
	if month < 1 || month > 12 {
		month = int(now.Month())
	}

	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)

	events, err := database.Events.List(householdID, first.Format(dateLayout), last.Format(dateLayout))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch events",
		})
	}

	return c.JSON(calendar.RenderMonth(year, time.Month(month), now, events))
}

// ListTemplates returns the built-in event presets
func ListTemplates(c *fiber.Ctx) error {
	var templates []models.EventTemplate
	if result := database.DB.Order("id").Find(&templates); result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch templates",
		})
	}

	responses := make([]models.TemplateResponse, len(templates))
	for i, t := range templates {
		responses[i] = t.ToResponse()
	}
	return c.JSON(responses)
}

// ExportICS renders the household calendar as an iCalendar feed
func ExportICS(c *fiber.Ctx) error {
	householdID := middleware.GetHouseholdID(c)

	events, err := database.Events.List(householdID, "", "")
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch events",
		})
	}

	c.Set(fiber.HeaderContentType, "text/calendar; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="uandme.ics"`)
	return c.SendString(services.BuildICS(events))
}
