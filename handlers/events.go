package handlers

import (
	"time"
	"uandme/calendar"
	"uandme/config"
	"uandme/database"
	"uandme/middleware"
	"uandme/services"

	"github.com/gofiber/fiber/v2"
)

type EventInput struct {
	AssignedTo  string `json:"assigned_to"`
	CreatedBy   string `json:"created_by"`
	Date        string `json:"date"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	Timezone    string `json:"timezone"`
	Title       string `json:"title"`
	Category    string `json:"category"`
	Color       string `json:"color"`
	Description string `json:"description"`
	Recurrence  string `json:"recurrence"`
}

func validAssignment(label string) bool {
	switch label {
	case "partner1", "partner2", "both", "unassigned":
		return true
	}
	return false
}

// CreateEvent writes a calendar event and reports whether time tracking
// was derived from it
func CreateEvent(c *fiber.Ctx) error {
	householdID := middleware.GetHouseholdID(c)

	var input EventInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if input.Title == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Title is required",
		})
	}
	if _, err := time.Parse(dateLayout, input.Date); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Date must be YYYY-MM-DD",
		})
	}
	if input.AssignedTo == "" {
		input.AssignedTo = "unassigned"
	}
	if !validAssignment(input.AssignedTo) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Assigned to must be partner1, partner2, both or unassigned",
		})
	}
	if input.Color == "" {
		input.Color = "blue"
	}
	if input.Timezone == "" {
		input.Timezone = config.GetConfig().DefaultTimezone
	}

	result, err := database.Events.Create(calendar.CreateParams{
		HouseholdID:  householdID,
		AssignedTo:   input.AssignedTo,
		CreatedBy:    middleware.ResolvePartner(c, input.CreatedBy),
		Partner1Name: middleware.GetPartner1Name(c),
		Partner2Name: middleware.GetPartner2Name(c),
		Date:         input.Date,
		StartTime:    input.StartTime,
		EndTime:      input.EndTime,
		Timezone:     input.Timezone,
		Title:        input.Title,
		Category:     input.Category,
		Color:        input.Color,
		Description:  input.Description,
		Recurrence:   input.Recurrence,
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create event",
		})
	}

	services.NotifyChange(householdID, services.ChangeEvents)

	return c.Status(fiber.StatusCreated).JSON(result)
}

// ListEvents returns a household's events, optionally limited to an
// inclusive date range
func ListEvents(c *fiber.Ctx) error {
	householdID := middleware.GetHouseholdID(c)

	from := c.Query("from")
	to := c.Query("to")
	if (from == "") != (to == "") {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Both from and to are required for a date range",
		})
	}

	events, err := database.Events.List(householdID, from, to)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch events",
		})
	}

	return c.JSON(events)
}
