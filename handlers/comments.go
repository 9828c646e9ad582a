package handlers

import (
	"errors"
	"strconv"
	"time"
	"uandme/calendar"
	"uandme/database"
	"uandme/middleware"
	"uandme/models"
	"uandme/services"

	"github.com/gofiber/fiber/v2"
)

const timestampLayout = "2006-01-02 15:04:05"

// CreateComment appends a comment to one of the household's events
func CreateComment(c *fiber.Ctx) error {
	householdID := middleware.GetHouseholdID(c)

	eventID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid event ID",
		})
	}

	var input models.CommentInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if input.Comment == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Comment is required",
		})
	}

	if _, err := database.Events.Get(householdID, eventID); err != nil {
		if errors.Is(err, calendar.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Event not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch event",
		})
	}

	comment := models.CalendarComment{
		EventID:     eventID,
		HouseholdID: householdID,
		PartnerName: middleware.ResolvePartner(c, input.PartnerName),
		Comment:     input.Comment,
		Timestamp:   time.Now().Format(timestampLayout),
	}

	if result := database.DB.Create(&comment); result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to add comment",
		})
	}

	services.NotifyChange(householdID, services.ChangeComments)

	return c.Status(fiber.StatusCreated).JSON(comment.ToResponse())
}

// ListComments returns an event's comments in the order they were made
func ListComments(c *fiber.Ctx) error {
	householdID := middleware.GetHouseholdID(c)

	eventID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid event ID",
		})
	}

	if _, err := database.Events.Get(householdID, eventID); err != nil {
		if errors.Is(err, calendar.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Event not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch event",
		})
	}

	var comments []models.CalendarComment
	if result := database.DB.Where("event_id = ? AND household_id = ?", eventID, householdID).
		Order("timestamp, id").Find(&comments); result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch comments",
		})
	}

	responses := make([]models.CommentResponse, len(comments))
	for i, cm := range comments {
		responses[i] = cm.ToResponse()
	}
	return c.JSON(responses)
}
