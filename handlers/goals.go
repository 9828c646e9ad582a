package handlers

import (
	"time"
	"uandme/database"
	"uandme/middleware"
	"uandme/models"
	"uandme/services"

	"github.com/gofiber/fiber/v2"
)

// CreateGoal creates a savings goal
func CreateGoal(c *fiber.Ctx) error {
	householdID := middleware.GetHouseholdID(c)

	var input models.GoalInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if input.GoalName == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Goal name is required",
		})
	}
	if !input.TargetAmount.IsPositive() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Target amount must be positive",
		})
	}

	goal := models.SavingsGoal{
		HouseholdID:  householdID,
		GoalName:     input.GoalName,
		TargetAmount: input.TargetAmount,
		CreatedAt:    time.Now().Format(dateLayout),
	}

	if result := database.DB.Create(&goal); result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create goal",
		})
	}

	services.NotifyChange(householdID, services.ChangeGoals)

	return c.Status(fiber.StatusCreated).JSON(goal.ToResponse())
}

// ListGoals returns the household's savings goals, newest first
func ListGoals(c *fiber.Ctx) error {
	householdID := middleware.GetHouseholdID(c)

	var goals []models.SavingsGoal
	if result := database.DB.Where("household_id = ?", householdID).
		Order("created_at DESC, id DESC").Find(&goals); result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch goals",
		})
	}

	responses := make([]models.GoalResponse, len(goals))
	for i, g := range goals {
		responses[i] = g.ToResponse()
	}
	return c.JSON(responses)
}
