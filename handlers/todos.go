package handlers

import (
	"strconv"
	"time"
	"uandme/database"
	"uandme/middleware"
	"uandme/models"
	"uandme/services"

	"github.com/gofiber/fiber/v2"
)

// CreateTodoList creates a titled list of tasks, one row per task
func CreateTodoList(c *fiber.Ctx) error {
	householdID := middleware.GetHouseholdID(c)

	var input models.TodoListInput
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
	tasks := make([]string, 0, len(input.Tasks))
	for _, task := range input.Tasks {
		if task != "" {
			tasks = append(tasks, task)
		}
	}
	if len(tasks) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "At least one task is required",
		})
	}

	partner := middleware.ResolvePartner(c, input.PartnerName)
	created := time.Now().Format(dateLayout)

	todos := make([]models.Todo, len(tasks))
	for i, task := range tasks {
		todos[i] = models.Todo{
			HouseholdID: householdID,
			PartnerName: partner,
			Title:       input.Title,
			Task:        task,
			Completed:   false,
			CreatedAt:   created,
		}
	}

	if result := database.DB.Create(&todos); result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create todo list",
		})
	}

	services.NotifyChange(householdID, services.ChangeTodos)

	responses := make([]models.TodoResponse, len(todos))
	for i, t := range todos {
		responses[i] = t.ToResponse()
	}
	return c.Status(fiber.StatusCreated).JSON(responses)
}

// ListTodos returns all of a household's tasks, newest list first
func ListTodos(c *fiber.Ctx) error {
	householdID := middleware.GetHouseholdID(c)

	var todos []models.Todo
	if result := database.DB.Where("household_id = ?", householdID).
		Order("created_at DESC, id ASC").Find(&todos); result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch todos",
		})
	}

	responses := make([]models.TodoResponse, len(todos))
	for i, t := range todos {
		responses[i] = t.ToResponse()
	}
	return c.JSON(responses)
}

// UpdateTodo sets a task's completion state
func UpdateTodo(c *fiber.Ctx) error {
	householdID := middleware.GetHouseholdID(c)

	todoID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid todo ID",
		})
	}

	var input models.TodoUpdateInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	var todo models.Todo
	if result := database.DB.Where("id = ? AND household_id = ?", todoID, householdID).First(&todo); result.Error != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Todo not found",
		})
	}

	todo.Completed = input.Completed
	if result := database.DB.Save(&todo); result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update todo",
		})
	}

	services.NotifyChange(householdID, services.ChangeTodos)

	return c.JSON(todo.ToResponse())
}
