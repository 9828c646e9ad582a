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

// RecordTransaction writes one income, expense or savings row
func RecordTransaction(c *fiber.Ctx) error {
	kind, ok := models.TableFor(c.Params("kind"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unknown transaction kind",
		})
	}
	householdID := middleware.GetHouseholdID(c)

	var input models.TransactionInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if !input.Amount.IsPositive() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Amount must be positive",
		})
	}

	date := input.Date
	if date == "" {
		date = time.Now().Format(dateLayout)
	}
	parsed, err := time.Parse(dateLayout, date)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Date must be YYYY-MM-DD",
		})
	}
	month, year := input.Month, input.Year
	if month == 0 {
		month = int(parsed.Month())
	}
	if year == 0 {
		year = parsed.Year()
	}

	transaction := models.Transaction{
		HouseholdID: householdID,
		PartnerName: middleware.ResolvePartner(c, input.PartnerName),
		Date:        date,
		Month:       month,
		Year:        year,
		Amount:      input.Amount,
		Source:      input.Source,
		Note:        input.Note,
	}

	// Only savings rows carry a goal link.
	query := database.DB.Table(string(kind))
	if kind == models.KindSavings {
		if input.GoalID != nil {
			var goal models.SavingsGoal
			if result := database.DB.Where("id = ? AND household_id = ?", *input.GoalID, householdID).First(&goal); result.Error != nil {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
					"error": "Unknown savings goal",
				})
			}
			transaction.GoalID = input.GoalID
		}
	} else {
		query = query.Omit("GoalID")
	}

	if result := query.Create(&transaction); result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to record transaction",
		})
	}

	services.NotifyChange(householdID, services.ChangeMoney)

	return c.Status(fiber.StatusCreated).JSON(transaction.ToResponse())
}

// ListTransactions returns a household's transactions of one kind,
// newest first. With month and year query params it returns just that
// month.
func ListTransactions(c *fiber.Ctx) error {
	kind, ok := models.TableFor(c.Params("kind"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unknown transaction kind",
		})
	}
	householdID := middleware.GetHouseholdID(c)

	query := database.DB.Table(string(kind)).Where("household_id = ?", householdID)

	month, _ := strconv.Atoi(c.Query("month"))
	year, _ := strconv.Atoi(c.Query("year"))
	if month != 0 && year != 0 {
		query = query.Where("month = ? AND year = ?", month, year)
	}

	var transactions []models.Transaction
	if result := query.Order("date DESC").Find(&transactions); result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch transactions",
		})
	}

	responses := make([]models.TransactionResponse, len(transactions))
	for i, t := range transactions {
		responses[i] = t.ToResponse()
	}

	return c.JSON(responses)
}

// MoneySummary returns the household's lifetime totals
func MoneySummary(c *fiber.Ctx) error {
	summary, err := services.Totals(middleware.GetHouseholdID(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to compute summary",
		})
	}
	return c.JSON(summary)
}
