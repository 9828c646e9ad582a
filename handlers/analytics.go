package handlers

import (
	"strconv"
	"time"
	"uandme/middleware"
	"uandme/services"

	"github.com/gofiber/fiber/v2"
)

// MonthlyTrends returns twelve months of income/expense/net sums for a
// year (current year by default)
func MonthlyTrends(c *fiber.Ctx) error {
	year, _ := strconv.Atoi(c.Query("year"))
	if year == 0 {
		year = time.Now().Year()
	}

	rows, err := services.MonthlyTrend(middleware.GetHouseholdID(c), year)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to compute trends",
		})
	}
	return c.JSON(fiber.Map{"year": year, "months": rows})
}

// ExpenseCategories returns one month's expenses grouped by source
func ExpenseCategories(c *fiber.Ctx) error {
	now := time.Now()
	month, _ := strconv.Atoi(c.Query("month"))
	if month < 1 || month > 12 {
		month = int(now.Month())
	}
	year, _ := strconv.Atoi(c.Query("year"))
	if year == 0 {
		year = now.Year()
	}

	totals, err := services.CategoryBreakdown(middleware.GetHouseholdID(c), month, year)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to compute breakdown",
		})
	}
	return c.JSON(fiber.Map{"month": month, "year": year, "categories": totals})
}

// PartnerComparison returns lifetime income/expense/net per partner
func PartnerComparison(c *fiber.Ctx) error {
	totals, err := services.PartnerComparison(middleware.GetHouseholdID(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to compute comparison",
		})
	}
	return c.JSON(totals)
}

// GoalProgress returns tracked progress for every savings goal
func GoalProgress(c *fiber.Ctx) error {
	report, err := services.GoalProgress(middleware.GetHouseholdID(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to compute goal progress",
		})
	}
	return c.JSON(report)
}

// TimeAnalytics returns tracked time grouped by partner and category for
// a date range (the last 30 days by default)
func TimeAnalytics(c *fiber.Ctx) error {
	from := c.Query("from")
	to := c.Query("to")
	if from == "" || to == "" {
		now := time.Now()
		to = now.Format(dateLayout)
		from = now.AddDate(0, 0, -30).Format(dateLayout)
	}

	report, err := services.TimeAnalytics(middleware.GetHouseholdID(c), from, to)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to compute time analytics",
		})
	}
	return c.JSON(report)
}
