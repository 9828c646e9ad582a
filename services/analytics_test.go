package services

import (
	"path/filepath"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"uandme/database"
	"uandme/models"
)

func setupDB(t *testing.T) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "uandme.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, database.EnsureSchema(sqlDB))

	database.DB = db
}

func addTransaction(t *testing.T, table, householdID, partner, date string, month, year int, amount, source string) {
	t.Helper()
	tx := models.Transaction{
		HouseholdID: householdID,
		PartnerName: partner,
		Date:        date,
		Month:       month,
		Year:        year,
		Amount:      decimal.RequireFromString(amount),
		Source:      source,
	}
	require.NoError(t, database.DB.Table(table).Omit("GoalID").Create(&tx).Error)
}

func addSaving(t *testing.T, householdID, amount string, goalID *uint) {
	t.Helper()
	tx := models.Transaction{
		HouseholdID: householdID,
		PartnerName: "Mika",
		Date:        "2025-03-01",
		Month:       3,
		Year:        2025,
		Amount:      decimal.RequireFromString(amount),
		GoalID:      goalID,
	}
	require.NoError(t, database.DB.Table("savings").Create(&tx).Error)
}

func assertAmount(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, got.Equal(decimal.RequireFromString(want)), "want %s, got %s", want, got)
}

func TestMonthlyTrend(t *testing.T) {
	setupDB(t)

	addTransaction(t, "income", "house-1", "Mika", "2025-01-25", 1, 2025, "2500", "salary")
	addTransaction(t, "income", "house-1", "Riku", "2025-03-10", 3, 2025, "300.50", "freelance")
	addTransaction(t, "expenses", "house-1", "Mika", "2025-01-05", 1, 2025, "800.25", "rent")
	addTransaction(t, "expenses", "house-1", "Riku", "2025-12-20", 12, 2025, "100", "gifts")

	// Another year and another household stay out of the trend.
	addTransaction(t, "income", "house-1", "Mika", "2024-01-25", 1, 2024, "9999", "salary")
	addTransaction(t, "income", "house-2", "Aoi", "2025-01-25", 1, 2025, "7777", "salary")

	rows, err := MonthlyTrend("house-1", 2025)
	require.NoError(t, err)
	require.Len(t, rows, 12)

	jan := rows[0]
	assert.Equal(t, 1, jan.Month)
	assert.Equal(t, "Jan", jan.Label)
	assertAmount(t, "2500", jan.Income)
	assertAmount(t, "800.25", jan.Expenses)
	assertAmount(t, "1699.75", jan.Net)

	// A month with no transactions still gets a row of zeros.
	feb := rows[1]
	assert.Equal(t, "Feb", feb.Label)
	assertAmount(t, "0", feb.Income)
	assertAmount(t, "0", feb.Expenses)
	assertAmount(t, "0", feb.Net)

	assertAmount(t, "300.50", rows[2].Income)
	assertAmount(t, "100", rows[11].Expenses)
	assert.Equal(t, "Dec", rows[11].Label)
}

func TestCategoryBreakdown(t *testing.T) {
	setupDB(t)

	addTransaction(t, "expenses", "house-1", "Mika", "2025-01-03", 1, 2025, "1200", "rent")
	addTransaction(t, "expenses", "house-1", "Mika", "2025-01-08", 1, 2025, "300.25", "groceries")
	addTransaction(t, "expenses", "house-1", "Riku", "2025-01-21", 1, 2025, "99.75", "groceries")
	addTransaction(t, "expenses", "house-1", "Riku", "2025-01-14", 1, 2025, "80", "transit")
	addTransaction(t, "expenses", "house-1", "Riku", "2025-02-14", 2, 2025, "500", "travel")

	totals, err := CategoryBreakdown("house-1", 1, 2025)
	require.NoError(t, err)
	require.Len(t, totals, 3)

	assert.Equal(t, "rent", totals[0].Source)
	assertAmount(t, "1200", totals[0].Total)
	assert.Equal(t, "groceries", totals[1].Source)
	assertAmount(t, "400", totals[1].Total)
	assert.Equal(t, "transit", totals[2].Source)
	assertAmount(t, "80", totals[2].Total)
}

func TestPartnerComparison(t *testing.T) {
	setupDB(t)

	addTransaction(t, "income", "house-1", "Mika", "2025-01-25", 1, 2025, "3000", "salary")
	addTransaction(t, "income", "house-1", "Riku", "2025-01-25", 1, 2025, "2000", "salary")
	addTransaction(t, "expenses", "house-1", "Mika", "2025-01-05", 1, 2025, "500", "rent")
	addTransaction(t, "expenses", "house-1", "Riku", "2025-01-06", 1, 2025, "250", "groceries")
	addTransaction(t, "expenses", "house-1", "Joint", "2025-01-07", 1, 2025, "100", "utilities")

	totals, err := PartnerComparison("house-1")
	require.NoError(t, err)
	require.Len(t, totals, 3)

	assert.Equal(t, "Mika", totals[0].PartnerName)
	assertAmount(t, "3000", totals[0].Income)
	assertAmount(t, "500", totals[0].Expenses)
	assertAmount(t, "2500", totals[0].Net)

	assert.Equal(t, "Riku", totals[1].PartnerName)
	assertAmount(t, "1750", totals[1].Net)

	// A label seen only in expenses still gets a row.
	assert.Equal(t, "Joint", totals[2].PartnerName)
	assertAmount(t, "0", totals[2].Income)
	assertAmount(t, "100", totals[2].Expenses)
	assertAmount(t, "-100", totals[2].Net)
}

func TestGoalProgress(t *testing.T) {
	setupDB(t)

	fund := models.SavingsGoal{
		HouseholdID:  "house-1",
		GoalName:     "Emergency Fund",
		TargetAmount: decimal.RequireFromString("3000"),
		CreatedAt:    "2025-01-01",
	}
	require.NoError(t, database.DB.Create(&fund).Error)

	trip := models.SavingsGoal{
		HouseholdID:  "house-1",
		GoalName:     "Trip to Okinawa",
		TargetAmount: decimal.RequireFromString("1200"),
		CreatedAt:    "2025-02-01",
	}
	require.NoError(t, database.DB.Create(&trip).Error)

	addSaving(t, "house-1", "500", &fund.ID)
	addSaving(t, "house-1", "250", &fund.ID)
	addSaving(t, "house-1", "600", &trip.ID)
	addSaving(t, "house-1", "150", nil)

	report, err := GoalProgress("house-1")
	require.NoError(t, err)
	require.Len(t, report.Goals, 2)

	// Newest goal first.
	assert.Equal(t, "Trip to Okinawa", report.Goals[0].GoalName)
	assertAmount(t, "600", report.Goals[0].Saved)
	assert.InDelta(t, 50.0, report.Goals[0].Percent, 0.001)

	assert.Equal(t, "Emergency Fund", report.Goals[1].GoalName)
	assertAmount(t, "750", report.Goals[1].Saved)
	assert.InDelta(t, 25.0, report.Goals[1].Percent, 0.001)

	assertAmount(t, "150", report.Unallocated)
	assertAmount(t, "1500", report.TotalSaved)
}

func TestGoalProgress_NoGoalsNoSavings(t *testing.T) {
	setupDB(t)

	report, err := GoalProgress("house-1")
	require.NoError(t, err)
	assert.Empty(t, report.Goals)
	assertAmount(t, "0", report.Unallocated)
	assertAmount(t, "0", report.TotalSaved)
}

func TestTimeAnalytics(t *testing.T) {
	setupDB(t)

	entries := []models.TimeEntry{
		{HouseholdID: "house-1", PartnerName: "Mika", Category: "fitness", Date: "2025-01-10", DurationMinutes: 60},
		{HouseholdID: "house-1", PartnerName: "Mika", Category: "fitness", Date: "2025-01-12", DurationMinutes: 30},
		{HouseholdID: "house-1", PartnerName: "Mika", Category: "work", Date: "2025-01-11", DurationMinutes: 240},
		{HouseholdID: "house-1", PartnerName: "Riku", Category: "education", Date: "2025-01-20", DurationMinutes: 120},
		{HouseholdID: "house-1", PartnerName: "Riku", Category: "fitness", Date: "2025-01-31", DurationMinutes: 45},
		// Outside the range or the household.
		{HouseholdID: "house-1", PartnerName: "Mika", Category: "fitness", Date: "2025-02-01", DurationMinutes: 999},
		{HouseholdID: "house-2", PartnerName: "Aoi", Category: "fitness", Date: "2025-01-10", DurationMinutes: 999},
	}
	require.NoError(t, database.DB.Create(&entries).Error)

	report, err := TimeAnalytics("house-1", "2025-01-01", "2025-01-31")
	require.NoError(t, err)

	require.Len(t, report.ByPartner, 4)
	assert.Equal(t, TimePartnerRow{PartnerName: "Mika", Category: "fitness", TotalMinutes: 90, TotalHours: 1.5}, report.ByPartner[0])
	assert.Equal(t, TimePartnerRow{PartnerName: "Mika", Category: "work", TotalMinutes: 240, TotalHours: 4.0}, report.ByPartner[1])
	assert.Equal(t, TimePartnerRow{PartnerName: "Riku", Category: "education", TotalMinutes: 120, TotalHours: 2.0}, report.ByPartner[2])
	assert.Equal(t, TimePartnerRow{PartnerName: "Riku", Category: "fitness", TotalMinutes: 45, TotalHours: 0.75}, report.ByPartner[3])

	require.Len(t, report.ByCategory, 3)
	assert.Equal(t, TimeCategoryRow{Category: "education", TotalMinutes: 120, TotalHours: 2.0}, report.ByCategory[0])
	assert.Equal(t, TimeCategoryRow{Category: "fitness", TotalMinutes: 135, TotalHours: 2.25}, report.ByCategory[1])
	assert.Equal(t, TimeCategoryRow{Category: "work", TotalMinutes: 240, TotalHours: 4.0}, report.ByCategory[2])
}

func TestTotals(t *testing.T) {
	setupDB(t)

	addTransaction(t, "income", "house-1", "Mika", "2025-01-25", 1, 2025, "3000", "salary")
	addTransaction(t, "income", "house-1", "Riku", "2025-01-25", 1, 2025, "2000", "salary")
	addTransaction(t, "expenses", "house-1", "Mika", "2025-01-05", 1, 2025, "1750.25", "rent")
	addSaving(t, "house-1", "800", nil)

	summary, err := Totals("house-1")
	require.NoError(t, err)
	assertAmount(t, "5000", summary.Income)
	assertAmount(t, "1750.25", summary.Expenses)
	assertAmount(t, "800", summary.Savings)
	assertAmount(t, "3249.75", summary.Net)

	empty, err := Totals("house-9")
	require.NoError(t, err)
	assertAmount(t, "0", empty.Income)
	assertAmount(t, "0", empty.Expenses)
	assertAmount(t, "0", empty.Savings)
	assertAmount(t, "0", empty.Net)
}
