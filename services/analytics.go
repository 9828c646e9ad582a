package services

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"uandme/database"
	"uandme/models"
)

// MonthRow is one month of the January-to-December trend. Months with no
// transactions carry zeros rather than being absent.
type MonthRow struct {
	Month    int             `json:"month"`
	Label    string          `json:"label"`
	Income   decimal.Decimal `json:"income"`
	Expenses decimal.Decimal `json:"expenses"`
	Net      decimal.Decimal `json:"net"`
}

// MonthlyTrend sums income and expenses per calendar month of a year.
// Always returns exactly twelve rows.
func MonthlyTrend(householdID string, year int) ([]MonthRow, error) {
	income, err := sumByMonth("income", householdID, year)
	if err != nil {
		return nil, err
	}
	expenses, err := sumByMonth("expenses", householdID, year)
	if err != nil {
		return nil, err
	}

	rows := make([]MonthRow, 0, 12)
	for m := 1; m <= 12; m++ {
		inc := income[m]
		exp := expenses[m]
		rows = append(rows, MonthRow{
			Month:    m,
			Label:    time.Month(m).String()[:3],
			Income:   inc,
			Expenses: exp,
			Net:      inc.Sub(exp),
		})
	}
	return rows, nil
}

func sumByMonth(table, householdID string, year int) (map[int]decimal.Decimal, error) {
	var sums []struct {
		Month int
		Total decimal.Decimal
	}
	err := database.DB.Table(table).
		Select("month, SUM(amount) AS total").
		Where("household_id = ? AND year = ?", householdID, year).
		Group("month").
		Scan(&sums).Error
	if err != nil {
		return nil, err
	}

	byMonth := make(map[int]decimal.Decimal, len(sums))
	for _, s := range sums {
		byMonth[s.Month] = s.Total
	}
	return byMonth, nil
}

// CategoryTotal is one slice of the expense breakdown.
type CategoryTotal struct {
	Source string          `json:"source"`
	Total  decimal.Decimal `json:"total"`
}

// CategoryBreakdown sums a month's expenses grouped by their free-text
// source field, largest first.
func CategoryBreakdown(householdID string, month, year int) ([]CategoryTotal, error) {
	totals := make([]CategoryTotal, 0)
	err := database.DB.Table("expenses").
		Select("source, SUM(amount) AS total").
		Where("household_id = ? AND month = ? AND year = ?", householdID, month, year).
		Group("source").
		Order("total DESC").
		Scan(&totals).Error
	return totals, err
}

// PartnerTotals is one partner's lifetime financial position.
type PartnerTotals struct {
	PartnerName string          `json:"partner_name"`
	Income      decimal.Decimal `json:"income"`
	Expenses    decimal.Decimal `json:"expenses"`
	Net         decimal.Decimal `json:"net"`
}

// PartnerComparison sums income and expenses per partner label across
// all time. A partner appearing in only one table still gets a row, with
// zero for the other side.
func PartnerComparison(householdID string) ([]PartnerTotals, error) {
	incomes, err := sumByPartner("income", householdID)
	if err != nil {
		return nil, err
	}
	expenses, err := sumByPartner("expenses", householdID)
	if err != nil {
		return nil, err
	}

	byName := make(map[string]*PartnerTotals)
	order := make([]string, 0, len(incomes))
	for _, s := range incomes {
		byName[s.PartnerName] = &PartnerTotals{PartnerName: s.PartnerName, Income: s.Total}
		order = append(order, s.PartnerName)
	}
	for _, s := range expenses {
		pt, ok := byName[s.PartnerName]
		if !ok {
			pt = &PartnerTotals{PartnerName: s.PartnerName}
			byName[s.PartnerName] = pt
			order = append(order, s.PartnerName)
		}
		pt.Expenses = s.Total
	}

	out := make([]PartnerTotals, 0, len(order))
	for _, name := range order {
		pt := byName[name]
		pt.Net = pt.Income.Sub(pt.Expenses)
		out = append(out, *pt)
	}
	return out, nil
}

type partnerSum struct {
	PartnerName string
	Total       decimal.Decimal
}

func sumByPartner(table, householdID string) ([]partnerSum, error) {
	var sums []partnerSum
	err := database.DB.Table(table).
		Select("partner_name, SUM(amount) AS total").
		Where("household_id = ?", householdID).
		Group("partner_name").
		Order("partner_name").
		Scan(&sums).Error
	return sums, err
}

// GoalStatus is one goal with its tracked progress.
type GoalStatus struct {
	ID           uint            `json:"id"`
	GoalName     string          `json:"goal_name"`
	TargetAmount decimal.Decimal `json:"target_amount"`
	Saved        decimal.Decimal `json:"saved"`
	Percent      float64         `json:"percent"`
	CreatedAt    string          `json:"created_at"`
}

// GoalProgressReport covers every goal plus the savings no goal claims.
type GoalProgressReport struct {
	Goals       []GoalStatus    `json:"goals"`
	Unallocated decimal.Decimal `json:"unallocated"`
	TotalSaved  decimal.Decimal `json:"total_saved"`
}

// GoalProgress reports per-goal savings from transactions explicitly
// linked to each goal. Savings recorded without a goal link count only
// toward the unallocated pool.
func GoalProgress(householdID string) (GoalProgressReport, error) {
	var goals []models.SavingsGoal
	err := database.DB.
		Where("household_id = ?", householdID).
		Order("created_at DESC, id DESC").
		Find(&goals).Error
	if err != nil {
		return GoalProgressReport{}, err
	}

	var linked []struct {
		GoalID uint
		Total  decimal.Decimal
	}
	err = database.DB.Table("savings").
		Select("goal_id, SUM(amount) AS total").
		Where("household_id = ? AND goal_id IS NOT NULL", householdID).
		Group("goal_id").
		Scan(&linked).Error
	if err != nil {
		return GoalProgressReport{}, err
	}
	savedByGoal := make(map[uint]decimal.Decimal, len(linked))
	for _, s := range linked {
		savedByGoal[s.GoalID] = s.Total
	}

	var unallocated struct {
		Total decimal.Decimal
	}
	err = database.DB.Table("savings").
		Select("COALESCE(SUM(amount), 0) AS total").
		Where("household_id = ? AND goal_id IS NULL", householdID).
		Scan(&unallocated).Error
	if err != nil {
		return GoalProgressReport{}, err
	}

	report := GoalProgressReport{
		Goals:       make([]GoalStatus, 0, len(goals)),
		Unallocated: unallocated.Total,
		TotalSaved:  unallocated.Total,
	}
	for _, g := range goals {
		saved := savedByGoal[g.ID]
		status := GoalStatus{
			ID:           g.ID,
			GoalName:     g.GoalName,
			TargetAmount: g.TargetAmount,
			Saved:        saved,
			CreatedAt:    g.CreatedAt,
		}
		if g.TargetAmount.IsPositive() {
			status.Percent = saved.Div(g.TargetAmount).InexactFloat64() * 100
		}
		report.Goals = append(report.Goals, status)
		report.TotalSaved = report.TotalSaved.Add(saved)
	}
	return report, nil
}

// TimePartnerRow is time spent by one partner in one category.
type TimePartnerRow struct {
	PartnerName  string  `json:"partner_name"`
	Category     string  `json:"category"`
	TotalMinutes int     `json:"total_minutes"`
	TotalHours   float64 `json:"total_hours"`
}

// TimeCategoryRow is the category rollup across both partners.
type TimeCategoryRow struct {
	Category     string  `json:"category"`
	TotalMinutes int     `json:"total_minutes"`
	TotalHours   float64 `json:"total_hours"`
}

// TimeReport is the grouped table plus its category rollup.
type TimeReport struct {
	ByPartner  []TimePartnerRow  `json:"by_partner"`
	ByCategory []TimeCategoryRow `json:"by_category"`
}

// TimeAnalytics sums tracked minutes in an inclusive date range, grouped
// by partner and category, with a category-only rollup.
func TimeAnalytics(householdID, startDate, endDate string) (TimeReport, error) {
	byPartner := make([]TimePartnerRow, 0)
	err := database.DB.Table("time_tracking").
		Select("partner_name, category, SUM(duration_minutes) AS total_minutes").
		Where("household_id = ? AND date BETWEEN ? AND ?", householdID, startDate, endDate).
		Group("partner_name, category").
		Order("partner_name, category").
		Scan(&byPartner).Error
	if err != nil {
		return TimeReport{}, err
	}

	categoryMinutes := make(map[string]int)
	for i := range byPartner {
		byPartner[i].TotalHours = float64(byPartner[i].TotalMinutes) / 60.0
		categoryMinutes[byPartner[i].Category] += byPartner[i].TotalMinutes
	}

	categories := make([]string, 0, len(categoryMinutes))
	for c := range categoryMinutes {
		categories = append(categories, c)
	}
	sort.Strings(categories)

	byCategory := make([]TimeCategoryRow, 0, len(categories))
	for _, c := range categories {
		byCategory = append(byCategory, TimeCategoryRow{
			Category:     c,
			TotalMinutes: categoryMinutes[c],
			TotalHours:   float64(categoryMinutes[c]) / 60.0,
		})
	}

	return TimeReport{ByPartner: byPartner, ByCategory: byCategory}, nil
}

// MoneySummary is the dashboard's lifetime headline numbers.
type MoneySummary struct {
	Income   decimal.Decimal `json:"income"`
	Expenses decimal.Decimal `json:"expenses"`
	Savings  decimal.Decimal `json:"savings"`
	Net      decimal.Decimal `json:"net"`
}

// Totals sums each transaction table across all time for a household.
func Totals(householdID string) (MoneySummary, error) {
	var summary MoneySummary
	var err error

	if summary.Income, err = sumTable("income", householdID); err != nil {
		return MoneySummary{}, err
	}
	if summary.Expenses, err = sumTable("expenses", householdID); err != nil {
		return MoneySummary{}, err
	}
	if summary.Savings, err = sumTable("savings", householdID); err != nil {
		return MoneySummary{}, err
	}
	summary.Net = summary.Income.Sub(summary.Expenses)
	return summary, nil
}

func sumTable(table, householdID string) (decimal.Decimal, error) {
	var row struct {
		Total decimal.Decimal
	}
	err := database.DB.Table(table).
		Select("COALESCE(SUM(amount), 0) AS total").
		Where("household_id = ?", householdID).
		Scan(&row).Error
	return row.Total, err
}
