package models

import "github.com/shopspring/decimal"

type SavingsGoal struct {
	ID           uint            `gorm:"primaryKey" json:"id"`
	HouseholdID  string          `gorm:"not null" json:"-"`
	GoalName     string          `json:"goal_name"`
	TargetAmount decimal.Decimal `json:"target_amount"`
	CreatedAt    string          `json:"created_at"`
}

// GoalResponse is the response format for savings goals
type GoalResponse struct {
	ID           uint            `json:"id"`
	GoalName     string          `json:"goal_name"`
	TargetAmount decimal.Decimal `json:"target_amount"`
	CreatedAt    string          `json:"created_at"`
}

func (g *SavingsGoal) ToResponse() GoalResponse {
	return GoalResponse{
		ID:           g.ID,
		GoalName:     g.GoalName,
		TargetAmount: g.TargetAmount,
		CreatedAt:    g.CreatedAt,
	}
}

// GoalInput is used for creating a savings goal
type GoalInput struct {
	GoalName     string          `json:"goal_name"`
	TargetAmount decimal.Decimal `json:"target_amount"`
}
