package models

import "github.com/shopspring/decimal"

// Transaction is one row in the income, expenses or savings table. The
// three tables share a shape, so one model serves all of them; callers
// pick the table with DB.Table(...). Only savings carries goal_id.
type Transaction struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	HouseholdID string          `gorm:"not null" json:"-"`
	PartnerName string          `json:"partner_name"`
	Date        string          `json:"date"`
	Month       int             `json:"month"`
	Year        int             `json:"year"`
	Amount      decimal.Decimal `json:"amount"`
	Source      string          `json:"source"`
	Note        string          `json:"note"`
	GoalID      *uint           `gorm:"column:goal_id" json:"goal_id,omitempty"`
}

// TransactionKind names one of the three transaction tables.
type TransactionKind string

const (
	KindIncome   TransactionKind = "income"
	KindExpenses TransactionKind = "expenses"
	KindSavings  TransactionKind = "savings"
)

// TableFor maps a request kind to its table name. The bool reports
// whether the kind is one of the three known tables; nothing else may
// ever reach a query.
func TableFor(kind string) (TransactionKind, bool) {
	switch TransactionKind(kind) {
	case KindIncome, KindExpenses, KindSavings:
		return TransactionKind(kind), true
	}
	return "", false
}

// TransactionResponse is the response format for transactions
type TransactionResponse struct {
	ID          uint            `json:"id"`
	PartnerName string          `json:"partner_name"`
	Date        string          `json:"date"`
	Month       int             `json:"month"`
	Year        int             `json:"year"`
	Amount      decimal.Decimal `json:"amount"`
	Source      string          `json:"source"`
	Note        string          `json:"note"`
	GoalID      *uint           `json:"goal_id,omitempty"`
}

func (t *Transaction) ToResponse() TransactionResponse {
	return TransactionResponse{
		ID:          t.ID,
		PartnerName: t.PartnerName,
		Date:        t.Date,
		Month:       t.Month,
		Year:        t.Year,
		Amount:      t.Amount,
		Source:      t.Source,
		Note:        t.Note,
		GoalID:      t.GoalID,
	}
}

// TransactionInput is used for recording a transaction
type TransactionInput struct {
	PartnerName string          `json:"partner_name"`
	Date        string          `json:"date"`
	Month       int             `json:"month"`
	Year        int             `json:"year"`
	Amount      decimal.Decimal `json:"amount"`
	Source      string          `json:"source"`
	Note        string          `json:"note"`
	GoalID      *uint           `json:"goal_id"`
}
