package models

type Household struct {
	ID           string `gorm:"primaryKey" json:"id"`
	CoupleName   string `gorm:"not null" json:"couple_name"`
	Email        string `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"not null" json:"-"`
	Partner1Name string `gorm:"column:partner1_name;not null" json:"partner1_name"`
	Partner2Name string `gorm:"column:partner2_name;not null" json:"partner2_name"`
	CreatedAt    string `json:"created_at"`
}

// HouseholdResponse is the safe response format for household accounts
type HouseholdResponse struct {
	ID           string `json:"id"`
	CoupleName   string `json:"couple_name"`
	Partner1Name string `json:"partner1_name"`
	Partner2Name string `json:"partner2_name"`
	CreatedAt    string `json:"created_at"`
}

func (h *Household) ToResponse() HouseholdResponse {
	return HouseholdResponse{
		ID:           h.ID,
		CoupleName:   h.CoupleName,
		Partner1Name: h.Partner1Name,
		Partner2Name: h.Partner2Name,
		CreatedAt:    h.CreatedAt,
	}
}

// PartnerName resolves a partner label (partner1/partner2) to the
// display name stored on the account. Unknown labels come back unchanged.
func (h *Household) PartnerName(label string) string {
	switch label {
	case "partner1":
		return h.Partner1Name
	case "partner2":
		return h.Partner2Name
	}
	return label
}

// RegisterInput is used for creating a household account
type RegisterInput struct {
	CoupleName   string `json:"couple_name"`
	Email        string `json:"email"`
	Password     string `json:"password"`
	Partner1Name string `json:"partner1_name"`
	Partner2Name string `json:"partner2_name"`
}

// LoginInput is used for signing in to a household account
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
