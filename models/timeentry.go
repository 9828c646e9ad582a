package models

// TimeEntry is a derived duration record. Entries are written only as a
// side effect of calendar event creation; nothing edits or deletes them.
type TimeEntry struct {
	ID              uint   `gorm:"primaryKey" json:"id"`
	HouseholdID     string `json:"-"`
	PartnerName     string `json:"partner_name"`
	Category        string `json:"category"`
	Date            string `json:"date"`
	DurationMinutes int    `json:"duration_minutes"`
}

func (TimeEntry) TableName() string {
	return "time_tracking"
}
