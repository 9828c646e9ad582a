package models

// CalendarComment is an append-only note on a calendar event.
type CalendarComment struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	EventID     int64  `gorm:"index" json:"event_id"`
	HouseholdID string `json:"-"`
	PartnerName string `json:"partner_name"`
	Comment     string `json:"comment"`
	Timestamp   string `json:"timestamp"`
}

// CommentResponse is the response format for calendar comments
type CommentResponse struct {
	ID          uint   `json:"id"`
	EventID     int64  `json:"event_id"`
	PartnerName string `json:"partner_name"`
	Comment     string `json:"comment"`
	Timestamp   string `json:"timestamp"`
}

func (c *CalendarComment) ToResponse() CommentResponse {
	return CommentResponse{
		ID:          c.ID,
		EventID:     c.EventID,
		PartnerName: c.PartnerName,
		Comment:     c.Comment,
		Timestamp:   c.Timestamp,
	}
}

// CommentInput is used for adding a comment to an event
type CommentInput struct {
	PartnerName string `json:"partner_name"`
	Comment     string `json:"comment"`
}
