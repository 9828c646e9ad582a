package models

import "encoding/json"

// EventTemplate is a static preset for quick event entry. Seeded by
// migration, never user-owned.
type EventTemplate struct {
	ID              uint   `gorm:"primaryKey" json:"id"`
	Name            string `gorm:"uniqueIndex" json:"name"`
	Category        string `json:"category"`
	DefaultDuration int    `json:"default_duration"`
	DefaultColor    string `json:"default_color"`
	SuggestedTimes  string `json:"-"`
}

// TemplateResponse is the response format for event templates, with the
// stored JSON time list decoded.
type TemplateResponse struct {
	ID              uint     `json:"id"`
	Name            string   `json:"name"`
	Category        string   `json:"category"`
	DefaultDuration int      `json:"default_duration"`
	DefaultColor    string   `json:"default_color"`
	SuggestedTimes  []string `json:"suggested_times"`
}

func (t *EventTemplate) ToResponse() TemplateResponse {
	times := []string{}
	if t.SuggestedTimes != "" {
		// Stored as a JSON array; a malformed value just yields no suggestions.
		_ = json.Unmarshal([]byte(t.SuggestedTimes), &times)
	}
	return TemplateResponse{
		ID:              t.ID,
		Name:            t.Name,
		Category:        t.Category,
		DefaultDuration: t.DefaultDuration,
		DefaultColor:    t.DefaultColor,
		SuggestedTimes:  times,
	}
}
