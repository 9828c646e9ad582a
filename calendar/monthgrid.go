package calendar

import (
	"fmt"
	"time"
)

// colorPalette maps the eight color tags to their display hex values.
// Unknown tags fall back to the default.
var colorPalette = map[string]string{
	"red":    "#FF6B6B",
	"blue":   "#4ECDC4",
	"green":  "#95E77E",
	"yellow": "#FFD93D",
	"purple": "#A8E6CF",
	"orange": "#FFB6C1",
	"cyan":   "#87CEEB",
	"pink":   "#FFB6C1",
}

const defaultEventColor = "#4ECDC4"

// maxCellEvents is how many events a day cell shows before collapsing
// the rest into a "+N more" count.
const maxCellEvents = 3

// dayNames are the column headers, Monday first.
var dayNames = []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// CellEvent is an event prepared for display inside a day cell.
type CellEvent struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	TimeLabel string `json:"time_label,omitempty"`
	Color     string `json:"color"`
}

// DayCell is one grid cell. Cells padding the first and last week have
// Empty set and no day number.
type DayCell struct {
	Day     int         `json:"day,omitempty"`
	Date    string      `json:"date,omitempty"`
	Empty   bool        `json:"empty"`
	Today   bool        `json:"today"`
	Weekend bool        `json:"weekend"`
	Events  []CellEvent `json:"events"`
	More    int         `json:"more,omitempty"`
}

// MonthGrid is a complete month view: full weeks of seven cells, Monday
// first, with events already placed, colored and truncated for display.
type MonthGrid struct {
	Year      int         `json:"year"`
	Month     int         `json:"month"`
	MonthName string      `json:"month_name"`
	DayNames  []string    `json:"day_names"`
	Weeks     [][]DayCell `json:"weeks"`
}

// RenderMonth lays a month's events onto a Monday-first grid. It is a
// pure projection: no queries, no clock reads, today comes in as an
// argument. Events are expected in repository order (date, then time of
// day) and keep that order within their cells.
func RenderMonth(year int, month time.Month, today time.Time, events []Event) MonthGrid {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	daysInMonth := first.AddDate(0, 1, -1).Day()
	lead := (int(first.Weekday()) + 6) % 7

	byDate := make(map[string][]Event)
	for _, ev := range events {
		byDate[ev.Date] = append(byDate[ev.Date], ev)
	}

	totalCells := lead + daysInMonth
	if rem := totalCells % 7; rem != 0 {
		totalCells += 7 - rem
	}

	grid := MonthGrid{
		Year:      year,
		Month:     int(month),
		MonthName: month.String(),
		DayNames:  dayNames,
		Weeks:     make([][]DayCell, 0, totalCells/7),
	}

	var week []DayCell
	for i := 0; i < totalCells; i++ {
		day := i - lead + 1
		if day < 1 || day > daysInMonth {
			week = append(week, DayCell{Empty: true})
		} else {
			date := fmt.Sprintf("%04d-%02d-%02d", year, int(month), day)
			cell := DayCell{
				Day:     day,
				Date:    date,
				Today:   today.Year() == year && today.Month() == month && today.Day() == day,
				Weekend: i%7 >= 5,
				Events:  []CellEvent{},
			}
			dayEvents := byDate[date]
			for j, ev := range dayEvents {
				if j >= maxCellEvents {
					cell.More = len(dayEvents) - maxCellEvents
					break
				}
				cell.Events = append(cell.Events, renderCellEvent(ev))
			}
			week = append(week, cell)
		}
		if len(week) == 7 {
			grid.Weeks = append(grid.Weeks, week)
			week = nil
		}
	}

	return grid
}

func renderCellEvent(ev Event) CellEvent {
	timeLabel := truncateRunes(ev.SortTime(), 5, false)

	// With a time label there is less room for the title.
	limit := 20
	if timeLabel != "" {
		limit = 15
	}

	return CellEvent{
		ID:        ev.ID,
		Title:     truncateRunes(ev.Title, limit, true),
		TimeLabel: timeLabel,
		Color:     EventColor(ev.Color),
	}
}

// EventColor resolves a color tag to its display hex value.
func EventColor(tag string) string {
	if hex, ok := colorPalette[tag]; ok {
		return hex
	}
	return defaultEventColor
}

func truncateRunes(s string, limit int, ellipsis bool) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	out := string(runes[:limit])
	if ellipsis {
		out += "..."
	}
	return out
}
