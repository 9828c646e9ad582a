package calendar

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/Masterminds/squirrel"
)

// DefaultTimezone is the zone label stored when a caller does not pick one.
const DefaultTimezone = "Asia/Tokyo"

// ErrNotFound reports an event that does not exist within the queried
// household.
var ErrNotFound = errors.New("event not found")

// knownColumns is every calendar_events column current code understands,
// in scan order. A given database may carry any subset that includes the
// required write set; reads and writes adapt to whatever is live.
var knownColumns = []string{
	"id", "household_id", "partner_name", "date", "time", "start_time",
	"end_time", "timezone", "assigned_to", "created_by", "title",
	"category", "color", "description", "recurrence", "created_at",
}

// Event is one calendar_events row. Columns missing from an older store
// read back as empty strings.
type Event struct {
	ID          int64  `json:"id"`
	HouseholdID string `json:"-"`
	PartnerName string `json:"partner_name"`
	Date        string `json:"date"`
	Time        string `json:"-"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	Timezone    string `json:"timezone"`
	AssignedTo  string `json:"assigned_to"`
	CreatedBy   string `json:"created_by"`
	Title       string `json:"title"`
	Category    string `json:"category"`
	Color       string `json:"color"`
	Description string `json:"description"`
	Recurrence  string `json:"recurrence"`
	CreatedAt   string `json:"created_at"`
}

// SortTime is the label an event sorts under within its day: start_time
// when present, else the legacy time column.
func (e *Event) SortTime() string {
	if e.StartTime != "" {
		return e.StartTime
	}
	return e.Time
}

// CreateParams carries everything an event write needs, including the
// session identity resolved by the caller. Nothing here is looked up
// from ambient state.
type CreateParams struct {
	HouseholdID  string
	AssignedTo   string // partner1, partner2, both or unassigned
	CreatedBy    string // display name of the acting partner
	Partner1Name string
	Partner2Name string
	Date         string
	StartTime    string
	EndTime      string
	Timezone     string
	Title        string
	Category     string
	Color        string
	Description  string
	Recurrence   string
}

// CreateResult reports the written event and what became of its duration
// bookkeeping. Partners lists the display names actually credited; on a
// write failure it holds whichever entries landed before the failure.
type CreateResult struct {
	EventID        int64          `json:"event_id"`
	Tracking       TrackingStatus `json:"tracking"`
	TrackingReason string         `json:"tracking_reason,omitempty"`
	Minutes        int            `json:"minutes,omitempty"`
	Partners       []string       `json:"partners,omitempty"`
}

// Repository reads and writes calendar_events without assuming the table
// carries every column. The live column set is probed once per process;
// migrations run before any repository is built, so the shape is static
// from then on.
type Repository struct {
	db *sql.DB

	colsOnce sync.Once
	cols     map[string]bool
	colsErr  error
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) columns() (map[string]bool, error) {
	r.colsOnce.Do(func() {
		rows, err := r.db.Query("PRAGMA table_info(calendar_events)")
		if err != nil {
			r.colsErr = fmt.Errorf("table_info calendar_events: %w", err)
			return
		}
		defer rows.Close()

		cols := make(map[string]bool)
		for rows.Next() {
			var (
				cid     int
				name    string
				colType string
				notNull int
				dflt    sql.NullString
				pk      int
			)
			if err := rows.Scan(&cid, &name, &colType, &notNull, &dflt, &pk); err != nil {
				r.colsErr = err
				return
			}
			cols[name] = true
		}
		if err := rows.Err(); err != nil {
			r.colsErr = err
			return
		}
		r.cols = cols
	})
	return r.cols, r.colsErr
}

// Create writes an event using only the columns the store actually has,
// then derives time tracking when the event carries a usable time span.
// The required columns (household_id, date, title, color, description)
// are always written; everything else is written only if live.
func (r *Repository) Create(p CreateParams) (CreateResult, error) {
	cols, err := r.columns()
	if err != nil {
		return CreateResult{}, err
	}

	timezone := p.Timezone
	if timezone == "" {
		timezone = DefaultTimezone
	}
	recurrence := p.Recurrence
	if recurrence == "" {
		recurrence = "none"
	}

	names := []string{"household_id", "date", "title", "color", "description"}
	values := []interface{}{p.HouseholdID, p.Date, p.Title, p.Color, p.Description}

	optional := []struct {
		name  string
		value interface{}
	}{
		{"partner_name", p.CreatedBy},
		{"time", p.StartTime},
		{"start_time", p.StartTime},
		{"end_time", p.EndTime},
		{"timezone", timezone},
		{"assigned_to", p.AssignedTo},
		{"created_by", p.CreatedBy},
		{"category", p.Category},
		{"recurrence", recurrence},
		{"created_at", time.Now().Format(datetimeLayout)},
	}
	for _, opt := range optional {
		if cols[opt.name] {
			names = append(names, opt.name)
			values = append(values, opt.value)
		}
	}

	query, args, err := squirrel.Insert("calendar_events").
		Columns(names...).
		Values(values...).
		ToSql()
	if err != nil {
		return CreateResult{}, fmt.Errorf("build event insert: %w", err)
	}

	res, err := r.db.Exec(query, args...)
	if err != nil {
		return CreateResult{}, fmt.Errorf("insert event: %w", err)
	}
	eventID, err := res.LastInsertId()
	if err != nil {
		return CreateResult{}, err
	}

	result := CreateResult{EventID: eventID}
	r.recordTracking(&result, p, cols)
	return result, nil
}

// recordTracking writes derived time entries for the event, or explains
// why it did not. Failures here never fail the event write.
func (r *Repository) recordTracking(result *CreateResult, p CreateParams, cols map[string]bool) {
	result.Tracking = TrackingSkipped

	if p.StartTime == "" || p.EndTime == "" {
		result.TrackingReason = SkipNoTimes
		return
	}
	if !cols["start_time"] {
		result.TrackingReason = SkipNoColumn
		return
	}

	minutes, err := MinutesBetween(p.Date, p.StartTime, p.EndTime)
	if err != nil {
		result.TrackingReason = SkipBadTimes
		return
	}
	if minutes <= 0 {
		result.TrackingReason = SkipZeroDuration
		return
	}

	var partners []string
	switch p.AssignedTo {
	case "both":
		partners = []string{p.Partner1Name, p.Partner2Name}
	case "partner1":
		partners = []string{p.Partner1Name}
	case "partner2":
		partners = []string{p.Partner2Name}
	default:
		result.TrackingReason = SkipUnassigned
		return
	}

	for _, partner := range partners {
		query, args, err := squirrel.Insert("time_tracking").
			Columns("household_id", "partner_name", "category", "date", "duration_minutes").
			Values(p.HouseholdID, partner, p.Category, p.Date, minutes).
			ToSql()
		if err == nil {
			_, err = r.db.Exec(query, args...)
		}
		if err != nil {
			log.Printf("time tracking write for %s failed: %v", partner, err)
			result.TrackingReason = SkipWriteFailed
			return
		}
		result.Partners = append(result.Partners, partner)
	}

	result.Tracking = TrackingRecorded
	result.Minutes = minutes
}

// List returns a household's events ordered by date and then by time of
// day, tolerating stores where either time column is missing. When both
// dates are given the range is inclusive on both ends.
func (r *Repository) List(householdID, startDate, endDate string) ([]Event, error) {
	cols, err := r.columns()
	if err != nil {
		return nil, err
	}
	selected := liveSelection(cols)

	builder := squirrel.Select(selected...).
		Column(squirrel.Alias(squirrel.Expr(sortExpression(cols)), "sort_time")).
		From("calendar_events").
		Where(squirrel.Eq{"household_id": householdID}).
		OrderBy("date", "sort_time")
	if startDate != "" && endDate != "" {
		builder = builder.Where("date BETWEEN ? AND ?", startDate, endDate)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build event select: %w", err)
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	defer rows.Close()

	events := make([]Event, 0)
	for rows.Next() {
		ev, err := scanEvent(rows, selected)
		if err != nil {
			return nil, err
		}
		events = append(events, ev)
	}
	return events, rows.Err()
}

// Get returns one event scoped to a household. Events that do not exist
// or belong to another household yield ErrNotFound.
func (r *Repository) Get(householdID string, eventID int64) (*Event, error) {
	cols, err := r.columns()
	if err != nil {
		return nil, err
	}
	selected := liveSelection(cols)

	query, args, err := squirrel.Select(selected...).
		Column(squirrel.Alias(squirrel.Expr(sortExpression(cols)), "sort_time")).
		From("calendar_events").
		Where(squirrel.Eq{"household_id": householdID, "id": eventID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build event select: %w", err)
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query event: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, err
		}
		return nil, ErrNotFound
	}
	ev, err := scanEvent(rows, selected)
	if err != nil {
		return nil, err
	}
	return &ev, nil
}

func liveSelection(cols map[string]bool) []string {
	selected := make([]string, 0, len(knownColumns))
	for _, name := range knownColumns {
		if cols[name] {
			selected = append(selected, name)
		}
	}
	return selected
}

func sortExpression(cols map[string]bool) string {
	switch {
	case cols["start_time"] && cols["time"]:
		return "COALESCE(start_time, time, '')"
	case cols["start_time"]:
		return "COALESCE(start_time, '')"
	case cols["time"]:
		return "COALESCE(time, '')"
	}
	return "''"
}

func scanEvent(rows *sql.Rows, selected []string) (Event, error) {
	var id int64
	holders := make(map[string]*sql.NullString, len(selected))

	targets := make([]interface{}, 0, len(selected)+1)
	for _, name := range selected {
		if name == "id" {
			targets = append(targets, &id)
			continue
		}
		holder := new(sql.NullString)
		holders[name] = holder
		targets = append(targets, holder)
	}
	var sortTime sql.NullString
	targets = append(targets, &sortTime)

	if err := rows.Scan(targets...); err != nil {
		return Event{}, fmt.Errorf("scan event: %w", err)
	}

	get := func(name string) string {
		if h, ok := holders[name]; ok && h.Valid {
			return h.String
		}
		return ""
	}

	return Event{
		ID:          id,
		HouseholdID: get("household_id"),
		PartnerName: get("partner_name"),
		Date:        get("date"),
		Time:        get("time"),
		StartTime:   get("start_time"),
		EndTime:     get("end_time"),
		Timezone:    get("timezone"),
		AssignedTo:  get("assigned_to"),
		CreatedBy:   get("created_by"),
		Title:       get("title"),
		Category:    get("category"),
		Color:       get("color"),
		Description: get("description"),
		Recurrence:  get("recurrence"),
		CreatedAt:   get("created_at"),
	}, nil
}
