package calendar

import (
	"database/sql"
	"path/filepath"
	"testing"

	_ "github.com/glebarez/go-sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fullSchema mirrors the shape migrations produce today.
var fullSchema = []string{
	`CREATE TABLE calendar_events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		household_id TEXT NOT NULL,
		partner_name TEXT,
		date TEXT,
		time TEXT,
		start_time TEXT,
		end_time TEXT,
		timezone TEXT DEFAULT 'Asia/Tokyo',
		assigned_to TEXT,
		created_by TEXT,
		title TEXT,
		category TEXT,
		color TEXT,
		description TEXT,
		recurrence TEXT DEFAULT 'none',
		created_at TEXT
	)`,
	`CREATE TABLE time_tracking (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		household_id TEXT,
		partner_name TEXT,
		category TEXT,
		date TEXT,
		duration_minutes INTEGER
	)`,
}

// narrowSchema is the oldest store shape: required columns only.
var narrowSchema = []string{
	`CREATE TABLE calendar_events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		household_id TEXT NOT NULL,
		date TEXT,
		title TEXT,
		color TEXT,
		description TEXT
	)`,
	`CREATE TABLE time_tracking (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		household_id TEXT,
		partner_name TEXT,
		category TEXT,
		date TEXT,
		duration_minutes INTEGER
	)`,
}

// legacyTimeSchema has the single time column that predates the
// start_time and end_time pair.
var legacyTimeSchema = []string{
	`CREATE TABLE calendar_events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		household_id TEXT NOT NULL,
		date TEXT,
		time TEXT,
		title TEXT,
		color TEXT,
		description TEXT
	)`,
	`CREATE TABLE time_tracking (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		household_id TEXT,
		partner_name TEXT,
		category TEXT,
		date TEXT,
		duration_minutes INTEGER
	)`,
}

func newTestRepository(t *testing.T, schema []string) *Repository {
	t.Helper()

	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "calendar.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	for _, stmt := range schema {
		_, err := db.Exec(stmt)
		require.NoError(t, err)
	}
	return NewRepository(db)
}

func basicParams(householdID string) CreateParams {
	return CreateParams{
		HouseholdID:  householdID,
		AssignedTo:   "unassigned",
		CreatedBy:    "Mika",
		Partner1Name: "Mika",
		Partner2Name: "Riku",
		Date:         "2025-01-15",
		Title:        "Dentist",
		Category:     "health",
		Color:        "yellow",
	}
}

func countTimeEntries(t *testing.T, db *sql.DB, householdID string) int {
	t.Helper()
	var n int
	err := db.QueryRow("SELECT COUNT(*) FROM time_tracking WHERE household_id = ?", householdID).Scan(&n)
	require.NoError(t, err)
	return n
}

func TestCreate_RecordsTrackingForBothPartners(t *testing.T) {
	repo := newTestRepository(t, fullSchema)

	p := basicParams("house-1")
	p.AssignedTo = "both"
	p.StartTime = "10:00"
	p.EndTime = "11:00"

	result, err := repo.Create(p)
	require.NoError(t, err)

	assert.Positive(t, result.EventID)
	assert.Equal(t, TrackingRecorded, result.Tracking)
	assert.Empty(t, result.TrackingReason)
	assert.Equal(t, 60, result.Minutes)
	assert.Equal(t, []string{"Mika", "Riku"}, result.Partners)
	assert.Equal(t, 2, countTimeEntries(t, repo.db, "house-1"))
}

func TestCreate_SinglePartnerAssignment(t *testing.T) {
	repo := newTestRepository(t, fullSchema)

	p := basicParams("house-1")
	p.AssignedTo = "partner2"
	p.StartTime = "09:00"
	p.EndTime = "09:45"

	result, err := repo.Create(p)
	require.NoError(t, err)

	assert.Equal(t, TrackingRecorded, result.Tracking)
	assert.Equal(t, 45, result.Minutes)
	assert.Equal(t, []string{"Riku"}, result.Partners)
	assert.Equal(t, 1, countTimeEntries(t, repo.db, "house-1"))
}

func TestCreate_TrackingSkips(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*CreateParams)
		reason string
	}{
		{"no times", func(p *CreateParams) {}, SkipNoTimes},
		{"only start time", func(p *CreateParams) {
			p.StartTime = "10:00"
		}, SkipNoTimes},
		{"unassigned", func(p *CreateParams) {
			p.StartTime = "10:00"
			p.EndTime = "11:00"
		}, SkipUnassigned},
		{"bad time value", func(p *CreateParams) {
			p.AssignedTo = "partner1"
			p.StartTime = "10:00"
			p.EndTime = "25:99"
		}, SkipBadTimes},
		{"end before start", func(p *CreateParams) {
			p.AssignedTo = "partner1"
			p.StartTime = "11:00"
			p.EndTime = "10:00"
		}, SkipZeroDuration},
		{"zero duration", func(p *CreateParams) {
			p.AssignedTo = "both"
			p.StartTime = "10:00"
			p.EndTime = "10:00"
		}, SkipZeroDuration},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newTestRepository(t, fullSchema)

			p := basicParams("house-1")
			tt.mutate(&p)

			result, err := repo.Create(p)
			require.NoError(t, err)

			assert.Equal(t, TrackingSkipped, result.Tracking)
			assert.Equal(t, tt.reason, result.TrackingReason)
			assert.Zero(t, countTimeEntries(t, repo.db, "house-1"))

			// The event itself always lands.
			events, err := repo.List("house-1", "", "")
			require.NoError(t, err)
			assert.Len(t, events, 1)
		})
	}
}

func TestCreate_NarrowStore(t *testing.T) {
	repo := newTestRepository(t, narrowSchema)

	p := basicParams("house-1")
	p.AssignedTo = "both"
	p.StartTime = "10:00"
	p.EndTime = "11:00"
	p.Description = "bring the forms"

	result, err := repo.Create(p)
	require.NoError(t, err)

	assert.Equal(t, TrackingSkipped, result.Tracking)
	assert.Equal(t, SkipNoColumn, result.TrackingReason)

	events, err := repo.List("house-1", "", "")
	require.NoError(t, err)
	require.Len(t, events, 1)

	ev := events[0]
	assert.Equal(t, "Dentist", ev.Title)
	assert.Equal(t, "bring the forms", ev.Description)
	assert.Empty(t, ev.StartTime)
	assert.Empty(t, ev.Timezone)
	assert.Empty(t, ev.SortTime())
}

func TestCreate_LegacyTimeColumn(t *testing.T) {
	repo := newTestRepository(t, legacyTimeSchema)

	p := basicParams("house-1")
	p.AssignedTo = "partner1"
	p.StartTime = "10:00"
	p.EndTime = "11:00"

	result, err := repo.Create(p)
	require.NoError(t, err)

	assert.Equal(t, TrackingSkipped, result.Tracking)
	assert.Equal(t, SkipNoColumn, result.TrackingReason)

	events, err := repo.List("house-1", "", "")
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "10:00", events[0].Time)
	assert.Equal(t, "10:00", events[0].SortTime())
}

func TestList_RangeIsInclusive(t *testing.T) {
	repo := newTestRepository(t, fullSchema)

	for _, date := range []string{"2025-01-09", "2025-01-10", "2025-01-15", "2025-01-20", "2025-01-21"} {
		p := basicParams("house-1")
		p.Date = date
		_, err := repo.Create(p)
		require.NoError(t, err)
	}

	events, err := repo.List("house-1", "2025-01-10", "2025-01-20")
	require.NoError(t, err)

	dates := make([]string, 0, len(events))
	for _, ev := range events {
		dates = append(dates, ev.Date)
	}
	assert.Equal(t, []string{"2025-01-10", "2025-01-15", "2025-01-20"}, dates)
}

func TestList_OrdersByDateThenStartTime(t *testing.T) {
	repo := newTestRepository(t, fullSchema)

	rows := []struct {
		date, start, title string
	}{
		{"2025-01-16", "08:00", "Next day"},
		{"2025-01-15", "14:00", "Afternoon"},
		{"2025-01-15", "", "All day"},
		{"2025-01-15", "09:00", "Morning"},
	}
	for _, s := range rows {
		p := basicParams("house-1")
		p.Date = s.date
		p.Title = s.title
		p.StartTime = s.start
		_, err := repo.Create(p)
		require.NoError(t, err)
	}

	events, err := repo.List("house-1", "", "")
	require.NoError(t, err)

	titles := make([]string, 0, len(events))
	for _, ev := range events {
		titles = append(titles, ev.Title)
	}
	assert.Equal(t, []string{"All day", "Morning", "Afternoon", "Next day"}, titles)
}

func TestList_ScopedToHousehold(t *testing.T) {
	repo := newTestRepository(t, fullSchema)

	_, err := repo.Create(basicParams("house-1"))
	require.NoError(t, err)
	_, err = repo.Create(basicParams("house-2"))
	require.NoError(t, err)

	events, err := repo.List("house-1", "", "")
	require.NoError(t, err)
	assert.Len(t, events, 1)
}

func TestGet(t *testing.T) {
	repo := newTestRepository(t, fullSchema)

	result, err := repo.Create(basicParams("house-1"))
	require.NoError(t, err)

	ev, err := repo.Get("house-1", result.EventID)
	require.NoError(t, err)
	require.NotNil(t, ev)
	assert.Equal(t, "Dentist", ev.Title)
	assert.Equal(t, DefaultTimezone, ev.Timezone)
	assert.Equal(t, "none", ev.Recurrence)
	assert.Equal(t, "Mika", ev.CreatedBy)

	// Another household cannot see it.
	_, err = repo.Get("house-2", result.EventID)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = repo.Get("house-1", 9999)
	assert.ErrorIs(t, err, ErrNotFound)
}
