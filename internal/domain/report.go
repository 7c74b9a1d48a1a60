package domain

import (
	"context"
	"time"
)

// Report is one division's data for one user and one reporting window. At
// most one row exists per (user_id, periode) per division table; the
// repository enforces this with a conditional write against the declared
// unique constraint.
type Report struct {
	ID        string         `json:"id"`
	UserID    string         `json:"user_id"`
	Periode   string         `json:"periode"`
	Fields    map[string]any `json:"fields"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// ReportWithOwner joins a report with its owner's profile for the admin view.
type ReportWithOwner struct {
	Report
	OwnerName  string `json:"user_name"`
	OwnerEmail string `json:"user_email"`
}

// ReportRef is the lightweight row the activity feed works with.
type ReportRef struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Periode   string    `json:"periode"`
	UpdatedAt time.Time `json:"updated_at"`
}

// FormSnapshot is what the form controller returns to render one
// division+periode form.
type FormSnapshot struct {
	Division Division       `json:"division"`
	Label    string         `json:"label"`
	Periode  string         `json:"periode"`
	Sections []Section      `json:"sections"`
	Exists   bool           `json:"exists"`
	Fields   map[string]any `json:"fields"`
}

type ReportRepository interface {
	// Get returns the single report for (user, periode), or nil when none
	// exists.
	Get(ctx context.Context, d Division, userID, periode string) (*Report, error)
	// Upsert persists the report as one conditional write keyed by
	// (user_id, periode). updated_at is set server-side.
	Upsert(ctx context.Context, d Division, report *Report) error
	// ListByDivision returns every row ordered by updated_at descending.
	ListByDivision(ctx context.Context, d Division) ([]Report, error)
	// ListRecent returns up to limit most recently updated rows, scoped to
	// userID unless it is empty.
	ListRecent(ctx context.Context, d Division, userID string, limit int) ([]ReportRef, error)
	// CountPeriodes counts how many of the given periodes the user has filled.
	CountPeriodes(ctx context.Context, d Division, userID string, periodes []string) (int, error)
}

type ReportUsecase interface {
	GetForm(ctx context.Context, d Division, periode string) (*FormSnapshot, error)
	Save(ctx context.Context, d Division, periode string, input map[string]any) (*Report, error)
	PeriodeOptions() []string
}

// ActivityItem is one entry of the merged recent-changes feed.
type ActivityItem struct {
	ID        string    `json:"id"`
	Division  string    `json:"division"`
	Periode   string    `json:"periode"`
	UpdatedAt time.Time `json:"updated_at"`
	UserName  string    `json:"user_name,omitempty"`
}

// DivisionStatus summarizes the caller's progress for one division this year.
type DivisionStatus struct {
	Division Division `json:"division"`
	Label    string   `json:"label"`
	Filled   int      `json:"filled"`
	Total    int      `json:"total"`
}

type ActivityUsecase interface {
	// RecentActivity merges the four division tables: up to 5 rows each,
	// sorted by update time descending, truncated to 10. Non-admin callers
	// only see their own rows.
	RecentActivity(ctx context.Context) ([]ActivityItem, error)
	DivisionSummary(ctx context.Context) ([]DivisionStatus, error)
	UpcomingDeadlines(now time.Time) []Deadline
}
