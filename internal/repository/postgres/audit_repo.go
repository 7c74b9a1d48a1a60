package postgres

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rezaariel/insight-report-hub/pkg/audit"
)

// AuditRepository persists audit events. Wired into pkg/audit as its persist
// function; failures there are logged and swallowed, never returned to the
// operation that raised the event.
type AuditRepository struct {
	db *pgxpool.Pool
}

func NewAuditRepository(db *pgxpool.Pool) *AuditRepository {
	return &AuditRepository{db: db}
}

func (r *AuditRepository) Insert(ctx context.Context, event audit.Event) error {
	var details []byte
	if event.Details != nil {
		details, _ = json.Marshal(event.Details)
	}

	_, err := r.db.Exec(ctx,
		`INSERT INTO audit_events (id, event, user_id, email, ip, request_id, details, created_at)
         VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		uuid.NewString(), string(event.Event),
		nullable(event.UserID), nullable(event.Email),
		nullable(event.IP), nullable(event.RequestID),
		details, event.Timestamp)
	return err
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
