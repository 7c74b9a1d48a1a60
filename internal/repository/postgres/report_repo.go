package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rezaariel/insight-report-hub/internal/domain"
	"github.com/rezaariel/insight-report-hub/pkg/apperror"
)

// reportRepo serves all four division tables. Table and column identifiers
// come exclusively from the static division schemas, never from request
// input.
type reportRepo struct {
	db *pgxpool.Pool
}

func NewReportRepository(db *pgxpool.Pool) domain.ReportRepository {
	return &reportRepo{db: db}
}

func (r *reportRepo) Get(ctx context.Context, d domain.Division, userID, periode string) (*domain.Report, error) {
	fields := domain.FieldsFor(d)
	query := fmt.Sprintf(
		`SELECT id, user_id, periode, created_at, updated_at, %s FROM %s
         WHERE user_id = $1 AND periode = $2`,
		strings.Join(domain.FieldNamesFor(d), ", "), d.TableName())

	report := &domain.Report{Fields: make(map[string]any, len(fields))}
	holders := fieldHolders(fields)

	dest := []any{&report.ID, &report.UserID, &report.Periode, &report.CreatedAt, &report.UpdatedAt}
	dest = append(dest, holders...)

	err := r.db.QueryRow(ctx, query, userID, periode).Scan(dest...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, apperror.Internal(err)
	}

	collectFields(report.Fields, fields, holders)
	return report, nil
}

// Upsert is a single conditional write keyed by the declared unique
// constraint on (user_id, periode): concurrent saves for the same key can no
// longer insert duplicate rows, the later write simply updates.
func (r *reportRepo) Upsert(ctx context.Context, d domain.Division, report *domain.Report) error {
	names := domain.FieldNamesFor(d)

	cols := append([]string{"id", "user_id", "periode"}, names...)
	placeholders := make([]string, len(cols))
	args := make([]any, 0, len(cols))
	args = append(args, report.ID, report.UserID, report.Periode)
	for _, name := range names {
		args = append(args, report.Fields[name])
	}
	for i := range cols {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}

	updates := make([]string, 0, len(names)+1)
	for _, name := range names {
		updates = append(updates, fmt.Sprintf("%s = EXCLUDED.%s", name, name))
	}
	updates = append(updates, "updated_at = now()")

	query := fmt.Sprintf(
		`INSERT INTO %s (%s, created_at, updated_at)
         VALUES (%s, now(), now())
         ON CONFLICT (user_id, periode) DO UPDATE SET %s`,
		d.TableName(), strings.Join(cols, ", "),
		strings.Join(placeholders, ", "), strings.Join(updates, ", "))

	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		return apperror.Internal(err)
	}
	return nil
}

func (r *reportRepo) ListByDivision(ctx context.Context, d domain.Division) ([]domain.Report, error) {
	fields := domain.FieldsFor(d)
	query := fmt.Sprintf(
		`SELECT id, user_id, periode, created_at, updated_at, %s FROM %s
         ORDER BY updated_at DESC`,
		strings.Join(domain.FieldNamesFor(d), ", "), d.TableName())

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	defer rows.Close()

	var reports []domain.Report
	for rows.Next() {
		report := domain.Report{Fields: make(map[string]any, len(fields))}
		holders := fieldHolders(fields)
		dest := []any{&report.ID, &report.UserID, &report.Periode, &report.CreatedAt, &report.UpdatedAt}
		dest = append(dest, holders...)
		if err := rows.Scan(dest...); err != nil {
			return nil, apperror.Internal(err)
		}
		collectFields(report.Fields, fields, holders)
		reports = append(reports, report)
	}
	return reports, rows.Err()
}

func (r *reportRepo) ListRecent(ctx context.Context, d domain.Division, userID string, limit int) ([]domain.ReportRef, error) {
	query := fmt.Sprintf(
		`SELECT id, user_id, periode, updated_at FROM %s`, d.TableName())
	args := []any{}
	if userID != "" {
		query += ` WHERE user_id = $1`
		args = append(args, userID)
	}
	query += fmt.Sprintf(` ORDER BY updated_at DESC LIMIT %d`, limit)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	defer rows.Close()

	var refs []domain.ReportRef
	for rows.Next() {
		var ref domain.ReportRef
		if err := rows.Scan(&ref.ID, &ref.UserID, &ref.Periode, &ref.UpdatedAt); err != nil {
			return nil, apperror.Internal(err)
		}
		refs = append(refs, ref)
	}
	return refs, rows.Err()
}

func (r *reportRepo) CountPeriodes(ctx context.Context, d domain.Division, userID string, periodes []string) (int, error) {
	query := fmt.Sprintf(
		`SELECT COUNT(*) FROM %s WHERE user_id = $1 AND periode = ANY($2)`,
		d.TableName())

	var count int
	if err := r.db.QueryRow(ctx, query, userID, periodes).Scan(&count); err != nil {
		return 0, apperror.Internal(err)
	}
	return count, nil
}

// fieldHolders allocates typed scan targets matching the schema: number
// columns land in float64, text columns in string.
func fieldHolders(fields []domain.FieldDef) []any {
	holders := make([]any, len(fields))
	for i, f := range fields {
		if f.Type == domain.FieldNumber {
			holders[i] = new(float64)
		} else {
			holders[i] = new(string)
		}
	}
	return holders
}

func collectFields(into map[string]any, fields []domain.FieldDef, holders []any) {
	for i, f := range fields {
		if f.Type == domain.FieldNumber {
			into[f.Name] = *holders[i].(*float64)
		} else {
			into[f.Name] = *holders[i].(*string)
		}
	}
}
