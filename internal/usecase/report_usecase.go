package usecase

import (
	"context"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/rezaariel/insight-report-hub/internal/domain"
	"github.com/rezaariel/insight-report-hub/pkg/apperror"
)

type reportUsecase struct {
	reportRepo domain.ReportRepository
	now        func() time.Time
}

func NewReportUsecase(reportRepo domain.ReportRepository) domain.ReportUsecase {
	return &reportUsecase{reportRepo: reportRepo, now: time.Now}
}

func (u *reportUsecase) PeriodeOptions() []string {
	return domain.PeriodeOptions(u.now())
}

// GetForm loads at most one existing record for (caller, division, periode)
// together with the division's field layout.
func (u *reportUsecase) GetForm(ctx context.Context, d domain.Division, periode string) (*domain.FormSnapshot, error) {
	userID := domain.UserIDFromContext(ctx)
	if userID == "" {
		return nil, apperror.Unauthorized("User not authenticated")
	}
	if !domain.IsValidPeriode(periode, u.now()) {
		return nil, apperror.BadRequest("Periode tidak valid")
	}

	existing, err := u.reportRepo.Get(ctx, d, userID, periode)
	if err != nil {
		return nil, err
	}

	snapshot := &domain.FormSnapshot{
		Division: d,
		Label:    d.Label(),
		Periode:  periode,
		Sections: domain.SchemaFor(d),
		Fields:   map[string]any{},
	}
	if existing != nil {
		snapshot.Exists = true
		snapshot.Fields = existing.Fields
	}
	return snapshot, nil
}

// Save coerces the submitted values against the division schema and persists
// them as one conditional write. Unknown fields are dropped; number fields
// default to 0 and text fields to "" when blank or unparseable.
func (u *reportUsecase) Save(ctx context.Context, d domain.Division, periode string, input map[string]any) (*domain.Report, error) {
	userID := domain.UserIDFromContext(ctx)
	if userID == "" {
		return nil, apperror.Unauthorized("User not authenticated")
	}
	if !domain.IsValidPeriode(periode, u.now()) {
		return nil, apperror.BadRequest("Periode tidak valid")
	}

	fields := make(map[string]any)
	for _, def := range domain.FieldsFor(d) {
		raw, ok := input[def.Name]
		if def.Type == domain.FieldNumber {
			fields[def.Name] = coerceNumber(raw, ok)
		} else {
			fields[def.Name] = coerceText(raw, ok)
		}
	}

	report := &domain.Report{
		ID:      uuid.NewString(),
		UserID:  userID,
		Periode: periode,
		Fields:  fields,
	}
	if err := u.reportRepo.Upsert(ctx, d, report); err != nil {
		return nil, err
	}
	return report, nil
}

func coerceNumber(raw any, ok bool) float64 {
	if !ok || raw == nil {
		return 0
	}
	switch v := raw.(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case string:
		if v == "" {
			return 0
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}

func coerceText(raw any, ok bool) string {
	if !ok || raw == nil {
		return ""
	}
	if s, isString := raw.(string); isString {
		return s
	}
	return ""
}
