package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"github.com/rezaariel/insight-report-hub/internal/domain"
	"github.com/rezaariel/insight-report-hub/pkg/apperror"
	"github.com/rezaariel/insight-report-hub/pkg/audit"
	"github.com/rezaariel/insight-report-hub/pkg/auth"
	"github.com/rezaariel/insight-report-hub/pkg/validation"
)

type adminUsecase struct {
	userRepo   domain.UserRepository
	reportRepo domain.ReportRepository
	validate   *validator.Validate
	now        func() time.Time
}

func NewAdminUsecase(userRepo domain.UserRepository, reportRepo domain.ReportRepository, validate *validator.Validate) domain.AdminUsecase {
	return &adminUsecase{
		userRepo:   userRepo,
		reportRepo: reportRepo,
		validate:   validate,
		now:        time.Now,
	}
}

// requireAdmin checks the role resolved at session start. UI hiding is
// cosmetic; this is the enforcement that holds when routes are called
// directly.
func requireAdmin(ctx context.Context) error {
	if domain.RoleFromContext(ctx) != domain.RoleAdmin {
		audit.Default().Log(ctx, audit.Event{
			Event:  audit.EventUnauthorizedAccess,
			UserID: domain.UserIDFromContext(ctx),
		})
		return apperror.Forbidden("Hanya admin yang dapat mengakses")
	}
	return nil
}

// ListReports returns every report of one division, newest update first, with
// owner names resolved through a single batched profile lookup.
func (u *adminUsecase) ListReports(ctx context.Context, d domain.Division) ([]domain.ReportWithOwner, error) {
	if err := requireAdmin(ctx); err != nil {
		return nil, err
	}

	reports, err := u.reportRepo.ListByDivision(ctx, d)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var userIDs []string
	for _, r := range reports {
		if !seen[r.UserID] {
			seen[r.UserID] = true
			userIDs = append(userIDs, r.UserID)
		}
	}

	profiles, err := u.userRepo.GetProfilesByUserIDs(ctx, userIDs)
	if err != nil {
		return nil, err
	}

	result := make([]domain.ReportWithOwner, 0, len(reports))
	for _, r := range reports {
		owner := domain.ReportWithOwner{Report: r, OwnerName: "Unknown", OwnerEmail: "Unknown"}
		if p, ok := profiles[r.UserID]; ok {
			owner.OwnerName = p.Name
			owner.OwnerEmail = p.Email
		}
		result = append(result, owner)
	}
	return result, nil
}

// ExportReports serializes one division's reports to a spreadsheet. Refused
// when the division has no data.
func (u *adminUsecase) ExportReports(ctx context.Context, d domain.Division) ([]byte, string, error) {
	reports, err := u.ListReports(ctx, d)
	if err != nil {
		return nil, "", err
	}
	if len(reports) == 0 {
		return nil, "", apperror.NotFound("Tidak ada data untuk diekspor")
	}

	f := excelize.NewFile()
	sheet := d.Label()
	f.SetSheetName("Sheet1", sheet)

	fields := domain.FieldsFor(d)
	headers := []string{"Nama", "Email", "Periode", "Tanggal Update"}
	for _, fd := range fields {
		headers = append(headers, domain.HumanizeFieldName(fd.Name))
	}

	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)

		// Auto-size: at least 15, wider for long headers.
		width := float64(len(h))
		if width < 15 {
			width = 15
		}
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheet, col, col, width)
	}

	// One data row per report, in fetch order (updated_at descending).
	// Internals (id, user_id, timestamps) stay out except the formatted
	// update time.
	for rowIdx, r := range reports {
		values := []any{
			r.OwnerName,
			r.OwnerEmail,
			r.Periode,
			r.UpdatedAt.Format("2 January 2006 15:04"),
		}
		for _, fd := range fields {
			values = append(values, r.Fields[fd.Name])
		}
		for colIdx, v := range values {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			f.SetCellValue(sheet, cell, v)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", apperror.Internal(err)
	}

	filename := fmt.Sprintf("Laporan_%s_%s.xlsx",
		strings.ToUpper(string(d)), u.now().Format("20060102_150405"))

	audit.Default().Log(ctx, audit.Event{
		Event:  audit.EventReportExported,
		UserID: domain.UserIDFromContext(ctx),
		Details: map[string]any{
			"division": string(d),
			"rows":     len(reports),
			"filename": filename,
		},
	})
	return buf.Bytes(), filename, nil
}

// ListUsers returns every profile newest first with its role, resolved in one
// batched lookup.
func (u *adminUsecase) ListUsers(ctx context.Context) ([]domain.ManagedUser, error) {
	if err := requireAdmin(ctx); err != nil {
		return nil, err
	}

	profiles, err := u.userRepo.ListProfiles(ctx)
	if err != nil {
		return nil, err
	}

	userIDs := make([]string, len(profiles))
	for i, p := range profiles {
		userIDs[i] = p.UserID
	}
	roles, err := u.userRepo.GetRolesByUserIDs(ctx, userIDs)
	if err != nil {
		return nil, err
	}

	users := make([]domain.ManagedUser, 0, len(profiles))
	for _, p := range profiles {
		role, ok := roles[p.UserID]
		if !ok {
			role = domain.RoleUser
		}
		users = append(users, domain.ManagedUser{Profile: p, Role: role})
	}
	return users, nil
}

func (u *adminUsecase) CreateUser(ctx context.Context, name, email, password string) (*domain.Profile, error) {
	if err := requireAdmin(ctx); err != nil {
		return nil, err
	}

	in := registerInput{Name: name, Email: email, Password: password}
	if err := u.validate.Struct(in); err != nil {
		return nil, apperror.BadRequest(validation.Describe(err))
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	now := u.now()
	user := &domain.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	profile := &domain.Profile{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		Name:      name,
		Email:     email,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := u.userRepo.CreateWithProfile(ctx, user, profile); err != nil {
		var appErr *apperror.AppError
		if errors.As(err, &appErr) && appErr.Code == 409 {
			return nil, apperror.Conflict("Email sudah terdaftar")
		}
		return nil, err
	}

	audit.Default().Log(ctx, audit.Event{
		Event:  audit.EventUserCreated,
		UserID: domain.UserIDFromContext(ctx),
		Email:  email,
	})
	return profile, nil
}
