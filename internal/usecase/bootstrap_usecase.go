package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/rezaariel/insight-report-hub/internal/domain"
	"github.com/rezaariel/insight-report-hub/pkg/apperror"
	"github.com/rezaariel/insight-report-hub/pkg/audit"
	"github.com/rezaariel/insight-report-hub/pkg/auth"
)

type bootstrapUsecase struct {
	userRepo domain.UserRepository
}

// NewBootstrapUsecase creates the deployment-time admin seeder. Not exposed
// over HTTP; invoked by cmd/bootstrap.
func NewBootstrapUsecase(userRepo domain.UserRepository) domain.BootstrapUsecase {
	return &bootstrapUsecase{userRepo: userRepo}
}

// EnsureAdmin creates the well-known administrator account once. A second
// invocation finds the existing admin role row and reports a conflict instead
// of creating another identity.
func (u *bootstrapUsecase) EnsureAdmin(ctx context.Context, name, email, password string) (*domain.Profile, error) {
	hasAdmin, err := u.userRepo.HasAdmin(ctx)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if hasAdmin {
		return nil, apperror.Conflict("Admin sudah ada. Login dengan email: " + email)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	now := time.Now()
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
			// Identity exists from a concurrent or earlier run.
			return nil, apperror.Conflict("Admin sudah ada. Login dengan email: " + email)
		}
		return nil, err
	}

	if err := u.userRepo.UpdateRole(ctx, user.ID, domain.RoleAdmin); err != nil {
		return nil, err
	}

	audit.Default().Log(ctx, audit.Event{
		Event:  audit.EventAdminBootstrap,
		UserID: user.ID,
		Email:  email,
	})
	return profile, nil
}
