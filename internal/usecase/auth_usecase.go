package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/rezaariel/insight-report-hub/internal/domain"
	"github.com/rezaariel/insight-report-hub/pkg/apperror"
	"github.com/rezaariel/insight-report-hub/pkg/audit"
	"github.com/rezaariel/insight-report-hub/pkg/auth"
	"github.com/rezaariel/insight-report-hub/pkg/validation"
)

type authUsecase struct {
	userRepo domain.UserRepository
	tokens   *auth.TokenManager
	revoker  *auth.Revoker
	validate *validator.Validate
}

func NewAuthUsecase(userRepo domain.UserRepository, tokens *auth.TokenManager, revoker *auth.Revoker, validate *validator.Validate) domain.AuthUsecase {
	return &authUsecase{
		userRepo: userRepo,
		tokens:   tokens,
		revoker:  revoker,
		validate: validate,
	}
}

type registerInput struct {
	Name     string `validate:"required,min=2,max=100,valid_name"`
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=6"`
}

func (u *authUsecase) Register(ctx context.Context, name, email, password string) (*domain.Profile, error) {
	in := registerInput{Name: name, Email: email, Password: password}
	if err := u.validate.Struct(in); err != nil {
		return nil, apperror.BadRequest(validation.Describe(err))
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
			// The one registration failure users can act on.
			return nil, apperror.Conflict("Email sudah terdaftar")
		}
		return nil, err
	}

	audit.Default().Log(ctx, audit.Event{
		Event:  audit.EventRegistered,
		UserID: user.ID,
		Email:  email,
	})
	return profile, nil
}

func (u *authUsecase) Login(ctx context.Context, email, password string) (*domain.TokenResponse, error) {
	user, err := u.userRepo.GetByEmail(ctx, email)
	if err != nil || user == nil || !auth.CheckPassword(user.PasswordHash, password) {
		audit.Default().Log(ctx, audit.Event{
			Event: audit.EventLoginFailed,
			Email: email,
		})
		return nil, apperror.Unauthorized("Email atau password salah")
	}

	identity, err := u.ResolveIdentity(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	token, claims, err := u.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	audit.Default().Log(ctx, audit.Event{
		Event:  audit.EventLoginSuccess,
		UserID: user.ID,
		Email:  email,
	})

	return &domain.TokenResponse{
		Token:     token,
		ExpiresAt: claims.ExpiresAt.Time,
		User:      *identity,
	}, nil
}

func (u *authUsecase) Logout(ctx context.Context, tokenID string, expiresAt time.Time) error {
	return u.revoker.Revoke(ctx, tokenID, expiresAt)
}

func (u *authUsecase) ChangePassword(ctx context.Context, newPassword string) error {
	userID := domain.UserIDFromContext(ctx)
	if userID == "" {
		return apperror.Unauthorized("User not authenticated")
	}
	if len(newPassword) < 6 {
		return apperror.BadRequest("Password minimal 6 karakter")
	}

	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return apperror.Internal(err)
	}
	if err := u.userRepo.UpdatePassword(ctx, userID, hash); err != nil {
		return err
	}

	audit.Default().Log(ctx, audit.Event{
		Event:  audit.EventPasswordChanged,
		UserID: userID,
	})
	return nil
}

func (u *authUsecase) Me(ctx context.Context) (*domain.Identity, error) {
	userID := domain.UserIDFromContext(ctx)
	if userID == "" {
		return nil, apperror.Unauthorized("User not authenticated")
	}
	return u.ResolveIdentity(ctx, userID)
}

func (u *authUsecase) UpdateProfileName(ctx context.Context, name string) error {
	userID := domain.UserIDFromContext(ctx)
	if userID == "" {
		return apperror.Unauthorized("User not authenticated")
	}
	in := struct {
		Name string `validate:"required,min=2,max=100,valid_name"`
	}{Name: name}
	if err := u.validate.Struct(in); err != nil {
		return apperror.BadRequest(validation.Describe(err))
	}
	return u.userRepo.UpdateProfileName(ctx, userID, name)
}

// ResolveIdentity loads the profile and the current role. The role is read
// from user_roles on every call rather than trusted from any token claim.
func (u *authUsecase) ResolveIdentity(ctx context.Context, userID string) (*domain.Identity, error) {
	profile, err := u.userRepo.GetProfileByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.Unauthorized("User not found")
		}
		return nil, apperror.Internal(err)
	}

	role, err := u.userRepo.GetRole(ctx, userID)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	return &domain.Identity{
		UserID: userID,
		Email:  profile.Email,
		Name:   profile.Name,
		Role:   role,
	}, nil
}
