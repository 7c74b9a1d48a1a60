package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/rezaariel/insight-report-hub/internal/domain"
	"github.com/rezaariel/insight-report-hub/internal/usecase"
	"github.com/rezaariel/insight-report-hub/pkg/auth"
)

func newAuthUsecase(userRepo *MockUserRepo) domain.AuthUsecase {
	tokens := auth.NewTokenManager("test-secret", time.Hour)
	revoker := auth.NewRevoker(nil)
	return usecase.NewAuthUsecase(userRepo, tokens, revoker, newValidate())
}

func TestRegister(t *testing.T) {
	t.Run("Should create user, profile and default role in one call", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		userRepo.On("CreateWithProfile", mock.Anything, mock.Anything, mock.Anything).Return(nil)

		uc := newAuthUsecase(userRepo)
		profile, err := uc.Register(context.Background(), "Budi Santoso", "budi@example.com", "rahasia")
		assert.NoError(t, err)
		assert.Equal(t, "Budi Santoso", profile.Name)
		assert.Equal(t, "budi@example.com", profile.Email)
		assert.NotEmpty(t, profile.UserID)
	})

	t.Run("Should surface a duplicate email as a conflict", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		userRepo.On("CreateWithProfile", mock.Anything, mock.Anything, mock.Anything).
			Return(errDuplicate())

		uc := newAuthUsecase(userRepo)
		_, err := uc.Register(context.Background(), "Budi Santoso", "budi@example.com", "rahasia")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Email sudah terdaftar")
	})

	t.Run("Should reject a short password", func(t *testing.T) {
		uc := newAuthUsecase(new(MockUserRepo))
		_, err := uc.Register(context.Background(), "Budi Santoso", "budi@example.com", "123")
		assert.Error(t, err)
	})

	t.Run("Should reject an invalid email", func(t *testing.T) {
		uc := newAuthUsecase(new(MockUserRepo))
		_, err := uc.Register(context.Background(), "Budi Santoso", "not-an-email", "rahasia")
		assert.Error(t, err)
	})
}

func TestLogin(t *testing.T) {
	hash, _ := auth.HashPassword("rahasia")
	user := &domain.User{ID: "u1", Email: "budi@example.com", PasswordHash: hash}

	t.Run("Should issue a token with the resolved identity", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		userRepo.On("GetByEmail", mock.Anything, "budi@example.com").Return(user, nil)
		userRepo.On("GetProfileByUserID", mock.Anything, "u1").
			Return(&domain.Profile{UserID: "u1", Name: "Budi", Email: "budi@example.com"}, nil)
		userRepo.On("GetRole", mock.Anything, "u1").Return(domain.RoleUser, nil)

		uc := newAuthUsecase(userRepo)
		resp, err := uc.Login(context.Background(), "budi@example.com", "rahasia")
		assert.NoError(t, err)
		assert.NotEmpty(t, resp.Token)
		assert.Equal(t, "Budi", resp.User.Name)
		assert.Equal(t, domain.RoleUser, resp.User.Role)
		assert.True(t, resp.ExpiresAt.After(time.Now()))
	})

	t.Run("Should fail with the same message for wrong password and unknown email", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		userRepo.On("GetByEmail", mock.Anything, "budi@example.com").Return(user, nil)
		userRepo.On("GetByEmail", mock.Anything, "ghost@example.com").Return(nil, nil)

		uc := newAuthUsecase(userRepo)

		_, err := uc.Login(context.Background(), "budi@example.com", "salah")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Email atau password salah")

		_, err = uc.Login(context.Background(), "ghost@example.com", "rahasia")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Email atau password salah")
	})
}

func TestLogoutRevokesToken(t *testing.T) {
	tokens := auth.NewTokenManager("test-secret", time.Hour)
	revoker := auth.NewRevoker(nil)
	uc := usecase.NewAuthUsecase(new(MockUserRepo), tokens, revoker, newValidate())

	_, claims, err := tokens.Issue("u1", "budi@example.com")
	assert.NoError(t, err)

	assert.False(t, revoker.IsRevoked(context.Background(), claims.ID))
	assert.NoError(t, uc.Logout(context.Background(), claims.ID, claims.ExpiresAt.Time))
	assert.True(t, revoker.IsRevoked(context.Background(), claims.ID))
}

func TestChangePassword(t *testing.T) {
	t.Run("Should fail when caller is not authenticated", func(t *testing.T) {
		uc := newAuthUsecase(new(MockUserRepo))
		err := uc.ChangePassword(context.Background(), "new-secret")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "User not authenticated")
	})

	t.Run("Should store a bcrypt hash, never the raw password", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		var storedHash string
		userRepo.On("UpdatePassword", mock.Anything, "u1", mock.Anything).
			Run(func(args mock.Arguments) {
				storedHash = args.String(2)
			}).Return(nil)

		uc := newAuthUsecase(userRepo)
		err := uc.ChangePassword(authedCtx("u1", domain.RoleUser), "new-secret")
		assert.NoError(t, err)
		assert.NotEqual(t, "new-secret", storedHash)
		assert.True(t, auth.CheckPassword(storedHash, "new-secret"))
	})
}

func TestResolveIdentity(t *testing.T) {
	t.Run("Should read the role fresh from storage", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		userRepo.On("GetProfileByUserID", mock.Anything, "u1").
			Return(&domain.Profile{UserID: "u1", Name: "Budi", Email: "budi@example.com"}, nil)
		userRepo.On("GetRole", mock.Anything, "u1").Return(domain.RoleAdmin, nil)

		uc := newAuthUsecase(userRepo)
		identity, err := uc.ResolveIdentity(context.Background(), "u1")
		assert.NoError(t, err)
		assert.Equal(t, domain.RoleAdmin, identity.Role)
		userRepo.AssertCalled(t, "GetRole", mock.Anything, "u1")
	})
}
