package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/rezaariel/insight-report-hub/internal/domain"
	"github.com/rezaariel/insight-report-hub/internal/usecase"
)

func TestEnsureAdmin(t *testing.T) {
	ctx := context.Background()

	t.Run("Should create the account and promote it to admin", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		userRepo.On("HasAdmin", mock.Anything).Return(false, nil)
		userRepo.On("CreateWithProfile", mock.Anything, mock.Anything, mock.Anything).Return(nil)
		userRepo.On("UpdateRole", mock.Anything, mock.Anything, domain.RoleAdmin).Return(nil)

		uc := usecase.NewBootstrapUsecase(userRepo)
		profile, err := uc.EnsureAdmin(ctx, "Administrator", "admin@silapor.com", "admin123")
		assert.NoError(t, err)
		assert.Equal(t, "admin@silapor.com", profile.Email)
		userRepo.AssertCalled(t, "UpdateRole", mock.Anything, profile.UserID, domain.RoleAdmin)
	})

	t.Run("Should refuse when an admin already exists", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		userRepo.On("HasAdmin", mock.Anything).Return(true, nil)

		uc := usecase.NewBootstrapUsecase(userRepo)
		_, err := uc.EnsureAdmin(ctx, "Administrator", "admin@silapor.com", "admin123")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Admin sudah ada. Login dengan email: admin@silapor.com")
		userRepo.AssertNotCalled(t, "CreateWithProfile", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Should report a conflict when the identity was created concurrently", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		userRepo.On("HasAdmin", mock.Anything).Return(false, nil)
		userRepo.On("CreateWithProfile", mock.Anything, mock.Anything, mock.Anything).
			Return(errDuplicate())

		uc := usecase.NewBootstrapUsecase(userRepo)
		_, err := uc.EnsureAdmin(ctx, "Administrator", "admin@silapor.com", "admin123")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Admin sudah ada")
	})
}
