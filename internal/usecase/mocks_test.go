package usecase_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/rezaariel/insight-report-hub/internal/domain"
	"github.com/rezaariel/insight-report-hub/pkg/apperror"
)

// Mock Repositories

type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) CreateWithProfile(ctx context.Context, user *domain.User, profile *domain.Profile) error {
	return m.Called(ctx, user, profile).Error(0)
}

func (m *MockUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepo) UpdatePassword(ctx context.Context, userID, passwordHash string) error {
	return m.Called(ctx, userID, passwordHash).Error(0)
}

func (m *MockUserRepo) GetProfileByUserID(ctx context.Context, userID string) (*domain.Profile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Profile), args.Error(1)
}

func (m *MockUserRepo) GetProfilesByUserIDs(ctx context.Context, userIDs []string) (map[string]domain.Profile, error) {
	args := m.Called(ctx, userIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Profile), args.Error(1)
}

func (m *MockUserRepo) ListProfiles(ctx context.Context) ([]domain.Profile, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Profile), args.Error(1)
}

func (m *MockUserRepo) UpdateProfileName(ctx context.Context, userID, name string) error {
	return m.Called(ctx, userID, name).Error(0)
}

func (m *MockUserRepo) GetRole(ctx context.Context, userID string) (domain.Role, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(domain.Role), args.Error(1)
}

func (m *MockUserRepo) GetRolesByUserIDs(ctx context.Context, userIDs []string) (map[string]domain.Role, error) {
	args := m.Called(ctx, userIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Role), args.Error(1)
}

func (m *MockUserRepo) UpdateRole(ctx context.Context, userID string, role domain.Role) error {
	return m.Called(ctx, userID, role).Error(0)
}

func (m *MockUserRepo) HasAdmin(ctx context.Context) (bool, error) {
	args := m.Called(ctx)
	return args.Bool(0), args.Error(1)
}

type MockReportRepo struct {
	mock.Mock
}

func (m *MockReportRepo) Get(ctx context.Context, d domain.Division, userID, periode string) (*domain.Report, error) {
	args := m.Called(ctx, d, userID, periode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Report), args.Error(1)
}

func (m *MockReportRepo) Upsert(ctx context.Context, d domain.Division, report *domain.Report) error {
	return m.Called(ctx, d, report).Error(0)
}

func (m *MockReportRepo) ListByDivision(ctx context.Context, d domain.Division) ([]domain.Report, error) {
	args := m.Called(ctx, d)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Report), args.Error(1)
}

func (m *MockReportRepo) ListRecent(ctx context.Context, d domain.Division, userID string, limit int) ([]domain.ReportRef, error) {
	args := m.Called(ctx, d, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ReportRef), args.Error(1)
}

func (m *MockReportRepo) CountPeriodes(ctx context.Context, d domain.Division, userID string, periodes []string) (int, error) {
	args := m.Called(ctx, d, userID, periodes)
	return args.Int(0), args.Error(1)
}

// errDuplicate mimics what the repository returns on a unique violation.
func errDuplicate() error {
	return apperror.Conflict("duplicate key")
}

// authedCtx builds a context as the auth middleware would leave it.
func authedCtx(userID string, role domain.Role) context.Context {
	ctx := context.WithValue(context.Background(), domain.KeyUserID, userID)
	return context.WithValue(ctx, domain.KeyUserRole, role)
}
