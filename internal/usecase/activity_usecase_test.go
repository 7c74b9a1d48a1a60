package usecase_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/rezaariel/insight-report-hub/internal/domain"
	"github.com/rezaariel/insight-report-hub/internal/usecase"
)

func refsAt(division string, n int, base time.Time, step time.Duration) []domain.ReportRef {
	refs := make([]domain.ReportRef, n)
	for i := 0; i < n; i++ {
		refs[i] = domain.ReportRef{
			ID:        fmt.Sprintf("%s-%d", division, i),
			UserID:    "u1",
			Periode:   "JAN 25-MAR 25",
			UpdatedAt: base.Add(-time.Duration(i) * step),
		}
	}
	return refs
}

func TestRecentActivity(t *testing.T) {
	base := time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC)

	t.Run("Should fail when caller is not authenticated", func(t *testing.T) {
		uc := usecase.NewActivityUsecase(new(MockReportRepo), new(MockUserRepo))
		_, err := uc.RecentActivity(context.Background())
		assert.Error(t, err)
	})

	t.Run("Should scope non-admin callers to their own rows", func(t *testing.T) {
		reportRepo := new(MockReportRepo)
		for _, d := range domain.Divisions {
			reportRepo.On("ListRecent", mock.Anything, d, "user1", 5).Return([]domain.ReportRef{}, nil)
		}

		uc := usecase.NewActivityUsecase(reportRepo, new(MockUserRepo))
		items, err := uc.RecentActivity(authedCtx("user1", domain.RoleUser))
		assert.NoError(t, err)
		assert.Empty(t, items)
		for _, d := range domain.Divisions {
			reportRepo.AssertCalled(t, "ListRecent", mock.Anything, d, "user1", 5)
		}
	})

	t.Run("Should merge divisions sorted by update time and cap at 10", func(t *testing.T) {
		reportRepo := new(MockReportRepo)
		userRepo := new(MockUserRepo)

		// 5 rows from each of the four divisions, interleaved in time.
		reportRepo.On("ListRecent", mock.Anything, domain.DivisionHRD, "", 5).
			Return(refsAt("hrd", 5, base, time.Hour), nil)
		reportRepo.On("ListRecent", mock.Anything, domain.DivisionACC, "", 5).
			Return(refsAt("acc", 5, base.Add(-30*time.Minute), time.Hour), nil)
		reportRepo.On("ListRecent", mock.Anything, domain.DivisionPCC, "", 5).
			Return(refsAt("pcc", 5, base.Add(-15*time.Minute), time.Hour), nil)
		reportRepo.On("ListRecent", mock.Anything, domain.DivisionGA, "", 5).
			Return(refsAt("ga", 5, base.Add(-45*time.Minute), time.Hour), nil)
		userRepo.On("GetProfilesByUserIDs", mock.Anything, mock.Anything).Return(map[string]domain.Profile{
			"u1": {UserID: "u1", Name: "Budi"},
		}, nil)

		uc := usecase.NewActivityUsecase(reportRepo, userRepo)
		items, err := uc.RecentActivity(authedCtx("admin1", domain.RoleAdmin))
		assert.NoError(t, err)
		assert.Len(t, items, 10)

		// Newest first across division boundaries.
		for i := 1; i < len(items); i++ {
			assert.False(t, items[i].UpdatedAt.After(items[i-1].UpdatedAt))
		}
		assert.Equal(t, "hrd-0", items[0].ID)
		assert.Equal(t, "HRD", items[0].Division)
		assert.Equal(t, "Budi", items[0].UserName)
	})

	t.Run("Should leave owner names empty for non-admin callers", func(t *testing.T) {
		reportRepo := new(MockReportRepo)
		userRepo := new(MockUserRepo)
		for _, d := range domain.Divisions {
			refs := []domain.ReportRef{}
			if d == domain.DivisionGA {
				refs = refsAt("ga", 1, base, time.Hour)
			}
			reportRepo.On("ListRecent", mock.Anything, d, "u1", 5).Return(refs, nil)
		}

		uc := usecase.NewActivityUsecase(reportRepo, userRepo)
		items, err := uc.RecentActivity(authedCtx("u1", domain.RoleUser))
		assert.NoError(t, err)
		assert.Len(t, items, 1)
		assert.Empty(t, items[0].UserName)
		userRepo.AssertNotCalled(t, "GetProfilesByUserIDs", mock.Anything, mock.Anything)
	})
}

func TestDivisionSummary(t *testing.T) {
	t.Run("Should count filled periodes per division for the current year", func(t *testing.T) {
		reportRepo := new(MockReportRepo)
		periodes := domain.PeriodesForYear(time.Now().Year())
		for i, d := range domain.Divisions {
			reportRepo.On("CountPeriodes", mock.Anything, d, "u1", periodes).Return(i, nil)
		}

		uc := usecase.NewActivityUsecase(reportRepo, new(MockUserRepo))
		statuses, err := uc.DivisionSummary(authedCtx("u1", domain.RoleUser))
		assert.NoError(t, err)
		assert.Len(t, statuses, 4)
		for i, s := range statuses {
			assert.Equal(t, domain.Divisions[i], s.Division)
			assert.Equal(t, i, s.Filled)
			assert.Equal(t, 4, s.Total)
		}
	})
}

func TestUpcomingDeadlines(t *testing.T) {
	uc := usecase.NewActivityUsecase(new(MockReportRepo), new(MockUserRepo))

	t.Run("Should return at most three future quarter ends", func(t *testing.T) {
		now := time.Date(2025, time.February, 1, 0, 0, 0, 0, time.UTC)
		deadlines := uc.UpcomingDeadlines(now)
		assert.Len(t, deadlines, 3)
		assert.Equal(t, time.March, deadlines[0].Date.Month())
		assert.Equal(t, 31, deadlines[0].Date.Day())
		assert.Contains(t, deadlines[0].Label, "JAN 25-MAR 25")
	})

	t.Run("Should skip quarters that already ended", func(t *testing.T) {
		now := time.Date(2025, time.November, 15, 0, 0, 0, 0, time.UTC)
		deadlines := uc.UpcomingDeadlines(now)
		assert.Len(t, deadlines, 1)
		assert.Equal(t, time.December, deadlines[0].Date.Month())
	})
}
