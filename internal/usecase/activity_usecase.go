package usecase

import (
	"context"
	"sort"
	"time"

	"github.com/rezaariel/insight-report-hub/internal/domain"
	"github.com/rezaariel/insight-report-hub/pkg/apperror"
)

const (
	// perDivisionCap limits how many rows each division table contributes
	// before merging. Known shortfall: a division with more than 5 very
	// recent updates still surfaces at most 5, so the global top-10 is not
	// strictly recency-correct.
	perDivisionCap = 5
	feedCap        = 10
)

type activityUsecase struct {
	reportRepo domain.ReportRepository
	userRepo   domain.UserRepository
	now        func() time.Time
}

func NewActivityUsecase(reportRepo domain.ReportRepository, userRepo domain.UserRepository) domain.ActivityUsecase {
	return &activityUsecase{
		reportRepo: reportRepo,
		userRepo:   userRepo,
		now:        time.Now,
	}
}

// RecentActivity merges the four division tables into one feed. Admins see
// everyone's rows with owner names; other callers only their own.
func (u *activityUsecase) RecentActivity(ctx context.Context) ([]domain.ActivityItem, error) {
	userID := domain.UserIDFromContext(ctx)
	if userID == "" {
		return nil, apperror.Unauthorized("User not authenticated")
	}
	isAdmin := domain.RoleFromContext(ctx) == domain.RoleAdmin

	scope := userID
	if isAdmin {
		scope = ""
	}

	type taggedRef struct {
		domain.ReportRef
		division domain.Division
	}

	var all []taggedRef
	for _, d := range domain.Divisions {
		refs, err := u.reportRepo.ListRecent(ctx, d, scope, perDivisionCap)
		if err != nil {
			return nil, err
		}
		for _, ref := range refs {
			all = append(all, taggedRef{ReportRef: ref, division: d})
		}
	}

	sort.Slice(all, func(i, j int) bool {
		return all[i].UpdatedAt.After(all[j].UpdatedAt)
	})
	if len(all) > feedCap {
		all = all[:feedCap]
	}

	// Owner names only matter for admins, resolved in one batched lookup.
	var profiles map[string]domain.Profile
	if isAdmin {
		seen := make(map[string]bool)
		var ids []string
		for _, item := range all {
			if !seen[item.UserID] {
				seen[item.UserID] = true
				ids = append(ids, item.UserID)
			}
		}
		var err error
		profiles, err = u.userRepo.GetProfilesByUserIDs(ctx, ids)
		if err != nil {
			return nil, err
		}
	}

	items := make([]domain.ActivityItem, 0, len(all))
	for _, t := range all {
		item := domain.ActivityItem{
			ID:        t.ID,
			Division:  t.division.Code(),
			Periode:   t.Periode,
			UpdatedAt: t.UpdatedAt,
		}
		if isAdmin {
			item.UserName = "Unknown"
			if p, ok := profiles[t.UserID]; ok {
				item.UserName = p.Name
			}
		}
		items = append(items, item)
	}
	return items, nil
}

// DivisionSummary reports how many of this year's periodes the caller has
// filled per division.
func (u *activityUsecase) DivisionSummary(ctx context.Context) ([]domain.DivisionStatus, error) {
	userID := domain.UserIDFromContext(ctx)
	if userID == "" {
		return nil, apperror.Unauthorized("User not authenticated")
	}

	periodes := domain.PeriodesForYear(u.now().Year())
	statuses := make([]domain.DivisionStatus, 0, len(domain.Divisions))
	for _, d := range domain.Divisions {
		filled, err := u.reportRepo.CountPeriodes(ctx, d, userID, periodes)
		if err != nil {
			return nil, err
		}
		statuses = append(statuses, domain.DivisionStatus{
			Division: d,
			Label:    d.Label(),
			Filled:   filled,
			Total:    len(periodes),
		})
	}
	return statuses, nil
}

func (u *activityUsecase) UpcomingDeadlines(now time.Time) []domain.Deadline {
	return domain.UpcomingDeadlines(now)
}
