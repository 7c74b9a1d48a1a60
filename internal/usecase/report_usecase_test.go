package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/rezaariel/insight-report-hub/internal/domain"
	"github.com/rezaariel/insight-report-hub/internal/usecase"
)

func currentPeriode() string {
	return domain.PeriodesForYear(time.Now().Year())[0]
}

func TestReportGetForm(t *testing.T) {
	periode := currentPeriode()

	t.Run("Should fail when caller is not authenticated", func(t *testing.T) {
		uc := usecase.NewReportUsecase(new(MockReportRepo))
		_, err := uc.GetForm(context.Background(), domain.DivisionGA, periode)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "User not authenticated")
	})

	t.Run("Should reject a periode outside the generated options", func(t *testing.T) {
		uc := usecase.NewReportUsecase(new(MockReportRepo))
		_, err := uc.GetForm(authedCtx("user1", domain.RoleUser), domain.DivisionGA, "JAN 99-MAR 99")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Periode tidak valid")
	})

	t.Run("Should return an empty form when nothing is saved yet", func(t *testing.T) {
		repo := new(MockReportRepo)
		repo.On("Get", mock.Anything, domain.DivisionGA, "user1", periode).Return(nil, nil)

		uc := usecase.NewReportUsecase(repo)
		snap, err := uc.GetForm(authedCtx("user1", domain.RoleUser), domain.DivisionGA, periode)
		assert.NoError(t, err)
		assert.False(t, snap.Exists)
		assert.Empty(t, snap.Fields)
		assert.Equal(t, domain.SchemaFor(domain.DivisionGA), snap.Sections)
	})

	t.Run("Should return saved values when a record exists", func(t *testing.T) {
		repo := new(MockReportRepo)
		repo.On("Get", mock.Anything, domain.DivisionGA, "user1", periode).Return(&domain.Report{
			ID:      "r1",
			UserID:  "user1",
			Periode: periode,
			Fields:  map[string]any{"limbah_cair_inlet": 42.5},
		}, nil)

		uc := usecase.NewReportUsecase(repo)
		snap, err := uc.GetForm(authedCtx("user1", domain.RoleUser), domain.DivisionGA, periode)
		assert.NoError(t, err)
		assert.True(t, snap.Exists)
		assert.Equal(t, 42.5, snap.Fields["limbah_cair_inlet"])
	})
}

func TestReportSave(t *testing.T) {
	periode := currentPeriode()

	t.Run("Should coerce values and drop unknown fields", func(t *testing.T) {
		repo := new(MockReportRepo)
		var saved *domain.Report
		repo.On("Upsert", mock.Anything, domain.DivisionGA, mock.Anything).
			Run(func(args mock.Arguments) {
				saved = args.Get(2).(*domain.Report)
			}).Return(nil)

		uc := usecase.NewReportUsecase(repo)
		_, err := uc.Save(authedCtx("user1", domain.RoleUser), domain.DivisionGA, periode, map[string]any{
			"limbah_cair_inlet": "12",    // string form input
			"cod_inlet":         3.5,     // json number
			"biaya_air_rp":      "",      // blank
			"not_a_column":      "evil",  // unknown, must vanish
			"air_pdam_m3":       "x10",   // unparseable
			"b3_majun_ton":      nil,     // explicit null
		})
		assert.NoError(t, err)
		assert.NotNil(t, saved)

		assert.Equal(t, float64(12), saved.Fields["limbah_cair_inlet"])
		assert.Equal(t, 3.5, saved.Fields["cod_inlet"])
		assert.Equal(t, float64(0), saved.Fields["biaya_air_rp"])
		assert.Equal(t, float64(0), saved.Fields["air_pdam_m3"])
		assert.Equal(t, float64(0), saved.Fields["b3_majun_ton"])
		assert.NotContains(t, saved.Fields, "not_a_column")

		// Every schema field must be present even when omitted from input.
		assert.Len(t, saved.Fields, len(domain.FieldsFor(domain.DivisionGA)))
	})

	t.Run("Should keep text fields as strings", func(t *testing.T) {
		repo := new(MockReportRepo)
		var saved *domain.Report
		repo.On("Upsert", mock.Anything, domain.DivisionPCC, mock.Anything).
			Run(func(args mock.Arguments) {
				saved = args.Get(2).(*domain.Report)
			}).Return(nil)

		uc := usecase.NewReportUsecase(repo)
		_, err := uc.Save(authedCtx("user1", domain.RoleUser), domain.DivisionPCC, periode, map[string]any{
			"nama_mesin": "CNC Lathe",
			"tahun_buat": float64(2019),
		})
		assert.NoError(t, err)
		assert.Equal(t, "CNC Lathe", saved.Fields["nama_mesin"])
		assert.Equal(t, float64(2019), saved.Fields["tahun_buat"])
		assert.Equal(t, "", saved.Fields["nama_produk"])
	})

	t.Run("Should reject an invalid periode before touching the repository", func(t *testing.T) {
		repo := new(MockReportRepo)
		uc := usecase.NewReportUsecase(repo)
		_, err := uc.Save(authedCtx("user1", domain.RoleUser), domain.DivisionGA, "whatever", nil)
		assert.Error(t, err)
		repo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Should fail when caller is not authenticated", func(t *testing.T) {
		uc := usecase.NewReportUsecase(new(MockReportRepo))
		_, err := uc.Save(context.Background(), domain.DivisionGA, periode, nil)
		assert.Error(t, err)
	})
}

func TestPeriodeOptionsCount(t *testing.T) {
	uc := usecase.NewReportUsecase(new(MockReportRepo))
	options := uc.PeriodeOptions()
	assert.Len(t, options, 12)
}
