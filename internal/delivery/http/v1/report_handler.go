package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rezaariel/insight-report-hub/internal/delivery/http/response"
	"github.com/rezaariel/insight-report-hub/internal/domain"
	"github.com/rezaariel/insight-report-hub/pkg/apperror"
)

type ReportHandler struct {
	reportUC domain.ReportUsecase
}

func NewReportHandler(protected *gin.RouterGroup, reportUC domain.ReportUsecase) {
	handler := &ReportHandler{reportUC: reportUC}

	reports := protected.Group("/reports")
	{
		reports.GET("/periodes", handler.PeriodeOptions)
		reports.GET("/:division", handler.GetForm)
		reports.PUT("/:division", handler.Save)
	}
}

type SaveReportRequest struct {
	Periode string         `json:"periode" binding:"required"`
	Fields  map[string]any `json:"fields" binding:"required"`
}

// PeriodeOptions godoc
// @Summary      Periode Options
// @Description  Lists the selectable reporting windows: four quarters for the previous, current and next year.
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Success      200    {object}  response.Response{data=[]string}
// @Router       /reports/periodes [get]
func (h *ReportHandler) PeriodeOptions(c *gin.Context) {
	response.Success(c, http.StatusOK, "OK", h.reportUC.PeriodeOptions())
}

// GetForm godoc
// @Summary      Get Division Form
// @Description  Returns the field layout for a division plus any values already saved for the given periode.
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Param        division  path   string  true  "Division code (ga, acc, pcc, hrd)"
// @Param        periode   query  string  true  "Reporting window, e.g. JAN 25-MAR 25"
// @Success      200    {object}  response.Response{data=domain.FormSnapshot}
// @Failure      400    {object}  response.Response
// @Failure      401    {object}  response.Response
// @Router       /reports/{division} [get]
func (h *ReportHandler) GetForm(c *gin.Context) {
	division, err := domain.ParseDivision(c.Param("division"))
	if err != nil {
		c.Error(apperror.BadRequest("Divisi tidak dikenal"))
		return
	}

	snapshot, err := h.reportUC.GetForm(c.Request.Context(), division, c.Query("periode"))
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "OK", snapshot)
}

// Save godoc
// @Summary      Save Division Report
// @Description  Creates or overwrites the caller's report for the given division and periode in one write.
// @Tags         reports
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        division  path  string             true  "Division code (ga, acc, pcc, hrd)"
// @Param        report    body  SaveReportRequest  true  "Periode and field values"
// @Success      200    {object}  response.Response{data=domain.Report}
// @Failure      400    {object}  response.Response
// @Failure      401    {object}  response.Response
// @Router       /reports/{division} [put]
func (h *ReportHandler) Save(c *gin.Context) {
	division, err := domain.ParseDivision(c.Param("division"))
	if err != nil {
		c.Error(apperror.BadRequest("Divisi tidak dikenal"))
		return
	}

	var req SaveReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	report, err := h.reportUC.Save(c.Request.Context(), division, req.Periode, req.Fields)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Laporan berhasil disimpan", report)
}
