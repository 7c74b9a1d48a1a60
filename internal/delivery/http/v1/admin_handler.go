package v1

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rezaariel/insight-report-hub/internal/delivery/http/response"
	"github.com/rezaariel/insight-report-hub/internal/domain"
	"github.com/rezaariel/insight-report-hub/pkg/apperror"
)

type AdminHandler struct {
	adminUC domain.AdminUsecase
}

func NewAdminHandler(protected *gin.RouterGroup, adminUC domain.AdminUsecase) {
	handler := &AdminHandler{adminUC: adminUC}

	admin := protected.Group("/admin")
	{
		admin.GET("/reports/:division", handler.ListReports)
		admin.GET("/reports/:division/export", handler.ExportReports)
		admin.GET("/users", handler.ListUsers)
		admin.POST("/users", handler.CreateUser)
	}
}

type CreateUserRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// ListReports godoc
// @Summary      List Division Reports
// @Description  Every submitted report for a division with the owner's name and email, newest update first. Admin only.
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        division  path  string  true  "Division code (ga, acc, pcc, hrd)"
// @Success      200    {object}  response.Response{data=[]domain.ReportWithOwner}
// @Failure      403    {object}  response.Response
// @Router       /admin/reports/{division} [get]
func (h *AdminHandler) ListReports(c *gin.Context) {
	division, err := domain.ParseDivision(c.Param("division"))
	if err != nil {
		c.Error(apperror.BadRequest("Divisi tidak dikenal"))
		return
	}

	reports, err := h.adminUC.ListReports(c.Request.Context(), division)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "OK", reports)
}

// ExportReports godoc
// @Summary      Export Division Reports
// @Description  Downloads a division's reports as an xlsx workbook. Refused when the division has no data. Admin only.
// @Tags         admin
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security     BearerAuth
// @Param        division  path  string  true  "Division code (ga, acc, pcc, hrd)"
// @Success      200  {file}    file
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /admin/reports/{division}/export [get]
func (h *AdminHandler) ExportReports(c *gin.Context) {
	division, err := domain.ParseDivision(c.Param("division"))
	if err != nil {
		c.Error(apperror.BadRequest("Divisi tidak dikenal"))
		return
	}

	data, filename, err := h.adminUC.ExportReports(c.Request.Context(), division)
	if err != nil {
		c.Error(err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

// ListUsers godoc
// @Summary      List Users
// @Description  All registered profiles with their roles. Admin only.
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200    {object}  response.Response{data=[]domain.ManagedUser}
// @Failure      403    {object}  response.Response
// @Router       /admin/users [get]
func (h *AdminHandler) ListUsers(c *gin.Context) {
	users, err := h.adminUC.ListUsers(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "OK", users)
}

// CreateUser godoc
// @Summary      Create User
// @Description  Creates a new account on behalf of a colleague. Admin only.
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        user  body      CreateUserRequest  true  "User Details"
// @Success      201    {object}  response.Response
// @Failure      403    {object}  response.Response
// @Failure      409    {object}  response.Response
// @Router       /admin/users [post]
func (h *AdminHandler) CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	profile, err := h.adminUC.CreateUser(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Pengguna berhasil dibuat", profile)
}
