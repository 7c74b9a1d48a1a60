package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rezaariel/insight-report-hub/internal/delivery/http/response"
	"github.com/rezaariel/insight-report-hub/internal/domain"
	"github.com/rezaariel/insight-report-hub/pkg/apperror"
)

type ProfileHandler struct {
	authUC domain.AuthUsecase
}

func NewProfileHandler(protected *gin.RouterGroup, authUC domain.AuthUsecase) {
	handler := &ProfileHandler{authUC: authUC}

	protected.PUT("/profile", handler.UpdateName)
}

type UpdateProfileRequest struct {
	Name string `json:"name" binding:"required"`
}

// UpdateName godoc
// @Summary      Update Profile
// @Description  Changes the authenticated user's display name.
// @Tags         profile
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        profile  body      UpdateProfileRequest  true  "New Name"
// @Success      200    {object}  response.Response
// @Failure      400    {object}  response.Response
// @Failure      401    {object}  response.Response
// @Router       /profile [put]
func (h *ProfileHandler) UpdateName(c *gin.Context) {
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	if err := h.authUC.UpdateProfileName(c.Request.Context(), req.Name); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Profil berhasil diperbarui", nil)
}
