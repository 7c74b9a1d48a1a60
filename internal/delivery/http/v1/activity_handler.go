package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rezaariel/insight-report-hub/internal/delivery/http/response"
	"github.com/rezaariel/insight-report-hub/internal/domain"
)

type ActivityHandler struct {
	activityUC domain.ActivityUsecase
}

func NewActivityHandler(protected *gin.RouterGroup, activityUC domain.ActivityUsecase) {
	handler := &ActivityHandler{activityUC: activityUC}

	dashboard := protected.Group("/dashboard")
	{
		dashboard.GET("/activity", handler.RecentActivity)
		dashboard.GET("/summary", handler.DivisionSummary)
		dashboard.GET("/deadlines", handler.UpcomingDeadlines)
	}
}

// RecentActivity godoc
// @Summary      Recent Activity
// @Description  Merged feed of the latest report updates across all divisions. Admins see everyone's rows, users see their own.
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Success      200    {object}  response.Response{data=[]domain.ActivityItem}
// @Failure      401    {object}  response.Response
// @Router       /dashboard/activity [get]
func (h *ActivityHandler) RecentActivity(c *gin.Context) {
	items, err := h.activityUC.RecentActivity(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "OK", items)
}

// DivisionSummary godoc
// @Summary      Division Summary
// @Description  How many of this year's quarters the caller has filled, per division.
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Success      200    {object}  response.Response{data=[]domain.DivisionStatus}
// @Failure      401    {object}  response.Response
// @Router       /dashboard/summary [get]
func (h *ActivityHandler) DivisionSummary(c *gin.Context) {
	statuses, err := h.activityUC.DivisionSummary(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "OK", statuses)
}

// UpcomingDeadlines godoc
// @Summary      Upcoming Deadlines
// @Description  The next quarter-end submission deadlines for the current year.
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Success      200    {object}  response.Response{data=[]domain.Deadline}
// @Router       /dashboard/deadlines [get]
func (h *ActivityHandler) UpcomingDeadlines(c *gin.Context) {
	response.Success(c, http.StatusOK, "OK", h.activityUC.UpcomingDeadlines(time.Now()))
}
