package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Yaara40/academic-department-website-sub000/internal/model"
	"github.com/Yaara40/academic-department-website-sub000/internal/service"
)

// ActivityController exposes the activity log over HTTP.
type ActivityController struct {
	activities service.ActivityService
}

// NewActivityController creates an activity controller.
func NewActivityController(activities service.ActivityService) *ActivityController {
	return &ActivityController{activities: activities}
}

// Log records one user action.
func (ac *ActivityController) Log(c *gin.Context) {
	var req service.LogActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	res := ac.activities.Log(c.Request.Context(), &req)
	if !res.Success {
		Error(c, statusForResult(res.Errors), "failed to log activity", res.Errors...)
		return
	}
	Success(c, res)
}

// QuickLog is the fire-and-forget variant; it always answers 200 with a
// plain ok flag.
func (ac *ActivityController) QuickLog(c *gin.Context) {
	var req service.LogActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	ok := ac.activities.QuickLog(c.Request.Context(), req.UserID, req.UserRole, req.Type, req.Page, req.Description)
	Success(c, gin.H{"ok": ok})
}

// Recent returns a user's newest activities (admin only). ?limit= caps the
// count, defaulting per configuration.
func (ac *ActivityController) Recent(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	Success(c, ac.activities.Recent(c.Request.Context(), c.Param("userId"), limit))
}

// ByType returns a user's activities of one type (admin only).
func (ac *ActivityController) ByType(c *gin.Context) {
	activityType := model.ActivityType(c.Query("type"))
	if !activityType.Valid() {
		Error(c, http.StatusBadRequest, "invalid activity type")
		return
	}
	Success(c, ac.activities.ByType(c.Request.Context(), c.Param("userId"), activityType))
}

// Stats returns a user's per-type activity counters (admin only).
func (ac *ActivityController) Stats(c *gin.Context) {
	Success(c, ac.activities.Stats(c.Request.Context(), c.Param("userId")))
}
