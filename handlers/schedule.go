package handlers

import (
	"errors"
	"net/http"

	"tutorhive/models"
	"tutorhive/services/schedule"
	"tutorhive/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ScheduleHandler exposes the reconciliation operations over HTTP.
type ScheduleHandler struct {
	Service schedule.ScheduleService
}

func NewScheduleHandler(svc schedule.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{Service: svc}
}

// DeclareAvailabilityHandler replaces a tutor's weekly free time.
func (h *ScheduleHandler) DeclareAvailabilityHandler(c *gin.Context) {
	logger := utils.GetLogger()
	tutorID := c.Param("tutorId")

	var req struct {
		Pattern models.ProposedPattern `json:"pattern" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "message": err.Error()})
		return
	}

	if err := h.Service.DeclareAvailability(c.Request.Context(), tutorID, req.Pattern); err != nil {
		respondScheduleError(c, err)
		return
	}

	logger.Info("availability declared via API", zap.String("tutorId", tutorID))
	c.JSON(http.StatusOK, gin.H{"message": "Availability updated"})
}

// CommitClassScheduleHandler books a class pattern onto a tutor's calendar.
func (h *ScheduleHandler) CommitClassScheduleHandler(c *gin.Context) {
	tutorID := c.Param("tutorId")

	var req struct {
		ClassRef string                 `json:"classRef" binding:"required"`
		Pattern  models.ProposedPattern `json:"pattern" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "message": err.Error()})
		return
	}

	if err := h.Service.CommitClassSchedule(c.Request.Context(), tutorID, req.ClassRef, req.Pattern); err != nil {
		respondScheduleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Class schedule committed", "classRef": req.ClassRef})
}

// ReleaseClassScheduleHandler closes a class and restores the freed time.
func (h *ScheduleHandler) ReleaseClassScheduleHandler(c *gin.Context) {
	tutorID := c.Param("tutorId")
	classRef := c.Param("classRef")

	if err := h.Service.ReleaseClassSchedule(c.Request.Context(), tutorID, classRef); err != nil {
		respondScheduleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Class schedule released", "classRef": classRef})
}

// PreviewResidualFreeTimeHandler shows the free time remaining after a
// proposed pattern, without persisting anything.
func (h *ScheduleHandler) PreviewResidualFreeTimeHandler(c *gin.Context) {
	var req struct {
		TutorID  string                 `json:"tutorId"`
		FreeTime models.ProposedPattern `json:"freeTime" binding:"required"`
		Proposed models.ProposedPattern `json:"proposed" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "message": err.Error()})
		return
	}

	cal := h.Service.PreviewResidualFreeTime(req.TutorID, req.FreeTime, req.Proposed)
	c.JSON(http.StatusOK, gin.H{"calendar": cal})
}

// GetWeeklyCalendarHandler returns a tutor's slots grouped by weekday.
func (h *ScheduleHandler) GetWeeklyCalendarHandler(c *gin.Context) {
	tutorID := c.Param("tutorId")

	cal, err := h.Service.GetWeeklyCalendar(c.Request.Context(), tutorID)
	if err != nil {
		respondScheduleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"calendar": cal})
}

// respondScheduleError maps the scheduling error taxonomy onto HTTP statuses.
func respondScheduleError(c *gin.Context, err error) {
	var (
		validationErr *schedule.ValidationError
		conflictErr   *schedule.ConflictError
		notFoundErr   *schedule.NotFoundError
		busyErr       *schedule.LockBusyError
	)

	switch {
	case errors.As(err, &validationErr):
		utils.JSONError(c, http.StatusBadRequest, "Invalid schedule request", validationErr.Message)
	case errors.As(err, &conflictErr):
		utils.JSONError(c, http.StatusConflict, "Schedule conflict", conflictErr.Error())
	case errors.As(err, &notFoundErr):
		utils.JSONError(c, http.StatusNotFound, "Not found", notFoundErr.Error())
	case errors.As(err, &busyErr):
		utils.JSONError(c, http.StatusConflict, "Calendar busy", busyErr.Error())
	default:
		utils.GetLogger().Error("schedule operation failed", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Schedule operation failed", err.Error())
	}
}
