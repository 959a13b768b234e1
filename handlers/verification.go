package handlers

import (
	"net/http"

	"tutorhive/services/verification"
	"tutorhive/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// VerificationHandler exposes the admin moderation verdict endpoint.
type VerificationHandler struct {
	Service verification.VerificationService
}

func NewVerificationHandler(svc verification.VerificationService) *VerificationHandler {
	return &VerificationHandler{Service: svc}
}

func (h *VerificationHandler) SetVerificationStatusHandler(c *gin.Context) {
	var req struct {
		Kind     verification.EntityKind `json:"kind" binding:"required"`
		ID       string                  `json:"id" binding:"required"`
		Verified bool                    `json:"verified"`
		Reason   string                  `json:"reason"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "message": err.Error()})
		return
	}

	decision := verification.Decision{Verified: req.Verified, Reason: req.Reason}
	if err := h.Service.SetVerificationStatus(c.Request.Context(), req.Kind, req.ID, decision); err != nil {
		utils.GetLogger().Warn("verification verdict failed",
			zap.String("kind", string(req.Kind)), zap.String("id", req.ID), zap.Error(err))
		respondScheduleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Verification status updated", "id": req.ID})
}
