package handlers

import (
	"net/http"

	"bookwell/models"
	"bookwell/services/booking"
	"bookwell/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// GetBlockedIntervals handles GET /api/vendors/:vendorID/blocked. With a
// staffId query parameter the result narrows to that staff member.
func GetBlockedIntervals(c *gin.Context) {
	vendorID := c.Param("vendorID")
	date := c.Query("date")
	if date == "" {
		utils.JSONError(c, http.StatusBadRequest, booking.CodeClientError, "date query parameter is required")
		return
	}

	var (
		blocked []models.BlockedTime
		err     error
	)
	if staffID := c.Query("staffId"); staffID != "" {
		blocked, err = AvailabilityRepo.GetBlockedIntervals(c.Request.Context(), vendorID, staffID, date)
	} else {
		blocked, err = AvailabilityRepo.GetBlockedForVendor(c.Request.Context(), vendorID, date)
	}
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"blocked": blocked})
}

// CreateBlockedInterval handles POST /api/vendors/:vendorID/blocked.
func CreateBlockedInterval(c *gin.Context) {
	var input struct {
		StaffID string `json:"staffId" binding:"required"`
		Date    string `json:"date" binding:"required"`
		Start   int    `json:"start"`
		End     int    `json:"end"`
		Reason  string `json:"reason"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, booking.CodeClientError, "invalid blocked interval: "+err.Error())
		return
	}
	if input.Start < 0 || input.End > 24*60 || input.Start >= input.End {
		utils.JSONError(c, http.StatusBadRequest, booking.CodeClientError, "blocked range must be a valid intra-day interval")
		return
	}

	blocked := &models.BlockedTime{
		BlockID:  uuid.NewString(),
		VendorID: c.Param("vendorID"),
		StaffID:  input.StaffID,
		Date:     input.Date,
		Start:    input.Start,
		End:      input.End,
		Reason:   input.Reason,
	}
	if err := AvailabilityRepo.CreateBlockedInterval(c.Request.Context(), blocked); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"blocked": blocked})
}

// RemoveBlockedInterval handles DELETE /api/vendors/:vendorID/blocked/:blockID.
func RemoveBlockedInterval(c *gin.Context) {
	if err := AvailabilityRepo.RemoveBlockedInterval(c.Request.Context(), c.Param("blockID")); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"removed": true})
}
