package handlers

import (
	"net/http"

	"bookwell/models"
	"bookwell/services/booking"
	"bookwell/utils"

	"github.com/gin-gonic/gin"
)

// AcquireLock handles POST /api/booking/lock.
func AcquireLock(c *gin.Context) {
	var req booking.ReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, booking.CodeClientError, "invalid reservation request: "+err.Error())
		return
	}
	grant, err := ReservationService.AcquireLock(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"lock": grant})
}

// BookingQuote handles POST /api/booking/quote. Unlike the discovery
// variant this always computes against live state, never the cache.
func BookingQuote(c *gin.Context) {
	var q booking.SlotQuery
	if err := c.ShouldBindJSON(&q); err != nil {
		utils.JSONError(c, http.StatusBadRequest, booking.CodeClientError, "invalid slot query: "+err.Error())
		return
	}
	quote, err := QuoteService.Quote(c.Request.Context(), q)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"quote": quote})
}

// ConfirmAppointment handles POST /api/booking/confirm.
func ConfirmAppointment(c *gin.Context) {
	var input struct {
		AppointmentID string                `json:"appointmentId" binding:"required"`
		LockToken     string                `json:"lockToken" binding:"required"`
		Payment       models.PaymentDetails `json:"payment"`
		Discount      float64               `json:"discount"`
		Fees          float64               `json:"fees"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, booking.CodeClientError, "invalid confirm request: "+err.Error())
		return
	}
	appt, err := ReservationService.ConfirmAppointment(c.Request.Context(),
		input.AppointmentID, input.LockToken, input.Payment, input.Discount, input.Fees)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"appointment": appt})
}

// ReleaseLock handles POST /api/booking/release.
func ReleaseLock(c *gin.Context) {
	var input struct {
		LockToken string `json:"lockToken" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, booking.CodeClientError, "lockToken is required")
		return
	}
	if err := ReservationService.ReleaseLock(c.Request.Context(), input.LockToken); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"released": true})
}

// CancelHold handles POST /api/booking/appointments/:appointmentID/cancel-hold.
func CancelHold(c *gin.Context) {
	var input struct {
		LockToken string `json:"lockToken" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, booking.CodeClientError, "lockToken is required")
		return
	}
	if err := ReservationService.CancelHold(c.Request.Context(), c.Param("appointmentID"), input.LockToken); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"cancelled": true})
}

// CancelAppointment handles POST /api/booking/cancel. A confirmed
// appointment soft-cancels; a still-live hold is deleted.
func CancelAppointment(c *gin.Context) {
	var input struct {
		AppointmentID string `json:"appointmentId" binding:"required"`
		Reason        string `json:"reason"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, booking.CodeClientError, "appointmentId is required")
		return
	}

	appt, err := ReservationService.CancelAppointment(c.Request.Context(), input.AppointmentID, input.Reason)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"appointment": appt})
}

// GetAppointment handles GET /api/booking/appointments/:appointmentID.
func GetAppointment(c *gin.Context) {
	appt, err := AppointmentRepo.GetByID(c.Request.Context(), c.Param("appointmentID"))
	if err != nil {
		respondError(c, err)
		return
	}
	if appt == nil {
		respondError(c, booking.NewAppointmentNotFoundError(c.Param("appointmentID")))
		return
	}
	respondOK(c, gin.H{"appointment": appt})
}
