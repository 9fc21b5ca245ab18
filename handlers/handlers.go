package handlers

import (
	"errors"
	"net/http"

	"bookwell/config"
	appointmentRepo "bookwell/database/repository/appointment"
	availabilityRepo "bookwell/database/repository/availability"
	catalogRepo "bookwell/database/repository/catalog"
	"bookwell/services/booking"
	"bookwell/services/discovery"
	"bookwell/services/notification"
	"bookwell/utils"

	"github.com/gin-gonic/gin"
)

// Package-level service handles, wired once at startup.
var (
	AppointmentRepo    appointmentRepo.AppointmentRepository
	AvailabilityRepo   availabilityRepo.AvailabilityRepository
	DiscoveryService   discovery.Service
	QuoteService       *booking.QuoteService
	ReservationService booking.ReservationService
)

// InitHandlers wires the service graph. Must run after database, cache and
// config initialization.
func InitHandlers() {
	catalog := catalogRepo.NewMongoCatalogRepo()
	availability := availabilityRepo.NewMongoAvailabilityRepo()
	appointments := appointmentRepo.NewMongoAppointmentRepo()

	resolver := &booking.AvailabilityResolver{Catalog: catalog, Blocked: availability}
	travel := booking.NewRoutingTravelEstimator()
	engine := &booking.Engine{
		Appointments: appointments,
		Availability: resolver,
		Travel:       travel,
		StepMinutes:  config.AppConfig.SlotStepMinutes,
	}
	quotes := &booking.QuoteService{Catalog: catalog, Engine: engine}

	AppointmentRepo = appointments
	AvailabilityRepo = availability
	QuoteService = quotes
	DiscoveryService = discovery.NewDiscoveryService(catalog, quotes)
	ReservationService = booking.NewReservationService(catalog, appointments, notification.NewAsynqService(), travel)
}

// statusFor maps the booking error taxonomy onto HTTP status codes.
func statusFor(code string) int {
	switch code {
	case booking.CodeClientError:
		return http.StatusBadRequest
	case booking.CodeConflict:
		return http.StatusConflict
	case booking.CodeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// respondError renders any error through the uniform envelope. Typed
// booking errors keep their reason and message; everything else collapses
// to an opaque 500.
func respondError(c *gin.Context, err error) {
	var be *booking.Error
	if errors.As(err, &be) {
		utils.JSONError(c, statusFor(be.Code), be.Reason, be.Message)
		return
	}
	utils.JSONError(c, http.StatusInternalServerError, booking.CodeServerError,
		"An unexpected error occurred. Please try again later.")
}

func respondOK(c *gin.Context, payload gin.H) {
	payload["success"] = true
	c.JSON(http.StatusOK, payload)
}
