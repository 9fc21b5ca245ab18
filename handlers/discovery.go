package handlers

import (
	"net/http"
	"strconv"

	catalogRepo "bookwell/database/repository/catalog"
	"bookwell/services/booking"
	"bookwell/utils"

	"github.com/gin-gonic/gin"
)

// SearchVendors handles GET /api/discovery/vendors.
func SearchVendors(c *gin.Context) {
	lat, err1 := strconv.ParseFloat(c.Query("lat"), 64)
	lng, err2 := strconv.ParseFloat(c.Query("lng"), 64)
	if err1 != nil || err2 != nil {
		utils.JSONError(c, http.StatusBadRequest, booking.CodeClientError, "lat and lng query parameters are required")
		return
	}
	radius, err := strconv.ParseFloat(c.DefaultQuery("radiusKm", "10"), 64)
	if err != nil || radius <= 0 {
		utils.JSONError(c, http.StatusBadRequest, booking.CodeClientError, "radiusKm must be a positive number")
		return
	}

	vendors, err := DiscoveryService.SearchVendors(c.Request.Context(), catalogRepo.VendorSearchCriteria{
		Lat:      lat,
		Lng:      lng,
		RadiusKm: radius,
		Category: c.Query("category"),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"vendors": vendors})
}

// GetVendorServices handles GET /api/discovery/vendors/:vendorID/services.
func GetVendorServices(c *gin.Context) {
	grouped, err := DiscoveryService.VendorServices(c.Request.Context(), c.Param("vendorID"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"services": grouped})
}

// GetVendorStaff handles GET /api/discovery/vendors/:vendorID/staff.
func GetVendorStaff(c *gin.Context) {
	staff, err := DiscoveryService.VendorStaff(c.Request.Context(), c.Param("vendorID"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"staff": staff})
}

// GetSlots handles POST /api/discovery/slots.
func GetSlots(c *gin.Context) {
	var q booking.SlotQuery
	if err := c.ShouldBindJSON(&q); err != nil {
		utils.JSONError(c, http.StatusBadRequest, booking.CodeClientError, "invalid slot query: "+err.Error())
		return
	}
	slots, err := DiscoveryService.Slots(c.Request.Context(), q)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"slots": slots})
}

// GetQuote handles POST /api/discovery/quote.
func GetQuote(c *gin.Context) {
	var q booking.SlotQuery
	if err := c.ShouldBindJSON(&q); err != nil {
		utils.JSONError(c, http.StatusBadRequest, booking.CodeClientError, "invalid slot query: "+err.Error())
		return
	}
	quote, err := DiscoveryService.Quote(c.Request.Context(), q)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"quote": quote})
}
