package rest

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"agenda/internal/domain"
)

// @Summary List services
// @Description Returns every bookable service ordered by name
// @Tags Booking
// @Produce json
// @Success 200 {object} successResponseBody{data=[]domain.Service}
// @Failure 503 {object} errorResponseBody "Storage unavailable"
// @Router /services [get]
func (h *Handler) getServices(c *gin.Context) {
	services, err := h.services.Catalog.List(c.Request.Context())
	if err != nil {
		failureResponse(c, err)
		return
	}

	successResponse(c, http.StatusOK, services)
}

// @Summary Available slots
// @Description Lists the start times at which the service can be booked on the given date. Non-working days and past dates return an empty list.
// @Tags Booking
// @Produce json
// @Param service_id query int true "Service ID"
// @Param date query string true "Date (YYYY-MM-DD)"
// @Success 200 {object} successResponseBody{data=domain.AvailableSlots}
// @Failure 400 {object} errorResponseBody "Missing or malformed parameters"
// @Failure 404 {object} errorResponseBody "Service not found"
// @Failure 503 {object} errorResponseBody "Storage unavailable"
// @Router /available_slots [get]
func (h *Handler) getAvailableSlots(c *gin.Context) {
	serviceIDStr, date := c.Query("service_id"), c.Query("date")
	if serviceIDStr == "" || date == "" {
		badRequestResponse(c, "service_id and date are required")
		return
	}

	serviceID, err := strconv.ParseInt(serviceIDStr, 10, 64)
	if err != nil {
		badRequestResponse(c, "invalid service_id")
		return
	}

	slots, err := h.services.Availability.ListSlots(c.Request.Context(), serviceID, date)
	if err != nil {
		failureResponse(c, err)
		return
	}

	successResponse(c, http.StatusOK, slots)
}

// @Summary Book an appointment
// @Description Re-validates the requested slot against the current agenda and stores the appointment
// @Tags Booking
// @Accept json
// @Produce json
// @Param input body domain.CreateAppointmentDTO true "Appointment"
// @Success 201 {object} successResponseBody{data=domain.Appointment}
// @Failure 400 {object} errorResponseBody "Invalid input, non-working day, past time, outside working hours or lunch break"
// @Failure 404 {object} errorResponseBody "Service not found"
// @Failure 409 {object} errorResponseBody "Slot no longer available"
// @Failure 429 {object} errorResponseBody "Too many attempts"
// @Failure 503 {object} errorResponseBody "Storage unavailable"
// @Router /appointments [post]
func (h *Handler) createAppointment(c *gin.Context) {
	var input domain.CreateAppointmentDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequestResponse(c, "missing or invalid fields: service_id, appointment_time, client_name and client_phone are required")
		return
	}

	appointment, err := h.services.Booking.Book(c.Request.Context(), input)
	if err != nil {
		failureResponse(c, err)
		return
	}

	createdResponse(c, appointment)
}
