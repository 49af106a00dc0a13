package rest

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"agenda/internal/domain"
)

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		badRequestResponse(c, "invalid id")
		return 0, false
	}
	return id, true
}

// @Summary Create service
// @Tags Admin
// @Accept json
// @Produce json
// @Param input body domain.CreateServiceDTO true "Service"
// @Success 201 {object} successResponseBody{data=domain.Service}
// @Failure 400 {object} errorResponseBody "Missing or invalid fields"
// @Failure 409 {object} errorResponseBody "Service name already exists"
// @Failure 503 {object} errorResponseBody "Storage unavailable"
// @Router /admin/services [post]
func (h *Handler) createService(c *gin.Context) {
	var input domain.CreateServiceDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		failureResponse(c, domain.ErrInvalidService)
		return
	}

	svc, err := h.services.Catalog.Create(c.Request.Context(), input)
	if err != nil {
		failureResponse(c, err)
		return
	}

	createdResponse(c, svc)
}

// @Summary Get service
// @Tags Admin
// @Produce json
// @Param id path int true "Service ID"
// @Success 200 {object} successResponseBody{data=domain.Service}
// @Failure 400 {object} errorResponseBody "Invalid id"
// @Failure 404 {object} errorResponseBody "Service not found"
// @Router /admin/services/{id} [get]
func (h *Handler) getServiceByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	svc, err := h.services.Catalog.GetByID(c.Request.Context(), id)
	if err != nil {
		failureResponse(c, err)
		return
	}

	successResponse(c, http.StatusOK, svc)
}

// @Summary Update service
// @Description Partial update; omitted fields keep their value
// @Tags Admin
// @Accept json
// @Produce json
// @Param id path int true "Service ID"
// @Param input body domain.UpdateServiceDTO true "Fields to change"
// @Success 200 {object} successResponseBody{data=domain.Service}
// @Failure 400 {object} errorResponseBody "Invalid fields"
// @Failure 404 {object} errorResponseBody "Service not found"
// @Failure 409 {object} errorResponseBody "Service name already exists"
// @Router /admin/services/{id} [put]
func (h *Handler) updateService(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var input domain.UpdateServiceDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		failureResponse(c, domain.ErrInvalidService)
		return
	}

	svc, err := h.services.Catalog.Update(c.Request.Context(), id, input)
	if err != nil {
		failureResponse(c, err)
		return
	}

	successResponse(c, http.StatusOK, svc)
}

// @Summary Delete service
// @Tags Admin
// @Param id path int true "Service ID"
// @Success 204
// @Failure 404 {object} errorResponseBody "Service not found"
// @Failure 409 {object} errorResponseBody "Service has appointments"
// @Router /admin/services/{id} [delete]
func (h *Handler) deleteService(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.services.Catalog.Delete(c.Request.Context(), id); err != nil {
		failureResponse(c, err)
		return
	}

	noContentResponse(c)
}

// @Summary List appointments
// @Description Appointments ordered by start time, optionally limited to one day
// @Tags Admin
// @Produce json
// @Param date query string false "Date (YYYY-MM-DD)"
// @Success 200 {object} successResponseBody{data=[]domain.Appointment}
// @Failure 400 {object} errorResponseBody "Invalid date"
// @Failure 503 {object} errorResponseBody "Storage unavailable"
// @Router /admin/appointments [get]
func (h *Handler) getAppointments(c *gin.Context) {
	appointments, err := h.services.Booking.List(c.Request.Context(), c.Query("date"))
	if err != nil {
		failureResponse(c, err)
		return
	}

	successResponse(c, http.StatusOK, appointments)
}

// @Summary Export agenda
// @Description Uploads the day's appointments as CSV and returns a temporary download link
// @Tags Admin
// @Produce json
// @Param date query string true "Date (YYYY-MM-DD)"
// @Success 201 {object} successResponseBody{data=domain.AgendaExport}
// @Failure 400 {object} errorResponseBody "Invalid date"
// @Failure 503 {object} errorResponseBody "File storage unavailable"
// @Router /admin/reports/agenda [post]
func (h *Handler) exportAgenda(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		badRequestResponse(c, "date is required")
		return
	}

	export, err := h.services.Report.ExportAgenda(c.Request.Context(), date)
	if err != nil {
		failureResponse(c, err)
		return
	}

	createdResponse(c, export)
}
