package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	appointmentRepo "shopdesk/database/repository/appointment"
	"shopdesk/utils"
)

// AppointmentHandler exposes the shop's booking records for staff lookups.
type AppointmentHandler struct {
	Repo appointmentRepo.AppointmentRepository
}

// NewAppointmentHandler wires the appointment repository into HTTP handlers.
func NewAppointmentHandler(repo appointmentRepo.AppointmentRepository) *AppointmentHandler {
	return &AppointmentHandler{Repo: repo}
}

// GetByID handles GET /api/appointments/:id.
func (h *AppointmentHandler) GetByID(c *gin.Context) {
	appt, err := h.Repo.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.JSONError(c, http.StatusNotFound, "appointment not found", err.Error())
		return
	}
	c.JSON(http.StatusOK, appt)
}

// ListByPhone handles GET /api/appointments?phone=...
func (h *AppointmentHandler) ListByPhone(c *gin.Context) {
	phone := c.Query("phone")
	if phone == "" {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", "phone query parameter is required")
		return
	}
	appts, err := h.Repo.GetByPhone(c.Request.Context(), phone)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to fetch appointments", err.Error())
		return
	}
	c.JSON(http.StatusOK, appts)
}

// Delete handles DELETE /api/appointments/:id.
func (h *AppointmentHandler) Delete(c *gin.Context) {
	if err := h.Repo.DeleteByID(c.Request.Context(), c.Param("id")); err != nil {
		utils.JSONError(c, http.StatusNotFound, "appointment not found", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
