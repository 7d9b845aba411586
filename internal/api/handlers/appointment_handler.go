package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"goldenview/realty/internal/email"
	"goldenview/realty/internal/models"
	"goldenview/realty/internal/services"
	"goldenview/realty/internal/tasks"
)

// AppointmentHandler handles viewing requests.
type AppointmentHandler struct {
	appointments services.IAppointmentService
	taskClient   IAsynqClient
}

// NewAppointmentHandler creates a new AppointmentHandler. Clients are only
// emailed when taskClient is non-nil.
func NewAppointmentHandler(appointments services.IAppointmentService, taskClient IAsynqClient) *AppointmentHandler {
	return &AppointmentHandler{appointments: appointments, taskClient: taskClient}
}

// notifyClient queues the status email for a. Failures are logged only; the
// appointment change itself has already been stored.
func (h *AppointmentHandler) notifyClient(c *gin.Context, a *models.Appointment) {
	if h.taskClient == nil || !email.NotifiesClient(a.Status) {
		return
	}
	task, err := tasks.NewAppointmentNotifyTask(*a)
	if err == nil {
		_, err = h.taskClient.EnqueueContext(c.Request.Context(), task)
	}
	if err != nil {
		log.Printf("Failed to enqueue notification for appointment %s: %v", a.ID.Hex(), err)
	}
}

// CreateAppointment handles POST /v1/appointments.
func (h *AppointmentHandler) CreateAppointment(c *gin.Context) {
	var req models.AppointmentRequest
	if !bindJSON(c, &req) {
		return
	}
	a, err := h.appointments.CreateAppointment(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Failed to book appointment")
		return
	}
	h.notifyClient(c, a)
	c.JSON(http.StatusCreated, a)
}

// ListAppointments handles GET /v1/admin/appointments.
func (h *AppointmentHandler) ListAppointments(c *gin.Context) {
	status := models.AppointmentStatus(c.Query("status"))
	if status != "" && !status.IsValid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
		return
	}
	list, err := h.appointments.ListAppointments(c.Request.Context(), status)
	if err != nil {
		respondError(c, err, "Failed to list appointments")
		return
	}
	c.JSON(http.StatusOK, gin.H{"appointments": list})
}

// UpdateAppointment handles PATCH /v1/admin/appointments/:id.
func (h *AppointmentHandler) UpdateAppointment(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}
	var req struct {
		Status     models.AppointmentStatus `json:"status" binding:"required"`
		AgentNotes string                   `json:"agentNotes"`
	}
	if !bindJSON(c, &req) {
		return
	}
	a, err := h.appointments.UpdateAppointmentStatus(c.Request.Context(), id, req.Status, req.AgentNotes)
	if err != nil {
		respondError(c, err, "Failed to update appointment")
		return
	}
	h.notifyClient(c, a)
	c.JSON(http.StatusOK, a)
}

// DeleteAppointment handles DELETE /v1/admin/appointments/:id.
func (h *AppointmentHandler) DeleteAppointment(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.appointments.DeleteAppointment(c.Request.Context(), id); err != nil {
		respondError(c, err, "Failed to delete appointment")
		return
	}
	c.Status(http.StatusNoContent)
}
