package accepted

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/KurtMante/clinic-BE/internal/model"
	"github.com/KurtMante/clinic-BE/internal/service/accepted"
	"github.com/KurtMante/clinic-BE/pkg/httputil"
)

type Handler struct {
	service *accepted.Service
}

func NewHandler(service *accepted.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	accepted := r.Group("/accepted-appointments")
	{
		accepted.POST("/accept/:appointmentId", h.AcceptAppointment)
		accepted.GET("", h.ListAcceptedAppointments)
		accepted.GET("/:id", h.GetAcceptedAppointment)
		accepted.GET("/patient/:patientId", h.ListByPatient)
		accepted.GET("/attended", h.ListAttended)
		accepted.GET("/not-attended", h.ListNotAttended)
		accepted.PUT("/:id/attend", h.MarkAttended)
		accepted.PUT("/:id/not-attend", h.MarkNotAttended)
		accepted.DELETE("/:id", h.DeleteAcceptedAppointment)
	}
}

func (h *Handler) AcceptAppointment(c *gin.Context) {
	appointmentID, err := strconv.ParseInt(c.Param("appointmentId"), 10, 64)
	if err != nil {
		httputil.RespondWithValidationError(c, err)
		return
	}

	var req model.AcceptAppointmentRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			httputil.RespondWithValidationError(c, err)
			return
		}
	}

	acc, err := h.service.AcceptAppointment(c.Request.Context(), appointmentID, &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithCreated(c, acc)
}

func (h *Handler) GetAcceptedAppointment(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		httputil.RespondWithValidationError(c, err)
		return
	}

	acc, err := h.service.GetAcceptedAppointment(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, acc)
}

func (h *Handler) ListAcceptedAppointments(c *gin.Context) {
	accepted, err := h.service.ListAcceptedAppointments(c.Request.Context())
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, accepted)
}

func (h *Handler) ListByPatient(c *gin.Context) {
	patientID, err := strconv.ParseInt(c.Param("patientId"), 10, 64)
	if err != nil {
		httputil.RespondWithValidationError(c, err)
		return
	}

	accepted, err := h.service.ListByPatient(c.Request.Context(), patientID)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, accepted)
}

func (h *Handler) ListAttended(c *gin.Context) {
	h.listByAttendance(c, true)
}

func (h *Handler) ListNotAttended(c *gin.Context) {
	h.listByAttendance(c, false)
}

func (h *Handler) listByAttendance(c *gin.Context, attended bool) {
	accepted, err := h.service.ListByAttendance(c.Request.Context(), attended)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, accepted)
}

func (h *Handler) MarkAttended(c *gin.Context) {
	h.setAttendance(c, true)
}

func (h *Handler) MarkNotAttended(c *gin.Context) {
	h.setAttendance(c, false)
}

func (h *Handler) setAttendance(c *gin.Context, attended bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		httputil.RespondWithValidationError(c, err)
		return
	}

	acc, err := h.service.SetAttendance(c.Request.Context(), id, attended)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, acc)
}

func (h *Handler) DeleteAcceptedAppointment(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		httputil.RespondWithValidationError(c, err)
		return
	}

	if err := h.service.DeleteAcceptedAppointment(c.Request.Context(), id); err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithMessage(c, "Accepted appointment deleted successfully")
}
