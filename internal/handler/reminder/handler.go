package reminder

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/KurtMante/clinic-BE/internal/model"
	"github.com/KurtMante/clinic-BE/internal/service/reminder"
	"github.com/KurtMante/clinic-BE/pkg/httputil"
)

type Handler struct {
	service *reminder.Service
}

func NewHandler(service *reminder.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	reminders := r.Group("/reminders")
	{
		reminders.POST("", h.CreateReminder)
		reminders.GET("", h.ListReminders)
		reminders.GET("/:id", h.GetReminder)
		reminders.GET("/patient/:patientId", h.ListRemindersByPatient)
		reminders.GET("/patient/:patientId/unread", h.ListUnreadRemindersByPatient)
		reminders.PUT("/:id/read", h.MarkAsRead)
		reminders.DELETE("/:id", h.DeleteReminder)
	}
}

func (h *Handler) CreateReminder(c *gin.Context) {
	var req model.CreateReminderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithValidationError(c, err)
		return
	}

	rem, err := h.service.CreateReminder(c.Request.Context(), &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithCreated(c, rem)
}

func (h *Handler) GetReminder(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		httputil.RespondWithValidationError(c, err)
		return
	}

	rem, err := h.service.GetReminder(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, rem)
}

func (h *Handler) ListReminders(c *gin.Context) {
	reminders, err := h.service.ListReminders(c.Request.Context())
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, reminders)
}

func (h *Handler) ListRemindersByPatient(c *gin.Context) {
	patientID, err := strconv.ParseInt(c.Param("patientId"), 10, 64)
	if err != nil {
		httputil.RespondWithValidationError(c, err)
		return
	}

	reminders, err := h.service.ListRemindersByPatient(c.Request.Context(), patientID)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, reminders)
}

func (h *Handler) ListUnreadRemindersByPatient(c *gin.Context) {
	patientID, err := strconv.ParseInt(c.Param("patientId"), 10, 64)
	if err != nil {
		httputil.RespondWithValidationError(c, err)
		return
	}

	reminders, err := h.service.ListUnreadRemindersByPatient(c.Request.Context(), patientID)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, reminders)
}

func (h *Handler) MarkAsRead(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		httputil.RespondWithValidationError(c, err)
		return
	}

	rem, err := h.service.MarkAsRead(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, rem)
}

func (h *Handler) DeleteReminder(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		httputil.RespondWithValidationError(c, err)
		return
	}

	if err := h.service.DeleteReminder(c.Request.Context(), id); err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithMessage(c, "Reminder deleted successfully")
}
