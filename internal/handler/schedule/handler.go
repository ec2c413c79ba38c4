package schedule

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/KurtMante/clinic-BE/internal/model"
	"github.com/KurtMante/clinic-BE/internal/service/schedule"
	"github.com/KurtMante/clinic-BE/pkg/httputil"
)

type Handler struct {
	service *schedule.Service
}

func NewHandler(service *schedule.Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes exposes the read side; anyone booking needs to see the
// weekly schedule.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/schedules", h.ListSchedules)
}

// RegisterStaffRoutes exposes schedule management.
func (h *Handler) RegisterStaffRoutes(r *gin.RouterGroup) {
	schedules := r.Group("/schedules")
	{
		schedules.PUT("/:weekday", h.UpsertSchedule)
		schedules.PATCH("/:weekday/status", h.MarkStatus)
		schedules.POST("/:weekday/notes", h.AppendNote)
	}
}

func (h *Handler) ListSchedules(c *gin.Context) {
	schedules, err := h.service.ListSchedules(c.Request.Context())
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, schedules)
}

func (h *Handler) UpsertSchedule(c *gin.Context) {
	weekday, err := strconv.Atoi(c.Param("weekday"))
	if err != nil {
		httputil.RespondWithValidationError(c, err)
		return
	}

	var req model.UpsertScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithValidationError(c, err)
		return
	}

	sched, err := h.service.UpsertSchedule(c.Request.Context(), weekday, &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, sched)
}

func (h *Handler) MarkStatus(c *gin.Context) {
	weekday, err := strconv.Atoi(c.Param("weekday"))
	if err != nil {
		httputil.RespondWithValidationError(c, err)
		return
	}

	var req model.MarkScheduleStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithValidationError(c, err)
		return
	}

	sched, err := h.service.MarkStatus(c.Request.Context(), weekday, &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, sched)
}

func (h *Handler) AppendNote(c *gin.Context) {
	weekday, err := strconv.Atoi(c.Param("weekday"))
	if err != nil {
		httputil.RespondWithValidationError(c, err)
		return
	}

	var req model.AppendScheduleNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithValidationError(c, err)
		return
	}

	sched, err := h.service.AppendNote(c.Request.Context(), weekday, req.Note)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, sched)
}
