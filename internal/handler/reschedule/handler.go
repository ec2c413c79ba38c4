package reschedule

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/KurtMante/clinic-BE/internal/model"
	"github.com/KurtMante/clinic-BE/internal/service/reschedule"
	"github.com/KurtMante/clinic-BE/pkg/httputil"
)

type Handler struct {
	service *reschedule.Service
}

func NewHandler(service *reschedule.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	reschedules := r.Group("/reschedules")
	{
		reschedules.POST("", h.CreateReschedule)
		reschedules.GET("", h.ListReschedules)
		reschedules.GET("/:id", h.GetReschedule)
		reschedules.GET("/patient/:patientId", h.ListReschedulesByPatient)
		reschedules.PUT("/:id", h.UpdateReschedule)
		reschedules.DELETE("/:id", h.DeleteReschedule)
	}
}

func (h *Handler) CreateReschedule(c *gin.Context) {
	var req model.CreateRescheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithValidationError(c, err)
		return
	}

	res, err := h.service.CreateReschedule(c.Request.Context(), &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithCreated(c, res)
}

func (h *Handler) GetReschedule(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		httputil.RespondWithValidationError(c, err)
		return
	}

	res, err := h.service.GetReschedule(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, res)
}

func (h *Handler) ListReschedules(c *gin.Context) {
	reschedules, err := h.service.ListReschedules(c.Request.Context())
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, reschedules)
}

func (h *Handler) ListReschedulesByPatient(c *gin.Context) {
	patientID, err := strconv.ParseInt(c.Param("patientId"), 10, 64)
	if err != nil {
		httputil.RespondWithValidationError(c, err)
		return
	}

	reschedules, err := h.service.ListReschedulesByPatient(c.Request.Context(), patientID)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, reschedules)
}

func (h *Handler) UpdateReschedule(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		httputil.RespondWithValidationError(c, err)
		return
	}

	var req model.UpdateRescheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithValidationError(c, err)
		return
	}

	res, err := h.service.UpdateReschedule(c.Request.Context(), id, &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, res)
}

func (h *Handler) DeleteReschedule(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		httputil.RespondWithValidationError(c, err)
		return
	}

	if err := h.service.DeleteReschedule(c.Request.Context(), id); err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithMessage(c, "Reschedule request deleted successfully")
}
