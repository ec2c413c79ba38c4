package router

import (
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"github.com/KurtMante/clinic-BE/internal/handler/accepted"
	"github.com/KurtMante/clinic-BE/internal/handler/appointment"
	"github.com/KurtMante/clinic-BE/internal/handler/health"
	"github.com/KurtMante/clinic-BE/internal/handler/reminder"
	"github.com/KurtMante/clinic-BE/internal/handler/reschedule"
	"github.com/KurtMante/clinic-BE/internal/handler/schedule"
	"github.com/KurtMante/clinic-BE/internal/middleware"
	"github.com/KurtMante/clinic-BE/internal/model"
)

// registerValidators hooks domain enums into gin's binding layer so malformed
// payloads are rejected before they reach a service.
func registerValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterValidation("schedstatus", func(fl validator.FieldLevel) bool {
			return model.ScheduleStatus(fl.Field().String()).Valid()
		})
	}
}

type Config struct {
	RateLimit  rate.Limit
	RateBurst  int
	CORSConfig middleware.CORSConfig
}

type Router struct {
	engine       *gin.Engine
	auth         *middleware.AuthMiddleware
	healthH      *health.Handler
	appointmentH *appointment.Handler
	acceptedH    *accepted.Handler
	scheduleH    *schedule.Handler
	reminderH    *reminder.Handler
	rescheduleH  *reschedule.Handler
}

func NewRouter(
	auth *middleware.AuthMiddleware,
	healthH *health.Handler,
	appointmentH *appointment.Handler,
	acceptedH *accepted.Handler,
	scheduleH *schedule.Handler,
	reminderH *reminder.Handler,
	rescheduleH *reschedule.Handler,
	config Config,
) *Router {
	gin.SetMode(gin.ReleaseMode)
	registerValidators()

	engine := gin.New()
	engine.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.CORS(config.CORSConfig),
	)

	rateLimiter := middleware.NewRateLimiter(config.RateLimit, config.RateBurst)
	engine.Use(rateLimiter.Middleware())

	return &Router{
		engine:       engine,
		auth:         auth,
		healthH:      healthH,
		appointmentH: appointmentH,
		acceptedH:    acceptedH,
		scheduleH:    scheduleH,
		reminderH:    reminderH,
		rescheduleH:  rescheduleH,
	}
}

func (r *Router) Setup() {
	r.engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.engine.Group("/api/v1")

	api.Use(func(c *gin.Context) {
		c.Header("X-API-Version", "1.0")
		c.Next()
	})

	r.healthH.RegisterRoutes(api)

	// Patient-facing routes: booking, reschedule requests, reminders,
	// schedule reads.
	r.appointmentH.RegisterRoutes(api)
	r.rescheduleH.RegisterRoutes(api)
	r.reminderH.RegisterRoutes(api)
	r.scheduleH.RegisterRoutes(api)

	// Staff-only routes: acceptance, attendance, schedule management.
	staff := api.Group("")
	staff.Use(r.auth.RequireStaff())
	r.acceptedH.RegisterRoutes(staff)
	r.scheduleH.RegisterStaffRoutes(staff)
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}
