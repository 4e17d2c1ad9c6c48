package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barbershop-booking/internal/audit"
	"github.com/BruksfildServices01/barbershop-booking/internal/cache"
	"github.com/BruksfildServices01/barbershop-booking/internal/config"
	"github.com/BruksfildServices01/barbershop-booking/internal/domain/actor"
	domainBarber "github.com/BruksfildServices01/barbershop-booking/internal/domain/barber"
	domainBooking "github.com/BruksfildServices01/barbershop-booking/internal/domain/booking"
	domainCatalog "github.com/BruksfildServices01/barbershop-booking/internal/domain/catalog"
	domainReview "github.com/BruksfildServices01/barbershop-booking/internal/domain/review"
	"github.com/BruksfildServices01/barbershop-booking/internal/handlers"
	"github.com/BruksfildServices01/barbershop-booking/internal/metrics"
	"github.com/BruksfildServices01/barbershop-booking/internal/middleware"
	"github.com/BruksfildServices01/barbershop-booking/internal/timezone"
	"github.com/BruksfildServices01/barbershop-booking/internal/txmanager"
	ucBarber "github.com/BruksfildServices01/barbershop-booking/internal/usecase/barber"
	ucBooking "github.com/BruksfildServices01/barbershop-booking/internal/usecase/booking"
	ucCatalog "github.com/BruksfildServices01/barbershop-booking/internal/usecase/catalog"
	ucReview "github.com/BruksfildServices01/barbershop-booking/internal/usecase/review"
	ucStats "github.com/BruksfildServices01/barbershop-booking/internal/usecase/stats"
)

// Deps are the infrastructure singletons the API is built on.
type Deps struct {
	Tx       txmanager.Transactor
	Bookings domainBooking.Repository
	Barbers  domainBarber.Repository
	Catalog  domainCatalog.Repository
	Reviews  domainReview.Repository

	Cache       cache.TaggedCache
	Invalidator *cache.Invalidator
	Metrics     *metrics.Metrics
	Audit       *audit.Dispatcher
	AuditReader audit.Reader
	Clock       timezone.Clock

	// MetricsHandler serves the scrape endpoint; nil disables it.
	MetricsHandler http.Handler
}

func RegisterRoutes(r *gin.Engine, d Deps, cfg *config.Config) {

	// ======================================================
	// MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.RequestLogger(d.Metrics))
	r.Use(middleware.CORSMiddleware(cfg.Server.CORSOrigins))

	granularity := cfg.SlotGranularity()

	// ======================================================
	// USE CASES: BOOKINGS
	// ======================================================
	createBookingUC := ucBooking.NewCreateBooking(
		d.Tx, d.Bookings, d.Barbers, d.Catalog, d.Clock, granularity, d.Metrics, d.Audit,
	)
	transitionBookingUC := ucBooking.NewTransitionBooking(
		d.Tx, d.Bookings, d.Barbers, d.Clock, d.Metrics, d.Audit,
	)
	getBookingUC := ucBooking.NewGetBooking(d.Bookings, d.Barbers)
	purgeBookingUC := ucBooking.NewPurgeBooking(d.Tx, d.Bookings, d.Audit)
	listBookingsUC := ucBooking.NewListBookings(d.Bookings, d.Barbers, d.Clock)
	availabilityUC := ucBooking.NewGetAvailability(d.Bookings, d.Barbers, d.Catalog, d.Clock, granularity)

	// ======================================================
	// USE CASES: BARBERS
	// ======================================================
	setFeaturedUC := ucBarber.NewSetFeatured(d.Tx, d.Barbers, d.Invalidator, d.Metrics, d.Audit)
	setActiveUC := ucBarber.NewSetActive(d.Tx, d.Barbers, d.Invalidator, d.Audit)
	listBarbersUC := ucBarber.NewListPublicBarbers(d.Barbers, d.Cache, d.Invalidator, cfg.CacheTTL(), d.Metrics)
	getHoursUC := ucBarber.NewGetWorkingHours(d.Barbers)
	updateHoursUC := ucBarber.NewUpdateWorkingHours(d.Tx, d.Barbers, d.Invalidator, d.Audit)

	statsUC := ucStats.NewGetBarberStats(d.Bookings, d.Barbers, d.Clock)
	reviewUC := ucReview.NewCreateReview(d.Tx, d.Bookings, d.Reviews, d.Audit)
	servicesUC := ucCatalog.NewListServices(d.Catalog)

	// ======================================================
	// HANDLERS
	// ======================================================
	bookingHandler := handlers.NewBookingHandler(
		createBookingUC,
		transitionBookingUC,
		getBookingUC,
		purgeBookingUC,
		listBookingsUC,
		d.Clock,
	)
	barberHandler := handlers.NewBarberHandler(setFeaturedUC, setActiveUC, statsUC, d.Clock)
	workingHoursHandler := handlers.NewWorkingHoursHandler(getHoursUC, updateHoursUC)
	publicHandler := handlers.NewPublicHandler(listBarbersUC, availabilityUC, servicesUC, d.Clock)
	reviewHandler := handlers.NewReviewHandler(reviewUC)
	auditLogsHandler := handlers.NewAuditLogsHandler(d.AuditReader, d.Clock)

	// ======================================================
	// OPS
	// ======================================================
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "time": d.Clock.Now().Format(time.RFC3339)})
	})
	if d.MetricsHandler != nil {
		r.GET(cfg.Metrics.Path, gin.WrapH(d.MetricsHandler))
	}

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// PUBLIC
		// ------------------------------
		publicAPI := api.Group("/public")
		{
			publicAPI.GET("/barbers", publicHandler.ListBarbers)
			publicAPI.GET("/barbers/:id/availability", publicHandler.Availability)
			publicAPI.GET("/services", publicHandler.ListServices)
		}

		// ------------------------------
		// AUTHENTICATED
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg.JWT.Secret))
		{
			secured.POST("/bookings", bookingHandler.Create)
			secured.GET("/bookings/:id", bookingHandler.Get)
			secured.PATCH("/bookings/:id/status", bookingHandler.UpdateStatus)
			secured.DELETE("/bookings/:id", middleware.RequireRole(actor.RoleAdmin), bookingHandler.Delete)

			secured.GET("/barbers/:id/bookings", bookingHandler.ListForBarber)
			secured.GET("/barbers/:id/working-hours", workingHoursHandler.Get)
			secured.PUT("/barbers/:id/working-hours", workingHoursHandler.Update)
			secured.GET("/barbers/:id/stats", barberHandler.Stats)

			secured.PATCH("/barbers/:id/featured", middleware.RequireRole(actor.RoleAdmin), barberHandler.SetFeatured)
			secured.PATCH("/barbers/:id/active", middleware.RequireRole(actor.RoleAdmin), barberHandler.SetActive)

			secured.POST("/reviews", reviewHandler.Create)

			if d.AuditReader != nil {
				secured.GET("/audit-logs", middleware.RequireRole(actor.RoleAdmin), auditLogsHandler.List)
			}
		}
	}
}
