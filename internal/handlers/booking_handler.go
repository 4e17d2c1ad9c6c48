package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	domain "github.com/BruksfildServices01/barbershop-booking/internal/domain/booking"
	"github.com/BruksfildServices01/barbershop-booking/internal/dto"
	"github.com/BruksfildServices01/barbershop-booking/internal/httperr"
	"github.com/BruksfildServices01/barbershop-booking/internal/httpresp"
	"github.com/BruksfildServices01/barbershop-booking/internal/middleware"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
	"github.com/BruksfildServices01/barbershop-booking/internal/timezone"
	"github.com/BruksfildServices01/barbershop-booking/internal/usecase/booking"
)

// ======================================================
// HANDLER
// ======================================================

type BookingHandler struct {
	create     *booking.CreateBooking
	transition *booking.TransitionBooking
	get        *booking.GetBooking
	purge      *booking.PurgeBooking
	list       *booking.ListBookings
	clock      timezone.Clock
}

func NewBookingHandler(
	create *booking.CreateBooking,
	transition *booking.TransitionBooking,
	get *booking.GetBooking,
	purge *booking.PurgeBooking,
	list *booking.ListBookings,
	clock timezone.Clock,
) *BookingHandler {
	return &BookingHandler{
		create:     create,
		transition: transition,
		get:        get,
		purge:      purge,
		list:       list,
		clock:      clock,
	}
}

// ======================================================
// REQUESTS / RESPONSES
// ======================================================

type CreateBookingRequest struct {
	BarberID   uuid.UUID `json:"barber_id" binding:"required"`
	ServiceID  uuid.UUID `json:"service_id" binding:"required"`
	Start      string    `json:"start" binding:"required"`
	CustomerID string    `json:"customer_id"`
	Notes      string    `json:"notes"`
}

type TransitionRequest struct {
	Status        string `json:"status" binding:"required"`
	PaymentMethod string `json:"payment_method"`
	Reason        string `json:"reason"`
}

type BookingResponse struct {
	*models.Booking
	AllowedTransitions []domain.Status `json:"allowed_transitions"`
}

// ======================================================
// CREATE
// ======================================================

func (h *BookingHandler) Create(c *gin.Context) {
	a, _ := middleware.ActorFrom(c)

	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.FromError(c, bindError(err))
		return
	}

	start, err := parseInstantIn(h.clock, req.Start)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	customerID, err := optionalUUID(req.CustomerID)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	b, err := h.create.Execute(c.Request.Context(), a, booking.CreateInput{
		BarberID:   req.BarberID,
		ServiceID:  req.ServiceID,
		Start:      start,
		CustomerID: customerID,
		Notes:      req.Notes,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.Created(c, b)
}

// ======================================================
// GET
// ======================================================

func (h *BookingHandler) Get(c *gin.Context) {
	a, _ := middleware.ActorFrom(c)

	id, err := uuidParam(c, "id")
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	b, next, err := h.get.Execute(c.Request.Context(), a, id)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	if next == nil {
		next = []domain.Status{}
	}
	httpresp.OK(c, BookingResponse{Booking: b, AllowedTransitions: next})
}

// ======================================================
// STATUS
// ======================================================

func (h *BookingHandler) UpdateStatus(c *gin.Context) {
	a, _ := middleware.ActorFrom(c)

	id, err := uuidParam(c, "id")
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	var req TransitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.FromError(c, bindError(err))
		return
	}

	b, err := h.transition.Execute(c.Request.Context(), a, booking.TransitionInput{
		BookingID:     id,
		Status:        req.Status,
		PaymentMethod: req.PaymentMethod,
		Reason:        req.Reason,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, b)
}

// ======================================================
// PURGE
// ======================================================

func (h *BookingHandler) Delete(c *gin.Context) {
	a, _ := middleware.ActorFrom(c)

	id, err := uuidParam(c, "id")
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	if err := h.purge.Execute(c.Request.Context(), a, id); err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.NoContent(c)
}

// ======================================================
// LIST (by date or by month)
// ======================================================

func (h *BookingHandler) ListForBarber(c *gin.Context) {
	a, _ := middleware.ActorFrom(c)
	ctx := c.Request.Context()

	barberID, err := uuidParam(c, "id")
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	var out []models.Booking

	if c.Query("year") != "" || c.Query("month") != "" {
		year, month, err := parseYearMonth(c.Query("year"), c.Query("month"))
		if err != nil {
			httperr.FromError(c, err)
			return
		}
		out, err = h.list.ByMonth(ctx, a, barberID, year, month)
		if err != nil {
			httperr.FromError(c, err)
			return
		}
	} else {
		date := timezone.StartOfDay(h.clock.Now())
		if raw := c.Query("date"); raw != "" {
			if date, err = parseDateIn(h.clock, raw); err != nil {
				httperr.FromError(c, err)
				return
			}
		}
		out, err = h.list.ByDate(ctx, a, barberID, date)
		if err != nil {
			httperr.FromError(c, err)
			return
		}
	}

	httpresp.List(c, dto.FromBookings(out))
}
