package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barbershop-booking/internal/apperr"
	domainBarber "github.com/BruksfildServices01/barbershop-booking/internal/domain/barber"
	"github.com/BruksfildServices01/barbershop-booking/internal/httperr"
	"github.com/BruksfildServices01/barbershop-booking/internal/httpresp"
	"github.com/BruksfildServices01/barbershop-booking/internal/timezone"
	"github.com/BruksfildServices01/barbershop-booking/internal/usecase/barber"
	"github.com/BruksfildServices01/barbershop-booking/internal/usecase/booking"
	"github.com/BruksfildServices01/barbershop-booking/internal/usecase/catalog"
)

////////////////////////////////////////////////////////
// HANDLER
////////////////////////////////////////////////////////

type PublicHandler struct {
	barbers  *barber.ListPublicBarbers
	slots    *booking.GetAvailability
	services *catalog.ListServices
	clock    timezone.Clock
}

func NewPublicHandler(
	barbers *barber.ListPublicBarbers,
	slots *booking.GetAvailability,
	services *catalog.ListServices,
	clock timezone.Clock,
) *PublicHandler {
	return &PublicHandler{
		barbers:  barbers,
		slots:    slots,
		services: services,
		clock:    clock,
	}
}

var errInvalidFeatured = apperr.Validation("invalid_featured", "featured must be true or false")

////////////////////////////////////////////////////////
// BARBERS
////////////////////////////////////////////////////////

func (h *PublicHandler) ListBarbers(c *gin.Context) {
	var filter domainBarber.ListFilter

	if raw := c.Query("featured"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			httperr.FromError(c, errInvalidFeatured)
			return
		}
		filter.Featured = &v
	}

	list, err := h.barbers.Execute(c.Request.Context(), filter)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.List(c, list)
}

////////////////////////////////////////////////////////
// AVAILABILITY
////////////////////////////////////////////////////////

func (h *PublicHandler) Availability(c *gin.Context) {
	barberID, err := uuidParam(c, "id")
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	date, err := parseDateIn(h.clock, c.Query("date"))
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	serviceID, err := optionalUUID(c.Query("service_id"))
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	slots, err := h.slots.Execute(c.Request.Context(), booking.AvailabilityInput{
		BarberID:  barberID,
		Date:      date,
		ServiceID: serviceID,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.List(c, slots)
}

////////////////////////////////////////////////////////
// SERVICES
////////////////////////////////////////////////////////

func (h *PublicHandler) ListServices(c *gin.Context) {
	list, err := h.services.Execute(c.Request.Context())
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.List(c, list)
}
