package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/barbershop-booking/internal/models"
)

// BookingListDTO is one row of a barber's calendar.
type BookingListDTO struct {
	ID            uuid.UUID `json:"id"`
	StartTime     time.Time `json:"start_time"`
	EndTime       time.Time `json:"end_time"`
	Status        string    `json:"status"`
	CustomerID    uuid.UUID `json:"customer_id"`
	CustomerName  string    `json:"customer_name"`
	ServiceName   string    `json:"service_name"`
	Price         float64   `json:"price"`
	TotalRevenue  *float64  `json:"total_revenue,omitempty"`
	PaymentMethod *string   `json:"payment_method,omitempty"`
	Notes         string    `json:"notes,omitempty"`
}

func FromBooking(b models.Booking) BookingListDTO {
	out := BookingListDTO{
		ID:            b.ID,
		StartTime:     b.StartTime,
		EndTime:       b.EndTime,
		Status:        b.Status,
		CustomerID:    b.CustomerID,
		Price:         b.Price,
		TotalRevenue:  b.TotalRevenue,
		PaymentMethod: b.PaymentMethod,
		Notes:         b.Notes,
	}
	if b.Customer != nil {
		out.CustomerName = b.Customer.Name
	}
	if b.Service != nil {
		out.ServiceName = b.Service.Name
	}
	return out
}

func FromBookings(bs []models.Booking) []BookingListDTO {
	out := make([]BookingListDTO, 0, len(bs))
	for _, b := range bs {
		out = append(out, FromBooking(b))
	}
	return out
}
