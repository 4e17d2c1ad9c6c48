package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/BruksfildServices01/barbershop-booking/internal/httperr"
	"github.com/BruksfildServices01/barbershop-booking/internal/httpresp"
	"github.com/BruksfildServices01/barbershop-booking/internal/middleware"
	"github.com/BruksfildServices01/barbershop-booking/internal/usecase/review"
)

type ReviewHandler struct {
	create *review.CreateReview
}

func NewReviewHandler(create *review.CreateReview) *ReviewHandler {
	return &ReviewHandler{create: create}
}

type CreateReviewRequest struct {
	BookingID uuid.UUID `json:"booking_id" binding:"required"`
	Rating    int       `json:"rating" binding:"required"`
	Comment   string    `json:"comment"`
}

func (h *ReviewHandler) Create(c *gin.Context) {
	a, _ := middleware.ActorFrom(c)

	var req CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.FromError(c, bindError(err))
		return
	}

	r, err := h.create.Execute(c.Request.Context(), a, review.CreateInput{
		BookingID: req.BookingID,
		Rating:    req.Rating,
		Comment:   req.Comment,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.Created(c, r)
}
