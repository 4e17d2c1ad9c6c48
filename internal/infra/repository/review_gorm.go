package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barbershop-booking/internal/db"
	"github.com/BruksfildServices01/barbershop-booking/internal/domain/review"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
	"github.com/BruksfildServices01/barbershop-booking/internal/txmanager"
)

type ReviewGormRepository struct {
	db *gorm.DB
}

func NewReviewGormRepository(db *gorm.DB) *ReviewGormRepository {
	return &ReviewGormRepository{db: db}
}

func (r *ReviewGormRepository) CreateReview(
	ctx context.Context,
	rv *models.Review,
) error {

	if rv.ID == uuid.Nil {
		rv.ID = uuid.New()
	}

	err := txmanager.Executor(ctx, r.db).Create(rv).Error
	if db.IsUniqueViolation(err) {
		return review.ErrAlreadyReviewed
	}
	if err != nil {
		return fmt.Errorf("create review: %w", err)
	}
	return nil
}

func (r *ReviewGormRepository) ExistsForCustomerBarber(
	ctx context.Context,
	customerID uuid.UUID,
	barberID uuid.UUID,
) (bool, error) {

	var count int64
	if err := txmanager.Executor(ctx, r.db).
		Model(&models.Review{}).
		Where("customer_id = ? AND barber_id = ?", customerID, barberID).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("check review: %w", err)
	}
	return count > 0, nil
}

// Compile-time check
var _ review.Repository = (*ReviewGormRepository)(nil)
