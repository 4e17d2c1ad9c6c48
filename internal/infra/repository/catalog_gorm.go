package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barbershop-booking/internal/domain/catalog"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
	"github.com/BruksfildServices01/barbershop-booking/internal/txmanager"
)

type CatalogGormRepository struct {
	db *gorm.DB
}

func NewCatalogGormRepository(db *gorm.DB) *CatalogGormRepository {
	return &CatalogGormRepository{db: db}
}

func (r *CatalogGormRepository) GetService(
	ctx context.Context,
	id uuid.UUID,
) (*models.Service, error) {

	var s models.Service
	err := txmanager.Executor(ctx, r.db).Where("id = ?", id).First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, catalog.ErrServiceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get service: %w", err)
	}
	return &s, nil
}

func (r *CatalogGormRepository) ListActiveServices(ctx context.Context) ([]models.Service, error) {
	var out []models.Service
	if err := txmanager.Executor(ctx, r.db).
		Where("active = ?", true).
		Order("name ASC").
		Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list services: %w", err)
	}
	return out, nil
}

func (r *CatalogGormRepository) GetUser(
	ctx context.Context,
	id uuid.UUID,
) (*models.User, error) {

	var u models.User
	err := txmanager.Executor(ctx, r.db).Where("id = ?", id).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, catalog.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &u, nil
}

// Compile-time check
var _ catalog.Repository = (*CatalogGormRepository)(nil)
