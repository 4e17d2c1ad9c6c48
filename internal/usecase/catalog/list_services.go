package catalog

import (
	"context"

	domain "github.com/BruksfildServices01/barbershop-booking/internal/domain/catalog"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
)

type ListServices struct {
	repo domain.Repository
}

func NewListServices(repo domain.Repository) *ListServices {
	return &ListServices{repo: repo}
}

func (uc *ListServices) Execute(ctx context.Context) ([]models.Service, error) {
	return uc.repo.ListActiveServices(ctx)
}
