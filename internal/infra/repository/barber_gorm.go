package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/barbershop-booking/internal/domain/barber"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
	"github.com/BruksfildServices01/barbershop-booking/internal/txmanager"
)

// featuredLockKey names the advisory lock guarding the featured set. Any
// constant works as long as every writer uses the same one.
const featuredLockKey int64 = 0x6665617475726564

type BarberGormRepository struct {
	db *gorm.DB
}

func NewBarberGormRepository(db *gorm.DB) *BarberGormRepository {
	return &BarberGormRepository{db: db}
}

// --------------------------------------------------
// Barber
// --------------------------------------------------

func (r *BarberGormRepository) GetBarber(
	ctx context.Context,
	id uuid.UUID,
) (*models.Barber, error) {
	return r.first(txmanager.Executor(ctx, r.db).Where("id = ?", id))
}

func (r *BarberGormRepository) GetBarberByUserID(
	ctx context.Context,
	userID uuid.UUID,
) (*models.Barber, error) {
	return r.first(txmanager.Executor(ctx, r.db).Where("user_id = ?", userID))
}

func (r *BarberGormRepository) LockBarber(
	ctx context.Context,
	id uuid.UUID,
) (*models.Barber, error) {
	return r.first(
		txmanager.Executor(ctx, r.db).
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", id),
	)
}

func (r *BarberGormRepository) first(q *gorm.DB) (*models.Barber, error) {
	var b models.Barber
	err := q.First(&b).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, barber.ErrBarberNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get barber: %w", err)
	}
	return &b, nil
}

func (r *BarberGormRepository) UpdateBarberFlags(
	ctx context.Context,
	b *models.Barber,
) error {

	err := txmanager.Executor(ctx, r.db).
		Model(&models.Barber{}).
		Where("id = ?", b.ID).
		Updates(map[string]any{
			"featured": b.Featured,
			"active":   b.Active,
		}).Error

	if err != nil {
		return fmt.Errorf("update barber flags: %w", err)
	}
	return nil
}

func (r *BarberGormRepository) ListActiveBarbers(
	ctx context.Context,
	filter barber.ListFilter,
) ([]models.Barber, error) {

	q := txmanager.Executor(ctx, r.db).
		Preload("WorkingHours", func(db *gorm.DB) *gorm.DB {
			return db.Order("weekday ASC")
		}).
		Where("active = ?", true)

	if filter.Featured != nil {
		q = q.Where("featured = ?", *filter.Featured)
	}

	var out []models.Barber
	if err := q.Order("name ASC").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list barbers: %w", err)
	}
	return out, nil
}

// --------------------------------------------------
// Featured set
// --------------------------------------------------

func (r *BarberGormRepository) LockFeaturedSet(ctx context.Context) error {
	if !txmanager.InTx(ctx) {
		return errors.New("featured set lock requires a transaction")
	}
	if err := txmanager.Executor(ctx, r.db).
		Exec("SELECT pg_advisory_xact_lock(?)", featuredLockKey).Error; err != nil {
		return fmt.Errorf("lock featured set: %w", err)
	}
	return nil
}

func (r *BarberGormRepository) CountFeatured(
	ctx context.Context,
	excluding uuid.UUID,
) (int64, error) {

	var count int64
	if err := txmanager.Executor(ctx, r.db).
		Model(&models.Barber{}).
		Where("featured = ? AND active = ? AND id <> ?", true, true, excluding).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count featured barbers: %w", err)
	}
	return count, nil
}

// --------------------------------------------------
// Working hours
// --------------------------------------------------

func (r *BarberGormRepository) ListWorkingHours(
	ctx context.Context,
	barberID uuid.UUID,
) ([]models.WorkingHours, error) {

	var out []models.WorkingHours
	if err := txmanager.Executor(ctx, r.db).
		Where("barber_id = ?", barberID).
		Order("weekday ASC").
		Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list working hours: %w", err)
	}
	return out, nil
}

// GetWorkingHours returns nil without error when the weekday has no row.
func (r *BarberGormRepository) GetWorkingHours(
	ctx context.Context,
	barberID uuid.UUID,
	weekday int,
) (*models.WorkingHours, error) {

	var wh models.WorkingHours
	err := txmanager.Executor(ctx, r.db).
		Where("barber_id = ? AND weekday = ?", barberID, weekday).
		First(&wh).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get working hours: %w", err)
	}
	return &wh, nil
}

func (r *BarberGormRepository) ReplaceWorkingHours(
	ctx context.Context,
	barberID uuid.UUID,
	rows []models.WorkingHours,
) error {

	tx := txmanager.Executor(ctx, r.db)

	if err := tx.Where("barber_id = ?", barberID).
		Delete(&models.WorkingHours{}).Error; err != nil {
		return fmt.Errorf("clear working hours: %w", err)
	}

	if len(rows) == 0 {
		return nil
	}

	for i := range rows {
		rows[i].BarberID = barberID
		if rows[i].ID == uuid.Nil {
			rows[i].ID = uuid.New()
		}
	}

	if err := tx.Create(&rows).Error; err != nil {
		return fmt.Errorf("insert working hours: %w", err)
	}
	return nil
}

// Compile-time check
var _ barber.Repository = (*BarberGormRepository)(nil)
