package db

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/BruksfildServices01/barbershop-booking/internal/config"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
)

func NewDB(cfg *config.Config) (*gorm.DB, error) {
	logLevel := gormlogger.Warn
	if cfg.Server.Env == "development" {
		logLevel = gormlogger.Info
	}

	db, err := gorm.Open(postgres.Open(cfg.DB.URL), &gorm.Config{
		PrepareStmt: true,
		Logger:      gormlogger.Default.LogMode(logLevel),
		NowFunc:     func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, fmt.Errorf("connecting database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("getting sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.DB.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.DB.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if cfg.DB.AutoMigrate {
		if err := Migrate(db); err != nil {
			return nil, err
		}
	}

	return db, nil
}

// Migrate creates the schema and the calendar exclusion constraint that backs
// the no-overlap rule for pending and confirmed bookings.
func Migrate(db *gorm.DB) error {
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS btree_gist`).Error; err != nil {
		return fmt.Errorf("enabling btree_gist: %w", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Barber{},
		&models.WorkingHours{},
		&models.Service{},
		&models.Booking{},
		&models.Review{},
		&models.AuditLog{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	err := db.Exec(`
		DO $$
		BEGIN
			IF NOT EXISTS (
				SELECT 1 FROM pg_constraint WHERE conname = 'bookings_no_overlap'
			) THEN
				ALTER TABLE bookings
				ADD CONSTRAINT bookings_no_overlap
				EXCLUDE USING gist (
					barber_id WITH =,
					tstzrange(start_time, end_time, '[)') WITH &&
				) WHERE (status IN ('pending', 'confirmed'));
			END IF;
		END $$;
	`).Error
	if err != nil {
		return fmt.Errorf("creating bookings_no_overlap: %w", err)
	}

	log.Info().Msg("database schema migrated")
	return nil
}
