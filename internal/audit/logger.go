package audit

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barbershop-booking/internal/models"
)

// Store persists audit entries.
type Store interface {
	SaveAuditLog(ctx context.Context, entry *models.AuditLog) error
}

type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) SaveAuditLog(ctx context.Context, entry *models.AuditLog) error {
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	return s.db.WithContext(ctx).Create(entry).Error
}

type Logger struct {
	store Store
}

func New(store Store) *Logger {
	return &Logger{store: store}
}

func (l *Logger) Log(ctx context.Context, ev Event) error {
	var metaJSON string
	if ev.Metadata != nil {
		if b, err := json.Marshal(ev.Metadata); err == nil {
			metaJSON = string(b)
		}
	}

	entry := models.AuditLog{
		ActorID:   ev.ActorID,
		ActorRole: ev.ActorRole,
		Action:    ev.Action,
		Entity:    ev.Entity,
		EntityID:  ev.EntityID,
		Metadata:  metaJSON,
	}

	return l.store.SaveAuditLog(ctx, &entry)
}

// Query filters the audit trail. Zero fields match everything.
type Query struct {
	Action string
	Entity string
	From   time.Time
	To     time.Time
	Limit  int
	Offset int
}

// Matches applies the filter to a single entry, for stores without a query
// engine.
func (q Query) Matches(e models.AuditLog) bool {
	if q.Action != "" && e.Action != q.Action {
		return false
	}
	if q.Entity != "" && e.Entity != q.Entity {
		return false
	}
	if !q.From.IsZero() && e.CreatedAt.Before(q.From) {
		return false
	}
	if !q.To.IsZero() && !e.CreatedAt.Before(q.To) {
		return false
	}
	return true
}

// Reader lists audit entries newest first along with the unpaginated total.
type Reader interface {
	ListAuditLogs(ctx context.Context, q Query) ([]models.AuditLog, int64, error)
}

func (s *GormStore) ListAuditLogs(ctx context.Context, q Query) ([]models.AuditLog, int64, error) {
	db := s.db.WithContext(ctx).Model(&models.AuditLog{})

	if q.Action != "" {
		db = db.Where("action = ?", q.Action)
	}
	if q.Entity != "" {
		db = db.Where("entity = ?", q.Entity)
	}
	if !q.From.IsZero() {
		db = db.Where("created_at >= ?", q.From)
	}
	if !q.To.IsZero() {
		db = db.Where("created_at < ?", q.To)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if q.Limit > 0 {
		db = db.Limit(q.Limit).Offset(q.Offset)
	}

	var logs []models.AuditLog
	if err := db.Order("created_at DESC").Find(&logs).Error; err != nil {
		return nil, 0, err
	}

	return logs, total, nil
}
