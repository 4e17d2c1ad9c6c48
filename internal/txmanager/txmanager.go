// Package txmanager runs units of work inside one database transaction. The
// open transaction travels in the context so repositories pick it up without
// being handed a *gorm.DB per call.
package txmanager

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barbershop-booking/internal/apperr"
	"github.com/BruksfildServices01/barbershop-booking/internal/db"
	"github.com/BruksfildServices01/barbershop-booking/internal/metrics"
)

// Transactor runs fn atomically: every write made through ctx inside fn
// commits together or not at all.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type txKey struct{}

// Executor returns the transaction carried by ctx, or db bound to ctx.
func Executor(ctx context.Context, gdb *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx
	}
	return gdb.WithContext(ctx)
}

// InTx reports whether ctx carries an open transaction.
func InTx(ctx context.Context) bool {
	_, ok := ctx.Value(txKey{}).(*gorm.DB)
	return ok
}

type GormTransactor struct {
	db          *gorm.DB
	maxAttempts int
	metrics     *metrics.Metrics

	// newBackOff is swapped in tests.
	newBackOff func() backoff.BackOff
}

var _ Transactor = (*GormTransactor)(nil)

func New(gdb *gorm.DB, maxAttempts int, m *metrics.Metrics) *GormTransactor {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	return &GormTransactor{
		db:          gdb,
		maxAttempts: maxAttempts,
		metrics:     m,
		newBackOff:  DefaultBackOff,
	}
}

func DefaultBackOff() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 20 * time.Millisecond
	b.MaxInterval = 500 * time.Millisecond
	b.MaxElapsedTime = 5 * time.Second
	return b
}

// WithinTx joins the transaction already in ctx, if any. Otherwise it opens one
// and retries the whole of fn on transient failures, up to maxAttempts times;
// when they run out the error is reported as unavailable.
func (t *GormTransactor) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if InTx(ctx) {
		return fn(ctx)
	}

	return Retry(ctx, t.maxAttempts, t.newBackOff(), t.metrics, func() error {
		return t.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			return fn(context.WithValue(ctx, txKey{}, tx))
		})
	})
}

// Retry runs op until it succeeds, fails permanently, or maxAttempts transient
// failures have happened.
func Retry(
	ctx context.Context,
	maxAttempts int,
	b backoff.BackOff,
	m *metrics.Metrics,
	op func() error,
) error {
	attempt := 0

	err := backoff.Retry(func() error {
		attempt++

		err := op()
		if err == nil {
			return nil
		}
		if !db.IsTransient(err) {
			return backoff.Permanent(err)
		}

		log.Warn().Err(err).Int("attempt", attempt).Msg("transient database error")
		if attempt < maxAttempts {
			m.TxRetried()
		}
		return err
	}, backoff.WithContext(backoff.WithMaxRetries(b, uint64(maxAttempts-1)), ctx))

	if err != nil && db.IsTransient(err) {
		return apperr.Unavailable(err)
	}
	return err
}
