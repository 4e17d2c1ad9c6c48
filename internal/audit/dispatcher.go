package audit

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/BruksfildServices01/barbershop-booking/internal/domain/actor"
)

type Event struct {
	ActorID   *uuid.UUID
	ActorRole string
	Action    string
	Entity    string
	EntityID  *uuid.UUID
	Metadata  any
}

// NewEvent fills the actor fields from a.
func NewEvent(a actor.Actor, action, entity string, entityID uuid.UUID, metadata any) Event {
	ev := Event{
		ActorRole: string(a.Role),
		Action:    action,
		Entity:    entity,
		Metadata:  metadata,
	}
	if a.ID != uuid.Nil {
		id := a.ID
		ev.ActorID = &id
	}
	if entityID != uuid.Nil {
		ev.EntityID = &entityID
	}
	return ev
}

// Dispatcher writes audit events from a single background worker so request
// paths never wait on them.
type Dispatcher struct {
	logger *Logger
	queue  chan Event

	closeOnce sync.Once
	done      chan struct{}
}

func NewDispatcher(logger *Logger) *Dispatcher {
	d := &Dispatcher{
		logger: logger,
		queue:  make(chan Event, 100),
		done:   make(chan struct{}),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer close(d.done)

	for ev := range d.queue {
		if err := d.logger.Log(context.Background(), ev); err != nil {
			log.Error().Err(err).Str("action", ev.Action).Msg("audit write failed")
		}
	}
}

// Dispatch never blocks; a full queue drops the event with a warning.
func (d *Dispatcher) Dispatch(ev Event) {
	if d == nil {
		return
	}
	select {
	case d.queue <- ev:
	default:
		log.Warn().Str("action", ev.Action).Msg("audit queue full, dropping event")
	}
}

// Close stops accepting events and waits for the queue to drain or ctx to end.
// Dispatch must not be called after Close.
func (d *Dispatcher) Close(ctx context.Context) error {
	d.closeOnce.Do(func() { close(d.queue) })

	select {
	case <-d.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
