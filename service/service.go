// Package service holds the scheduling rules: conflict detection, the lifecycle
// of sessions, movies, theaters and addresses, the automatic scheduler and the
// catalog importer. Every rule violation is returned as an *Error.
package service

import (
	"cinema_scheduler/events"
	"cinema_scheduler/store"
	"context"
	"time"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"
)

const (
	DefaultSessionTake = 20
	DefaultMovieTake   = 25
	DefaultListTake    = 50
)

type Options struct {
	// GracePeriod is how long after its start a session still counts as upcoming.
	GracePeriod  time.Duration
	ScheduleDays int
	WindowMonths int
	Slots        []string
	SkipPercent  int
}

func DefaultOptions() Options {
	return Options{
		GracePeriod:  20 * time.Minute,
		ScheduleDays: 8,
		WindowMonths: 2,
		Slots:        []string{"12:00", "14:00", "15:30", "17:30", "20:00", "21:00"},
		SkipPercent:  20,
	}
}

type deps struct {
	store  store.Store
	clock  clockwork.Clock
	events events.Publisher
	log    *zap.Logger
}

func newDeps(st store.Store, clock clockwork.Clock, pub events.Publisher, log *zap.Logger) deps {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if pub == nil {
		pub = events.Nop{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return deps{store: st, clock: clock, events: pub, log: log}
}

func (d deps) emit(ctx context.Context, eventType string, payload any) {
	err := d.events.Publish(ctx, events.Event{Type: eventType, OccurredAt: d.clock.Now(), Payload: payload})
	if err != nil {
		d.log.Warn("event not published", zap.String("type", eventType), zap.Error(err))
	}
}
