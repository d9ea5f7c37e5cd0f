// Package events publishes scheduling events for downstream consumers.
// Publishing is best effort: failures are logged and never undo the operation that emitted them.
package events

import (
	"context"
	"time"
)

const (
	SessionCreated    = "session.created"
	SessionCancelled  = "session.cancelled"
	ScheduleGenerated = "schedule.generated"
	MoviesImported    = "movies.imported"
)

type Event struct {
	Type       string    `json:"type"`
	OccurredAt time.Time `json:"occurredAt"`
	Payload    any       `json:"payload"`
}

type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

type Nop struct{}

func (Nop) Publish(context.Context, Event) error { return nil }

// Recorder keeps published events in memory.
type Recorder struct {
	Events []Event
}

func (r *Recorder) Publish(_ context.Context, event Event) error {
	r.Events = append(r.Events, event)
	return nil
}

func (r *Recorder) Types() []string {
	types := make([]string, 0, len(r.Events))
	for _, e := range r.Events {
		types = append(types, e.Type)
	}
	return types
}
