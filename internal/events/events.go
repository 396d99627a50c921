// Package events carries record change notifications to the message brokers.
package events

import (
	"context"
	"errors"
	"sync"
	"time"
)

const (
	EntityStudent = "student"
	EntitySubject = "subject"
	EntityClass   = "class"

	ActionCreated         = "created"
	ActionUpdated         = "updated"
	ActionDeleted         = "deleted"
	ActionStudentEnrolled = "student_enrolled"
	ActionStudentRemoved  = "student_removed"
)

// Event describes one change to a stored record.
type Event struct {
	Entity string    `json:"entity"`
	Action string    `json:"action"`
	ID     string    `json:"id"`
	Code   string    `json:"code,omitempty"`
	Ref    string    `json:"ref,omitempty"`
	At     time.Time `json:"at"`
}

func New(entity, action, id, code string) Event {
	return Event{
		Entity: entity,
		Action: action,
		ID:     id,
		Code:   code,
		At:     time.Now().UTC(),
	}
}

// Key is used for partitioning; events of one record stay ordered.
func (e Event) Key() string {
	return e.Entity + ":" + e.ID
}

// Publisher delivers events. Implementations log their own failures; callers
// treat delivery as best effort.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

type noop struct{}

// Noop is used when no broker is configured.
func Noop() Publisher { return noop{} }

func (noop) Publish(context.Context, Event) error { return nil }
func (noop) Close() error                         { return nil }

type multi []Publisher

// Multi fans an event out to every publisher and joins their errors.
func Multi(publishers ...Publisher) Publisher {
	switch len(publishers) {
	case 0:
		return Noop()
	case 1:
		return publishers[0]
	}
	return multi(publishers)
}

func (m multi) Publish(ctx context.Context, event Event) error {
	var errs []error
	for _, p := range m {
		if err := p.Publish(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (m multi) Close() error {
	var errs []error
	for _, p := range m {
		if err := p.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Recorder keeps published events in memory.
type Recorder struct {
	mu     sync.Mutex
	Events []Event
}

func (r *Recorder) Publish(_ context.Context, event Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Events = append(r.Events, event)
	return nil
}

func (r *Recorder) Close() error { return nil }

// Actions lists the recorded entity/action pairs, e.g. "student/created".
func (r *Recorder) Actions() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.Events))
	for _, e := range r.Events {
		out = append(out, e.Entity+"/"+e.Action)
	}
	return out
}
