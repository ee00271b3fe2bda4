package events

import (
	"strings"
	"time"
)

// Name is a dotted event name, "<aggregate>.<what happened>", e.g. "booking.requested".
type Name string

// Aggregate is the part before the first dot, or the whole name when there is none.
func (n Name) Aggregate() string {
	s := string(n)
	if i := strings.IndexByte(s, '.'); i > 0 {
		return s[:i]
	}
	return s
}

type DomainEvent interface {
	EventName() Name
	AggregateID() string
	OccurredAt() time.Time
}

// Log collects the events an aggregate raised while handling one command.
type Log struct {
	raised []DomainEvent
}

func (l *Log) Record(evs ...DomainEvent) {
	for _, ev := range evs {
		if ev != nil {
			l.raised = append(l.raised, ev)
		}
	}
}

// Raised reports how many events wait to be drained.
func (l *Log) Raised() int {
	return len(l.raised)
}

// Drain returns the raised events in order and empties the log.
func (l *Log) Drain() []DomainEvent {
	out := l.raised
	l.raised = nil
	return out
}
