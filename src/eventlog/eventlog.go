// Package eventlog keeps the human-readable event log of a simulation run:
// newest entry first, each tagged with the elevator it concerns or with no
// elevator for fleet-level messages.
package eventlog

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
)

// ElevatorKey is the log attribute carrying an elevator id.
const ElevatorKey = "elevator"

type Entry struct {
	ID         uuid.UUID
	Time       time.Time
	Level      slog.Level
	Message    string
	ElevatorID *int
}

// String renders the entry the way it is shown to a user, e.g.
// "12:00:05 [Elevator 2] Moving Up to floor 6".
func (e Entry) String() string {
	if e.ElevatorID == nil {
		return fmt.Sprintf("%s %s", e.Time.Format(time.TimeOnly), e.Message)
	}
	return fmt.Sprintf("%s [Elevator %d] %s", e.Time.Format(time.TimeOnly), *e.ElevatorID, e.Message)
}

type Store struct {
	mu      sync.Mutex
	entries []Entry // oldest first
	limit   int
	clock   clockwork.Clock
}

// NewStore keeps at most limit entries; limit 0 keeps everything.
func NewStore(limit int, clock clockwork.Clock) *Store {
	return &Store{limit: limit, clock: clock}
}

// add records message. A nil elevatorID marks a fleet-level message.
func (s *Store) add(level slog.Level, message string, elevatorID *int) {
	entry := Entry{
		ID:         uuid.New(),
		Time:       s.clock.Now(),
		Level:      level,
		Message:    message,
		ElevatorID: elevatorID,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, entry)
	if s.limit > 0 && len(s.entries) > s.limit {
		s.entries = slices.Delete(s.entries, 0, len(s.entries)-s.limit)
	}
}

// Entries returns a copy, newest first.
func (s *Store) Entries() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := slices.Clone(s.entries)
	slices.Reverse(out)
	return out
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = nil
}

// Handler adapts the store to slog. Records at or above level become
// entries; an int "elevator" attribute becomes the entry's elevator id.
func (s *Store) Handler(level slog.Leveler) slog.Handler {
	return &handler{store: s, level: level}
}

type handler struct {
	store      *Store
	level      slog.Leveler
	elevatorID *int
	grouped    bool
}

func (h *handler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

func (h *handler) Handle(_ context.Context, r slog.Record) error {
	id := h.elevatorID
	if !h.grouped {
		r.Attrs(func(a slog.Attr) bool {
			if v, ok := elevatorFromAttr(a); ok {
				id = &v
				return false
			}
			return true
		})
	}
	h.store.add(r.Level, r.Message, id)
	return nil
}

func (h *handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 || h.grouped {
		return h
	}
	h2 := *h
	for _, a := range attrs {
		if v, ok := elevatorFromAttr(a); ok {
			h2.elevatorID = &v
		}
	}
	return &h2
}

// Attributes inside a group are not top-level and never carry the id.
func (h *handler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	h2 := *h
	h2.grouped = true
	return &h2
}

func elevatorFromAttr(a slog.Attr) (int, bool) {
	if a.Key != ElevatorKey {
		return 0, false
	}
	v := a.Value.Resolve()
	if v.Kind() != slog.KindInt64 {
		return 0, false
	}
	return int(v.Int64()), true
}
