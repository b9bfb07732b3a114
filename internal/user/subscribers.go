package user

import (
	"context"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/samber/lo"

	"github.com/rise-and-shine/cqrskit/event"
	"github.com/rise-and-shine/cqrskit/logger"
)

// WelcomeNotifier greets newly created users. Delivery is a log line; a real
// mailer would plug in here.
type WelcomeNotifier struct {
	logger logger.Logger
	sent   atomic.Int64
}

func NewWelcomeNotifier(log logger.Logger) *WelcomeNotifier {
	return &WelcomeNotifier{logger: log.Named("user.welcome")}
}

func (n *WelcomeNotifier) Subscribe(bus *event.Bus) {
	bus.Register(EventCreated, event.NewHandler(n.notify))
}

// Sent returns how many welcome notifications were sent.
func (n *WelcomeNotifier) Sent() int64 {
	return n.sent.Load()
}

func (n *WelcomeNotifier) notify(ctx context.Context, e UserCreated) error {
	n.logger.WithContext(ctx).With(
		"user_id", e.AggregateID(),
		"email", e.Email,
	).Info("sending welcome notification")

	n.sent.Add(1)
	return nil
}

// AuditEntry is one recorded user event.
type AuditEntry struct {
	EventID     string    `json:"event_id"`
	EventType   string    `json:"event_type"`
	AggregateID string    `json:"aggregate_id"`
	OccurredAt  time.Time `json:"occurred_at"`
}

// AuditTrail records every user event in memory.
type AuditTrail struct {
	mu      sync.RWMutex
	entries []AuditEntry
}

func NewAuditTrail() *AuditTrail {
	return &AuditTrail{}
}

func (a *AuditTrail) Subscribe(bus *event.Bus) {
	for _, t := range EventTypes {
		bus.Register(t, event.HandlerFunc(a.record))
	}
}

func (a *AuditTrail) record(_ context.Context, e event.Event) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.entries = append(a.entries, AuditEntry{
		EventID:     e.EventID(),
		EventType:   e.EventType(),
		AggregateID: e.AggregateID(),
		OccurredAt:  e.OccurredAt(),
	})
	return nil
}

// Entries returns all entries ordered by occurrence.
func (a *AuditTrail) Entries() []AuditEntry {
	a.mu.RLock()
	entries := slices.Clone(a.entries)
	a.mu.RUnlock()

	// handlers run concurrently, so append order is not occurrence order
	slices.SortStableFunc(entries, func(x, y AuditEntry) int {
		return x.OccurredAt.Compare(y.OccurredAt)
	})
	return entries
}

// For returns the entries of one user.
func (a *AuditTrail) For(userID string) []AuditEntry {
	return lo.Filter(a.Entries(), func(e AuditEntry, _ int) bool {
		return e.AggregateID == userID
	})
}

// Stats is a snapshot of user counters.
type Stats struct {
	Total    int64 `json:"total"`
	Active   int64 `json:"active"`
	Inactive int64 `json:"inactive"`
}

// Statistics keeps active and inactive user counters up to date from events.
type Statistics struct {
	active   atomic.Int64
	inactive atomic.Int64
}

func NewStatistics() *Statistics {
	return &Statistics{}
}

func (s *Statistics) Subscribe(bus *event.Bus) {
	bus.Register(EventCreated, event.NewHandler(func(context.Context, UserCreated) error {
		s.active.Add(1)
		return nil
	}))
	bus.Register(EventDeactivated, event.NewHandler(func(context.Context, UserDeactivated) error {
		s.active.Add(-1)
		s.inactive.Add(1)
		return nil
	}))
	bus.Register(EventActivated, event.NewHandler(func(context.Context, UserActivated) error {
		s.inactive.Add(-1)
		s.active.Add(1)
		return nil
	}))
	bus.Register(EventDeleted, event.NewHandler(func(_ context.Context, e UserDeleted) error {
		if e.WasActive {
			s.active.Add(-1)
		} else {
			s.inactive.Add(-1)
		}
		return nil
	}))
}

func (s *Statistics) Snapshot() Stats {
	active, inactive := s.active.Load(), s.inactive.Load()
	return Stats{Total: active + inactive, Active: active, Inactive: inactive}
}
