package testutil

import (
	"context"
	"sync"

	"github.com/assurly/assurly/internal/audit"
	"github.com/assurly/assurly/internal/notification"
	"github.com/assurly/assurly/internal/types"
)

var _ notification.Publisher = (*InMemoryNotificationSink)(nil)

// InMemoryNotificationSink captures published notifications so tests
// can assert on exactly what was sent.
type InMemoryNotificationSink struct {
	mu            sync.RWMutex
	notifications []*types.Notification
}

// NewInMemoryNotificationSink creates a capturing notification sink
func NewInMemoryNotificationSink() *InMemoryNotificationSink {
	return &InMemoryNotificationSink{
		notifications: make([]*types.Notification, 0),
	}
}

func (s *InMemoryNotificationSink) Publish(ctx context.Context, n *types.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notifications = append(s.notifications, n)
	return nil
}

func (s *InMemoryNotificationSink) Close() error {
	return nil
}

// Published returns every captured notification in publish order
func (s *InMemoryNotificationSink) Published() []*types.Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*types.Notification, len(s.notifications))
	copy(result, s.notifications)
	return result
}

// PublishedOfType returns captured notifications of the given type
func (s *InMemoryNotificationSink) PublishedOfType(nType types.NotificationType) []*types.Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*types.Notification
	for _, n := range s.notifications {
		if n.Type == nType {
			result = append(result, n)
		}
	}
	return result
}

// Clear drops all captured notifications
func (s *InMemoryNotificationSink) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notifications = make([]*types.Notification, 0)
}

var _ audit.Publisher = (*InMemoryAuditSink)(nil)

// InMemoryAuditSink captures audit entries for assertions
type InMemoryAuditSink struct {
	mu      sync.RWMutex
	entries []*audit.Entry
}

// NewInMemoryAuditSink creates a capturing audit sink
func NewInMemoryAuditSink() *InMemoryAuditSink {
	return &InMemoryAuditSink{
		entries: make([]*audit.Entry, 0),
	}
}

func (s *InMemoryAuditSink) Record(ctx context.Context, entry *audit.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, entry)
	return nil
}

func (s *InMemoryAuditSink) Close() error {
	return nil
}

// Entries returns every captured audit entry in record order
func (s *InMemoryAuditSink) Entries() []*audit.Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*audit.Entry, len(s.entries))
	copy(result, s.entries)
	return result
}

// Clear drops all captured entries
func (s *InMemoryAuditSink) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = make([]*audit.Entry, 0)
}
