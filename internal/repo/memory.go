// Package repo implements the submission stores used by the gateway.
//
// Two implementations share one method set:
//   - MemoryStore keeps the three sequences in process memory. It is the
//     default backend and loses everything on restart.
//   - GormStore persists the same records through GORM (pure-Go SQLite).
//
// Both stores are append-only and safe for concurrent use. The newsletter
// append is a uniqueness-checked operation: the existence check and the
// append happen as one unit, so two concurrent signups with the same email
// cannot both succeed.
package repo

import (
	"context"
	"sync"

	"github.com/tbourn/neuralflow-site/internal/domain"
)

// MemoryStore is an in-process, append-only submission store.
//
// Each sequence has its own lock; contact and demo appends never contend
// with newsletter signups. The subscriber email index gives O(1) duplicate
// checks.
type MemoryStore struct {
	contactsMu sync.RWMutex
	contacts   []domain.ContactSubmission

	subsMu  sync.RWMutex
	subs    []domain.NewsletterSubscription
	byEmail map[string]struct{}

	demosMu sync.RWMutex
	demos   []domain.DemoRequest
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{byEmail: make(map[string]struct{})}
}

// AppendContact stores a copy of c and assigns its ID.
func (s *MemoryStore) AppendContact(ctx context.Context, c *domain.ContactSubmission) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.contactsMu.Lock()
	defer s.contactsMu.Unlock()

	c.ID = uint64(len(s.contacts) + 1)
	rec := *c
	rec.Company = cloneString(c.Company)
	s.contacts = append(s.contacts, rec)
	return nil
}

// AppendDemo stores a copy of d and assigns its ID.
func (s *MemoryStore) AppendDemo(ctx context.Context, d *domain.DemoRequest) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.demosMu.Lock()
	defer s.demosMu.Unlock()

	d.ID = uint64(len(s.demos) + 1)
	rec := *d
	rec.Phone = cloneString(d.Phone)
	s.demos = append(s.demos, rec)
	return nil
}

// AppendSubscriber stores sub unless its exact email is already subscribed,
// in which case it returns ErrDuplicate and leaves the store unchanged. On
// success it returns the new subscriber total.
func (s *MemoryStore) AppendSubscriber(ctx context.Context, sub *domain.NewsletterSubscription) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	s.subsMu.Lock()
	defer s.subsMu.Unlock()

	if _, exists := s.byEmail[sub.Email]; exists {
		return int64(len(s.subs)), ErrDuplicate
	}
	sub.ID = uint64(len(s.subs) + 1)
	s.subs = append(s.subs, *sub)
	s.byEmail[sub.Email] = struct{}{}
	return int64(len(s.subs)), nil
}

// SubscriberExists reports whether email (exact match) is subscribed.
func (s *MemoryStore) SubscriberExists(ctx context.Context, email string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	s.subsMu.RLock()
	defer s.subsMu.RUnlock()
	_, ok := s.byEmail[email]
	return ok, nil
}

// ListContacts returns a snapshot of all contact submissions in acceptance order.
func (s *MemoryStore) ListContacts(ctx context.Context) ([]domain.ContactSubmission, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.contactsMu.RLock()
	defer s.contactsMu.RUnlock()
	return append([]domain.ContactSubmission(nil), s.contacts...), nil
}

// ListSubscribers returns a snapshot of all subscriptions in acceptance order.
func (s *MemoryStore) ListSubscribers(ctx context.Context) ([]domain.NewsletterSubscription, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.subsMu.RLock()
	defer s.subsMu.RUnlock()
	return append([]domain.NewsletterSubscription(nil), s.subs...), nil
}

// ListDemos returns a snapshot of all demo requests in acceptance order.
func (s *MemoryStore) ListDemos(ctx context.Context) ([]domain.DemoRequest, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.demosMu.RLock()
	defer s.demosMu.RUnlock()
	return append([]domain.DemoRequest(nil), s.demos...), nil
}

// Counts returns the current length of each sequence.
func (s *MemoryStore) Counts(ctx context.Context) (domain.SubmissionCounts, error) {
	if err := ctx.Err(); err != nil {
		return domain.SubmissionCounts{}, err
	}
	var c domain.SubmissionCounts

	s.contactsMu.RLock()
	c.Contacts = int64(len(s.contacts))
	s.contactsMu.RUnlock()

	s.subsMu.RLock()
	c.Subscribers = int64(len(s.subs))
	s.subsMu.RUnlock()

	s.demosMu.RLock()
	c.Demos = int64(len(s.demos))
	s.demosMu.RUnlock()

	return c, nil
}

// Reset drops every stored submission. Intended for tests.
func (s *MemoryStore) Reset() {
	s.contactsMu.Lock()
	s.contacts = nil
	s.contactsMu.Unlock()

	s.subsMu.Lock()
	s.subs = nil
	s.byEmail = make(map[string]struct{})
	s.subsMu.Unlock()

	s.demosMu.Lock()
	s.demos = nil
	s.demosMu.Unlock()
}

func cloneString(p *string) *string {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
