// Package repo – GORM-backed submission store.
//
// GormStore persists submissions so they survive restarts. It is selected
// with STORE_BACKEND=sqlite; the in-memory store remains the default.
//
// Error semantics:
//   - A duplicate newsletter email is detected by the unique index on
//     newsletter_subscriptions.email and returned as ErrDuplicate.
//   - Other DB errors are returned wrapped; the gateway reports them as
//     internal failures.
package repo

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"gorm.io/gorm"

	"github.com/tbourn/neuralflow-site/internal/domain"
)

// GormStore implements the submission store on top of a *gorm.DB.
type GormStore struct {
	db *gorm.DB

	// subMu serializes newsletter appends within this process so the
	// insert and the follow-up count observe the same table state.
	subMu sync.Mutex
}

// NewGormStore wraps db. The schema must already be migrated (AutoMigrate).
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// DB exposes the underlying handle (used for shutdown).
func (s *GormStore) DB() *gorm.DB { return s.db }

// AppendContact inserts c; GORM fills in c.ID.
func (s *GormStore) AppendContact(ctx context.Context, c *domain.ContactSubmission) error {
	if err := s.db.WithContext(ctx).Create(c).Error; err != nil {
		return fmt.Errorf("insert contact: %w", err)
	}
	return nil
}

// AppendDemo inserts d; GORM fills in d.ID.
func (s *GormStore) AppendDemo(ctx context.Context, d *domain.DemoRequest) error {
	if err := s.db.WithContext(ctx).Create(d).Error; err != nil {
		return fmt.Errorf("insert demo request: %w", err)
	}
	return nil
}

// AppendSubscriber inserts sub and returns the new subscriber total. The
// insert and count run in one transaction; a unique violation rolls it
// back and yields ErrDuplicate.
func (s *GormStore) AppendSubscriber(ctx context.Context, sub *domain.NewsletterSubscription) (int64, error) {
	s.subMu.Lock()
	defer s.subMu.Unlock()

	var total int64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(sub).Error; err != nil {
			if isDuplicate(err) {
				return ErrDuplicate
			}
			return err
		}
		return tx.Model(&domain.NewsletterSubscription{}).Count(&total).Error
	})
	if err != nil {
		if errors.Is(err, ErrDuplicate) {
			return 0, ErrDuplicate
		}
		return 0, fmt.Errorf("insert subscriber: %w", err)
	}
	return total, nil
}

// SubscriberExists reports whether email (exact match) is subscribed.
func (s *GormStore) SubscriberExists(ctx context.Context, email string) (bool, error) {
	var n int64
	err := s.db.WithContext(ctx).
		Model(&domain.NewsletterSubscription{}).
		Where("email = ?", email).
		Count(&n).Error
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// ListContacts returns all contact submissions in acceptance order.
func (s *GormStore) ListContacts(ctx context.Context) ([]domain.ContactSubmission, error) {
	var out []domain.ContactSubmission
	err := s.db.WithContext(ctx).Order("id ASC").Find(&out).Error
	return out, err
}

// ListSubscribers returns all subscriptions in acceptance order.
func (s *GormStore) ListSubscribers(ctx context.Context) ([]domain.NewsletterSubscription, error) {
	var out []domain.NewsletterSubscription
	err := s.db.WithContext(ctx).Order("id ASC").Find(&out).Error
	return out, err
}

// ListDemos returns all demo requests in acceptance order.
func (s *GormStore) ListDemos(ctx context.Context) ([]domain.DemoRequest, error) {
	var out []domain.DemoRequest
	err := s.db.WithContext(ctx).Order("id ASC").Find(&out).Error
	return out, err
}

// Counts returns the current row count of each table.
func (s *GormStore) Counts(ctx context.Context) (domain.SubmissionCounts, error) {
	return CountSubmissions(ctx, s.db)
}
