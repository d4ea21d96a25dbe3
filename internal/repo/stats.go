// Package repo – aggregate queries for the stats read path.
package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/tbourn/neuralflow-site/internal/domain"
)

// CountSubmissions returns the row count of each submission table.
// It runs three lightweight COUNT queries; an empty table counts as 0.
func CountSubmissions(ctx context.Context, db *gorm.DB) (domain.SubmissionCounts, error) {
	var c domain.SubmissionCounts
	q := db.WithContext(ctx)

	if err := q.Model(&domain.ContactSubmission{}).Count(&c.Contacts).Error; err != nil {
		return domain.SubmissionCounts{}, err
	}
	if err := q.Model(&domain.NewsletterSubscription{}).Count(&c.Subscribers).Error; err != nil {
		return domain.SubmissionCounts{}, err
	}
	if err := q.Model(&domain.DemoRequest{}).Count(&c.Demos).Error; err != nil {
		return domain.SubmissionCounts{}, err
	}
	return c, nil
}
