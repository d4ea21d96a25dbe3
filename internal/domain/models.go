// Package domain defines the submission records accepted by the gateway and
// the read-side views built from them. The record types double as GORM
// models so the optional SQL store can persist them unchanged.
package domain

import "time"

// ContactSubmission is a message sent through the contact form.
//
// Fields:
//   - ID: store-assigned sequence number (not exposed over JSON).
//   - Name, Email, Message: required, validated by the gateway.
//   - Company: optional; rendered as null when absent.
//   - SubmittedAt: server-assigned acceptance time (JSON "timestamp").
type ContactSubmission struct {
	ID          uint64    `json:"-"         gorm:"primaryKey;autoIncrement"`
	Name        string    `json:"name"      gorm:"type:varchar(255);not null"`
	Email       string    `json:"email"     gorm:"type:varchar(320);not null;index"`
	Company     *string   `json:"company"   gorm:"type:varchar(255)"`
	Message     string    `json:"message"   gorm:"type:text;not null"`
	SubmittedAt time.Time `json:"timestamp" gorm:"not null;index"`
}

// TableName returns the database table name for ContactSubmission.
func (ContactSubmission) TableName() string { return "contact_submissions" }

// NewsletterSubscription is a newsletter signup. Email is unique across
// all subscriptions, compared as an exact, case-sensitive string.
type NewsletterSubscription struct {
	ID          uint64    `json:"-"         gorm:"primaryKey;autoIncrement"`
	Email       string    `json:"email"     gorm:"type:varchar(320);not null;uniqueIndex:ux_newsletter_email"`
	SubmittedAt time.Time `json:"timestamp" gorm:"not null;index"`
}

// TableName returns the database table name for NewsletterSubscription.
func (NewsletterSubscription) TableName() string { return "newsletter_subscriptions" }

// DemoRequest is a request for a product demo. Employees is a free-text
// bucket such as "1-10"; Phone is optional.
type DemoRequest struct {
	ID          uint64    `json:"-"         gorm:"primaryKey;autoIncrement"`
	Name        string    `json:"name"      gorm:"type:varchar(255);not null"`
	Email       string    `json:"email"     gorm:"type:varchar(320);not null;index"`
	Company     string    `json:"company"   gorm:"type:varchar(255);not null"`
	Phone       *string   `json:"phone"     gorm:"type:varchar(64)"`
	Employees   string    `json:"employees" gorm:"type:varchar(64);not null"`
	UseCase     string    `json:"use_case"  gorm:"type:text;not null"`
	SubmittedAt time.Time `json:"timestamp" gorm:"not null;index"`
}

// TableName returns the database table name for DemoRequest.
func (DemoRequest) TableName() string { return "demo_requests" }

// SubmissionCounts is the current length of each submission sequence.
type SubmissionCounts struct {
	Contacts    int64
	Subscribers int64
	Demos       int64
}

// HeadlineFigures are the marketing numbers shown next to the live counts.
// They are display strings, not derived from any stored data.
type HeadlineFigures struct {
	TotalUsers      string
	CompaniesServed string
	DataProcessed   string
	Uptime          string
}

// Stats is the read-side view returned by GET /api/stats.
type Stats struct {
	TotalUsers            string `json:"total_users"            example:"50,000+"`
	CompaniesServed       string `json:"companies_served"       example:"1,200+"`
	DataProcessed         string `json:"data_processed"         example:"2.5TB"`
	Uptime                string `json:"uptime"                 example:"99.99%"`
	NewsletterSubscribers int64  `json:"newsletter_subscribers" example:"2"`
	DemoRequests          int64  `json:"demo_requests"          example:"1"`
	ContactSubmissions    int64  `json:"contact_submissions"    example:"3"`
}

// NewStats combines headline figures with live counts.
func NewStats(h HeadlineFigures, c SubmissionCounts) Stats {
	return Stats{
		TotalUsers:            h.TotalUsers,
		CompaniesServed:       h.CompaniesServed,
		DataProcessed:         h.DataProcessed,
		Uptime:                h.Uptime,
		NewsletterSubscribers: c.Subscribers,
		DemoRequests:          c.Demos,
		ContactSubmissions:    c.Contacts,
	}
}
