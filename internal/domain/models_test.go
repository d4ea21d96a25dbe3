package domain

import (
	"encoding/json"
	"testing"
	"time"

	sqlite "github.com/glebarez/sqlite" // pure-Go SQLite (no CGO)
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newDomainDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:domain_models?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	return db
}

func TestTableNames(t *testing.T) {
	if (ContactSubmission{}).TableName() != "contact_submissions" {
		t.Fatalf("ContactSubmission.TableName() = %q", (ContactSubmission{}).TableName())
	}
	if (NewsletterSubscription{}).TableName() != "newsletter_subscriptions" {
		t.Fatalf("NewsletterSubscription.TableName() = %q", (NewsletterSubscription{}).TableName())
	}
	if (DemoRequest{}).TableName() != "demo_requests" {
		t.Fatalf("DemoRequest.TableName() = %q", (DemoRequest{}).TableName())
	}
}

func TestMigrations_UniqueNewsletterEmail(t *testing.T) {
	db := newDomainDB(t)
	if err := db.AutoMigrate(&ContactSubmission{}, &NewsletterSubscription{}, &DemoRequest{}); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	if !db.Migrator().HasIndex(&NewsletterSubscription{}, "ux_newsletter_email") {
		t.Fatalf("expected unique index ux_newsletter_email")
	}

	now := time.Now().UTC()
	if err := db.Create(&NewsletterSubscription{Email: "a@example.com", SubmittedAt: now}).Error; err != nil {
		t.Fatalf("first insert: %v", err)
	}
	if err := db.Create(&NewsletterSubscription{Email: "a@example.com", SubmittedAt: now}).Error; err == nil {
		t.Fatalf("expected unique violation on duplicate email")
	}
	// Case-sensitive: a different casing is a different subscriber.
	if err := db.Create(&NewsletterSubscription{Email: "A@example.com", SubmittedAt: now}).Error; err != nil {
		t.Fatalf("case variant should be accepted: %v", err)
	}
}

func TestContactSubmission_JSONShape(t *testing.T) {
	ts := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	b, err := json.Marshal(ContactSubmission{ID: 9, Name: "Ada", Email: "ada@example.com", Message: "hi", SubmittedAt: ts})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var got map[string]any
	if err := json.Unmarshal(b, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if _, ok := got["id"]; ok {
		t.Fatalf("id must not be exposed: %s", b)
	}
	if v, ok := got["company"]; !ok || v != nil {
		t.Fatalf("absent company should render as null: %s", b)
	}
	if got["timestamp"] != "2025-01-02T03:04:05Z" {
		t.Fatalf("timestamp = %v", got["timestamp"])
	}
}

func TestDemoRequest_JSONKeys(t *testing.T) {
	phone := "+1 555 0100"
	b, _ := json.Marshal(DemoRequest{Name: "n", Email: "e@x.io", Company: "c", Phone: &phone, Employees: "1-10", UseCase: "bi"})
	var got map[string]any
	_ = json.Unmarshal(b, &got)
	for _, k := range []string{"name", "email", "company", "phone", "employees", "use_case", "timestamp"} {
		if _, ok := got[k]; !ok {
			t.Fatalf("missing key %q in %s", k, b)
		}
	}
}

func TestNewStats(t *testing.T) {
	s := NewStats(
		HeadlineFigures{TotalUsers: "50,000+", CompaniesServed: "1,200+", DataProcessed: "2.5TB", Uptime: "99.99%"},
		SubmissionCounts{Contacts: 3, Subscribers: 2, Demos: 1},
	)
	if s.ContactSubmissions != 3 || s.NewsletterSubscribers != 2 || s.DemoRequests != 1 {
		t.Fatalf("counts not mapped: %+v", s)
	}
	if s.TotalUsers != "50,000+" || s.Uptime != "99.99%" {
		t.Fatalf("figures not mapped: %+v", s)
	}
}
