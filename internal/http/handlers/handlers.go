// Package handlers exposes the HTTP endpoints of the site: the three
// submission forms, the marketing content reads, the landing page and the
// health check.
//
// Handlers are transport-thin. They decode JSON, delegate to the submission
// gateway, and translate its errors into HTTP results.
package handlers

import (
	"context"
	"time"

	"github.com/tbourn/neuralflow-site/internal/content"
	"github.com/tbourn/neuralflow-site/internal/domain"
	"github.com/tbourn/neuralflow-site/internal/services"
)

// SubmissionService is the gateway contract consumed by the handlers.
// *services.SubmissionService implements it.
type SubmissionService interface {
	SubmitContact(ctx context.Context, in services.ContactInput) (*domain.ContactSubmission, error)
	SubscribeNewsletter(ctx context.Context, email string) (int64, error)
	RequestDemo(ctx context.Context, in services.DemoInput) (*domain.DemoRequest, error)
	Stats(ctx context.Context) (domain.Stats, error)
}

// SiteInfo carries the static facts reported by /health and the landing page.
type SiteInfo struct {
	Service  string // e.g. "NeuralFlow SaaS"
	Platform string // optional deployment label; omitted when empty
	APIBase  string // where the landing page's forms post to
}

// Handlers groups the HTTP endpoints.
type Handlers struct {
	svc     SubmissionService
	catalog *content.Catalog
	info    SiteInfo
	now     func() time.Time
}

// New constructs a Handlers instance.
func New(svc SubmissionService, catalog *content.Catalog, info SiteInfo) *Handlers {
	return &Handlers{svc: svc, catalog: catalog, info: info, now: time.Now}
}
