// Package services – SubmissionService
//
// SubmissionService is the Submission Gateway. Each write operation
// validates its input first and only then touches the store, so a rejected
// request never changes state. Timestamps are always assigned here.
//
// Observability: every public method opens an OpenTelemetry span and bumps
// the submissions_total counter with the decision it reached.
package services

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/tbourn/neuralflow-site/internal/domain"
	"github.com/tbourn/neuralflow-site/internal/repo"
)

// SubmissionStore is the storage the gateway needs. repo.MemoryStore and
// repo.GormStore both satisfy it.
//
// AppendSubscriber must perform the email check and the append as one
// atomic unit and return repo.ErrDuplicate when the email exists.
type SubmissionStore interface {
	AppendContact(ctx context.Context, c *domain.ContactSubmission) error
	AppendDemo(ctx context.Context, d *domain.DemoRequest) error
	AppendSubscriber(ctx context.Context, s *domain.NewsletterSubscription) (int64, error)
	SubscriberExists(ctx context.Context, email string) (bool, error)
	ListContacts(ctx context.Context) ([]domain.ContactSubmission, error)
	ListSubscribers(ctx context.Context) ([]domain.NewsletterSubscription, error)
	ListDemos(ctx context.Context) ([]domain.DemoRequest, error)
	Counts(ctx context.Context) (domain.SubmissionCounts, error)
}

// ContactInput is the contact form payload.
type ContactInput struct {
	Name    string  `json:"name"    validate:"notblank,max=255"`
	Email   string  `json:"email"   validate:"required,email,max=320"`
	Company *string `json:"company" validate:"omitempty,max=255"`
	Message string  `json:"message" validate:"notblank,max=10000"`
}

// NewsletterInput is the newsletter signup payload.
type NewsletterInput struct {
	Email string `json:"email" validate:"required,email,max=320"`
}

// DemoInput is the demo request payload.
type DemoInput struct {
	Name      string  `json:"name"      validate:"notblank,max=255"`
	Email     string  `json:"email"     validate:"required,email,max=320"`
	Company   string  `json:"company"   validate:"notblank,max=255"`
	Phone     *string `json:"phone"     validate:"omitempty,max=64"`
	Employees string  `json:"employees" validate:"notblank,max=64"`
	UseCase   string  `json:"use_case"  validate:"notblank,max=10000"`
}

// SubmissionService validates and records submissions.
type SubmissionService struct {
	Store    SubmissionStore
	Headline domain.HeadlineFigures

	// now is the clock; nil means time.Now. Always converted to UTC.
	now func() time.Time
}

// NewSubmissionService builds a gateway over store reporting the given
// headline figures from Stats.
func NewSubmissionService(store SubmissionStore, headline domain.HeadlineFigures) *SubmissionService {
	return &SubmissionService{Store: store, Headline: headline}
}

func (s *SubmissionService) clock() time.Time {
	if s.now != nil {
		return s.now().UTC()
	}
	return time.Now().UTC()
}

func startSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return otel.Tracer("services/SubmissionService").Start(ctx, name, trace.WithAttributes(attrs...))
}

func endSpan(span trace.Span, err error) {
	if err != nil && !isValidation(err) && !isConflict(err) {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

// SubmitContact validates in and appends a ContactSubmission.
func (s *SubmissionService) SubmitContact(ctx context.Context, in ContactInput) (rec *domain.ContactSubmission, err error) {
	ctx, span := startSpan(ctx, "SubmitContact")
	defer func() { observe(kindContact, err); endSpan(span, err) }()

	if err = validateStruct(in); err != nil {
		return nil, err
	}

	rec = &domain.ContactSubmission{
		Name:        in.Name,
		Email:       in.Email,
		Company:     in.Company,
		Message:     in.Message,
		SubmittedAt: s.clock(),
	}
	if err = s.Store.AppendContact(ctx, rec); err != nil {
		return nil, err
	}
	log.Ctx(ctx).Debug().Str("kind", kindContact).Uint64("id", rec.ID).Msg("submission accepted")
	return rec, nil
}

// SubscribeNewsletter validates email and appends a subscription unless the
// exact address is already subscribed (ErrAlreadySubscribed). It returns
// the new subscriber total.
func (s *SubmissionService) SubscribeNewsletter(ctx context.Context, email string) (count int64, err error) {
	ctx, span := startSpan(ctx, "SubscribeNewsletter")
	defer func() {
		span.SetAttributes(attribute.Int64("newsletter.subscribers", count))
		observe(kindNewsletter, err)
		endSpan(span, err)
	}()

	if err = validateStruct(NewsletterInput{Email: email}); err != nil {
		return 0, err
	}

	count, err = s.Store.AppendSubscriber(ctx, &domain.NewsletterSubscription{
		Email:       email,
		SubmittedAt: s.clock(),
	})
	if errors.Is(err, repo.ErrDuplicate) {
		return 0, ErrAlreadySubscribed
	}
	if err != nil {
		return 0, err
	}
	log.Ctx(ctx).Debug().Str("kind", kindNewsletter).Int64("subscribers", count).Msg("submission accepted")
	return count, nil
}

// RequestDemo validates in and appends a DemoRequest.
func (s *SubmissionService) RequestDemo(ctx context.Context, in DemoInput) (rec *domain.DemoRequest, err error) {
	ctx, span := startSpan(ctx, "RequestDemo", attribute.String("demo.employees", in.Employees))
	defer func() { observe(kindDemo, err); endSpan(span, err) }()

	if err = validateStruct(in); err != nil {
		return nil, err
	}

	rec = &domain.DemoRequest{
		Name:        in.Name,
		Email:       in.Email,
		Company:     in.Company,
		Phone:       in.Phone,
		Employees:   in.Employees,
		UseCase:     in.UseCase,
		SubmittedAt: s.clock(),
	}
	if err = s.Store.AppendDemo(ctx, rec); err != nil {
		return nil, err
	}
	log.Ctx(ctx).Debug().Str("kind", kindDemo).Uint64("id", rec.ID).Msg("submission accepted")
	return rec, nil
}

// Stats combines the live submission counts with the headline figures.
func (s *SubmissionService) Stats(ctx context.Context) (domain.Stats, error) {
	ctx, span := startSpan(ctx, "Stats")
	defer span.End()

	c, err := s.Store.Counts(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return domain.Stats{}, err
	}
	span.SetAttributes(
		attribute.Int64("stats.contacts", c.Contacts),
		attribute.Int64("stats.subscribers", c.Subscribers),
		attribute.Int64("stats.demos", c.Demos),
	)
	return domain.NewStats(s.Headline, c), nil
}

func isValidation(err error) bool { return errors.Is(err, ErrValidation) }
func isConflict(err error) bool   { return errors.Is(err, ErrConflict) }
