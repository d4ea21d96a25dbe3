package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/neuralflow-site/internal/content"
	"github.com/tbourn/neuralflow-site/internal/domain"
	"github.com/tbourn/neuralflow-site/internal/services"
)

// ---- stub gateway ----

type stubSvc struct {
	contact    func(ctx context.Context, in services.ContactInput) (*domain.ContactSubmission, error)
	newsletter func(ctx context.Context, email string) (int64, error)
	demo       func(ctx context.Context, in services.DemoInput) (*domain.DemoRequest, error)
	stats      func(ctx context.Context) (domain.Stats, error)
}

func (s stubSvc) SubmitContact(ctx context.Context, in services.ContactInput) (*domain.ContactSubmission, error) {
	return s.contact(ctx, in)
}
func (s stubSvc) SubscribeNewsletter(ctx context.Context, email string) (int64, error) {
	return s.newsletter(ctx, email)
}
func (s stubSvc) RequestDemo(ctx context.Context, in services.DemoInput) (*domain.DemoRequest, error) {
	return s.demo(ctx, in)
}
func (s stubSvc) Stats(ctx context.Context) (domain.Stats, error) { return s.stats(ctx) }

func newRouter(svc SubmissionService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := New(svc, content.Default(), SiteInfo{Service: "NeuralFlow SaaS", APIBase: "/api"})
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("X-Request-ID", "rid-1")
		c.Next()
	})
	r.POST("/contact", h.SubmitContact)
	r.POST("/newsletter", h.SubscribeNewsletter)
	r.POST("/demo", h.RequestDemo)
	r.GET("/stats", h.Stats)
	return r
}

func post(r http.Handler, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func decodeErr(t *testing.T, w *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var er ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &er); err != nil {
		t.Fatalf("json: %v (body=%s)", err, w.Body.String())
	}
	return er
}

// ---- contact ----

func TestSubmitContact_Success(t *testing.T) {
	ts := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	svc := stubSvc{contact: func(_ context.Context, in services.ContactInput) (*domain.ContactSubmission, error) {
		if in.Name != "Ada" || in.Email != "ada@example.com" || in.Company != nil || in.Message != "hi" {
			t.Fatalf("unexpected input: %+v", in)
		}
		return &domain.ContactSubmission{Name: in.Name, Email: in.Email, Message: in.Message, SubmittedAt: ts}, nil
	}}
	w := post(newRouter(svc), "/contact", `{"name":"Ada","email":"ada@example.com","message":"hi"}`)

	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body["status"] != "success" || body["message"] != msgContactAccepted {
		t.Fatalf("unexpected body: %v", body)
	}
	data := body["data"].(map[string]any)
	if data["name"] != "Ada" || data["timestamp"] != "2024-03-01T12:00:00Z" {
		t.Fatalf("unexpected data: %v", data)
	}
	if v, present := data["company"]; !present || v != nil {
		t.Fatalf("company must render as null, got %v (present=%v)", v, present)
	}
	if _, present := data["id"]; present {
		t.Fatalf("id must not be exposed")
	}
}

func TestSubmitContact_BadJSON(t *testing.T) {
	svc := stubSvc{contact: func(context.Context, services.ContactInput) (*domain.ContactSubmission, error) {
		t.Fatalf("service must not be called on bad JSON")
		return nil, nil
	}}
	w := post(newRouter(svc), "/contact", `{"name":`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status=%d", w.Code)
	}
	if er := decodeErr(t, w); er.Code != ErrCodeBadRequest || er.RequestID != "rid-1" {
		t.Fatalf("unexpected envelope: %+v", er)
	}
}

func TestSubmitContact_ValidationIs422WithFields(t *testing.T) {
	svc := stubSvc{contact: func(context.Context, services.ContactInput) (*domain.ContactSubmission, error) {
		return nil, &services.ValidationError{Fields: []services.FieldError{{Field: "email", Rule: "email", Message: "value is not a valid email address"}}}
	}}
	w := post(newRouter(svc), "/contact", `{"name":"A","email":"not-an-email","message":"m"}`)
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status=%d", w.Code)
	}
	er := decodeErr(t, w)
	if er.Code != ErrCodeValidation {
		t.Fatalf("code=%q", er.Code)
	}
	fields, okType := er.Detail.([]any)
	if !okType || len(fields) != 1 || fields[0].(map[string]any)["field"] != "email" {
		t.Fatalf("unexpected detail: %#v", er.Detail)
	}
}

func TestSubmitContact_InternalError(t *testing.T) {
	svc := stubSvc{contact: func(context.Context, services.ContactInput) (*domain.ContactSubmission, error) {
		return nil, errors.New("disk on fire")
	}}
	w := post(newRouter(svc), "/contact", `{"name":"A","email":"a@b.io","message":"m"}`)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status=%d", w.Code)
	}
	er := decodeErr(t, w)
	if er.Code != ErrCodeInternal || strings.Contains(er.Message, "disk") {
		t.Fatalf("internal details leaked: %+v", er)
	}
}

func TestSubmitContact_BodyTooLarge(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := stubSvc{contact: func(context.Context, services.ContactInput) (*domain.ContactSubmission, error) {
		t.Fatalf("service must not be called")
		return nil, nil
	}}
	h := New(svc, content.Default(), SiteInfo{})
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, 16)
		c.Next()
	})
	r.POST("/contact", h.SubmitContact)

	w := post(r, "/contact", `{"name":"`+strings.Repeat("a", 64)+`"}`)
	if w.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("status=%d", w.Code)
	}
	if er := decodeErr(t, w); er.Code != ErrCodeTooLarge {
		t.Fatalf("code=%q", er.Code)
	}
}

// ---- newsletter ----

func TestSubscribeNewsletter_Success(t *testing.T) {
	svc := stubSvc{newsletter: func(_ context.Context, email string) (int64, error) {
		if email != "x@y.com" {
			t.Fatalf("email=%q", email)
		}
		return 7, nil
	}}
	w := post(newRouter(svc), "/newsletter", `{"email":"x@y.com"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	var resp NewsletterResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Status != "success" || resp.SubscriberCount != 7 || resp.Message != msgNewsletterAccepted {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestSubscribeNewsletter_DuplicateIs400Conflict(t *testing.T) {
	svc := stubSvc{newsletter: func(context.Context, string) (int64, error) {
		return 0, services.ErrAlreadySubscribed
	}}
	w := post(newRouter(svc), "/newsletter", `{"email":"x@y.com"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status=%d", w.Code)
	}
	er := decodeErr(t, w)
	if er.Code != ErrCodeConflict || er.Detail != "Email already subscribed" {
		t.Fatalf("unexpected envelope: %+v", er)
	}
}

// ---- demo ----

func TestRequestDemo_PassesAllFields(t *testing.T) {
	svc := stubSvc{demo: func(_ context.Context, in services.DemoInput) (*domain.DemoRequest, error) {
		if in.UseCase != "forecasting" || in.Employees != "1-10" || in.Phone == nil || *in.Phone != "123" {
			t.Fatalf("unexpected input: %+v", in)
		}
		return &domain.DemoRequest{Name: in.Name, Email: in.Email, Company: in.Company, Phone: in.Phone, Employees: in.Employees, UseCase: in.UseCase}, nil
	}}
	w := post(newRouter(svc), "/demo",
		`{"name":"B","email":"b@x.io","company":"X","phone":"123","employees":"1-10","use_case":"forecasting"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	var resp struct {
		Status  string         `json:"status"`
		Message string         `json:"message"`
		Data    map[string]any `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Message != msgDemoAccepted || resp.Data["use_case"] != "forecasting" || resp.Data["phone"] != "123" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestRequestDemo_Validation(t *testing.T) {
	svc := stubSvc{demo: func(context.Context, services.DemoInput) (*domain.DemoRequest, error) {
		return nil, &services.ValidationError{Fields: []services.FieldError{{Field: "employees", Rule: "notblank"}}}
	}}
	w := post(newRouter(svc), "/demo", `{"name":"B","email":"b@x.io","company":"X","use_case":"u"}`)
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status=%d", w.Code)
	}
}
