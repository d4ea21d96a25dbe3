// Submission HTTP handlers.
//
// This file exposes the form endpoints:
//   - POST /contact     (contact form)
//   - POST /newsletter  (newsletter signup)
//   - POST /demo        (demo request)
//
// Field validation lives in the gateway; these handlers only decode JSON.
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/neuralflow-site/internal/domain"
	"github.com/tbourn/neuralflow-site/internal/services"
)

const (
	statusSuccess = "success"

	msgContactAccepted    = "Thank you for your message! We'll get back to you within 24 hours."
	msgNewsletterAccepted = "🎉 Welcome to the future! You're now subscribed to our newsletter."
	msgDemoAccepted       = "🚀 Demo request received! Our team will contact you within 2 hours to schedule your personalized demo."
	detailAlreadySubbed   = "Email already subscribed"
)

// ContactRequest is the JSON payload of POST /contact.
type ContactRequest struct {
	Name    string  `json:"name"              example:"Ada Lovelace"`
	Email   string  `json:"email"             example:"ada@example.com"`
	Company *string `json:"company,omitempty" example:"Analytical Engines"`
	Message string  `json:"message"           example:"We'd like to learn more."`
}

// ContactResponse is returned when a contact message is accepted.
type ContactResponse struct {
	Status  string                    `json:"status"  example:"success"`
	Message string                    `json:"message"`
	Data    *domain.ContactSubmission `json:"data"`
}

// NewsletterRequest is the JSON payload of POST /newsletter.
type NewsletterRequest struct {
	Email string `json:"email" example:"ada@example.com"`
}

// NewsletterResponse is returned when a signup is accepted.
type NewsletterResponse struct {
	Status          string `json:"status"           example:"success"`
	Message         string `json:"message"`
	SubscriberCount int64  `json:"subscriber_count" example:"1"`
}

// DemoRequestBody is the JSON payload of POST /demo.
type DemoRequestBody struct {
	Name      string  `json:"name"            example:"Bob"`
	Email     string  `json:"email"           example:"bob@example.com"`
	Company   string  `json:"company"         example:"Acme"`
	Phone     *string `json:"phone,omitempty" example:"+1 555 0100"`
	Employees string  `json:"employees"       example:"11-50"`
	UseCase   string  `json:"use_case"        example:"Churn prediction"`
}

// DemoResponse is returned when a demo request is accepted.
type DemoResponse struct {
	Status  string              `json:"status"  example:"success"`
	Message string              `json:"message"`
	Data    *domain.DemoRequest `json:"data"`
}

// SubmitContact godoc
// @ID          submitContact
// @Summary     Submit the contact form
// @Tags        submissions
// @Accept      json
// @Produce     json
// @Param       body  body      handlers.ContactRequest true "Contact form"
// @Success     200   {object}  handlers.ContactResponse
// @Failure     400   {object}  handlers.ErrorResponse "Malformed JSON"
// @Failure     422   {object}  handlers.ErrorResponse "Validation failed"
// @Failure     500   {object}  handlers.ErrorResponse "Internal server error"
// @Router      /contact [post]
func (h *Handlers) SubmitContact(c *gin.Context) {
	var req ContactRequest
	if !decode(c, &req) {
		return
	}

	rec, err := h.svc.SubmitContact(c.Request.Context(), services.ContactInput{
		Name:    req.Name,
		Email:   req.Email,
		Company: req.Company,
		Message: req.Message,
	})
	if err != nil {
		failService(c, err)
		return
	}

	ok(c, http.StatusOK, ContactResponse{Status: statusSuccess, Message: msgContactAccepted, Data: rec})
}

// SubscribeNewsletter godoc
// @ID          subscribeNewsletter
// @Summary     Subscribe to the newsletter
// @Description A duplicate email (exact match) is rejected with 400 and code "conflict".
// @Tags        submissions
// @Accept      json
// @Produce     json
// @Param       body  body      handlers.NewsletterRequest true "Signup"
// @Success     200   {object}  handlers.NewsletterResponse
// @Failure     400   {object}  handlers.ErrorResponse "Malformed JSON or already subscribed"
// @Failure     422   {object}  handlers.ErrorResponse "Validation failed"
// @Failure     500   {object}  handlers.ErrorResponse "Internal server error"
// @Router      /newsletter [post]
func (h *Handlers) SubscribeNewsletter(c *gin.Context) {
	var req NewsletterRequest
	if !decode(c, &req) {
		return
	}

	n, err := h.svc.SubscribeNewsletter(c.Request.Context(), req.Email)
	if err != nil {
		failService(c, err)
		return
	}

	ok(c, http.StatusOK, NewsletterResponse{Status: statusSuccess, Message: msgNewsletterAccepted, SubscriberCount: n})
}

// RequestDemo godoc
// @ID          requestDemo
// @Summary     Request a product demo
// @Tags        submissions
// @Accept      json
// @Produce     json
// @Param       body  body      handlers.DemoRequestBody true "Demo request"
// @Success     200   {object}  handlers.DemoResponse
// @Failure     400   {object}  handlers.ErrorResponse "Malformed JSON"
// @Failure     422   {object}  handlers.ErrorResponse "Validation failed"
// @Failure     500   {object}  handlers.ErrorResponse "Internal server error"
// @Router      /demo [post]
func (h *Handlers) RequestDemo(c *gin.Context) {
	var req DemoRequestBody
	if !decode(c, &req) {
		return
	}

	rec, err := h.svc.RequestDemo(c.Request.Context(), services.DemoInput{
		Name:      req.Name,
		Email:     req.Email,
		Company:   req.Company,
		Phone:     req.Phone,
		Employees: req.Employees,
		UseCase:   req.UseCase,
	})
	if err != nil {
		failService(c, err)
		return
	}

	ok(c, http.StatusOK, DemoResponse{Status: statusSuccess, Message: msgDemoAccepted, Data: rec})
}

// decode reads a JSON body into dst, writing 400 (or 413 past the body
// limit) on failure.
func decode(c *gin.Context, dst any) bool {
	err := c.ShouldBindJSON(dst)
	if err == nil {
		return true
	}
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		fail(c, http.StatusRequestEntityTooLarge, ErrCodeTooLarge, "request body too large")
		return false
	}
	fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
	return false
}

// failService maps gateway errors to HTTP responses.
func failService(c *gin.Context, err error) {
	var ve *services.ValidationError
	switch {
	case errors.As(err, &ve):
		failDetail(c, http.StatusUnprocessableEntity, ErrCodeValidation, "request validation failed", ve.Fields)
	case errors.Is(err, services.ErrAlreadySubscribed):
		failDetail(c, http.StatusBadRequest, ErrCodeConflict, "email already subscribed", detailAlreadySubbed)
	case errors.Is(err, services.ErrConflict):
		fail(c, http.StatusBadRequest, ErrCodeConflict, err.Error())
	default:
		_ = c.Error(err)
		fail(c, http.StatusInternalServerError, ErrCodeInternal, "internal server error")
	}
}
