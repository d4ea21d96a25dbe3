// Content HTTP handlers: the landing page, stats, and the static marketing
// lists.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/neuralflow-site/internal/content"
)

// FeaturesResponse wraps the feature list.
type FeaturesResponse struct {
	Features []content.Feature `json:"features"`
}

// TestimonialsResponse wraps the testimonial list.
type TestimonialsResponse struct {
	Testimonials []content.Testimonial `json:"testimonials"`
}

// PricingResponse wraps the pricing plans.
type PricingResponse struct {
	Plans []content.Plan `json:"plans"`
}

// Stats godoc
// @ID          getStats
// @Summary     Platform statistics
// @Tags        content
// @Produce     json
// @Success     200  {object}  domain.Stats
// @Failure     500  {object}  handlers.ErrorResponse
// @Router      /stats [get]
func (h *Handlers) Stats(c *gin.Context) {
	st, err := h.svc.Stats(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		fail(c, http.StatusInternalServerError, ErrCodeInternal, "internal server error")
		return
	}
	ok(c, http.StatusOK, st)
}

// Features godoc
// @ID          getFeatures
// @Summary     Feature list
// @Tags        content
// @Produce     json
// @Success     200  {object}  handlers.FeaturesResponse
// @Router      /features [get]
func (h *Handlers) Features(c *gin.Context) {
	ok(c, http.StatusOK, FeaturesResponse{Features: nonNil(h.catalog.Features)})
}

// Testimonials godoc
// @ID          getTestimonials
// @Summary     Customer testimonials
// @Tags        content
// @Produce     json
// @Success     200  {object}  handlers.TestimonialsResponse
// @Router      /testimonials [get]
func (h *Handlers) Testimonials(c *gin.Context) {
	ok(c, http.StatusOK, TestimonialsResponse{Testimonials: nonNil(h.catalog.Testimonials)})
}

// Pricing godoc
// @ID          getPricing
// @Summary     Pricing plans
// @Tags        content
// @Produce     json
// @Success     200  {object}  handlers.PricingResponse
// @Router      /pricing [get]
func (h *Handlers) Pricing(c *gin.Context) {
	ok(c, http.StatusOK, PricingResponse{Plans: nonNil(h.catalog.Plans)})
}

// Home renders the landing page. The engine must have the web templates
// loaded (see web.Templates).
func (h *Handlers) Home(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", gin.H{
		"Service":      h.info.Service,
		"APIBase":      h.info.APIBase,
		"Headline":     h.catalog.Headline(),
		"Features":     h.catalog.Features,
		"Testimonials": h.catalog.Testimonials,
		"Plans":        h.catalog.Plans,
	})
}

// nonNil keeps empty lists encoding as [] rather than null.
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
