// Package httpapi wires the HTTP transport (Gin) to the submission gateway,
// the content catalog and the web assets. It centralizes cross-cutting
// concerns: tracing, correlation IDs, redacted logging, panic recovery,
// body limits, compression, metrics, CORS and security headers.
package httpapi

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/tbourn/neuralflow-site/docs"
	"github.com/tbourn/neuralflow-site/internal/config"
	"github.com/tbourn/neuralflow-site/internal/content"
	"github.com/tbourn/neuralflow-site/internal/http/handlers"
	"github.com/tbourn/neuralflow-site/internal/http/middleware"
	"github.com/tbourn/neuralflow-site/internal/services"
	"github.com/tbourn/neuralflow-site/internal/web"
)

// maxBodyBytes caps every request body; form posts are tiny.
const maxBodyBytes = 1 << 20

// RegisterRoutes attaches all middleware and endpoints to r.
//
// Middleware order matters:
//  1. OpenTelemetry: trace everything
//  2. RequestID: generate/propagate correlation id
//  3. RedactingLogger: structured logs with PII scrubbing, request logger
//  4. Recovery: capture panics after logger
//  5. Body size limiter
//  6. Gzip for responses above cfg.GzipMinLength
//  7. Metrics
//  8. CORS and security headers
func RegisterRoutes(r *gin.Engine, store services.SubmissionStore, catalog *content.Catalog, cfg config.Config) error {
	r.HandleMethodNotAllowed = true

	tmpl, err := web.Templates()
	if err != nil {
		return fmt.Errorf("load templates: %w", err)
	}
	r.SetHTMLTemplate(tmpl)

	r.Use(otelgin.Middleware(cfg.OTEL.ServiceName))
	r.Use(middleware.RequestID())
	r.Use(middleware.RedactingLogger(middleware.RedactOptions{}))
	r.Use(middleware.Recovery())
	r.Use(limitBody(maxBodyBytes))
	r.Use(gzip.Gzip(gzip.DefaultCompression,
		gzip.WithMinLength(cfg.GzipMinLength),
		gzip.WithExcludedPaths([]string{"/metrics"}),
	))

	r.Use(middleware.Metrics())
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	useCORS(r, cfg.CORS.AllowedOrigins)

	r.Use(middleware.SecurityHeaders(middleware.SecurityOptions{
		EnableHSTS:   cfg.Security.EnableHSTS,
		HSTSMaxAge:   cfg.Security.HSTSMaxAge,
		EnablePolicy: true,
	}))

	// Fallbacks
	r.NoRoute(func(c *gin.Context) {
		handlers.Fail(c, http.StatusNotFound, handlers.ErrCodeNotFound, "route not found")
	})
	r.NoMethod(func(c *gin.Context) {
		handlers.Fail(c, http.StatusMethodNotAllowed, handlers.ErrCodeMethodNotAllowed, "method not allowed")
	})

	// Dependency injection: handlers ← gateway ← store
	svc := services.NewSubmissionService(store, catalog.Headline())
	h := handlers.New(svc, catalog, handlers.SiteInfo{
		Service:  cfg.ServiceName,
		Platform: cfg.Environment,
		APIBase:  cfg.APIBasePath,
	})

	r.GET("/health", h.Health)
	r.GET("/", h.Home)
	r.StaticFS("/static", web.Static())

	if cfg.SwaggerEnabled {
		docs.SwaggerInfo.BasePath = cfg.APIBasePath
		docs.SwaggerInfo.Title = cfg.ServiceName
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := groupWithPrefix(r, cfg.APIBasePath)
	{
		// Submissions
		api.POST("/contact", h.SubmitContact)
		api.POST("/newsletter", h.SubscribeNewsletter)
		api.POST("/demo", h.RequestDemo)

		// Content
		api.GET("/stats", h.Stats)
		api.GET("/features", h.Features)
		api.GET("/testimonials", h.Testimonials)
		api.GET("/pricing", h.Pricing)
	}
	return nil
}

// useCORS installs the CORS posture. With no allowlist every origin is
// allowed (credentials off); otherwise only listed origins are echoed.
func useCORS(r *gin.Engine, origins []string) {
	base := cors.Config{
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "X-Request-ID"},
		ExposeHeaders:    []string{"X-Request-ID", "Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}

	if len(origins) == 0 {
		// Force ACAO: * even for requests without an Origin header.
		r.Use(func(c *gin.Context) {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
			c.Next()
		})
		base.AllowAllOrigins = true
		r.Use(cors.New(base))
		return
	}

	base.AllowOrigins = origins
	r.Use(cors.New(base))
}

// limitBody caps the request body size using http.MaxBytesReader.
// Reads past the cap fail, and handlers answer 413.
func limitBody(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

// groupWithPrefix mounts a group at prefix, treating "/" (or empty) as root.
func groupWithPrefix(r *gin.Engine, prefix string) *gin.RouterGroup {
	if prefix == "" || prefix == "/" {
		return r.Group("")
	}
	return r.Group(prefix)
}
