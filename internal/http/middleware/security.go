// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file provides SecurityHeaders, built on gin-contrib/secure. The site
// serves both HTML (landing page) and JSON, so a Content-Security-Policy is
// set alongside the usual hardening headers.
package middleware

import (
	"strings"
	"time"

	"github.com/gin-contrib/secure"
	"github.com/gin-gonic/gin"
)

// DefaultCSP allows same-origin assets plus the testimonial avatars.
const DefaultCSP = "default-src 'self'; img-src 'self' https://images.unsplash.com; " +
	"style-src 'self'; script-src 'self'; object-src 'none'; frame-ancestors 'none'"

// SecurityOptions configures SecurityHeaders.
//
// EnableHSTS emits Strict-Transport-Security, only on HTTPS requests (direct
// TLS or X-Forwarded-Proto: https). HSTSMaxAge defaults to 180 days.
// ContentSecurityPolicy defaults to DefaultCSP; "-" disables it.
// EnablePolicy adds Permissions-Policy and X-Permitted-Cross-Domain-Policies.
type SecurityOptions struct {
	EnableHSTS            bool
	HSTSMaxAge            time.Duration
	ContentSecurityPolicy string
	EnablePolicy          bool
}

// SecurityHeaders returns the hardening middleware.
//
// Always sets X-Content-Type-Options: nosniff, X-Frame-Options: DENY and
// Referrer-Policy: strict-origin-when-cross-origin. It also exposes
// X-Request-ID to browsers via Access-Control-Expose-Headers.
func SecurityHeaders(opt SecurityOptions) gin.HandlerFunc {
	cfg := secure.Config{
		FrameDeny:          true,
		ContentTypeNosniff: true,
		BrowserXssFilter:   true,
		IENoOpen:           true,
		ReferrerPolicy:     "strict-origin-when-cross-origin",
		SSLProxyHeaders:    map[string]string{"X-Forwarded-Proto": "https"},
	}
	switch opt.ContentSecurityPolicy {
	case "":
		cfg.ContentSecurityPolicy = DefaultCSP
	case "-":
	default:
		cfg.ContentSecurityPolicy = opt.ContentSecurityPolicy
	}
	if opt.EnableHSTS {
		maxAge := opt.HSTSMaxAge
		if maxAge <= 0 {
			maxAge = 180 * 24 * time.Hour
		}
		cfg.STSSeconds = int64(maxAge / time.Second)
		cfg.STSIncludeSubdomains = true
	}
	hardening := secure.New(cfg)

	return func(c *gin.Context) {
		h := c.Writer.Header()
		if opt.EnablePolicy {
			h.Set("Permissions-Policy", "geolocation=(), microphone=(), camera=(), payment=()")
			h.Set("X-Permitted-Cross-Domain-Policies", "none")
		}
		if h.Get(requestIDHeader) != "" {
			const hdr = "Access-Control-Expose-Headers"
			if cur := h.Get(hdr); cur == "" {
				h.Set(hdr, requestIDHeader)
			} else if !strings.Contains(cur, requestIDHeader) {
				h.Set(hdr, cur+", "+requestIDHeader)
			}
		}
		hardening(c)
	}
}
