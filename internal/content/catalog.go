// Package content loads the static marketing catalog: features,
// testimonials, pricing plans and the headline figures shown on /api/stats.
//
// The catalog ships embedded in the binary. A YAML file with the same shape
// can replace it at startup (CONTENT_PATH).
package content

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
	"gopkg.in/yaml.v3"

	"github.com/tbourn/neuralflow-site/internal/domain"
)

//go:embed catalog.yaml
var defaultCatalog []byte

// Feature is one product capability card.
type Feature struct {
	ID          int    `yaml:"id"          json:"id"          validate:"gt=0"`
	Title       string `yaml:"title"       json:"title"       validate:"required"`
	Description string `yaml:"description" json:"description" validate:"required"`
	Icon        string `yaml:"icon"        json:"icon"`
	Category    string `yaml:"category"    json:"category"    validate:"required"`
}

// Testimonial is a customer quote.
type Testimonial struct {
	ID      int    `yaml:"id"      json:"id"      validate:"gt=0"`
	Name    string `yaml:"name"    json:"name"    validate:"required"`
	Role    string `yaml:"role"    json:"role"`
	Company string `yaml:"company" json:"company"`
	Avatar  string `yaml:"avatar"  json:"avatar"  validate:"omitempty,url"`
	Content string `yaml:"content" json:"content" validate:"required"`
	Rating  int    `yaml:"rating"  json:"rating"  validate:"min=1,max=5"`
}

// Plan is a pricing tier. Price is in whole USD.
type Plan struct {
	ID          string   `yaml:"id"          json:"id"          validate:"required"`
	Name        string   `yaml:"name"        json:"name"        validate:"required"`
	Price       int      `yaml:"price"       json:"price"       validate:"gte=0"`
	Billing     string   `yaml:"billing"     json:"billing"`
	Description string   `yaml:"description" json:"description"`
	Features    []string `yaml:"features"    json:"features"    validate:"dive,required"`
	Popular     bool     `yaml:"popular"     json:"popular"`
	CTA         string   `yaml:"cta"         json:"cta"`
}

// Figures are the raw headline numbers. Headline renders them for display.
type Figures struct {
	TotalUsers      int64   `yaml:"total_users"       validate:"gte=0"`
	CompaniesServed int64   `yaml:"companies_served"  validate:"gte=0"`
	DataProcessedTB float64 `yaml:"data_processed_tb" validate:"gte=0"`
	UptimePercent   float64 `yaml:"uptime_percent"    validate:"gte=0,lte=100"`
}

// Catalog is the full marketing content set.
type Catalog struct {
	Figures      Figures       `yaml:"headline"`
	Features     []Feature     `yaml:"features"     validate:"dive"`
	Testimonials []Testimonial `yaml:"testimonials" validate:"dive"`
	Plans        []Plan        `yaml:"plans"        validate:"dive"`
}

// Default returns the embedded catalog. It panics if the embedded file is
// invalid, which can only happen through a broken build.
func Default() *Catalog {
	c, err := Parse(defaultCatalog)
	if err != nil {
		panic(fmt.Errorf("embedded catalog: %w", err))
	}
	return c
}

// Load returns the catalog at path, or the embedded one when path is empty.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Parse(defaultCatalog)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return Parse(b)
}

// Parse decodes and validates a YAML catalog. Unknown keys are rejected.
func Parse(b []byte) (*Catalog, error) {
	var c Catalog
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	if err := validator.New().Struct(&c); err != nil {
		return nil, fmt.Errorf("invalid catalog: %w", err)
	}
	return &c, nil
}

// Headline formats the figures the way the landing page shows them,
// e.g. "50,000+", "1,200+", "2.5TB", "99.99%".
func (c *Catalog) Headline() domain.HeadlineFigures {
	p := message.NewPrinter(language.English)
	dec := func(v float64) string {
		return p.Sprint(number.Decimal(v, number.MaxFractionDigits(2)))
	}
	return domain.HeadlineFigures{
		TotalUsers:      p.Sprintf("%d+", c.Figures.TotalUsers),
		CompaniesServed: p.Sprintf("%d+", c.Figures.CompaniesServed),
		DataProcessed:   dec(c.Figures.DataProcessedTB) + "TB",
		Uptime:          dec(c.Figures.UptimePercent) + "%",
	}
}
