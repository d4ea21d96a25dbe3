// Package docs registers the OpenAPI document served at /swagger.
// Regenerate with: swag init -g cmd/server/main.go -o docs
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/contact": {
            "post": {
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "submissions"
                ],
                "summary": "Submit the contact form",
                "operationId": "submitContact",
                "parameters": [
                    {
                        "description": "Contact form",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/handlers.ContactRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handlers.ContactResponse"
                        }
                    },
                    "400": {
                        "description": "Malformed JSON",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    },
                    "422": {
                        "description": "Validation failed",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "Internal server error",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/demo": {
            "post": {
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "submissions"
                ],
                "summary": "Request a product demo",
                "operationId": "requestDemo",
                "parameters": [
                    {
                        "description": "Demo request",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/handlers.DemoRequestBody"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handlers.DemoResponse"
                        }
                    },
                    "400": {
                        "description": "Malformed JSON",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    },
                    "422": {
                        "description": "Validation failed",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "Internal server error",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/features": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "content"
                ],
                "summary": "Feature list",
                "operationId": "getFeatures",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handlers.FeaturesResponse"
                        }
                    }
                }
            }
        },
        "/health": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "ops"
                ],
                "summary": "Liveness probe",
                "operationId": "health",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handlers.HealthResponse"
                        }
                    }
                }
            }
        },
        "/newsletter": {
            "post": {
                "description": "A duplicate email (exact match) is rejected with 400 and code \"conflict\".",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "submissions"
                ],
                "summary": "Subscribe to the newsletter",
                "operationId": "subscribeNewsletter",
                "parameters": [
                    {
                        "description": "Signup",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/handlers.NewsletterRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handlers.NewsletterResponse"
                        }
                    },
                    "400": {
                        "description": "Malformed JSON or already subscribed",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    },
                    "422": {
                        "description": "Validation failed",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "Internal server error",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/pricing": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "content"
                ],
                "summary": "Pricing plans",
                "operationId": "getPricing",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handlers.PricingResponse"
                        }
                    }
                }
            }
        },
        "/stats": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "content"
                ],
                "summary": "Platform statistics",
                "operationId": "getStats",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/domain.Stats"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/testimonials": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "content"
                ],
                "summary": "Customer testimonials",
                "operationId": "getTestimonials",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handlers.TestimonialsResponse"
                        }
                    }
                }
            }
        }
    },
    "definitions": {
        "content.Feature": {
            "type": "object",
            "properties": {
                "category": {
                    "type": "string"
                },
                "description": {
                    "type": "string"
                },
                "icon": {
                    "type": "string"
                },
                "id": {
                    "type": "integer"
                },
                "title": {
                    "type": "string"
                }
            }
        },
        "content.Plan": {
            "type": "object",
            "properties": {
                "billing": {
                    "type": "string"
                },
                "cta": {
                    "type": "string"
                },
                "description": {
                    "type": "string"
                },
                "features": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                },
                "id": {
                    "type": "string"
                },
                "name": {
                    "type": "string"
                },
                "popular": {
                    "type": "boolean"
                },
                "price": {
                    "type": "integer"
                }
            }
        },
        "content.Testimonial": {
            "type": "object",
            "properties": {
                "avatar": {
                    "type": "string"
                },
                "company": {
                    "type": "string"
                },
                "content": {
                    "type": "string"
                },
                "id": {
                    "type": "integer"
                },
                "name": {
                    "type": "string"
                },
                "rating": {
                    "type": "integer"
                },
                "role": {
                    "type": "string"
                }
            }
        },
        "domain.ContactSubmission": {
            "type": "object",
            "properties": {
                "company": {
                    "type": "string"
                },
                "email": {
                    "type": "string"
                },
                "message": {
                    "type": "string"
                },
                "name": {
                    "type": "string"
                },
                "timestamp": {
                    "type": "string"
                }
            }
        },
        "domain.DemoRequest": {
            "type": "object",
            "properties": {
                "company": {
                    "type": "string"
                },
                "email": {
                    "type": "string"
                },
                "employees": {
                    "type": "string"
                },
                "name": {
                    "type": "string"
                },
                "phone": {
                    "type": "string"
                },
                "timestamp": {
                    "type": "string"
                },
                "use_case": {
                    "type": "string"
                }
            }
        },
        "domain.Stats": {
            "type": "object",
            "properties": {
                "companies_served": {
                    "type": "string",
                    "example": "1,200+"
                },
                "contact_submissions": {
                    "type": "integer",
                    "example": 3
                },
                "data_processed": {
                    "type": "string",
                    "example": "2.5TB"
                },
                "demo_requests": {
                    "type": "integer",
                    "example": 1
                },
                "newsletter_subscribers": {
                    "type": "integer",
                    "example": 2
                },
                "total_users": {
                    "type": "string",
                    "example": "50,000+"
                },
                "uptime": {
                    "type": "string",
                    "example": "99.99%"
                }
            }
        },
        "handlers.ContactRequest": {
            "type": "object",
            "properties": {
                "company": {
                    "type": "string",
                    "example": "Analytical Engines"
                },
                "email": {
                    "type": "string",
                    "example": "ada@example.com"
                },
                "message": {
                    "type": "string",
                    "example": "We'd like to learn more."
                },
                "name": {
                    "type": "string",
                    "example": "Ada Lovelace"
                }
            }
        },
        "handlers.ContactResponse": {
            "type": "object",
            "properties": {
                "data": {
                    "$ref": "#/definitions/domain.ContactSubmission"
                },
                "message": {
                    "type": "string"
                },
                "status": {
                    "type": "string",
                    "example": "success"
                }
            }
        },
        "handlers.DemoRequestBody": {
            "type": "object",
            "properties": {
                "company": {
                    "type": "string",
                    "example": "Acme"
                },
                "email": {
                    "type": "string",
                    "example": "bob@example.com"
                },
                "employees": {
                    "type": "string",
                    "example": "11-50"
                },
                "name": {
                    "type": "string",
                    "example": "Bob"
                },
                "phone": {
                    "type": "string",
                    "example": "+1 555 0100"
                },
                "use_case": {
                    "type": "string",
                    "example": "Churn prediction"
                }
            }
        },
        "handlers.DemoResponse": {
            "type": "object",
            "properties": {
                "data": {
                    "$ref": "#/definitions/domain.DemoRequest"
                },
                "message": {
                    "type": "string"
                },
                "status": {
                    "type": "string",
                    "example": "success"
                }
            }
        },
        "handlers.ErrorResponse": {
            "type": "object",
            "properties": {
                "code": {
                    "description": "Stable, machine-readable code (see errors.go constants)",
                    "type": "string",
                    "example": "conflict"
                },
                "detail": {
                    "description": "Optional extra context: a string or a list of field errors",
                    "type": "object"
                },
                "message": {
                    "description": "Human-readable message (safe to show to users)",
                    "type": "string",
                    "example": "email already subscribed"
                },
                "request_id": {
                    "description": "Correlates server logs and client errors",
                    "type": "string",
                    "example": "123e4567-e89b-12d3-a456-426614174000"
                }
            }
        },
        "handlers.FeaturesResponse": {
            "type": "object",
            "properties": {
                "features": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/content.Feature"
                    }
                }
            }
        },
        "handlers.HealthResponse": {
            "type": "object",
            "properties": {
                "platform": {
                    "type": "string",
                    "example": "Vercel"
                },
                "service": {
                    "type": "string",
                    "example": "NeuralFlow SaaS"
                },
                "status": {
                    "type": "string",
                    "example": "healthy"
                },
                "timestamp": {
                    "type": "string",
                    "example": "2024-03-01T12:30:00.123456Z"
                }
            }
        },
        "handlers.NewsletterRequest": {
            "type": "object",
            "properties": {
                "email": {
                    "type": "string",
                    "example": "ada@example.com"
                }
            }
        },
        "handlers.NewsletterResponse": {
            "type": "object",
            "properties": {
                "message": {
                    "type": "string"
                },
                "status": {
                    "type": "string",
                    "example": "success"
                },
                "subscriber_count": {
                    "type": "integer",
                    "example": 1
                }
            }
        },
        "handlers.PricingResponse": {
            "type": "object",
            "properties": {
                "plans": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/content.Plan"
                    }
                }
            }
        },
        "handlers.TestimonialsResponse": {
            "type": "object",
            "properties": {
                "testimonials": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/content.Testimonial"
                    }
                }
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api",
	Schemes:          []string{},
	Title:            "NeuralFlow SaaS",
	Description:      "The Future of Business Intelligence",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
