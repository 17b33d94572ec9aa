// Package swagger registers the OpenAPI document served at /swagger. It mirrors the swag
// annotations on the handlers and is kept in sync with them by docs_test.go.
package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {
            "name": "API Support"
        },
        "license": {
            "name": "MIT"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/orders/{id}": {
            "get": {
                "description": "Fetch an order and its customer record from the order backend.",
                "produces": ["application/json"],
                "tags": ["orders"],
                "summary": "Get Order by ID",
                "parameters": [
                    {"type": "string", "description": "Order ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.OrderDetails"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}
                }
            }
        },
        "/labels/jobs/{id}": {
            "get": {
                "description": "Returns the summary of a recent print job: resolved and missing order ids, surrogate tracking ids and state.",
                "produces": ["application/json"],
                "tags": ["labels"],
                "summary": "Get a print job",
                "parameters": [
                    {"type": "string", "description": "Job id", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.JobSummary"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}
                }
            }
        },
        "/labels/preview": {
            "get": {
                "description": "Renders the labels of a batch as an on-screen grid without triggering the print dialog.",
                "produces": ["text/html"],
                "tags": ["labels"],
                "summary": "Preview shipping labels",
                "parameters": [
                    {"type": "string", "description": "Single order id", "name": "order", "in": "query"},
                    {"type": "string", "description": "Comma-separated order ids", "name": "orders", "in": "query"},
                    {"type": "string", "description": "Carrier key", "name": "type", "in": "query"},
                    {"type": "string", "description": "Page format", "name": "format", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "preview document", "schema": {"type": "string"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}
                }
            }
        },
        "/labels/print": {
            "get": {
                "description": "Assembles one label per order and returns a print-ready document. Orders that cannot be resolved are skipped and listed in the X-Label-Missing header.",
                "produces": ["text/html", "application/pdf"],
                "tags": ["labels"],
                "summary": "Print shipping labels",
                "parameters": [
                    {"type": "string", "description": "Single order id", "name": "order", "in": "query"},
                    {"type": "string", "description": "Comma-separated order ids", "name": "orders", "in": "query"},
                    {"type": "string", "description": "Carrier key (flash, jnt, tiktok-flash, standard)", "name": "type", "in": "query"},
                    {"type": "string", "description": "Page format (100x150, 100x100, 100x75, auto)", "name": "format", "in": "query"},
                    {"type": "string", "description": "html (default) or pdf", "name": "output", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "print document", "schema": {"type": "string"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}},
                    "504": {"description": "Gateway Timeout", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}
                }
            }
        },
        "/labels/templates": {
            "get": {
                "description": "Returns every carrier template in its default page format, and the supported formats.",
                "produces": ["application/json"],
                "tags": ["labels"],
                "summary": "List carrier templates",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.TemplatesResponse"}}
                }
            }
        }
    },
    "definitions": {
        "domain.JobSummary": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "carrier": {"type": "string"},
                "format": {"type": "string"},
                "state": {"type": "string"},
                "requested": {"type": "array", "items": {"type": "string"}},
                "resolved_ids": {"type": "array", "items": {"type": "string"}},
                "missing": {"type": "array", "items": {"type": "string"}},
                "surrogates": {"type": "array", "items": {"type": "string"}},
                "output": {"type": "string"},
                "created_at": {"type": "string"}
            }
        },
        "domain.OrderDetails": {
            "type": "object",
            "properties": {
                "order": {"type": "object"},
                "customer": {"type": "object"},
                "customer_error": {"type": "string"}
            }
        },
        "handler.ErrorResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string"},
                "ray_id": {"type": "string"},
                "code": {"type": "string"},
                "missing": {"type": "array", "items": {"type": "string"}}
            }
        },
        "handler.TemplatesResponse": {
            "type": "object",
            "properties": {
                "templates": {"type": "array", "items": {"type": "object"}},
                "formats": {"type": "array", "items": {"type": "string"}}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Label Printer API",
	Description:      "Generates shipping labels for orders and returns print-ready HTML or PDF documents.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
