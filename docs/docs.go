// Package docs holds the OpenAPI description of the service.
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
        "/dashboard": {
            "get": {
                "description": "Forwards /dashboard#KEY to /dashboard/KEY",
                "produces": ["text/html"],
                "tags": ["dashboard"],
                "summary": "Dashboard shim",
                "responses": {"200": {"description": "OK", "schema": {"type": "string"}}}
            }
        },
        "/dashboard/{key}": {
            "get": {
                "description": "Fetches the history of a read key and renders the power status and charts",
                "produces": ["text/html"],
                "tags": ["dashboard"],
                "summary": "Dashboard page",
                "parameters": [
                    {"type": "string", "description": "Read key", "name": "key", "in": "path", "required": true},
                    {"type": "boolean", "description": "Reject malformed rows and timestamps", "name": "strict", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "string"}},
                    "502": {"description": "Bad Gateway", "schema": {"type": "string"}}
                }
            }
        },
        "/dashboard/{key}/charts/{chart}.png": {
            "get": {
                "description": "Renders one dashboard chart of a read key as PNG",
                "produces": ["image/png"],
                "tags": ["dashboard"],
                "summary": "Dashboard chart image",
                "parameters": [
                    {"type": "string", "description": "Read key", "name": "key", "in": "path", "required": true},
                    {"enum": ["pwr_diff_chart", "pwr_src_chart", "temp_humid_chart"], "type": "string", "description": "Chart id", "name": "chart", "in": "path", "required": true},
                    {"type": "integer", "description": "Image width", "name": "width", "in": "query"},
                    {"type": "integer", "description": "Image height", "name": "height", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "file"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errors.APIError"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/errors.APIError"}}
                }
            }
        },
        "/v1/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["system"],
                "summary": "Health check",
                "responses": {"200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}}
            }
        },
        "/v1/metrics": {
            "get": {
                "produces": ["application/json"],
                "tags": ["system"],
                "summary": "Event counters",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/monitoring.Snapshot"}}}
            }
        },
        "/webhook/get/{key}": {
            "get": {
                "description": "Returns the stored samples of a read key, oldest first",
                "produces": ["application/json"],
                "tags": ["webhook"],
                "summary": "Get a sensor history",
                "parameters": [
                    {"type": "string", "description": "Read key", "name": "key", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.Entry"}}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errors.APIError"}}
                }
            }
        },
        "/webhook/{key}": {
            "post": {
                "description": "Accepts a webhook post from the sensor cloud and appends published_at and data to the history behind the paired read key",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["webhook"],
                "summary": "Store a sensor sample",
                "parameters": [
                    {"type": "string", "description": "Write key", "name": "key", "in": "path", "required": true},
                    {"description": "Sample", "name": "sample", "in": "body", "required": true, "schema": {"$ref": "#/definitions/models.Entry"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errors.APIError"}}
                }
            }
        }
    },
    "definitions": {
        "errors.APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "integer"},
                "details": {},
                "message": {"type": "string"},
                "request_id": {"type": "string"},
                "type": {"type": "string"}
            }
        },
        "models.Entry": {
            "type": "object",
            "properties": {
                "data": {"type": "string"},
                "published_at": {"type": "string"}
            }
        },
        "monitoring.EventMetric": {
            "type": "object",
            "properties": {
                "count": {"type": "integer"},
                "last_seen": {"type": "string"},
                "name": {"type": "string"}
            }
        },
        "monitoring.Snapshot": {
            "type": "object",
            "properties": {
                "events": {"type": "array", "items": {"$ref": "#/definitions/monitoring.EventMetric"}},
                "uptime": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Power Sensor Monitor API",
	Description:      "Catches sensor webhook samples and renders the power dashboard.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
