// Package docs registers the OpenAPI document of the stations API with swag.
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
        "/health": {
            "get": {
                "produces": ["application/json"],
                "summary": "Service health",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/stations": {
            "get": {
                "produces": ["application/json"],
                "tags": ["stations"],
                "summary": "List stations",
                "parameters": [
                    {"type": "string", "description": "list (default) or hash", "name": "view", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.Station"}}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errors.APIError"}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["stations"],
                "summary": "Create a station",
                "parameters": [
                    {"description": "Station label", "name": "station", "in": "body", "required": true, "schema": {"$ref": "#/definitions/models.StationChangeset"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/models.Station"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errors.APIError"}}
                }
            }
        },
        "/stations/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["stations"],
                "summary": "Get a station",
                "parameters": [
                    {"type": "string", "description": "Station ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.Station"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errors.APIError"}}
                }
            },
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["stations"],
                "summary": "Update a station",
                "parameters": [
                    {"type": "string", "description": "Station ID", "name": "id", "in": "path", "required": true},
                    {"description": "Station changes", "name": "station", "in": "body", "required": true, "schema": {"$ref": "#/definitions/models.StationChangeset"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.StationRecord"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errors.APIError"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errors.APIError"}}
                }
            },
            "delete": {
                "produces": ["application/json"],
                "tags": ["stations"],
                "summary": "Delete a station",
                "parameters": [
                    {"type": "string", "description": "Station ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {"type": "integer"}}}
                }
            }
        },
        "/stations/{id}/key": {
            "post": {
                "tags": ["stations"],
                "summary": "Rotate a station key",
                "parameters": [
                    {"type": "string", "description": "Station ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errors.APIError"}}
                }
            }
        },
        "/stations/{id}/sensors": {
            "get": {
                "produces": ["application/json"],
                "tags": ["stations"],
                "summary": "List the sensors of a station",
                "parameters": [
                    {"type": "string", "description": "Station ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.Sensor"}}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errors.APIError"}}
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
        "models.Sensor": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "kind": {"type": "string"},
                "label": {"type": "string"},
                "station_id": {"type": "string"},
                "unit": {"type": "string"}
            }
        },
        "models.Station": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "label": {"type": "string"},
                "sensors": {"type": "array", "items": {"$ref": "#/definitions/models.Sensor"}}
            }
        },
        "models.StationChangeset": {
            "type": "object",
            "properties": {
                "key": {"type": "string"},
                "label": {"type": "string"}
            }
        },
        "models.StationRecord": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "label": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Stations API",
	Description:      "Weather stations and their sensors.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
