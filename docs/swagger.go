// Package docs holds the generated OpenAPI description served under /swagger/.
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
                "produces": ["text/plain"],
                "tags": ["health"],
                "summary": "Health check endpoint",
                "responses": {"200": {"description": "Healthy", "schema": {"type": "string"}}}
            }
        },
        "/connect": {
            "get": {
                "description": "Pushes stats after every change. Send \"get_stats\" or \"get_guide\" to request them.",
                "tags": ["websocket"],
                "summary": "WebSocket connection endpoint",
                "responses": {"101": {"description": "Switching Protocols to WebSocket"}}
            }
        },
        "/api/sessions": {
            "get": {
                "description": "Sessions on one day (?date=YYYY-MM-DD) or in one month (?year=&month=)",
                "produces": ["application/json"],
                "tags": ["sessions"],
                "summary": "List sessions",
                "parameters": [
                    {"type": "string", "description": "Calendar day", "name": "date", "in": "query"},
                    {"type": "integer", "description": "Year", "name": "year", "in": "query"},
                    {"type": "integer", "description": "Month 1-12", "name": "month", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/journal.Session"}}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/prayerlog.ErrorResponse"}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["sessions"],
                "summary": "Log a prayer session",
                "parameters": [
                    {"description": "Completed session", "name": "session", "in": "body", "required": true, "schema": {"$ref": "#/definitions/prayerlog.AddSessionRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/journal.Session"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/prayerlog.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/prayerlog.ErrorResponse"}}
                }
            }
        },
        "/api/sessions/dates": {
            "get": {
                "produces": ["application/json"],
                "tags": ["sessions"],
                "summary": "Distinct session dates",
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"type": "string"}}}}
            }
        },
        "/api/prayers": {
            "get": {
                "produces": ["application/json"],
                "tags": ["prayers"],
                "summary": "List prayers",
                "parameters": [
                    {"type": "string", "description": "all, active or answered", "name": "filter", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/journal.Prayer"}}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/prayerlog.ErrorResponse"}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["prayers"],
                "summary": "Create a prayer request",
                "parameters": [
                    {"description": "Prayer", "name": "prayer", "in": "body", "required": true, "schema": {"$ref": "#/definitions/prayerlog.CreatePrayerRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/journal.Prayer"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/prayerlog.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/prayerlog.ErrorResponse"}}
                }
            }
        },
        "/api/prayers/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["prayers"],
                "summary": "Get a prayer",
                "parameters": [{"type": "string", "description": "Prayer id", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/journal.Prayer"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/prayerlog.ErrorResponse"}}
                }
            },
            "delete": {
                "tags": ["prayers"],
                "summary": "Delete a prayer",
                "parameters": [{"type": "string", "description": "Prayer id", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/prayerlog.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/prayerlog.ErrorResponse"}}
                }
            }
        },
        "/api/prayers/{id}/answer": {
            "post": {
                "produces": ["application/json"],
                "tags": ["prayers"],
                "summary": "Mark a prayer answered",
                "parameters": [{"type": "string", "description": "Prayer id", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/journal.Prayer"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/prayerlog.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/prayerlog.ErrorResponse"}}
                }
            }
        },
        "/api/stats": {
            "get": {
                "produces": ["application/json"],
                "tags": ["stats"],
                "summary": "Current prayer stats",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/stats.PrayerStats"}}}
            }
        },
        "/api/stats/month": {
            "get": {
                "produces": ["application/json"],
                "tags": ["stats"],
                "summary": "Calendar month summary",
                "parameters": [
                    {"type": "integer", "description": "Year, defaults to the current one", "name": "year", "in": "query"},
                    {"type": "integer", "description": "Month 1-12, defaults to the current one", "name": "month", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/stats.MonthSummary"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/prayerlog.ErrorResponse"}}
                }
            }
        },
        "/api/stats/daily": {
            "get": {
                "produces": ["application/json"],
                "tags": ["stats"],
                "summary": "Per-day prayer time",
                "parameters": [{"type": "integer", "description": "Trailing days, default 7", "name": "days", "in": "query"}],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/stats.DayTotal"}}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/prayerlog.ErrorResponse"}}
                }
            }
        },
        "/api/guest/prayers": {
            "get": {
                "produces": ["application/json"],
                "tags": ["guest"],
                "summary": "List guest prayers",
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/journal.Prayer"}}}}
            },
            "post": {
                "description": "Prayers made before signing in; they are merged into the account later.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["guest"],
                "summary": "Create a guest prayer",
                "parameters": [
                    {"description": "Prayer", "name": "prayer", "in": "body", "required": true, "schema": {"$ref": "#/definitions/prayerlog.CreatePrayerRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/journal.Prayer"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/prayerlog.ErrorResponse"}}
                }
            }
        },
        "/api/guest/drain": {
            "post": {
                "description": "Returns every guest prayer and clears the guest list.",
                "produces": ["application/json"],
                "tags": ["guest"],
                "summary": "Drain guest prayers",
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/journal.Prayer"}}}}
            }
        },
        "/api/guest/merge": {
            "post": {
                "produces": ["application/json"],
                "tags": ["guest"],
                "summary": "Merge guest prayers into the account",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/prayerlog.MergeResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/prayerlog.ErrorResponse"}}
                }
            }
        },
        "/api/guide": {
            "get": {
                "produces": ["application/json"],
                "tags": ["guide"],
                "summary": "ACTS guide stages",
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/prayerlog.Stage"}}}}
            }
        },
        "/api/guide/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["guide"],
                "summary": "One ACTS guide stage",
                "parameters": [{"type": "string", "description": "Stage id", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/prayerlog.Stage"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/prayerlog.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "journal.Notes": {
            "type": "object",
            "properties": {
                "adoration": {"type": "string"},
                "confession": {"type": "string"},
                "thanksgiving": {"type": "string"},
                "supplication": {"type": "string"}
            }
        },
        "journal.Session": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "date": {"type": "string", "example": "2025-03-12"},
                "duration": {"type": "integer"},
                "notes": {"$ref": "#/definitions/journal.Notes"},
                "timestamp": {"type": "integer"}
            }
        },
        "journal.Prayer": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "title": {"type": "string"},
                "description": {"type": "string"},
                "category": {"type": "string", "enum": ["Pessoal", "Trabalho", "Saúde", "Família", "Outros"]},
                "dateCreated": {"type": "string"},
                "isAnswered": {"type": "boolean"},
                "answeredDate": {"type": "string"}
            }
        },
        "stats.PrayerStats": {
            "type": "object",
            "properties": {
                "consecutiveDays": {"type": "integer"},
                "longestStreak": {"type": "integer"},
                "answeredPrayers": {"type": "integer"},
                "totalPrayerTime": {"type": "integer"},
                "weeklyPrayerTime": {"type": "integer"},
                "monthlyPrayerTime": {"type": "integer"},
                "lastPrayerDate": {"type": "string"}
            }
        },
        "stats.MonthSummary": {
            "type": "object",
            "properties": {
                "year": {"type": "integer"},
                "month": {"type": "integer"},
                "sessions": {"type": "array", "items": {"$ref": "#/definitions/journal.Session"}},
                "totalTime": {"type": "integer"},
                "activeDays": {"type": "array", "items": {"type": "string"}}
            }
        },
        "stats.DayTotal": {
            "type": "object",
            "properties": {
                "date": {"type": "string"},
                "seconds": {"type": "integer"}
            }
        },
        "prayerlog.AddSessionRequest": {
            "type": "object",
            "properties": {
                "duration": {"type": "integer"},
                "notes": {"$ref": "#/definitions/journal.Notes"},
                "date": {"type": "string"}
            }
        },
        "prayerlog.CreatePrayerRequest": {
            "type": "object",
            "properties": {
                "title": {"type": "string"},
                "description": {"type": "string"},
                "category": {"type": "string"}
            }
        },
        "prayerlog.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string"},
                "message": {"type": "string"},
                "fields": {"type": "object", "additionalProperties": {"type": "string"}},
                "data": {}
            }
        },
        "prayerlog.MergeResponse": {
            "type": "object",
            "properties": {"imported": {"type": "integer"}}
        },
        "prayerlog.Stage": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "title": {"type": "string"},
                "subtitle": {"type": "string"},
                "description": {"type": "string"},
                "placeholder": {"type": "string"}
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
	Title:            "Prayerlog API",
	Description:      "Local API for prayer sessions, prayer requests and prayer stats",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
