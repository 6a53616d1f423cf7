package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Eduverse Portal API",
        "description": "Academic portal REST API: assignments, notices, resources, submissions, timetable",
        "version": "1.0.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Assignments", "description": "Assignment management"},
        {"name": "Notices", "description": "Notice board"},
        {"name": "Resources", "description": "Learning resources"},
        {"name": "Submissions", "description": "Assignment submissions and grading"},
        {"name": "Timetable", "description": "Weekly timetable"},
        {"name": "Exports", "description": "Tabular downloads"}
    ],
    "paths": {
        "/health": {
            "get": {
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/ready": {
            "get": {
                "summary": "Readiness check (pings the database)",
                "responses": {
                    "200": {"description": "Ready"},
                    "503": {"description": "Database unreachable"}
                }
            }
        },
        "/api/{entity}": {
            "get": {
                "summary": "Fetch one record by id, or list records",
                "parameters": [
                    {"name": "entity", "in": "path", "required": true, "type": "string", "enum": ["assignments", "notices", "resources", "submissions", "timetable"]},
                    {"name": "id", "in": "query", "type": "string"},
                    {"name": "search", "in": "query", "type": "string"},
                    {"name": "limit", "in": "query", "type": "integer", "description": "default 50, capped at 100"},
                    {"name": "offset", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "Record or list of records"},
                    "404": {"$ref": "#/responses/NotFound"}
                }
            },
            "post": {
                "summary": "Create a record",
                "responses": {
                    "201": {"description": "Created record"},
                    "400": {"$ref": "#/responses/FieldError"}
                }
            },
            "put": {
                "summary": "Partially update a record by ?id=",
                "responses": {
                    "200": {"description": "Updated record"},
                    "400": {"$ref": "#/responses/FieldError"},
                    "404": {"$ref": "#/responses/NotFound"}
                }
            },
            "delete": {
                "summary": "Delete a record by ?id=",
                "responses": {
                    "200": {"description": "Message plus the deleted record"},
                    "404": {"$ref": "#/responses/NotFound"}
                }
            }
        },
        "/api/submissions/export": {
            "get": {
                "summary": "Export submissions as CSV or PDF",
                "parameters": [
                    {"name": "assignmentId", "in": "query", "type": "integer"},
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"]}
                ],
                "responses": {
                    "200": {"description": "Rendered document"}
                }
            }
        }
    },
    "responses": {
        "FieldError": {
            "description": "Validation failure",
            "schema": {"$ref": "#/definitions/APIError"}
        },
        "NotFound": {
            "description": "Record not found",
            "schema": {"$ref": "#/definitions/APIError"}
        }
    },
    "definitions": {
        "APIError": {
            "type": "object",
            "properties": {
                "error": {"type": "string"},
                "code": {"type": "string"}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
