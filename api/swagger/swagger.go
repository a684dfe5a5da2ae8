package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Campus Attendance Gateway",
        "description": "Backend-for-frontend for the campus attendance mobile client",
        "version": "0.1.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "tags": [
        {"name": "Authentication", "description": "Sign in against the campus backend"},
        {"name": "Schedules", "description": "Class schedules"},
        {"name": "Instructors", "description": "Instructor roster"},
        {"name": "Users", "description": "Checker and admin accounts"},
        {"name": "Attendance", "description": "Attendance records and exports"},
        {"name": "Rooms", "description": "Room checker assignment"},
        {"name": "Feedback", "description": "Checker feedback inbox"},
        {"name": "Checker", "description": "Screens of the signed-in checker"},
        {"name": "Audit", "description": "Gateway mutation trail"}
    ],
    "paths": {
        "/auth/login": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Sign in",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Invalid credentials", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "403": {"description": "Unknown role", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/auth/logout": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Sign out",
                "security": [{"BearerAuth": []}],
                "responses": {"204": {"description": "No Content"}}
            }
        },
        "/auth/me": {
            "get": {
                "tags": ["Authentication"],
                "summary": "Current user",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/admin/schedules": {
            "get": {
                "tags": ["Schedules"],
                "summary": "List schedules",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "day", "in": "query", "type": "string"},
                    {"name": "time", "in": "query", "type": "string"},
                    {"name": "room", "in": "query", "type": "string"},
                    {"name": "block", "in": "query", "type": "string"},
                    {"name": "instructor", "in": "query", "type": "string"},
                    {"name": "checker", "in": "query", "type": "string"},
                    {"name": "subject", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ScreenEnvelope"}},
                    "502": {"description": "Backend failure", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Schedules"],
                "summary": "Create schedule",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ScheduleRequest"}}
                ],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/admin/schedules/{id}": {
            "put": {
                "tags": ["Schedules"],
                "summary": "Update schedule",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ScheduleRequest"}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            },
            "delete": {
                "tags": ["Schedules"],
                "summary": "Delete schedule and return the re-fetched list",
                "security": [{"BearerAuth": []}],
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ScreenEnvelope"}}}
            }
        },
        "/admin/instructors": {
            "get": {
                "tags": ["Instructors"],
                "summary": "List instructors",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "name", "in": "query", "type": "string"},
                    {"name": "instructor_id", "in": "query", "type": "string"},
                    {"name": "department", "in": "query", "type": "string", "enum": ["SITE", "SOE", "SOHS", "SOC", "SBA"]}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ScreenEnvelope"}}}
            },
            "post": {
                "tags": ["Instructors"],
                "summary": "Create instructor",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/InstructorRequest"}}
                ],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/admin/instructors/{id}": {
            "put": {
                "tags": ["Instructors"],
                "summary": "Update instructor",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/InstructorRequest"}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            },
            "delete": {
                "tags": ["Instructors"],
                "summary": "Delete instructor",
                "security": [{"BearerAuth": []}],
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ScreenEnvelope"}}}
            }
        },
        "/admin/users": {
            "get": {
                "tags": ["Users"],
                "summary": "List users",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "name", "in": "query", "type": "string"},
                    {"name": "school_id", "in": "query", "type": "string"},
                    {"name": "role", "in": "query", "type": "string", "enum": ["Checker", "Admin"]}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ScreenEnvelope"}}}
            },
            "post": {
                "tags": ["Users"],
                "summary": "Create user (JSON, or multipart with a photo file)",
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json", "multipart/form-data"],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UserRequest"}}
                ],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/admin/users/{id}": {
            "put": {
                "tags": ["Users"],
                "summary": "Update user; only the fields sent are changed",
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json", "multipart/form-data"],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UserUpdateRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Invalid payload", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Users"],
                "summary": "Delete user",
                "security": [{"BearerAuth": []}],
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ScreenEnvelope"}}}
            }
        },
        "/admin/checkers": {
            "get": {
                "tags": ["Users"],
                "summary": "Checker picker options",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/admin/attendance": {
            "get": {
                "tags": ["Attendance"],
                "summary": "List attendance records",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "room", "in": "query", "type": "string"},
                    {"name": "block", "in": "query", "type": "string"},
                    {"name": "instructor", "in": "query", "type": "string"},
                    {"name": "status", "in": "query", "type": "string", "enum": ["Present", "Late", "Absent"]},
                    {"name": "date", "in": "query", "type": "string"},
                    {"name": "day", "in": "query", "type": "string"},
                    {"name": "time", "in": "query", "type": "string"},
                    {"name": "checker", "in": "query", "type": "string"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ScreenEnvelope"}}}
            }
        },
        "/admin/attendance/export": {
            "get": {
                "tags": ["Attendance"],
                "summary": "Export filtered attendance records",
                "security": [{"BearerAuth": []}],
                "produces": ["text/csv", "application/pdf"],
                "parameters": [
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"]}
                ],
                "responses": {
                    "200": {"description": "Attachment", "schema": {"type": "file"}},
                    "400": {"description": "Unknown format", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/admin/rooms": {
            "get": {
                "tags": ["Rooms"],
                "summary": "List rooms",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "building", "in": "query", "type": "string"},
                    {"name": "room", "in": "query", "type": "string"},
                    {"name": "checker", "in": "query", "type": "string"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ScreenEnvelope"}}}
            }
        },
        "/admin/rooms/{id}/checker": {
            "put": {
                "tags": ["Rooms"],
                "summary": "Assign or clear a room's checker",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/AssignCheckerRequest"}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ScreenEnvelope"}}}
            }
        },
        "/admin/feedback": {
            "get": {
                "tags": ["Feedback"],
                "summary": "List feedback",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "status", "in": "query", "type": "string", "enum": ["Pending", "Accepted", "Declined"]}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ScreenEnvelope"}}}
            }
        },
        "/admin/feedback/{id}": {
            "put": {
                "tags": ["Feedback"],
                "summary": "Review feedback",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/FeedbackReviewRequest"}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            },
            "delete": {
                "tags": ["Feedback"],
                "summary": "Delete feedback",
                "security": [{"BearerAuth": []}],
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ScreenEnvelope"}}}
            }
        },
        "/admin/audit-logs": {
            "get": {
                "tags": ["Audit"],
                "summary": "Recent gateway audit entries",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "limit", "in": "query", "type": "integer", "default": 50, "maximum": 200}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/checker/dashboard": {
            "get": {
                "tags": ["Checker"],
                "summary": "Checker home screen",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/checker/schedules": {
            "get": {
                "tags": ["Checker"],
                "summary": "Schedules assigned to the signed-in checker",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ScreenEnvelope"}}}
            }
        },
        "/checker/schedules/today": {
            "get": {
                "tags": ["Checker"],
                "summary": "Today's schedules for the signed-in checker",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ScreenEnvelope"}}}
            }
        },
        "/checker/attendance": {
            "get": {
                "tags": ["Checker"],
                "summary": "Attendance captured by the signed-in checker",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ScreenEnvelope"}}}
            }
        },
        "/checker/feedback": {
            "get": {
                "tags": ["Checker"],
                "summary": "The signed-in checker's feedback",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ScreenEnvelope"}}}
            },
            "post": {
                "tags": ["Checker"],
                "summary": "Submit feedback",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/FeedbackRequest"}}
                ],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        }
    },
    "definitions": {
        "LoginRequest": {
            "type": "object",
            "required": ["school_id", "password"],
            "properties": {
                "school_id": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "ScheduleRequest": {
            "type": "object",
            "required": ["subject_code", "subject", "block", "start_time", "end_time", "day", "room", "instructor_id", "assigned_checker_id"],
            "properties": {
                "subject_code": {"type": "string"},
                "subject": {"type": "string"},
                "block": {"type": "string"},
                "start_time": {"type": "string", "example": "8:00 AM"},
                "end_time": {"type": "string", "example": "12:00 PM"},
                "day": {"type": "string", "example": "Monday"},
                "room": {"type": "string"},
                "instructor_id": {"type": "integer"},
                "assigned_checker_id": {"type": "integer"}
            }
        },
        "InstructorRequest": {
            "type": "object",
            "required": ["full_name", "instructor_id", "department", "email", "phone"],
            "properties": {
                "full_name": {"type": "string"},
                "instructor_id": {"type": "string"},
                "department": {"type": "string", "enum": ["SITE", "SOE", "SOHS", "SOC", "SBA"]},
                "email": {"type": "string"},
                "phone": {"type": "string"}
            }
        },
        "UserRequest": {
            "type": "object",
            "required": ["full_name", "school_id", "email", "role", "password"],
            "properties": {
                "full_name": {"type": "string"},
                "school_id": {"type": "string"},
                "email": {"type": "string"},
                "phone": {"type": "string"},
                "role": {"type": "string", "enum": ["Checker", "Admin"]},
                "password": {"type": "string"}
            }
        },
        "UserUpdateRequest": {
            "type": "object",
            "properties": {
                "full_name": {"type": "string"},
                "school_id": {"type": "string"},
                "email": {"type": "string"},
                "phone": {"type": "string"},
                "role": {"type": "string", "enum": ["Checker", "Admin"]},
                "password": {"type": "string"}
            }
        },
        "AssignCheckerRequest": {
            "type": "object",
            "properties": {
                "checker_id": {"type": "integer", "x-nullable": true}
            }
        },
        "FeedbackRequest": {
            "type": "object",
            "required": ["message"],
            "properties": {"message": {"type": "string"}}
        },
        "FeedbackReviewRequest": {
            "type": "object",
            "required": ["status"],
            "properties": {
                "status": {"type": "string", "enum": ["Pending", "Accepted", "Declined"]},
                "admin_response": {"type": "string"}
            }
        },
        "FacetOption": {
            "type": "object",
            "properties": {
                "label": {"type": "string"},
                "value": {"type": "string"}
            }
        },
        "Facet": {
            "type": "object",
            "properties": {
                "field": {"type": "string"},
                "options": {"type": "array", "items": {"$ref": "#/definitions/FacetOption"}}
            }
        },
        "Screen": {
            "type": "object",
            "properties": {
                "items": {"type": "array", "items": {"type": "object"}},
                "facets": {"type": "array", "items": {"$ref": "#/definitions/Facet"}},
                "filters": {"type": "object", "additionalProperties": {"type": "string"}},
                "total": {"type": "integer"},
                "matched": {"type": "integer"},
                "fetched_at": {"type": "string", "format": "date-time"}
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
                "meta": {"type": "object"}
            }
        },
        "ScreenEnvelope": {
            "type": "object",
            "properties": {
                "data": {"$ref": "#/definitions/Screen"},
                "error": {"$ref": "#/definitions/APIError"},
                "meta": {"type": "object"}
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
