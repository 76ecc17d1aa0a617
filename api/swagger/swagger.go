package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "MeetWise API",
        "description": "Group meeting slot search and booking",
        "version": "0.1.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Slots", "description": "Availability-aware slot search"},
        {"name": "Availability", "description": "Resolved participant availability"},
        {"name": "Meetings", "description": "Meeting requests and confirmation"}
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
                "summary": "Readiness check",
                "responses": {
                    "200": {"description": "Ready"}
                }
            }
        },
        "/api/v1/slots/find": {
            "post": {
                "tags": ["Slots"],
                "summary": "Find optimal meeting slots",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/FindSlotsRequest"}}
                ],
                "responses": {
                    "200": {"description": "Ranked slots", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/slots/export": {
            "post": {
                "tags": ["Slots"],
                "summary": "Export ranked slots as CSV or PDF",
                "parameters": [
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"]},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/FindSlotsRequest"}}
                ],
                "responses": {
                    "200": {"description": "Exported document"},
                    "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/participants/{id}/availability": {
            "get": {
                "tags": ["Availability"],
                "summary": "Resolved free intervals for one participant",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "start", "in": "query", "required": true, "type": "string", "format": "date-time"},
                    {"name": "end", "in": "query", "required": true, "type": "string", "format": "date-time"}
                ],
                "responses": {
                    "200": {"description": "Free intervals", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/meetings": {
            "post": {
                "tags": ["Meetings"],
                "summary": "Create a meeting request with slot proposals",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateMeetingRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "get": {
                "tags": ["Meetings"],
                "summary": "List meeting requests",
                "parameters": [
                    {"name": "status", "in": "query", "type": "string"},
                    {"name": "organizer", "in": "query", "type": "string"},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "limit", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "Meetings", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/meetings/{id}": {
            "get": {
                "tags": ["Meetings"],
                "summary": "Get a meeting request",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "Meeting", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Meetings"],
                "summary": "Cancel a meeting request",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "Cancelled"},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/meetings/{id}/confirm": {
            "post": {
                "tags": ["Meetings"],
                "summary": "Confirm a meeting at one of its proposed starts",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ConfirmMeetingRequest"}}
                ],
                "responses": {
                    "200": {"description": "Scheduled", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "FindSlotsRequest": {
            "type": "object",
            "required": ["participant_ids", "window_start", "window_end", "duration_minutes"],
            "properties": {
                "participant_ids": {"type": "array", "items": {"type": "string"}},
                "window_start": {"type": "string", "format": "date-time"},
                "window_end": {"type": "string", "format": "date-time"},
                "duration_minutes": {"type": "integer"},
                "max_results": {"type": "integer"},
                "working_hours_start": {"type": "string", "example": "09:00"},
                "working_hours_end": {"type": "string", "example": "17:00"},
                "preferred_time": {"type": "string", "example": "10:00"}
            }
        },
        "CreateMeetingRequest": {
            "type": "object",
            "required": ["title", "organizer", "participant_emails", "window_start", "window_end", "duration_minutes"],
            "properties": {
                "title": {"type": "string"},
                "organizer": {"type": "string"},
                "participant_emails": {"type": "array", "items": {"type": "string"}},
                "window_start": {"type": "string", "format": "date-time"},
                "window_end": {"type": "string", "format": "date-time"},
                "duration_minutes": {"type": "integer"}
            }
        },
        "ConfirmMeetingRequest": {
            "type": "object",
            "required": ["start"],
            "properties": {
                "start": {"type": "string", "format": "date-time"}
            }
        },
        "RankedSlot": {
            "type": "object",
            "properties": {
                "start": {"type": "string", "format": "date-time"},
                "end": {"type": "string", "format": "date-time"},
                "score": {"type": "number"},
                "available_count": {"type": "integer"},
                "total_count": {"type": "integer"},
                "available_participant_ids": {"type": "array", "items": {"type": "string"}},
                "unavailable_participants": {"type": "array", "items": {"$ref": "#/definitions/ParticipantConflict"}}
            }
        },
        "ParticipantConflict": {
            "type": "object",
            "properties": {
                "participant_id": {"type": "string"},
                "reason": {"type": "string"},
                "conflict_start": {"type": "string", "format": "date-time"},
                "conflict_end": {"type": "string", "format": "date-time"}
            }
        },
        "Pagination": {
            "type": "object",
            "properties": {
                "page": {"type": "integer"},
                "page_size": {"type": "integer"},
                "total_count": {"type": "integer"}
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
                "pagination": {"$ref": "#/definitions/Pagination"},
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
