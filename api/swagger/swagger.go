package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "School Admin API",
        "description": "Administrative gateway over the school record-store microservices",
        "version": "0.1.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Grades", "description": "Grade record management"},
        {"name": "Notifications", "description": "Notification record management"},
        {"name": "Directory", "description": "Read-only student and teacher directory"}
    ],
    "paths": {
        "/grades": {
            "get": {
                "tags": ["Grades"],
                "summary": "List grades for one lifecycle scope",
                "parameters": [
                    {"name": "status", "in": "query", "type": "string", "enum": ["active", "inactive"]},
                    {"name": "search", "in": "query", "type": "string"},
                    {"name": "academicPeriod", "in": "query", "type": "string"},
                    {"name": "evaluationType", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Grades"],
                "summary": "Register grade",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateGradeRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/grades/export": {
            "get": {
                "tags": ["Grades"],
                "summary": "Export the filtered grade view",
                "parameters": [
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"]},
                    {"name": "status", "in": "query", "type": "string"},
                    {"name": "search", "in": "query", "type": "string"},
                    {"name": "academicPeriod", "in": "query", "type": "string"},
                    {"name": "evaluationType", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "Exported document"}
                }
            }
        },
        "/grades/{id}": {
            "get": {
                "tags": ["Grades"],
                "summary": "Get grade",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "put": {
                "tags": ["Grades"],
                "summary": "Update grade",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateGradeRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Grades"],
                "summary": "Soft-delete grade",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/grades/{id}/restore": {
            "put": {
                "tags": ["Grades"],
                "summary": "Restore soft-deleted grade",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/grades/{id}/notifications": {
            "get": {
                "tags": ["Grades"],
                "summary": "List notifications generated for a grade",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/notifications": {
            "get": {
                "tags": ["Notifications"],
                "summary": "List notifications for one lifecycle scope",
                "parameters": [
                    {"name": "status", "in": "query", "type": "string", "enum": ["active", "inactive"]},
                    {"name": "search", "in": "query", "type": "string"},
                    {"name": "recipientType", "in": "query", "type": "string"},
                    {"name": "notificationType", "in": "query", "type": "string"},
                    {"name": "notificationStatus", "in": "query", "type": "string"},
                    {"name": "channel", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Notifications"],
                "summary": "Create notification",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateNotificationRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/notifications/bulk": {
            "post": {
                "tags": ["Notifications"],
                "summary": "Create many notifications in one call",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"type": "array", "items": {"$ref": "#/definitions/CreateNotificationRequest"}}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/notifications/mass-send": {
            "post": {
                "tags": ["Notifications"],
                "summary": "Send one message to a whole recipient group",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/MassSendRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/notifications/export": {
            "get": {
                "tags": ["Notifications"],
                "summary": "Export the filtered notification view",
                "parameters": [
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"]},
                    {"name": "status", "in": "query", "type": "string"},
                    {"name": "search", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "Exported document"}
                }
            }
        },
        "/notifications/type/{type}": {
            "get": {
                "tags": ["Notifications"],
                "summary": "List notifications of one type",
                "parameters": [
                    {"name": "type", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/notifications/status/{status}": {
            "get": {
                "tags": ["Notifications"],
                "summary": "List notifications in one delivery state",
                "parameters": [
                    {"name": "status", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/notifications/recipient/{recipientId}": {
            "get": {
                "tags": ["Notifications"],
                "summary": "List notifications addressed to one recipient",
                "parameters": [
                    {"name": "recipientId", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/notifications/recipient/{recipientId}/unread": {
            "get": {
                "tags": ["Notifications"],
                "summary": "List unread notifications of one recipient",
                "parameters": [
                    {"name": "recipientId", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/notifications/batch/read": {
            "put": {
                "tags": ["Notifications"],
                "summary": "Mark many notifications as read",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/BatchRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/notifications/batch/resend": {
            "post": {
                "tags": ["Notifications"],
                "summary": "Resend many notifications",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/BatchRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/notifications/batch/restore": {
            "put": {
                "tags": ["Notifications"],
                "summary": "Restore many notifications",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/BatchRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/notifications/{id}": {
            "get": {
                "tags": ["Notifications"],
                "summary": "Get notification",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "put": {
                "tags": ["Notifications"],
                "summary": "Update notification",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateNotificationRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Notifications"],
                "summary": "Soft-delete notification",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/notifications/{id}/restore": {
            "put": {
                "tags": ["Notifications"],
                "summary": "Restore soft-deleted notification",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/notifications/{id}/read": {
            "put": {
                "tags": ["Notifications"],
                "summary": "Mark notification as read",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/notifications/{id}/resend": {
            "post": {
                "tags": ["Notifications"],
                "summary": "Resend notification",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/students": {
            "get": {
                "tags": ["Directory"],
                "summary": "List students",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/teachers": {
            "get": {
                "tags": ["Directory"],
                "summary": "List teachers",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "GradeRecord": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "studentId": {"type": "string"},
                "courseId": {"type": "string"},
                "academicPeriod": {"type": "string"},
                "evaluationType": {"type": "string"},
                "grade": {"type": "number"},
                "evaluationDate": {"type": "array", "items": {"type": "integer"}},
                "remarks": {"type": "string"},
                "active": {"type": "boolean"}
            }
        },
        "NotificationRecord": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "recipientId": {"type": "string"},
                "recipientType": {"type": "string", "enum": ["STUDENT", "TEACHER"]},
                "notificationType": {"type": "string"},
                "channel": {"type": "string", "enum": ["EMAIL", "SMS", "PUSH", "IN_APP"]},
                "message": {"type": "string"},
                "status": {"type": "string", "enum": ["PENDING", "SENT", "FAILED", "READ", "DELETED"]},
                "createdAt": {"type": "string"},
                "sentAt": {"type": "string"}
            }
        },
        "CreateGradeRequest": {
            "type": "object",
            "properties": {
                "studentId": {"type": "string"},
                "courseId": {"type": "string"},
                "academicPeriod": {"type": "string"},
                "evaluationType": {"type": "string"},
                "grade": {"type": "number", "minimum": 0, "maximum": 20},
                "evaluationDate": {"type": "array", "items": {"type": "integer"}},
                "remarks": {"type": "string"}
            },
            "required": ["studentId", "courseId", "academicPeriod", "evaluationType", "grade"]
        },
        "UpdateGradeRequest": {
            "type": "object",
            "properties": {
                "academicPeriod": {"type": "string"},
                "evaluationType": {"type": "string"},
                "grade": {"type": "number", "minimum": 0, "maximum": 20},
                "evaluationDate": {"type": "array", "items": {"type": "integer"}},
                "remarks": {"type": "string"}
            },
            "required": ["academicPeriod", "evaluationType", "grade"]
        },
        "CreateNotificationRequest": {
            "type": "object",
            "properties": {
                "recipientId": {"type": "string"},
                "recipientType": {"type": "string", "enum": ["STUDENT", "TEACHER"]},
                "notificationType": {"type": "string"},
                "channel": {"type": "string", "enum": ["EMAIL", "SMS", "PUSH", "IN_APP"]},
                "message": {"type": "string"}
            },
            "required": ["recipientId", "recipientType", "notificationType", "channel", "message"]
        },
        "UpdateNotificationRequest": {
            "type": "object",
            "properties": {
                "notificationType": {"type": "string"},
                "channel": {"type": "string", "enum": ["EMAIL", "SMS", "PUSH", "IN_APP"]},
                "message": {"type": "string"}
            },
            "required": ["notificationType", "channel", "message"]
        },
        "MassSendRequest": {
            "type": "object",
            "properties": {
                "recipientType": {"type": "string", "enum": ["STUDENT", "TEACHER"]},
                "notificationType": {"type": "string"},
                "channel": {"type": "string", "enum": ["EMAIL", "SMS", "PUSH", "IN_APP"]},
                "message": {"type": "string"}
            },
            "required": ["recipientType", "notificationType", "channel", "message"]
        },
        "BatchRequest": {
            "type": "object",
            "properties": {
                "ids": {"type": "array", "items": {"type": "string"}}
            },
            "required": ["ids"]
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
