// Package docs registers the OpenAPI document served under /swagger.
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
        "/weekly/day": {
            "get": {
                "produces": ["application/json"],
                "tags": ["weekly"],
                "summary": "Current day state",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.WeeklyData"}}}
            }
        },
        "/weekly/day/start": {
            "post": {
                "produces": ["application/json"],
                "tags": ["weekly"],
                "summary": "Start the current task",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.WeeklyData"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/http.errorResponse"}}
                }
            }
        },
        "/weekly/day/complete": {
            "post": {
                "produces": ["application/json"],
                "tags": ["weekly"],
                "summary": "Complete the current task",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/services.CompletionResult"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/http.errorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/http.errorResponse"}}
                }
            }
        },
        "/weekly/day/complete-subtask": {
            "post": {
                "produces": ["application/json"],
                "tags": ["weekly"],
                "summary": "Complete the current subtask and rotate",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/services.CompletionResult"}}}
            }
        },
        "/weekly/timer": {
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["timer"],
                "summary": "Reconcile the timer with a client snapshot",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/http.updateTimerRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.WeeklyData"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/http.errorResponse"}}
                }
            }
        },
        "/weekly/subtasks/{parentId}/courses": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["courses"],
                "summary": "Append a course to a pool subtask",
                "parameters": [
                    {"type": "string", "in": "path", "name": "parentId", "required": true},
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/http.addCourseRequest"}}
                ],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/domain.Subtask"}}}
            }
        },
        "/weekly/summary": {
            "get": {
                "produces": ["application/json"],
                "tags": ["weekly"],
                "summary": "Rotation summary of every task",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.RotationSummary"}}}
            }
        },
        "/history": {
            "get": {
                "produces": ["application/json"],
                "tags": ["history"],
                "summary": "Completed work items, newest first",
                "parameters": [
                    {"type": "string", "in": "query", "name": "type"},
                    {"type": "integer", "in": "query", "name": "limit"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/domain.CompletedItem"}}}}
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["history"],
                "summary": "Record a finished item by hand",
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/domain.CompletedItem"}}}
            }
        },
        "/auth/login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Exchange the admin password for a bearer token",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/http.loginResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/http.errorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "http.errorResponse": {
            "type": "object",
            "properties": {"error": {"type": "string"}, "code": {"type": "string"}}
        },
        "http.updateTimerRequest": {
            "type": "object",
            "required": ["elapsedSeconds", "state"],
            "properties": {"elapsedSeconds": {"type": "integer"}, "state": {"type": "string", "enum": ["running", "paused", "stopped"]}}
        },
        "http.addCourseRequest": {
            "type": "object",
            "required": ["name"],
            "properties": {"name": {"type": "string"}}
        },
        "http.loginResponse": {
            "type": "object",
            "properties": {"token": {"type": "string"}}
        },
        "domain.CompletedItem": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "type": {"type": "string", "enum": ["Book", "Game", "Course", "Payment"]},
                "name": {"type": "string"},
                "completedDate": {"type": "string"},
                "timeSpent": {"type": "integer"},
                "parentId": {"type": "string"}
            }
        },
        "domain.Subtask": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "title": {"type": "string"},
                "completed": {"type": "boolean"},
                "order": {"type": "integer"},
                "kind": {"type": "string"},
                "currentSubtaskId": {"type": "string"},
                "subtasks": {"type": "array", "items": {"$ref": "#/definitions/domain.Subtask"}}
            }
        },
        "domain.WeeklyTask": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "plannedDays": {"type": "integer"},
                "completedDays": {"type": "integer"},
                "weeklySchedule": {"type": "array", "items": {"type": "boolean"}},
                "order": {"type": "integer"},
                "isStarted": {"type": "boolean"},
                "notes": {"type": "string"},
                "behavior": {"type": "string"},
                "historyType": {"type": "string"},
                "subtaskRotation": {"type": "string"},
                "currentSubtaskId": {"type": "string"},
                "subtasks": {"type": "array", "items": {"$ref": "#/definitions/domain.Subtask"}}
            }
        },
        "domain.DayState": {
            "type": "object",
            "properties": {
                "date": {"type": "string"},
                "currentTaskIndex": {"type": "integer"},
                "completedTasks": {"type": "array", "items": {"type": "string"}},
                "dayCompleted": {"type": "boolean"},
                "timerElapsedSeconds": {"type": "integer"},
                "timerState": {"type": "string"}
            }
        },
        "domain.WeeklyData": {
            "type": "object",
            "properties": {
                "sequence": {"type": "array", "items": {"$ref": "#/definitions/domain.WeeklyTask"}},
                "dailyState": {"$ref": "#/definitions/domain.DayState"}
            }
        },
        "domain.RotationSummary": {
            "type": "object",
            "properties": {
                "date": {"type": "string"},
                "iso_week": {"type": "integer"},
                "total_tasks": {"type": "integer"},
                "completed_today": {"type": "integer"}
            }
        },
        "services.CompletionResult": {
            "type": "object",
            "properties": {
                "data": {"$ref": "#/definitions/domain.WeeklyData"},
                "task_id": {"type": "string"},
                "task_completed": {"type": "boolean"},
                "history_item": {"$ref": "#/definitions/domain.CompletedItem"},
                "history_error": {"type": "string"}
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
	Title:            "Kanso Weekly Engine API",
	Description:      "Daily task sequence, subtask rotation and completion history.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
