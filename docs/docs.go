package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "description": "TaskPlanner API Documentation",
        "title": "TaskPlanner API",
        "version": "1.0"
    },
    "host": "localhost:8000",
    "basePath": "/api/v1",
    "schemes": ["http"],
    "paths": {
        "/tasks": {
            "get": {
                "tags": ["Tasks"],
                "summary": "List tasks",
                "description": "List all tasks in insertion order",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "Task list"}
                }
            },
            "post": {
                "tags": ["Tasks"],
                "summary": "Create task",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {
                        "in": "body",
                        "name": "task",
                        "required": true,
                        "schema": {
                            "type": "object",
                            "properties": {
                                "title": {"type": "string", "example": "File quarterly report"},
                                "description": {"type": "string"},
                                "status": {"type": "string", "example": "To Do"},
                                "dueDate": {"type": "string", "example": "2024-02-01"}
                            }
                        }
                    }
                ],
                "responses": {
                    "201": {"description": "Task created"},
                    "400": {"description": "Validation failed"}
                }
            }
        },
        "/tasks/{id}": {
            "get": {
                "tags": ["Tasks"],
                "summary": "Get task by ID",
                "produces": ["application/json"],
                "parameters": [
                    {"in": "path", "name": "id", "type": "integer", "required": true}
                ],
                "responses": {
                    "200": {"description": "Task"},
                    "404": {"description": "Task not found"}
                }
            },
            "patch": {
                "tags": ["Tasks"],
                "summary": "Update task",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"in": "path", "name": "id", "type": "integer", "required": true}
                ],
                "responses": {
                    "200": {"description": "Task updated"},
                    "404": {"description": "Task not found"}
                }
            },
            "delete": {
                "tags": ["Tasks"],
                "summary": "Delete task",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"in": "path", "name": "id", "type": "integer", "required": true}
                ],
                "responses": {
                    "204": {"description": "Task deleted"},
                    "404": {"description": "Task not found"}
                }
            }
        },
        "/calendar": {
            "get": {
                "tags": ["Calendar"],
                "summary": "Render month calendar",
                "description": "Render the day grid for a month with tasks bound by due date",
                "produces": ["application/json"],
                "parameters": [
                    {"in": "query", "name": "month", "type": "string", "description": "Month as YYYY-MM, defaults to the current month"}
                ],
                "responses": {
                    "200": {"description": "Month grid"},
                    "400": {"description": "Invalid month"}
                }
            }
        },
        "/auth/register": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Register",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "responses": {
                    "201": {"description": "Account created"},
                    "409": {"description": "Account already exists"}
                }
            }
        },
        "/auth/login": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Login",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "Login successful"},
                    "401": {"description": "Unauthorized"}
                }
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header",
            "description": "Type 'Bearer' followed by a space and JWT token"
        }
    }
}`

var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8000",
	BasePath:         "/api/v1",
	Schemes:          []string{"http"},
	Title:            "TaskPlanner API",
	Description:      "TaskPlanner API Documentation",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
