// Package docs registers the OpenAPI description served under /swagger.
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
                "tags": ["Health"],
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.HealthResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/handlers.HealthResponse"}}
                }
            }
        },
        "/health/ready": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Health"],
                "summary": "Readiness probe",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.HealthResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/handlers.HealthResponse"}}
                }
            }
        },
        "/health/live": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Health"],
                "summary": "Liveness probe",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.HealthResponse"}}
                }
            }
        },
        "/auth/login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Auth"],
                "summary": "Log in",
                "parameters": [
                    {"description": "Credentials", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.LoginResponse"}},
                    "400": {"description": "Invalid request body"},
                    "401": {"description": "Invalid credentials"},
                    "429": {"description": "Too many attempts"}
                }
            }
        },
        "/api/courses": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Courses"],
                "summary": "List courses",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.Course"}}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Courses"],
                "summary": "Add course",
                "parameters": [
                    {"description": "Course", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.CreateCourseRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/models.Course"}},
                    "400": {"description": "Invalid course"}
                }
            }
        },
        "/api/courses/{id}": {
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["Courses"],
                "summary": "Remove course",
                "parameters": [
                    {"type": "integer", "description": "Course ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "204": {"description": "Course removed"},
                    "400": {"description": "Invalid ID"},
                    "404": {"description": "Course not found"}
                }
            }
        },
        "/api/predictions": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Predictions"],
                "summary": "Current prediction",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.Prediction"}},
                    "404": {"description": "No predictions yet"}
                }
            }
        },
        "/api/predictions/calculate": {
            "post": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Predictions"],
                "summary": "Recalculate prediction",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.Prediction"}},
                    "400": {"description": "Add courses first"},
                    "500": {"description": "Failed to calculate predictions"}
                }
            }
        },
        "/api/predictions/explain": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Predictions"],
                "summary": "Explain prediction",
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Add courses first"}
                }
            }
        },
        "/api/summary": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Summary"],
                "summary": "GPA summary",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.GPASummary"}}
                }
            }
        },
        "/api/grades": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Summary"],
                "summary": "Grade table",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/prediction.GradeEntry"}}}
                }
            }
        }
    },
    "definitions": {
        "handlers.HealthResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string", "example": "healthy"},
                "timestamp": {"type": "string"},
                "checks": {"type": "object", "additionalProperties": {"type": "string"}}
            }
        },
        "handlers.LoginRequest": {
            "type": "object",
            "required": ["username", "password"],
            "properties": {
                "username": {"type": "string", "example": "admin"},
                "password": {"type": "string"}
            }
        },
        "handlers.LoginResponse": {
            "type": "object",
            "properties": {
                "token": {"type": "string"},
                "expires_in": {"type": "integer", "example": 86400},
                "username": {"type": "string", "example": "admin"}
            }
        },
        "handlers.CreateCourseRequest": {
            "type": "object",
            "required": ["name", "credits", "grade", "semester"],
            "properties": {
                "name": {"type": "string", "example": "Data Structures"},
                "credits": {"type": "integer", "example": 4},
                "grade": {"type": "string", "example": "B+"},
                "semester": {"type": "string", "example": "Semester 1"},
                "program": {"type": "string", "example": "software_engineering"}
            }
        },
        "models.Course": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "name": {"type": "string"},
                "credits": {"type": "integer"},
                "grade": {"type": "string"},
                "semester": {"type": "string"},
                "program": {"type": "string"},
                "created_at": {"type": "string"}
            }
        },
        "models.Prediction": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "run_id": {"type": "string"},
                "linear_regression_gpa": {"type": "number"},
                "random_forest_gpa": {"type": "number"},
                "better_model": {"type": "string", "enum": ["linear", "random_forest"]},
                "accuracy": {"type": "integer"},
                "academic_standing": {"type": "string"},
                "confidence_score": {"type": "number"},
                "trend": {"type": "string"},
                "trend_analysis": {"type": "string"},
                "next_semester_prediction": {"type": "number"},
                "course_count": {"type": "integer"},
                "computed_at": {"type": "string"}
            }
        },
        "models.GPASummary": {
            "type": "object",
            "properties": {
                "gpa": {"type": "number"},
                "total_credits": {"type": "integer"},
                "total_points": {"type": "number"},
                "course_count": {"type": "integer"},
                "required_credits": {"type": "integer"},
                "progress_percent": {"type": "number"}
            }
        },
        "prediction.GradeEntry": {
            "type": "object",
            "properties": {
                "letter": {"type": "string"},
                "points": {"type": "number"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "GPA Tracker API",
	Description:      "Course records, GPA summaries and model-based GPA predictions.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
