// Package docs registers the OpenAPI document of the HTTP API with swag.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    },
    "paths": {
        "/auth/login": {
            "post": {
                "tags": ["auth"],
                "summary": "Admin login",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/model.LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.LoginResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/error"}}
                }
            }
        },
        "/users": {
            "post": {
                "tags": ["users"],
                "summary": "Create or fetch a user and issue a user-scoped token",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/model.CreateUserRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.CreateUserResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/error"}},
                    "409": {"description": "Username taken; send the user's own token or an admin token", "schema": {"$ref": "#/definitions/error"}}
                }
            }
        },
        "/chat": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["chat"],
                "summary": "Send a message and receive the bot reply with its sentiment record",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/model.ChatRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.ChatResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/error"}}
                }
            }
        },
        "/messages/{id}/analysis": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["messages"],
                "summary": "Sentiment record of one message",
                "produces": ["application/json"],
                "parameters": [
                    {"in": "path", "name": "id", "type": "integer", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.SentimentRecord"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/error"}}
                }
            }
        },
        "/messages/user/{userId}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["messages"],
                "summary": "Recent messages of a user with their sentiment records, newest first",
                "produces": ["application/json"],
                "parameters": [
                    {"in": "path", "name": "userId", "type": "integer", "required": true},
                    {"in": "query", "name": "limit", "type": "integer", "default": 100}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/model.MessageWithAnalysis"}}}
                }
            }
        },
        "/analytics/user/{userId}/sentiment": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["analytics"],
                "summary": "Whole-conversation sentiment of a user",
                "produces": ["application/json"],
                "parameters": [
                    {"in": "path", "name": "userId", "type": "integer", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.ConversationSentimentResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/error"}}
                }
            }
        },
        "/analytics/user/{userId}/mood_trend": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["analytics"],
                "summary": "Smoothed mood trend over the user's latest messages",
                "produces": ["application/json"],
                "parameters": [
                    {"in": "path", "name": "userId", "type": "integer", "required": true},
                    {"in": "query", "name": "window", "type": "integer", "default": 3},
                    {"in": "query", "name": "last_n", "type": "integer", "default": 200},
                    {"in": "query", "name": "sender", "type": "string", "enum": ["user", "bot"]}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.MoodTrendResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/error"}}
                }
            }
        },
        "/admin/backfill": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["admin"],
                "summary": "Classify messages that have no sentiment record yet",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "properties": {"analysed": {"type": "integer"}}}}
                }
            }
        }
    },
    "definitions": {
        "error": {
            "type": "object",
            "properties": {"error": {"type": "string"}}
        },
        "model.LoginRequest": {
            "type": "object",
            "properties": {"username": {"type": "string"}, "password": {"type": "string"}}
        },
        "model.LoginResponse": {
            "type": "object",
            "properties": {"token": {"type": "string"}, "adminId": {"type": "string"}}
        },
        "model.User": {
            "type": "object",
            "properties": {"id": {"type": "integer"}, "username": {"type": "string"}, "created_at": {"type": "string"}}
        },
        "model.CreateUserRequest": {
            "type": "object",
            "properties": {"username": {"type": "string"}}
        },
        "model.CreateUserResponse": {
            "type": "object",
            "properties": {"user": {"$ref": "#/definitions/model.User"}, "token": {"type": "string"}}
        },
        "model.ChatRequest": {
            "type": "object",
            "properties": {"user_id": {"type": "integer"}, "text": {"type": "string"}}
        },
        "model.ChatResponse": {
            "type": "object",
            "properties": {
                "user_message_id": {"type": "integer"},
                "bot_message_id": {"type": "integer"},
                "bot_reply": {"type": "string"},
                "analysis": {"$ref": "#/definitions/model.SentimentRecord"}
            }
        },
        "model.Message": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "user_id": {"type": "integer"},
                "sender": {"type": "string", "enum": ["user", "bot"]},
                "text": {"type": "string"},
                "created_at": {"type": "string"}
            }
        },
        "model.SentimentRecord": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "message_id": {"type": "integer"},
                "user_id": {"type": "integer"},
                "sentiment_label": {"type": "string"},
                "sentiment_score": {"type": "number"},
                "emotion_scores": {"type": "object"},
                "created_at": {"type": "string"}
            }
        },
        "model.MessageWithAnalysis": {
            "type": "object",
            "properties": {
                "message": {"$ref": "#/definitions/model.Message"},
                "analysis": {"$ref": "#/definitions/model.SentimentRecord"}
            }
        },
        "model.ShiftEvent": {
            "type": "object",
            "properties": {
                "index": {"type": "integer"},
                "message_id": {"type": "integer"},
                "timestamp": {"type": "string"},
                "polarity": {"type": "number"},
                "reason": {"type": "string", "enum": ["crossed_zero", "large_jump"]}
            }
        },
        "model.MoodTrendResponse": {
            "type": "object",
            "properties": {
                "user_id": {"type": "integer"},
                "count": {"type": "integer"},
                "polarities": {"type": "array", "items": {"type": "number"}},
                "smoothed": {"type": "array", "items": {"type": "number"}},
                "slope": {"type": "number", "x-nullable": true},
                "start_mean": {"type": "number"},
                "end_mean": {"type": "number"},
                "delta": {"type": "number"},
                "trend": {"type": "string", "enum": ["increasing", "decreasing", "stable", "unknown"]},
                "shift_points": {"type": "array", "items": {"$ref": "#/definitions/model.ShiftEvent"}},
                "summary": {"type": "string"},
                "summary_label": {"type": "string"}
            }
        },
        "model.ConversationSentimentResponse": {
            "type": "object",
            "properties": {
                "user_id": {"type": "integer"},
                "conversation_sentiment": {"type": "number", "x-nullable": true},
                "label": {"type": "string"},
                "count": {"type": "integer"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/v1",
	Schemes:          []string{},
	Title:            "Chatbot Sentiment API",
	Description:      "Chat backend with per-message sentiment and mood-trend analytics",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
