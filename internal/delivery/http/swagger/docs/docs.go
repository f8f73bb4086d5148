// Package docs registers the API description served under /swagger.
// Regenerate with `swag init -g cmd/app/main.go -o internal/delivery/http/swagger/docs`.
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
        "/movies": {
            "get": {
                "description": "Returns every movie. With page set, returns one page and its metadata",
                "produces": ["application/json"],
                "tags": ["Movies"],
                "summary": "List movies",
                "parameters": [
                    {"type": "string", "description": "Genre substring", "name": "genre", "in": "query"},
                    {"type": "string", "description": "Exact year", "name": "year", "in": "query"},
                    {"type": "string", "description": "Exact rating", "name": "rating", "in": "query"},
                    {"type": "string", "description": "title, year or runtime", "name": "sort", "in": "query"},
                    {"type": "integer", "description": "Page number, 1-based", "name": "page", "in": "query"},
                    {"type": "integer", "description": "Movies per page", "name": "page_size", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/model.Movie"}}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/http_common.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/http_common.ErrorResponse"}}
                }
            }
        },
        "/search-movies": {
            "get": {
                "description": "Case-insensitive match against title, director and year",
                "produces": ["application/json"],
                "tags": ["Movies"],
                "summary": "Search movies",
                "parameters": [
                    {"type": "string", "description": "Search text", "name": "query", "in": "query", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/model.Movie"}}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/http_common.ErrorResponse"}},
                    "404": {"description": "No movie matched", "schema": {"$ref": "#/definitions/http_common.ErrorResponse"}}
                }
            }
        },
        "/save-movie": {
            "post": {
                "description": "Validates and appends a movie. A zero id is assigned by the server",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Movies"],
                "summary": "Save movie",
                "parameters": [
                    {"description": "Movie", "name": "movie", "in": "body", "required": true, "schema": {"$ref": "#/definitions/model.Movie"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/model.Movie"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/http_common.ErrorResponse"}},
                    "409": {"description": "Id already taken", "schema": {"$ref": "#/definitions/http_common.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/http_common.ErrorResponse"}}
                }
            }
        },
        "/update-movie-list": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Movies"],
                "summary": "Replace movie list",
                "parameters": [
                    {"description": "Whole catalog", "name": "movies", "in": "body", "required": true, "schema": {"type": "array", "items": {"$ref": "#/definitions/model.Movie"}}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/http_common.MessageResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/http_common.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/http_common.ErrorResponse"}}
                }
            }
        },
        "/update-vote": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Votes"],
                "summary": "Vote on a movie",
                "parameters": [
                    {"description": "Vote", "name": "vote", "in": "body", "required": true, "schema": {"$ref": "#/definitions/http_vote.VoteRequestDTO"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/http_vote.VoteResponseDTO"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/http_common.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/http_common.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/http_common.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "http_common.ErrorResponse": {
            "type": "object",
            "properties": {
                "code": {"type": "integer"},
                "error": {"type": "string"},
                "message": {"type": "string"}
            }
        },
        "http_common.MessageResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string"}
            }
        },
        "http_vote.VoteRequestDTO": {
            "type": "object",
            "required": ["movieId", "voteType"],
            "properties": {
                "movieId": {"type": "integer"},
                "userId": {"type": "string"},
                "voteType": {"type": "string", "enum": ["up", "down"]}
            }
        },
        "http_vote.VoteResponseDTO": {
            "type": "object",
            "properties": {
                "newVoteCount": {"type": "integer"}
            }
        },
        "model.RequestedBy": {
            "type": "object",
            "properties": {
                "platform": {"type": "string"},
                "userId": {"type": "string"},
                "username": {"type": "string"}
            }
        },
        "model.Movie": {
            "type": "object",
            "properties": {
                "category": {"type": "string"},
                "dateWatched": {"type": "string"},
                "director": {"type": "string"},
                "id": {"type": "integer"},
                "imageUrl": {"type": "string"},
                "language": {"type": "string"},
                "modernTrailerLink": {"type": "string"},
                "movieLink": {"type": "string"},
                "moviePrivate": {"type": "boolean"},
                "ratings": {"type": "string"},
                "requestedBy": {"$ref": "#/definitions/model.RequestedBy"},
                "runtime": {"type": "string"},
                "subtitles": {"type": "boolean"},
                "title": {"type": "string"},
                "trailerLink": {"type": "string"},
                "trailerPrivate": {"type": "boolean"},
                "voteCount": {"type": "integer"},
                "watched": {"type": "boolean"},
                "year": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "flickpicker API",
	Description:      "Movie night catalog, search and voting.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
