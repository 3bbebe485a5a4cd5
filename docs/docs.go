// Package docs registers the OpenAPI description of the articles API with swag
// so that http-swagger can serve it next to the Swagger UI.
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
    "paths": {
        "/articles": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Articles"],
                "summary": "List articles",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/model.Article"}}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/errresponse.ErrResponse"}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Articles"],
                "summary": "Create an article",
                "parameters": [
                    {"description": "Article", "name": "article", "in": "body", "required": true, "schema": {"$ref": "#/definitions/model.Article"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/model.Article"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errresponse.ErrResponse"}}
                }
            }
        },
        "/articles/{articleID}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Articles"],
                "summary": "Get an article",
                "parameters": [
                    {"type": "string", "description": "Article ID", "name": "articleID", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.Article"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errresponse.ErrResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errresponse.ErrResponse"}}
                }
            },
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Articles"],
                "summary": "Update an article",
                "parameters": [
                    {"type": "string", "description": "Article ID", "name": "articleID", "in": "path", "required": true},
                    {"description": "Fields to change", "name": "article", "in": "body", "required": true, "schema": {"$ref": "#/definitions/model.Article"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.Article"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errresponse.ErrResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errresponse.ErrResponse"}}
                }
            },
            "delete": {
                "produces": ["application/json"],
                "tags": ["Articles"],
                "summary": "Delete an article and its comments",
                "parameters": [
                    {"type": "string", "description": "Article ID", "name": "articleID", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/articlepayload.DeleteResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errresponse.ErrResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errresponse.ErrResponse"}}
                }
            }
        },
        "/comments": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Comments"],
                "summary": "List the comments of an article",
                "parameters": [
                    {"type": "string", "description": "Article ID", "name": "article", "in": "query", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/model.Comment"}}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errresponse.ErrResponse"}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Comments"],
                "summary": "Create a comment",
                "parameters": [
                    {"description": "Comment", "name": "comment", "in": "body", "required": true, "schema": {"$ref": "#/definitions/model.Comment"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/model.Comment"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errresponse.ErrResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errresponse.ErrResponse"}}
                }
            }
        },
        "/comments/{commentID}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Comments"],
                "summary": "Get a comment",
                "parameters": [
                    {"type": "string", "description": "Comment ID", "name": "commentID", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.Comment"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errresponse.ErrResponse"}}
                }
            },
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Comments"],
                "summary": "Update a comment",
                "parameters": [
                    {"type": "string", "description": "Comment ID", "name": "commentID", "in": "path", "required": true},
                    {"description": "Fields to change", "name": "comment", "in": "body", "required": true, "schema": {"$ref": "#/definitions/model.Comment"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.Comment"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errresponse.ErrResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errresponse.ErrResponse"}}
                }
            },
            "delete": {
                "produces": ["application/json"],
                "tags": ["Comments"],
                "summary": "Delete a comment",
                "parameters": [
                    {"type": "string", "description": "Comment ID", "name": "commentID", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.Comment"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errresponse.ErrResponse"}}
                }
            }
        }
    },
    "definitions": {
        "model.Article": {
            "type": "object",
            "required": ["author", "body", "title"],
            "properties": {
                "id": {"type": "string"},
                "title": {"type": "string"},
                "body": {"type": "string"},
                "author": {"type": "string"}
            }
        },
        "model.Comment": {
            "type": "object",
            "required": ["article", "author", "body"],
            "properties": {
                "id": {"type": "string"},
                "author": {"type": "string"},
                "body": {"type": "string"},
                "article": {"type": "string"}
            }
        },
        "model.DeleteResult": {
            "type": "object",
            "properties": {
                "acknowledged": {"type": "boolean"},
                "deletedCount": {"type": "integer"}
            }
        },
        "articlepayload.DeleteResponse": {
            "type": "object",
            "properties": {
                "article": {"$ref": "#/definitions/model.Article"},
                "comments": {"$ref": "#/definitions/model.DeleteResult"}
            }
        },
        "errresponse.ErrResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api",
	Schemes:          []string{},
	Title:            "Articles API",
	Description:      "Articles and the comments attached to them.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
