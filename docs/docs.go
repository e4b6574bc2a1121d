// Package docs registers the swagger spec served under /swagger. The spec
// is maintained by hand and lists the primary routes; the per-handler godoc
// annotations remain the authoritative description.
// TODO: generate this file with `swag init -g cmd/riskbases/main.go` once
// swag is part of the build image.
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
        "/v1/auth/login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Auth"],
                "summary": "Log in with name and password",
                "responses": {
                    "200": {"description": "token pair"},
                    "401": {"description": "invalid credentials"}
                }
            }
        },
        "/v1/auth/refresh": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Auth"],
                "summary": "Exchange a refresh token for a new token pair",
                "responses": {
                    "200": {"description": "token pair"},
                    "401": {"description": "invalid refresh token"}
                }
            }
        },
        "/v1/auth/signup": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Auth"],
                "summary": "Create an account",
                "responses": {
                    "200": {"description": "token pair"},
                    "409": {"description": "name already taken"}
                }
            }
        },
        "/v1/modules": {
            "get": {
                "security": [{"Bearer": []}],
                "produces": ["application/json"],
                "tags": ["Catalog"],
                "summary": "List the available sector modules",
                "responses": {
                    "200": {"description": "modules"}
                }
            }
        },
        "/v1/projects": {
            "get": {
                "security": [{"Bearer": []}],
                "produces": ["application/json"],
                "tags": ["Project"],
                "summary": "List the projects of the current workspace",
                "responses": {
                    "200": {"description": "projects"}
                }
            },
            "post": {
                "security": [{"Bearer": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Project"],
                "summary": "Create a project and resolve its setup route",
                "responses": {
                    "200": {"description": "created project"},
                    "400": {"description": "Request parameter error"}
                }
            }
        },
        "/v1/projects/{id}/setup/csv/confirm": {
            "post": {
                "security": [{"Bearer": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["CSVImport"],
                "summary": "Persist the reviewed import and complete the setup",
                "parameters": [
                    {"type": "integer", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "import summary"},
                    "409": {"description": "setup already completed"}
                }
            }
        },
        "/v1/projects/{id}/setup/csv/parse": {
            "post": {
                "security": [{"Bearer": []}],
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["CSVImport"],
                "summary": "Parse an uploaded risk CSV into an import preview",
                "parameters": [
                    {"type": "integer", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "import preview"},
                    "400": {"description": "Request parameter error"}
                }
            }
        },
        "/v1/projects/{id}/setup/finish": {
            "post": {
                "security": [{"Bearer": []}],
                "produces": ["application/json"],
                "tags": ["Setup"],
                "summary": "Finish the manual setup wizard",
                "parameters": [
                    {"type": "integer", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "activated project"},
                    "409": {"description": "setup already completed"}
                }
            }
        }
    },
    "securityDefinitions": {
        "Bearer": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "0.1.0",
	Host:             "",
	BasePath:         "",
	Schemes:          []string{},
	Title:            "RiskBases API",
	Description:      "API server for RiskBases, a multi-tenant project risk management platform.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
