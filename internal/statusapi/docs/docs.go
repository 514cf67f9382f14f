// Package docs holds the generated Swagger specification for the status
// API, in the shape swag's codegen produces — hand-maintained here since
// this module doesn't run the swag CLI as part of its build.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "title": "{{escape .Title}}",
        "description": "{{escape .Description}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/healthz": {
            "get": {
                "tags": ["system"],
                "summary": "Liveness check",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/stats": {
            "get": {
                "tags": ["system"],
                "summary": "Interpreter and resource statistics",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/weirds/recent": {
            "get": {
                "tags": ["system"],
                "summary": "Recently reported anomalies",
                "responses": {"200": {"description": "OK"}}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger metadata, registered with swag at
// package init so gin-swagger can serve it.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "passivedns status API",
	Description:      "Read-only introspection surface for a passive DNS interpreter instance.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
