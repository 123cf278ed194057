// Package docs registers the OpenAPI document served under /swagger.
//
// The checked-in template only carries the API info and the bearer scheme.
// Running go generate replaces this file with the full path listing built
// from the handler annotations.
package docs

//go:generate go run github.com/swaggo/swag/cmd/swag@v1.16.2 init -g internal/api/router.go -d ../ -o . --parseInternal

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
    "paths": {},
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
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Alumni Network API",
	Description:      "Alumni networking platform: profiles, connections, clubs, crowdfunding, posts, mentorship and notifications.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
