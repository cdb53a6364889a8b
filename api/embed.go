// Package api holds the OpenAPI description of the HTTP interface.
package api

import _ "embed"

// OpenAPISpec is the OpenAPI 3 document in YAML form.
//
//go:embed openapi.yaml
var OpenAPISpec []byte
