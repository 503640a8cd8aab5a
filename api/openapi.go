// Package api holds the OpenAPI document of the booking wizard API. The
// HTTP adapter validates requests against it and serves it to Swagger UI.
package api

import _ "embed"

// OpenAPI is the raw api/openapi.yml document.
//
//go:embed openapi.yml
var OpenAPI []byte
