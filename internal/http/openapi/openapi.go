// Package openapi embeds the OpenAPI document for the HTTP API.
package openapi

import _ "embed"

// YAML is the embedded OpenAPI document, served at /openapi.yaml.
//
//go:embed openapi.yaml
var YAML []byte
