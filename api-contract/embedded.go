package apicontract

import (
	_ "embed"
)

//go:embed openapi.yml
var specBytes []byte

// GetSpecBytes returns the raw OpenAPI specification.
func GetSpecBytes() []byte {
	return specBytes
}
