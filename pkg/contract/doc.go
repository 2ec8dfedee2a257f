// Package contract embeds the OpenAPI description of the remote prediction
// endpoint and validates payloads against its schemas with kin-openapi.
package contract
