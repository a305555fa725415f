// Package migrations embeds the PostgreSQL schema files.
package migrations

import "embed"

// FS holds goose migrations named NNNNNN_description.sql, each with
// -- +goose Up and -- +goose Down sections.
//
//go:embed *.sql
var FS embed.FS
