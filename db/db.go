// Package db carries the goose migrations embedded into the binary.
package db

import "embed"

// Migrations holds the SQL migrations under migrations/.
//
//go:embed migrations/*.sql
var Migrations embed.FS

// MigrationsDir is the directory inside Migrations that goose reads.
const MigrationsDir = "migrations"
