// Package repository implements catalog persistence on PostgreSQL.
package repository

import (
	"embed"
	"io/fs"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// Migrations returns the goose migrations of the products schema,
// rooted so they can be passed to db.Migrate directly.
func Migrations() fs.FS {
	sub, err := fs.Sub(migrationFiles, "migrations")
	if err != nil {
		// Only possible if the embed pattern above is broken.
		panic(err)
	}
	return sub
}
