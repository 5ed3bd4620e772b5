// Package migrations embeds the schema migration files so binaries can
// apply them without a filesystem mount.
package migrations

import (
	"embed"
	"io/fs"
)

//go:embed *.sql
var files embed.FS

// FS returns the migration files rooted at the package directory.
func FS() fs.FS {
	return files
}
