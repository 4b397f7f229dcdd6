// Package migrations holds the embedded SQL schema migrations. The files are
// compiled into the binary and applied through golang-migrate's iofs source.
package migrations

import "embed"

//go:embed *.sql
var Files embed.FS
