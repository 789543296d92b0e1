// Package migrations embeds the sqlite schema so the server binary and
// tests do not depend on the working directory.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
