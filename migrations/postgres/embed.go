// Package postgres embeds the SQL migrations so the migrate command ships
// inside the binary.
package postgres

import "embed"

//go:embed *.sql
var FS embed.FS
