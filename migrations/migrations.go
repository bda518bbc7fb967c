// Package migrations expone los archivos SQL del esquema, embebidos para
// que cmd/migrate pueda aplicarlos sin depender del directorio de trabajo.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
