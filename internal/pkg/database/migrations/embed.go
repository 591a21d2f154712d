// Package migrations embute o esquema usado para subir bancos de desenvolvimento
// e de teste. Em produção o esquema pertence ao backend principal (Prisma).
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
