// Package migrations embeds SQL migration files for use in tests and tooling.
// Each dialect keeps its own directory; database.Migrate picks one.
package migrations

import "embed"

//go:embed postgres/*.sql sqlite/*.sql
var FS embed.FS
