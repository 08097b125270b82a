// Package migrations embeds the SQL that creates the mediasync schema.
package migrations

import (
	_ "embed"
)

//go:embed sql/001_initial.sql
var InitialSQL string
