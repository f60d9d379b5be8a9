// Package locales embeds the guidance-message catalogs served by the API.
package locales

import "embed"

// FS holds one YAML catalog per language.
//
//go:embed *.yaml
var FS embed.FS
