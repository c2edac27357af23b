// Package schemas embeds the JSON Schema documents shipped with leadgen.
package schemas

import _ "embed"

// Config is the schema for leadgen configuration files.
//
//go:embed config.schema.json
var Config string

// FilterSet is the schema for filter set documents passed to the CLI.
//
//go:embed filter_set.schema.json
var FilterSet string
