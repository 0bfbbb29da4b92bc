// Package schemas embeds the JSON Schema documents used to validate
// .pitwall.yaml configuration and strategy-plan files before they reach
// the engine.
package schemas

import _ "embed"

//go:embed raceconfig.schema.json
var RaceConfigSchemaJSON string

//go:embed plans.schema.json
var PlansSchemaJSON string
