// Package validation checks configuration and plan files against embedded
// JSON Schemas before the engine ever sees them, so an operator gets a
// list of precise locations instead of the first unmarshal error.
package validation

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gopkg.in/yaml.v3"

	"github.com/apexbrain/pitwall/schemas"
)

// defaultPrinter is used to format schema validation error messages.
var defaultPrinter = message.NewPrinter(language.English)

// raceConfigSchema is the compiled JSON Schema for .pitwall.yaml files.
var raceConfigSchema *jsonschema.Schema

// plansSchema is the compiled JSON Schema for strategy-plan files.
var plansSchema *jsonschema.Schema

func init() {
	raceConfigSchema = mustCompileSchema(schemas.RaceConfigSchemaJSON, "raceconfig.schema.json")
	plansSchema = mustCompileSchema(schemas.PlansSchemaJSON, "plans.schema.json")
}

func mustCompileSchema(raw string, name string) *jsonschema.Schema {
	var schemaDoc any
	if err := json.Unmarshal([]byte(raw), &schemaDoc); err != nil {
		panic(fmt.Sprintf("failed to parse embedded %s: %v", name, err))
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(name, schemaDoc); err != nil {
		panic(fmt.Sprintf("failed to add %s resource: %v", name, err))
	}

	sch, err := compiler.Compile(name)
	if err != nil {
		panic(fmt.Sprintf("failed to compile %s: %v", name, err))
	}
	return sch
}

// ValidateRaceConfigBytes validates raw YAML bytes against the race
// configuration schema. An empty slice means the document is valid.
func ValidateRaceConfigBytes(data []byte) []string {
	return validateYAMLBytes(raceConfigSchema, data)
}

// ValidatePlansBytes validates raw YAML bytes against the plans schema.
func ValidatePlansBytes(data []byte) []string {
	return validateYAMLBytes(plansSchema, data)
}

func validateYAMLBytes(schema *jsonschema.Schema, data []byte) []string {
	var yamlDoc any
	if err := yaml.Unmarshal(data, &yamlDoc); err != nil {
		return []string{fmt.Sprintf("YAML parse error: %v", err)}
	}

	jsonCompatible := convertToJSONCompatible(yamlDoc)

	return validateAgainstSchema(schema, jsonCompatible)
}

func validateAgainstSchema(schema *jsonschema.Schema, instance any) []string {
	err := schema.Validate(instance)
	if err == nil {
		return nil
	}
	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return []string{fmt.Sprintf("schema: %v", err)}
	}
	var errs []string
	collectSchemaErrors(ve, &errs)
	return errs
}

func collectSchemaErrors(ve *jsonschema.ValidationError, errs *[]string) {
	if len(ve.Causes) == 0 {
		loc := "/"
		if len(ve.InstanceLocation) > 0 {
			loc = "/" + strings.Join(ve.InstanceLocation, "/")
		}
		*errs = append(*errs, fmt.Sprintf("%s: %s", loc, ve.ErrorKind.LocalizedString(defaultPrinter)))
		return
	}
	for _, c := range ve.Causes {
		collectSchemaErrors(c, errs)
	}
}

// convertToJSONCompatible walks a yaml.v3 document converting nested
// containers so the schema validator sees plain JSON types.
func convertToJSONCompatible(v any) any {
	switch val := v.(type) {
	case map[string]any:
		result := make(map[string]any, len(val))
		for k, v2 := range val {
			result[k] = convertToJSONCompatible(v2)
		}
		return result
	case []any:
		result := make([]any, len(val))
		for i, v2 := range val {
			result[i] = convertToJSONCompatible(v2)
		}
		return result
	default:
		return val
	}
}
