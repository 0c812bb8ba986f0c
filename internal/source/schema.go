package source

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// entriesSchemaJSON describes the shape of a JSON import file. Missing keys
// are left to row validation so a bad row is skipped rather than failing the
// whole file.
const entriesSchemaJSON = `{
  "type": "array",
  "items": {
    "type": "object",
    "properties": {
      "category":   { "type": ["string", "null"] },
      "year":       { "type": "integer" },
      "month":      { "type": "integer" },
      "budget":     { "type": ["number", "string", "null"] },
      "actual":     { "type": ["number", "string", "null"] },
      "reforecast": { "type": ["number", "string", "null"] },
      "adjustment": { "type": ["number", "string", "null"] },
      "notes":      { "type": ["string", "null"] }
    }
  }
}`

var entriesSchemaLoader = gojsonschema.NewStringLoader(entriesSchemaJSON)

// maxSchemaIssues bounds how many violations are quoted in the error.
const maxSchemaIssues = 3

// validateEntriesJSON checks data against the import schema.
func validateEntriesJSON(data []byte) error {
	result, err := gojsonschema.Validate(entriesSchemaLoader, gojsonschema.NewBytesLoader(data))
	if err != nil {
		return fmt.Errorf("decoding json: %w", err)
	}
	if result.Valid() {
		return nil
	}

	issues := make([]string, 0, maxSchemaIssues)
	for i, desc := range result.Errors() {
		if i == maxSchemaIssues {
			issues = append(issues, fmt.Sprintf("and %d more", len(result.Errors())-i))
			break
		}
		issues = append(issues, desc.String())
	}
	return fmt.Errorf("json does not match entry schema: %s", strings.Join(issues, "; "))
}
