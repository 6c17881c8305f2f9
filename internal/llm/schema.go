package llm

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/BetterCallFirewall/ShopAudit/internal/models"
	"github.com/invopop/jsonschema"
	"github.com/xeipuuv/gojsonschema"
)

// ReportSchemaJSON returns the JSON Schema of models.AuditReport.
// Fields without omitempty are required; extra fields from the model are tolerated.
func ReportSchemaJSON() ([]byte, error) {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: true,
		DoNotReference:            true,
		ExpandedStruct:            true,
	}
	schema := reflector.Reflect(&models.AuditReport{})

	// gojsonschema only knows drafts up to 7; the keywords we use are the same there.
	schema.Version = ""
	schema.ID = ""

	return json.Marshal(schema)
}

var reportSchema = sync.OnceValues(func() (*gojsonschema.Schema, error) {
	raw, err := ReportSchemaJSON()
	if err != nil {
		return nil, fmt.Errorf("failed to reflect report schema: %w", err)
	}
	schema, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return nil, fmt.Errorf("failed to compile report schema: %w", err)
	}
	return schema, nil
})

// validateReport checks a JSON document against the AuditReport schema.
// It returns a *SchemaError listing every violation.
func validateReport(content string) error {
	schema, err := reportSchema()
	if err != nil {
		return err
	}

	result, err := schema.Validate(gojsonschema.NewStringLoader(content))
	if err != nil {
		return &ParseError{Content: content, Err: err}
	}
	if result.Valid() {
		return nil
	}

	issues := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		issues = append(issues, desc.String())
	}
	return &SchemaError{Issues: issues}
}
