package extraction

import (
	"time"

	"github.com/ternarybob/aperio/internal/models"
)

// Normalize shapes a parsed model payload into the analysis envelope.
// Missing fields get defaults so downstream consumers never see nulls:
// page_type falls back to "unknown", objects to {}, tables to []. The
// caller fills the document fields of meta; page type and timestamp are
// derived here.
func Normalize(payload map[string]interface{}, meta models.AnalysisMetadata) *models.PageAnalysis {
	meta.PageType = stringField(payload, "page_type", "unknown")
	meta.ProcessedAt = time.Now().UTC().Format(time.RFC3339)

	return &models.PageAnalysis{
		Success:  true,
		Metadata: meta,
		PageIdentification: models.PageIdentification{
			Number: stringField(payload, "page_type", ""),
			Title:  stringField(payload, "page_title", ""),
		},
		StructuredData:   mapField(payload, "structured_data"),
		Tables:           sliceField(payload, "tables"),
		Validation:       models.ValidationInfo{SchemaMatched: true, UnmappedFields: []string{}, GeminiNotes: ""},
		AdditionalFields: mapField(payload, "additional_fields"),
	}
}

func stringField(payload map[string]interface{}, key, fallback string) string {
	if value, ok := payload[key].(string); ok {
		return value
	}
	return fallback
}

func mapField(payload map[string]interface{}, key string) map[string]interface{} {
	if value, ok := payload[key].(map[string]interface{}); ok {
		return value
	}
	return map[string]interface{}{}
}

func sliceField(payload map[string]interface{}, key string) []interface{} {
	if value, ok := payload[key].([]interface{}); ok {
		return value
	}
	return []interface{}{}
}
