package extraction

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/ternarybob/aperio/internal/models"
)

// fencePattern finds the first markdown code fence anywhere in the model
// response, with or without a json language tag. Models frequently wrap
// their JSON in a fence despite being told not to.
var fencePattern = regexp.MustCompile("```" + `(?:json)?\s*\n([\s\S]*?)\n` + "```")

// ExtractJSON pulls the JSON object out of a model response. If a fenced
// block is present the fence content is parsed, otherwise the whole
// response is parsed as-is. Returns a ParseError carrying the raw response
// when the result is not a JSON object.
func ExtractJSON(text string) (map[string]interface{}, error) {
	candidate := strings.TrimSpace(text)
	if match := fencePattern.FindStringSubmatch(text); match != nil {
		candidate = strings.TrimSpace(match[1])
	}

	var payload map[string]interface{}
	if err := json.Unmarshal([]byte(candidate), &payload); err != nil {
		return nil, models.NewParseError(err.Error(), text)
	}
	if payload == nil {
		return nil, models.NewParseError("response is not a JSON object", text)
	}

	return payload, nil
}
