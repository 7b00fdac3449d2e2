package service

import (
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// tripDetailSchema describes the trip-detail document accepted on create.
// Reads stay lenient (normalize.Decode) so legacy rows still load; writes
// are held to the shape the generator is supposed to produce.
const tripDetailSchema = `{
  "type": "object",
  "required": ["name"],
  "properties": {
    "name":            {"type": "string", "pattern": "\\S"},
    "description":     {"type": "string"},
    "estimatedPrice":  {"type": ["string", "number"]},
    "duration":        {"type": "integer", "minimum": 0},
    "budget":          {"type": "string"},
    "travelStyle":     {"type": "string"},
    "country":         {"type": "string"},
    "interests":       {"type": "string"},
    "groupType":       {"type": "string"},
    "bestTimeToVisit": {"type": "array", "items": {"type": "string"}},
    "weatherInfo":     {"type": "array", "items": {"type": "string"}},
    "itinerary": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "day":      {"type": "integer", "minimum": 1},
          "location": {"type": "string"},
          "activities": {
            "type": "array",
            "items": {
              "type": "object",
              "properties": {
                "time":        {"type": "string"},
                "description": {"type": "string"}
              }
            }
          }
        }
      }
    }
  }
}`

var compiledTripDetailSchema = mustCompileSchema(tripDetailSchema)

func mustCompileSchema(s string) *gojsonschema.Schema {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(s))
	if err != nil {
		panic("service: compile schema: " + err.Error())
	}
	return schema
}

// schemaErrors joins the validation errors of result into one message.
func schemaErrors(result *gojsonschema.Result) string {
	msgs := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		msgs = append(msgs, desc.String())
	}
	return strings.Join(msgs, "; ")
}
