// pkg/registry/schema.go
package registry

// Entry is one generated triple.
type Entry struct {
	RawName    string `json:"raw_name"`
	Identifier string `json:"identifier"`
	Content    string `json:"content"`
}

// Document is the on-disk form of a Registry.
type Document struct {
	Count   int     `json:"count"`
	Entries []Entry `json:"entries"`
}

// DocumentSchema is the JSON schema every registry artifact must satisfy.
const DocumentSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["count", "entries"],
  "additionalProperties": false,
  "properties": {
    "count": {"type": "integer", "minimum": 0},
    "entries": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["raw_name", "identifier", "content"],
        "additionalProperties": false,
        "properties": {
          "raw_name": {"type": "string"},
          "identifier": {"type": "string", "pattern": "^[\\p{Lu}][\\p{L}\\p{Nd}_]*$"},
          "content": {"type": "string"}
        }
      }
    }
  }
}`
