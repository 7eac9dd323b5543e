package codec

import jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

const tasksSchemaJSON = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "array",
  "items": {
    "type": "object",
    "required": ["title"],
    "properties": {
      "title": {"type": "string"},
      "description": {"type": ["string", "null"]}
    }
  }
}`

var tasksSchema = jsonschema.MustCompileString("tasks.schema.json", tasksSchemaJSON)
