// Where: cli/internal/config/schema.go
// What: Schema validation for the custom.dart section.
// Why: Reject misspelled or mistyped keys before a build starts.
package config

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"sigs.k8s.io/yaml"
)

const sectionSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "additionalProperties": false,
  "properties": {
    "dockerImage": {"type": "string", "minLength": 1},
    "dockerTag": {"type": ["string", "number"]},
    "dockerPath": {"type": "string", "minLength": 1},
    "libPath": {"type": "string", "pattern": "^[A-Za-z0-9._/-]+$"},
    "buildTimeout": {"type": "string", "pattern": "^[0-9]+(\\.[0-9]+)?(ns|us|ms|s|m|h)([0-9]+(\\.[0-9]+)?(ns|us|ms|s|m|h))*$"},
    "keepStage": {"type": "boolean"},
    "publish": {
      "type": "object",
      "additionalProperties": false,
      "properties": {
        "bucket": {"type": "string", "minLength": 1},
        "prefix": {"type": "string"},
        "endpoint": {"type": "string"},
        "ledgerTable": {"type": "string"}
      }
    }
  }
}`

var (
	schemaOnce     sync.Once
	schemaErr      error
	compiledSchema *jsonschema.Schema
)

// ParseSection validates a YAML custom.dart section and decodes it.
// An empty section yields a zero BuildConfig.
func ParseSection(content []byte) (BuildConfig, error) {
	if strings.TrimSpace(string(content)) == "" {
		return BuildConfig{}, nil
	}
	sch, err := loadSchema()
	if err != nil {
		return BuildConfig{}, err
	}

	jsonData, err := yaml.YAMLToJSON(content)
	if err != nil {
		return BuildConfig{}, fmt.Errorf("convert yaml to json: %w", err)
	}

	var document any
	if err := json.Unmarshal(jsonData, &document); err != nil {
		return BuildConfig{}, fmt.Errorf("decode custom.dart: %w", err)
	}
	if document == nil {
		return BuildConfig{}, nil
	}
	if err := sch.Validate(document); err != nil {
		return BuildConfig{}, fmt.Errorf("custom.dart: %w", err)
	}
	canonicalizeTag(document)

	normalized, err := json.Marshal(document)
	if err != nil {
		return BuildConfig{}, err
	}
	var cfg BuildConfig
	if err := json.Unmarshal(normalized, &cfg); err != nil {
		return BuildConfig{}, fmt.Errorf("decode custom.dart: %w", err)
	}
	return cfg, nil
}

func loadSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiledSchema, schemaErr = jsonschema.CompileString("dart.schema.json", sectionSchema)
	})
	return compiledSchema, schemaErr
}

// canonicalizeTag turns `dockerTag: 2` into the string "2".
func canonicalizeTag(document any) {
	root, ok := document.(map[string]any)
	if !ok {
		return
	}
	if tag, ok := root["dockerTag"]; ok {
		if _, isString := tag.(string); !isString {
			root["dockerTag"] = fmt.Sprint(tag)
		}
	}
}
