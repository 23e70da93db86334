// Package schemas embeds the JSON Schemas for the documents the service reads and writes.
package schemas

import (
	"embed"
	"fmt"
)

// Schema file names.
const (
	Assessment       = "assessment.schema.json"
	PredictionResult = "prediction_result.schema.json"
)

//go:embed *.schema.json
var files embed.FS

// Load returns the content of an embedded schema.
func Load(name string) (string, error) {
	data, err := files.ReadFile(name)
	if err != nil {
		return "", fmt.Errorf("unknown schema %q: %w", name, err)
	}
	return string(data), nil
}

// Names lists every embedded schema.
func Names() []string {
	return []string{Assessment, PredictionResult}
}
