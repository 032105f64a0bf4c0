// Package render provides output formatting for advent commands.
package render

import (
	"encoding/json"
	"io"
)

// ProjectSummary represents a project in ls output (both human and JSON).
// This is the public contract for ls --json output.
type ProjectSummary struct {
	Period int    `json:"period"`
	Day    int    `json:"day"`
	Binary string `json:"binary"`
	Dir    string `json:"dir"`
	Status string `json:"status"`
}

// LSJSONEnvelope is the stable JSON output format for ls --json.
type LSJSONEnvelope struct {
	SchemaVersion string           `json:"schema_version"`
	Data          []ProjectSummary `json:"data"`
}

// WriteLSJSON writes the ls output as indented JSON. An empty list is
// written as "data": [].
func WriteLSJSON(w io.Writer, summaries []ProjectSummary) error {
	if summaries == nil {
		summaries = []ProjectSummary{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(LSJSONEnvelope{SchemaVersion: "1.0", Data: summaries})
}
