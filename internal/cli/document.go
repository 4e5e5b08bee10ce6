package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/jvalaj/gridai/pkg/diagram"
	"github.com/jvalaj/gridai/pkg/layout"
)

// layoutDocument is the on-disk format produced by the layout command and
// consumed by render and inspect. A plain spec file (no layout key) also
// loads; commands compute the missing layout on the fly.
type layoutDocument struct {
	Spec   diagram.Spec   `json:"spec"`
	Layout *layout.Result `json:"layout,omitempty"`
}

// readDocument loads either a layout document or a bare spec file.
func readDocument(path string) (layoutDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return layoutDocument{}, err
	}

	var doc layoutDocument
	if err := json.Unmarshal(data, &doc); err == nil && len(doc.Spec.Nodes) > 0 {
		doc.Spec = doc.Spec.Clean()
		return doc, nil
	}

	// Fall back to a bare spec.
	spec, err := diagram.UnmarshalSpec(data)
	if err != nil {
		return layoutDocument{}, fmt.Errorf("not a spec or layout file: %w", err)
	}
	return layoutDocument{Spec: spec}, nil
}

// writeDocument writes a layout document as indented JSON.
func writeDocument(doc layoutDocument, path string) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0644)
}
