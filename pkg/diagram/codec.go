package diagram

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// MarshalSpec serializes a spec to pretty-printed JSON bytes.
func MarshalSpec(s Spec) ([]byte, error) {
	return json.MarshalIndent(s, "", "  ")
}

// UnmarshalSpec deserializes JSON bytes into a spec and repairs structural
// problems via [Spec.Clean]. A missing type is left empty so the layout
// selector applies its default policy.
func UnmarshalSpec(data []byte) (Spec, error) {
	var s Spec
	if err := json.Unmarshal(data, &s); err != nil {
		return Spec{}, fmt.Errorf("unmarshal spec: %w", err)
	}
	return s.Clean(), nil
}

// ReadSpec reads a spec from r.
func ReadSpec(r io.Reader) (Spec, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Spec{}, fmt.Errorf("read spec: %w", err)
	}
	return UnmarshalSpec(data)
}

// ReadSpecFile reads a spec from a JSON file.
func ReadSpecFile(path string) (Spec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Spec{}, fmt.Errorf("read %s: %w", path, err)
	}
	return UnmarshalSpec(data)
}

// WriteSpecFile writes a spec to a JSON file.
func WriteSpecFile(s Spec, path string) error {
	data, err := MarshalSpec(s)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
