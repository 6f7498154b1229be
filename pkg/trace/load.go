package trace

import (
	"encoding/json"
	"fmt"
	"os"
)

// Parse decodes a master trace from JSON and validates its structure.
func Parse(data []byte) (*MasterTrace, error) {
	var m MasterTrace
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse trace: %w", err)
	}
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("invalid trace: %w", err)
	}
	return &m, nil
}

// Load reads and parses a master trace from a JSON file.
func Load(path string) (*MasterTrace, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read trace file: %w", err)
	}
	return Parse(data)
}

// ParseSpec decodes an optional master spec (layout hints) from JSON.
func ParseSpec(data []byte) (*MasterSpec, error) {
	var s MasterSpec
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse master spec: %w", err)
	}
	return &s, nil
}

// LoadSpec reads and parses a master spec from a JSON file.
func LoadSpec(path string) (*MasterSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read master spec file: %w", err)
	}
	return ParseSpec(data)
}
