package models

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed worlds/treasure_hunt.yaml
var defaultWorldYAML []byte

// DefaultWorld returns the built-in treasure hunt.
func DefaultWorld() *World {
	w, err := ParseWorld(defaultWorldYAML)
	if err != nil {
		panic(fmt.Sprintf("built-in world is invalid: %v", err))
	}
	return w
}

// ParseWorld decodes a YAML world definition and validates it.
func ParseWorld(data []byte) (*World, error) {
	var def WorldDefinition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("failed to parse world YAML: %w", err)
	}
	return NewWorld(def)
}

// LoadWorld reads a world definition from path.
func LoadWorld(path string) (*World, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	w, err := ParseWorld(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return w, nil
}

// SaveWorld writes w to path as YAML.
func SaveWorld(w *World, path string) error {
	data, err := yaml.Marshal(w.Definition())
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
