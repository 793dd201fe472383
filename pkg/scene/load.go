package scene

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aretw0/playbox/internal/dto"
	"gopkg.in/yaml.v3"
)

// Load reads a fixture file. ".json" files are decoded as JSON, anything
// else as YAML.
func Load(path string) (*dto.SceneFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scene: %w", err)
	}

	if strings.ToLower(filepath.Ext(path)) == ".json" {
		var doc dto.SceneFile
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
		}
		return &doc, nil
	}

	doc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
	}
	return doc, nil
}

// Parse decodes a YAML fixture.
func Parse(data []byte) (*dto.SceneFile, error) {
	var doc dto.SceneFile
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}
