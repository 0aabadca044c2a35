package sceneio

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"rigtool/internal/scene"
)

// ErrNoRoot is returned when a document has no root node.
var ErrNoRoot = errors.New("sceneio: document has no root node")

// Scene file suffixes recognised by Load, Save and bulk discovery.
const (
	JSONSuffix = ".rig.json"
	YAMLSuffix = ".rig.yaml"
)

// IsSceneFile reports whether path names a scene document.
func IsSceneFile(path string) bool {
	lower := strings.ToLower(path)
	return strings.HasSuffix(lower, JSONSuffix) || strings.HasSuffix(lower, YAMLSuffix) ||
		strings.HasSuffix(lower, ".rig.yml")
}

// BaseName returns the file name of path without directory and scene suffix.
func BaseName(path string) string {
	name := filepath.Base(path)
	lower := strings.ToLower(name)
	for _, suffix := range []string{JSONSuffix, YAMLSuffix, ".rig.yml", ".json", ".yaml", ".yml"} {
		if strings.HasSuffix(lower, suffix) {
			return name[:len(name)-len(suffix)]
		}
	}
	return strings.TrimSuffix(name, filepath.Ext(name))
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

// Load reads a scene document. YAML is used for .yaml/.yml files, JSON otherwise.
func Load(path string) (*scene.Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("sceneio: read %s: %w", path, err)
	}
	s, err := Decode(data, isYAML(path))
	if err != nil {
		return nil, fmt.Errorf("sceneio: %s: %w", path, err)
	}
	return s, nil
}

// Decode parses a scene document from memory.
func Decode(data []byte, asYAML bool) (*scene.Scene, error) {
	var doc document
	var err error
	if asYAML {
		err = yaml.Unmarshal(data, &doc)
	} else {
		err = json.Unmarshal(data, &doc)
	}
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	return fromDocument(&doc)
}

// Encode serialises s as JSON or YAML.
func Encode(s *scene.Scene, asYAML bool) ([]byte, error) {
	if s == nil || s.Root == nil {
		return nil, ErrNoRoot
	}
	doc := toDocument(s)
	if asYAML {
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return nil, fmt.Errorf("sceneio: encode yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("sceneio: encode yaml: %w", err)
		}
		return buf.Bytes(), nil
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("sceneio: encode json: %w", err)
	}
	return append(data, '\n'), nil
}

// Save writes s to path, creating parent directories. The file is written to a
// temporary sibling and renamed into place, so a failed save leaves no partial output.
func Save(path string, s *scene.Scene) error {
	data, err := Encode(s, isYAML(path))
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("sceneio: create dir %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("sceneio: create temp: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("sceneio: write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("sceneio: write %s: %w", path, err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return fmt.Errorf("sceneio: chmod %s: %w", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("sceneio: rename into %s: %w", path, err)
	}
	return nil
}
