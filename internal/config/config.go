package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"

	"rigtool/internal/skeleton"
)

// JointEntry is one element of the "joints" array.
type JointEntry struct {
	OldName       string `json:"old-name" yaml:"old-name"`
	NewName       string `json:"new-name" yaml:"new-name"`
	PhysicsProxy  string `json:"physics-proxy,omitempty" yaml:"physics-proxy,omitempty"`
	RagdollProxy  string `json:"ragdoll-proxy,omitempty" yaml:"ragdoll-proxy,omitempty"`
	PrimitiveType string `json:"primitive-type,omitempty" yaml:"primitive-type,omitempty"`
	ParentNode    string `json:"parent-node,omitempty" yaml:"parent-node,omitempty"`
}

// Config holds the joint mapping and the processing flags.
type Config struct {
	Joints []JointEntry `json:"joints" yaml:"joints"`

	// Scene edits
	Axis             string `json:"axis" yaml:"axis"`
	ApplyWeaponFix   bool   `json:"applyWeaponFix" yaml:"applyWeaponFix"`
	AddRoot          bool   `json:"addRoot" yaml:"addRoot"`
	AddRootChildName string `json:"addRootChildName" yaml:"addRootChildName"`
	AddRootRootName  string `json:"addRootRootName" yaml:"addRootRootName"`
	RemoveLeafName   string `json:"removeLeafName" yaml:"removeLeafName"`

	// Also settable from the command line
	Scale         float64 `json:"scale" yaml:"scale"`
	AddIK         bool    `json:"addIK" yaml:"addIK"`
	ApplyRigFixes bool    `json:"applyRigFixes" yaml:"applyRigFixes"`

	// Run settings, command line only
	Workers int  `json:"-" yaml:"-"`
	Verbose bool `json:"-" yaml:"-"`
}

// DefaultRootName is used for the synthetic root when addRootRootName is not set.
const DefaultRootName = "root"

// Load reads a joint-mapping file. YAML is used for .yaml/.yml files, JSON otherwise.
// Fields not set in the file keep their zero values; unknown fields are ignored.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &cfg)
	default:
		err = json.Unmarshal(data, &cfg)
	}
	if err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	if err := cfg.validate(); err != nil {
		return Config{}, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	for i, j := range c.Joints {
		if j.OldName == "" {
			return fmt.Errorf("joints[%d]: missing old-name", i)
		}
		if j.NewName == "" {
			return fmt.Errorf("joints[%d] (%s): missing new-name", i, j.OldName)
		}
	}
	if c.Scale < 0 {
		return fmt.Errorf("scale %v must be positive", c.Scale)
	}
	return nil
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	Scale   float64
	AddIK   bool
	FixRig  bool
	Workers int
	Verbose bool
}

// Resolve applies CLI overrides and fills in defaults.
func (c *Config) Resolve(flags Flags) {
	// CLI flags override config file
	if flags.Scale > 0 {
		c.Scale = flags.Scale
	}
	if flags.AddIK {
		c.AddIK = true
	}
	if flags.FixRig {
		c.ApplyRigFixes = true
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}
	c.Verbose = c.Verbose || flags.Verbose

	if c.Scale <= 0 {
		c.Scale = 1.0
	}
	if c.AddRootRootName == "" {
		c.AddRootRootName = DefaultRootName
	}
	if c.Workers <= 0 {
		c.Workers = 1
	}
	if n := runtime.NumCPU(); c.Workers > n {
		c.Workers = n
	}
}

// Table builds the joint enhancement table from the joints array.
func (c Config) Table() skeleton.EnhancementTable {
	entries := make([]skeleton.JointEnhancement, len(c.Joints))
	for i, j := range c.Joints {
		entries[i] = skeleton.JointEnhancement{
			OldName:       j.OldName,
			NewName:       j.NewName,
			PhysicsProxy:  j.PhysicsProxy,
			RagdollProxy:  j.RagdollProxy,
			PrimitiveType: j.PrimitiveType,
			ParentNode:    j.ParentNode,
		}
	}
	return skeleton.NewEnhancementTable(entries)
}

// LeafFilter returns the leaf-removal filter, empty when removeLeafName is not set.
func (c Config) LeafFilter() skeleton.LeafFilter {
	return skeleton.ParseLeafFilter(c.RemoveLeafName)
}

// AxisSystem returns the requested target axis system, or nil when none is configured.
func (c Config) AxisSystem() (*skeleton.AxisSystem, error) {
	if c.Axis == "" {
		return nil, nil
	}
	a, err := skeleton.ParseAxisSystem(c.Axis)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &a, nil
}
