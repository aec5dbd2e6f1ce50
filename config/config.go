// Package config reads and writes the sepia module information file.
package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v2"
)

const DefaultFile = "sepia.yaml"

type ModuleInformation struct {
	Package          string `yaml:"Package" toml:"Package"`
	LenientOperators bool   `yaml:"LenientOperators,omitempty" toml:"LenientOperators,omitempty"`
	LogLevel         string `yaml:"LogLevel,omitempty" toml:"LogLevel,omitempty"`
	LogFile          string `yaml:"LogFile,omitempty" toml:"LogFile,omitempty"`
}

// Load decodes path as toml when it has a .toml suffix and as yaml otherwise.
func Load(path string) (ModuleInformation, error) {
	var info ModuleInformation

	if isToml(path) {
		if _, err := toml.DecodeFile(path, &info); err != nil {
			return ModuleInformation{}, fmt.Errorf("reading %s: %w", path, err)
		}
		return info, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return ModuleInformation{}, fmt.Errorf("reading %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &info); err != nil {
		return ModuleInformation{}, fmt.Errorf("reading %s: %w", path, err)
	}
	return info, nil
}

// LoadIfExists is Load, except that a missing file yields the zero value.
func LoadIfExists(path string) (ModuleInformation, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return ModuleInformation{}, nil
	}
	return Load(path)
}

func isToml(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".toml")
}

// Write encodes info in the format Load expects for path.
func Write(path string, info ModuleInformation) error {
	var out []byte
	if isToml(path) {
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(info); err != nil {
			return fmt.Errorf("creating %s: %w", path, err)
		}
		out = buf.Bytes()
	} else {
		var err error
		if out, err = yaml.Marshal(info); err != nil {
			return fmt.Errorf("creating %s: %w", path, err)
		}
	}
	if err := os.WriteFile(path, out, 0o644); err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	return nil
}
