package resolve

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// namespaceBundle is the on-disk form of one namespace file, per
// SPEC_FULL.md §6.4: a YAML document with an import-alias map and a
// local-name-to-source map.
type namespaceBundle struct {
	Imports map[string]string `yaml:"imports"`
	Regexes map[string]string `yaml:"regexes"`
}

// LoadSystemDir reads every `*.yaml` file in dir into a ReSystem, one
// namespace per file, with the namespace name taken from the filename
// (without extension). This supplements spec.md's abstract "list of
// namespace bundles" resolver input with a concrete, file-based loader.
func LoadSystemDir(dir string) (*ReSystem, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve: reading namespace directory %s: %w", dir, err)
	}

	sys := NewReSystem()
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("resolve: reading namespace bundle %s: %w", path, err)
		}
		var bundle namespaceBundle
		if err := yaml.Unmarshal(data, &bundle); err != nil {
			return nil, fmt.Errorf("resolve: parsing namespace bundle %s: %w", path, err)
		}
		name := strings.TrimSuffix(entry.Name(), ".yaml")
		sys.AddNamespace(name, bundle.Imports, bundle.Regexes)
	}
	return sys, nil
}
