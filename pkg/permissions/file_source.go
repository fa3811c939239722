package permissions

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// groupRecord is the on-disk shape of one group definition. Unrecognized
// fields are tolerated; combined_permissions is accepted on read but always
// recomputed by Flatten.
type groupRecord struct {
	Permissions         []string `yaml:"permissions"`
	Inheritance         []string `yaml:"inheritance"`
	IsDefault           bool     `yaml:"is_default"`
	CombinedPermissions []string `yaml:"combined_permissions,omitempty"`
}

// FileSource stores group definitions in a single YAML file mapping group
// name to group record. Declaration order in the file is the registry order,
// which is why decoding goes through yaml.Node rather than a plain map.
type FileSource struct {
	fs       afero.Fs
	filePath string
}

// NewFileSource creates a FileSource over the OS filesystem
func NewFileSource(filePath string) *FileSource {
	return NewFileSourceFs(afero.NewOsFs(), filePath)
}

// NewFileSourceFs creates a FileSource over the given filesystem
func NewFileSourceFs(fs afero.Fs, filePath string) *FileSource {
	return &FileSource{
		fs:       fs,
		filePath: filePath,
	}
}

// LoadGroups implements Source
func (s *FileSource) LoadGroups() (*Registry, error) {
	data, err := afero.ReadFile(s.fs, s.filePath)
	if err != nil {
		return nil, fmt.Errorf("reading groups file: %w", err)
	}

	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("parsing groups file: %w", err)
	}

	registry := NewRegistry()
	if len(root.Content) == 0 {
		// Empty file parses to an empty registry
		return registry, nil
	}

	mapping := root.Content[0]
	if mapping.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("parsing groups file: expected a mapping of group name to definition, got %s", nodeKind(mapping))
	}

	for i := 0; i+1 < len(mapping.Content); i += 2 {
		keyNode := mapping.Content[i]
		valueNode := mapping.Content[i+1]

		var record groupRecord
		if err := valueNode.Decode(&record); err != nil {
			return nil, fmt.Errorf("parsing group %q: %w", keyNode.Value, err)
		}

		group := &Group{
			Name:        keyNode.Value,
			Permissions: record.Permissions,
			Inheritance: record.Inheritance,
			IsDefault:   record.IsDefault,
		}
		if err := registry.Add(group); err != nil {
			return nil, err
		}
	}

	return registry, nil
}

// SaveGroups implements Source. Groups are written in registry order with
// the same field names they were read with.
func (s *FileSource) SaveGroups(registry *Registry) error {
	mapping := &yaml.Node{Kind: yaml.MappingNode}
	for _, group := range registry.Groups() {
		keyNode := &yaml.Node{Kind: yaml.ScalarNode, Value: group.Name}
		valueNode := &yaml.Node{}
		if err := valueNode.Encode(groupRecord{
			Permissions: group.Permissions,
			Inheritance: group.Inheritance,
			IsDefault:   group.IsDefault,
		}); err != nil {
			return fmt.Errorf("encoding group %q: %w", group.Name, err)
		}
		mapping.Content = append(mapping.Content, keyNode, valueNode)
	}

	data, err := yaml.Marshal(mapping)
	if err != nil {
		return fmt.Errorf("encoding groups: %w", err)
	}
	if err := afero.WriteFile(s.fs, s.filePath, data, 0644); err != nil {
		return fmt.Errorf("writing groups file: %w", err)
	}
	return nil
}

// Exists implements Source
func (s *FileSource) Exists() (bool, error) {
	_, err := s.fs.Stat(s.filePath)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, fmt.Errorf("checking groups file: %w", err)
}

// Install implements Source. The parent directory is created if missing.
func (s *FileSource) Install(registry *Registry) error {
	if err := s.fs.MkdirAll(filepath.Dir(s.filePath), 0755); err != nil {
		return fmt.Errorf("creating groups directory: %w", err)
	}
	return s.SaveGroups(registry)
}

// Path returns the path of the backing file
func (s *FileSource) Path() string {
	return s.filePath
}

func nodeKind(n *yaml.Node) string {
	switch n.Kind {
	case yaml.DocumentNode:
		return "document"
	case yaml.SequenceNode:
		return "sequence"
	case yaml.MappingNode:
		return "mapping"
	case yaml.ScalarNode:
		return "scalar"
	case yaml.AliasNode:
		return "alias"
	}
	return "unknown"
}
