package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/pelletier/go-toml/v2"

	"github.com/GriffinCanCode/AgentOS/explorer/internal/shared/paths"
	"github.com/GriffinCanCode/AgentOS/explorer/internal/vfs"
)

// DefaultDrive is mounted when no mount table is configured.
const DefaultDrive = "/Local Disk"

// MountSpec describes one drive.
type MountSpec struct {
	Path string `yaml:"path" toml:"path"`
	Type string `yaml:"type" toml:"type"`
	Root string `yaml:"root,omitempty" toml:"root,omitempty"`
}

// Mounts is the mount table file.
type Mounts struct {
	Mounts []MountSpec `yaml:"mounts" toml:"mounts"`
}

// DefaultMounts is a single in-memory drive.
func DefaultMounts() *Mounts {
	return &Mounts{Mounts: []MountSpec{{Path: DefaultDrive, Type: vfs.MountMemory}}}
}

// LoadMounts reads a mount table. The format follows the extension: .yaml
// and .yml for YAML, .toml for TOML. An empty path yields DefaultMounts.
func LoadMounts(path string) (*Mounts, error) {
	if path == "" {
		return DefaultMounts(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read mount table: %w", err)
	}
	return ParseMounts(filepath.Ext(path), data)
}

// ParseMounts decodes a mount table in the format named by ext.
func ParseMounts(ext string, data []byte) (*Mounts, error) {
	var m Mounts
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &m); err != nil {
			return nil, fmt.Errorf("parse mount table: %w", err)
		}
	case ".toml":
		if err := toml.Unmarshal(data, &m); err != nil {
			return nil, fmt.Errorf("parse mount table: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported mount table format %q", ext)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// Validate checks every mount.
func (m *Mounts) Validate() error {
	if len(m.Mounts) == 0 {
		return fmt.Errorf("mount table has no mounts")
	}
	for i, mnt := range m.Mounts {
		if !paths.IsDrive(mnt.Path) {
			return fmt.Errorf("mount %d: %q must be a direct child of /", i, mnt.Path)
		}
		switch mnt.Type {
		case vfs.MountMemory:
		case vfs.MountOS:
			if mnt.Root == "" {
				return fmt.Errorf("mount %s: os mounts need a root", mnt.Path)
			}
		default:
			return fmt.Errorf("mount %s: unknown type %q", mnt.Path, mnt.Type)
		}
	}
	return nil
}

// Build mounts every drive into a new table. When recycleRoot is itself a
// drive that the table does not name, an in-memory drive is mounted there.
func (m *Mounts) Build(recycleRoot string) (*vfs.MountTable, error) {
	table := vfs.NewMountTable()
	for _, mnt := range m.Mounts {
		var fsys vfs.FileSystem
		switch mnt.Type {
		case vfs.MountOS:
			if err := os.MkdirAll(mnt.Root, 0o755); err != nil {
				return nil, fmt.Errorf("mount %s: %w", mnt.Path, err)
			}
			fsys = vfs.NewHostFS(mnt.Root)
		default:
			fsys = vfs.NewMemoryFS()
		}
		if err := table.Mount(mnt.Path, mnt.Type, fsys, mnt.Root); err != nil {
			return nil, err
		}
	}

	recycleRoot = paths.Normalize(recycleRoot)
	if paths.IsDrive(recycleRoot) && !m.names(recycleRoot) {
		if err := table.Mount(recycleRoot, vfs.MountMemory, vfs.NewMemoryFS(), ""); err != nil {
			return nil, err
		}
	}
	return table, nil
}

func (m *Mounts) names(path string) bool {
	for _, mnt := range m.Mounts {
		if paths.Normalize(mnt.Path) == path {
			return true
		}
	}
	return false
}
