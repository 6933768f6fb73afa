package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/AgentOS/explorer/internal/vfs"
)

const yamlMounts = `
mounts:
  - path: /C
    type: os
    root: %s
  - path: /RAM
    type: memory
`

const tomlMounts = `
[[mounts]]
path = "/C"
type = "memory"

[[mounts]]
path = "/$Recycle.Bin"
type = "memory"
`

func TestLoadMountsDefault(t *testing.T) {
	m, err := LoadMounts("")
	require.NoError(t, err)
	require.Len(t, m.Mounts, 1)
	assert.Equal(t, DefaultDrive, m.Mounts[0].Path)

	table, err := m.Build("/$Recycle.Bin")
	require.NoError(t, err)

	names, err := table.ReadDir(context.Background(), "/")
	require.NoError(t, err)
	assert.Equal(t, []string{"$Recycle.Bin", "Local Disk"}, names)
}

func TestLoadMountsYAML(t *testing.T) {
	dir := t.TempDir()
	host := filepath.Join(dir, "c")
	file := filepath.Join(dir, "mounts.yaml")
	require.NoError(t, os.WriteFile(file, []byte(fmtMounts(host)), 0o644))

	m, err := LoadMounts(file)
	require.NoError(t, err)
	assert.Equal(t, []MountSpec{
		{Path: "/C", Type: vfs.MountOS, Root: host},
		{Path: "/RAM", Type: vfs.MountMemory},
	}, m.Mounts)

	table, err := m.Build("/C/$Recycle.Bin")
	require.NoError(t, err)

	// the recycle root lives inside /C, so no extra drive is mounted
	assert.Len(t, table.Mounts(), 2)

	ctx := context.Background()
	require.NoError(t, table.WriteFile(ctx, "/C/hello.txt", []byte("hi")))
	data, err := os.ReadFile(filepath.Join(host, "hello.txt"))
	require.NoError(t, err)
	assert.Equal(t, "hi", string(data))
}

func fmtMounts(host string) string {
	return fmt.Sprintf(yamlMounts, host)
}

func TestParseMountsTOML(t *testing.T) {
	m, err := ParseMounts(".toml", []byte(tomlMounts))
	require.NoError(t, err)
	require.Len(t, m.Mounts, 2)

	table, err := m.Build("/$Recycle.Bin")
	require.NoError(t, err)

	// the file already names the recycle drive
	assert.Len(t, table.Mounts(), 2)
}

func TestParseMountsRejects(t *testing.T) {
	tests := []struct {
		name string
		ext  string
		data string
	}{
		{"unknown extension", ".json", `{}`},
		{"empty table", ".yaml", "mounts: []"},
		{"nested mount point", ".yaml", "mounts:\n  - path: /a/b\n    type: memory\n"},
		{"unknown type", ".yaml", "mounts:\n  - path: /a\n    type: s3\n"},
		{"os without root", ".toml", "[[mounts]]\npath = \"/a\"\ntype = \"os\"\n"},
		{"bad yaml", ".yml", "mounts: [\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseMounts(tt.ext, []byte(tt.data))
			assert.Error(t, err)
		})
	}
}

func TestLoadMountsMissingFile(t *testing.T) {
	_, err := LoadMounts(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
