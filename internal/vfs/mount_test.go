package vfs

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTable(t *testing.T) *MountTable {
	t.Helper()
	table := NewMountTable()
	require.NoError(t, table.Mount("/C", MountMemory, NewMemoryFS(), ""))
	require.NoError(t, table.Mount("/D", MountMemory, NewMemoryFS(), ""))
	return table
}

func TestMountTable_RootListsDrives(t *testing.T) {
	table := newTestTable(t)

	names, err := table.ReadDir(context.Background(), "/")
	require.NoError(t, err)
	assert.Equal(t, []string{"C", "D"}, names)

	info, err := table.Stat(context.Background(), "/")
	require.NoError(t, err)
	assert.True(t, info.IsDir)
}

func TestMountTable_MountValidation(t *testing.T) {
	table := newTestTable(t)

	assert.Error(t, table.Mount("/C", MountMemory, NewMemoryFS(), ""))
	assert.Error(t, table.Mount("/a/b", MountMemory, NewMemoryFS(), ""))
	assert.Error(t, table.Mount("/", MountMemory, NewMemoryFS(), ""))
	assert.Error(t, table.Mount("/E", MountMemory, nil, ""))
}

func TestMountTable_RoutesToDrive(t *testing.T) {
	ctx := context.Background()
	table := newTestTable(t)

	require.NoError(t, table.Mkdir(ctx, "/C/docs", false))
	require.NoError(t, table.WriteFile(ctx, "/C/docs/a.txt", []byte("c")))

	info, err := table.Stat(ctx, "/C/docs/a.txt")
	require.NoError(t, err)
	assert.Equal(t, "/C/docs/a.txt", info.Path)
	assert.Equal(t, "a.txt", info.Name)

	_, err = table.Stat(ctx, "/D/docs/a.txt")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMountTable_CrossDeviceRename(t *testing.T) {
	ctx := context.Background()
	table := newTestTable(t)
	require.NoError(t, table.WriteFile(ctx, "/C/a.txt", []byte("c")))

	err := table.Rename(ctx, "/C/a.txt", "/D/a.txt")
	require.Error(t, err)
	assert.Equal(t, KindCrossDevice, KindOf(err))
	assert.ErrorIs(t, err, ErrCrossDevice)
}

func TestMountTable_ErrorsCarryOuterPath(t *testing.T) {
	_, err := newTestTable(t).Stat(context.Background(), "/C/missing")
	require.Error(t, err)

	var e *Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, "/C/missing", e.Path)
	assert.Equal(t, KindNotFound, e.Kind)
}

func TestMountTable_DrivesAreProtected(t *testing.T) {
	ctx := context.Background()
	table := newTestTable(t)

	assert.ErrorIs(t, table.Remove(ctx, "/C", true), ErrPermission)
	assert.ErrorIs(t, table.Rename(ctx, "/C", "/E"), ErrNotFound)
	assert.ErrorIs(t, table.Mkdir(ctx, "/E", false), ErrPermission)
	assert.ErrorIs(t, table.WriteFile(ctx, "/x.txt", nil), ErrPermission)
	assert.NoError(t, table.Mkdir(ctx, "/C", true))
}

func TestMountTable_UnknownDrive(t *testing.T) {
	_, err := newTestTable(t).ReadFile(context.Background(), "/Z/a.txt")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMountTable_Drives(t *testing.T) {
	ctx := context.Background()
	table := newTestTable(t)
	require.NoError(t, table.WriteFile(ctx, "/C/a.txt", []byte("12345")))
	require.NoError(t, table.Mkdir(ctx, "/C/sub", false))
	require.NoError(t, table.WriteFile(ctx, "/C/sub/b.txt", []byte("123")))

	host := t.TempDir()
	require.NoError(t, table.Mount("/H", MountOS, NewHostFS(host), host))
	require.NoError(t, table.WriteFile(ctx, "/H/h.bin", []byte("hh")))

	drives, err := table.Drives(ctx)
	require.NoError(t, err)
	require.Len(t, drives, 3)

	assert.Equal(t, "C", drives[0].Name)
	assert.Equal(t, int64(8), drives[0].UsedBytes)
	assert.Equal(t, int64(0), drives[1].UsedBytes)
	assert.Equal(t, MountOS, drives[2].Type)
	assert.Equal(t, int64(2), drives[2].UsedBytes)
}
