package prefs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/philipparndt/gomassing/pkg/viewer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFile(t *testing.T) {
	p, err := Load(filepath.Join(t.TempDir(), "nested", prefsFile))
	require.NoError(t, err)
	assert.Equal(t, "", p.String("anything"))
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", prefsFile)
	p, err := Load(path)
	require.NoError(t, err)

	p.SetString("a", "1")
	p.SetString("b", "2")
	p.Remove("b")
	require.NoError(t, p.Save())

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "1", loaded.String("a"))
	assert.Equal(t, "", loaded.String("b"))
	assert.Equal(t, path, loaded.Path())
}

func TestLoadCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), prefsFile)
	require.NoError(t, os.WriteFile(path, []byte("{nope"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestStoresCameraPose(t *testing.T) {
	path := filepath.Join(t.TempDir(), prefsFile)
	p, err := Load(path)
	require.NoError(t, err)

	var store viewer.Store = p
	pose := viewer.DefaultPose()
	require.NoError(t, viewer.SavePose(store, pose))
	require.NoError(t, p.Save())

	loaded, err := Load(path)
	require.NoError(t, err)
	restored, err := viewer.LoadPose(loaded)
	require.NoError(t, err)
	assert.Equal(t, pose, restored)
}
