package adapters

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"efr32-build/internal/types"
)

// fakeInstaller drops an executable slc into the directory it is given.
type fakeInstaller struct {
	calls int
	skip  bool
}

func (f *fakeInstaller) Run(_ context.Context, command types.ToolCommand) error {
	f.calls++
	if f.skip {
		return nil
	}
	return os.WriteFile(filepath.Join(command.Args[0], "slc"), []byte("#!/bin/sh\n"), 0o755)
}

func TestSlcInstallationAdapter_UsesExistingInstall(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "slc"), "#!/bin/sh\n", 0o755)
	installer := &fakeInstaller{}

	adapter := NewSlcInstallationAdapter(dir, "install-slc", installer)
	executable, err := adapter.Ensure(t.Context(), false)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "slc"), executable)
	assert.Equal(t, 0, installer.calls)
}

func TestSlcInstallationAdapter_InstallsWhenMissingOrForced(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "slc_cli")
	installer := &fakeInstaller{}
	adapter := NewSlcInstallationAdapter(dir, "install-slc", installer)

	_, err := adapter.Ensure(t.Context(), false)
	require.NoError(t, err)
	assert.Equal(t, 1, installer.calls)

	_, err = adapter.Ensure(t.Context(), true)
	require.NoError(t, err)
	assert.Equal(t, 2, installer.calls)
}

func TestSlcInstallationAdapter_Errors(t *testing.T) {
	dir := t.TempDir()
	_, err := NewSlcInstallationAdapter(dir, "", &fakeInstaller{}).Ensure(t.Context(), false)
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeFailedPrecondition, errbuilder.CodeOf(err))

	_, err = NewSlcInstallationAdapter(dir, "install-slc", &fakeInstaller{skip: true}).Ensure(t.Context(), false)
	require.Error(t, err)
}

func TestNewSlcInstallationAdapter_DefaultDir(t *testing.T) {
	adapter := NewSlcInstallationAdapter("", "", nil)
	assert.Equal(t, DefaultSlcInstallDir(), adapter.InstallDir)
	assert.Contains(t, adapter.InstallDir, filepath.Join("efr32-build", "slc_cli"))
}
