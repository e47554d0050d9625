// Package testutil provides shared test helpers used across integration,
// e2e, and unit test packages.
package testutil

import (
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"
)

// RepoRoot returns the absolute path to the repository root by walking
// up from the current working directory. It fails the test if the
// working directory cannot be determined.
func RepoRoot(t *testing.T) string {
	t.Helper()
	dir, err := os.Getwd()
	require.NoError(t, err)
	return filepath.Clean(filepath.Join(dir, "..", ".."))
}

// RequireShell skips the test when fake tools cannot be run as shell
// scripts.
func RequireShell(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake tools are shell scripts")
	}
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
}

// WriteFile writes content to path, creating parent directories.
func WriteFile(t *testing.T, path string, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

// WriteScript writes an executable shell script named name into dir and
// returns its path.
func WriteScript(t *testing.T, dir string, name string, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\nset -e\n"+body), 0o755))
	require.NoError(t, os.Chmod(path, 0o755))
	return path
}

// FakeTools holds paths to shell-script stand-ins for the external tools.
type FakeTools struct {
	Dir          string
	SlcInstaller string
	Cmake        string
	Ninja        string
	Objcopy      string
}

// slc generate: writes the makefile outputs named after the project file.
const fakeSlcInstalled = `project=""
dest=""
while [ $# -gt 0 ]; do
  case "$1" in
    -p) project="$2"; shift 2 ;;
    -d) dest="$2"; shift 2 ;;
    *) shift ;;
  esac
done
base=$(basename "$project" .slcp)
mkdir -p "$dest/autogen" "$dest/config"
echo "makefile for $base" > "$dest/$base.Makefile"
echo "sdk for $base" > "$dest/$base.project.mak"
echo "/* generated */" > "$dest/autogen/sl_component_catalog.h"
echo "/* config */" > "$dest/config/sl_config.h"
echo "generated $base into $dest"
`

// WriteFakeTools writes the fake slc installer, cmake, ninja and objcopy.
// The installer places a fake slc executable into the directory it is
// given. ninja creates one executable per target under bin/ and fails
// when called without targets.
func WriteFakeTools(t *testing.T) FakeTools {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "tools")
	installer := "mkdir -p \"$1\"\ncat > \"$1/slc\" <<'SLC'\n#!/bin/sh\nset -e\n" + fakeSlcInstalled + "SLC\nchmod +x \"$1/slc\"\necho \"installed slc into $1\"\n"
	return FakeTools{
		Dir:          dir,
		SlcInstaller: WriteScript(t, dir, "install-slc", installer),
		Cmake:        WriteScript(t, dir, "cmake", "printf '%s\\n' \"$@\" > configure.args\necho \"configured $(pwd)\"\n"),
		Ninja: WriteScript(t, dir, "ninja", `mkdir -p bin
if [ $# -eq 0 ]; then echo "ninja: no targets" >&2; exit 1; fi
for target in "$@"; do
  printf 'elf %s' "$target" > "bin/$target"
  chmod +x "bin/$target"
  printf 'map' > "bin/$target.map"
done
echo "built $*"
`),
		Objcopy: WriteScript(t, dir, "objcopy", "cp \"$3\" \"$4\"\n"),
	}
}

// FakeRepo lays out a repository with a component database holding
// records for the given boards (board -> device) and the example app
// project templates.
func FakeRepo(t *testing.T, boards map[string]string) string {
	t.Helper()
	repo := filepath.Join(t.TempDir(), "ot-efr32")
	components := filepath.Join(repo, "third_party", "silabs", "gecko_sdk", "hardware", "board", "component")
	for board, device := range boards {
		WriteFile(t, filepath.Join(components, board+".slcc"),
			"id: "+board+"\nlabel: "+board+"\ntag:\n  - board:pn:"+board+"\n  - board:device:"+device+"\n")
	}
	templates := map[string]string{
		"openthread-efr32-soc-with-buttons.slcp":                   "sleepy-demo-ftd",
		"openthread-efr32-soc-with-buttons-power-manager.slcp":     "sleepy-demo-mtd",
		"openthread-efr32-soc-with-buttons-power-manager-csl.slcp": "sleepy-demo-ssed",
	}
	for file, name := range templates {
		WriteFile(t, filepath.Join(repo, "slc", "platform_projects", file),
			"project_name: "+name+"\nlabel: "+name+"\n")
	}
	return repo
}
