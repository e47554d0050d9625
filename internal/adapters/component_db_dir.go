package adapters

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"efr32-build/internal/ports"
)

// ComponentDirAdapter reads board component records (*.slcc) from the SDK's
// hardware/board/component directory.
type ComponentDirAdapter struct {
	Dir string
}

func NewComponentDirAdapter(dir string) ComponentDirAdapter {
	return ComponentDirAdapter{Dir: dir}
}

// ComponentDirForSDK is the board component directory of an SDK checkout.
func ComponentDirForSDK(sdkDir string) string {
	return filepath.Join(sdkDir, "hardware", "board", "component")
}

func (a ComponentDirAdapter) MatchRecords(prefix string) ([]string, error) {
	if strings.TrimSpace(a.Dir) == "" {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("component directory is empty")
	}
	entries, err := os.ReadDir(a.Dir)
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg(fmt.Sprintf("component directory not found: %s", a.Dir)).
			WithCause(err)
	}
	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.HasPrefix(entry.Name(), prefix) {
			names = append(names, entry.Name())
		}
	}
	return names, nil
}

func (a ComponentDirAdapter) OpenRecord(name string) (io.ReadCloser, error) {
	if name != filepath.Base(name) {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("invalid component record name %q", name))
	}
	file, err := os.Open(filepath.Join(a.Dir, name))
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg(fmt.Sprintf("failed to open component record %s", name)).
			WithCause(err)
	}
	return file, nil
}

var _ ports.ComponentDatabasePort = ComponentDirAdapter{}
