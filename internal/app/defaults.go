package app

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
)

// applyBuildDefaults fills the build root and target list when the request
// leaves them empty. The build root is made absolute because the
// configure and build steps run inside it.
func applyBuildDefaults(req BuildRequest, repoDir string, defaultTargets []string) (BuildRequest, error) {
	if strings.TrimSpace(req.BuildRoot) == "" {
		req.BuildRoot = filepath.Join(repoDir, "build", req.Board)
	}
	buildRoot, err := absPath(req.BuildRoot)
	if err != nil {
		return req, err
	}
	req.BuildRoot = buildRoot
	if len(splitTargets(req.Targets)) == 0 {
		req.Targets = append([]string(nil), defaultTargets...)
	} else {
		req.Targets = splitTargets(req.Targets)
	}
	req.ExampleApps = splitTargets(req.ExampleApps)
	return req, nil
}

// splitTargets accepts both repeated values and space-separated lists.
func splitTargets(values []string) []string {
	var targets []string
	for _, value := range values {
		targets = append(targets, strings.Fields(value)...)
	}
	return targets
}

func absPath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg(fmt.Sprintf("failed to resolve %s", path)).
			WithCause(err)
	}
	return abs, nil
}
