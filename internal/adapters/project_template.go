package adapters

import (
	"fmt"
	"os"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"gopkg.in/yaml.v3"

	"efr32-build/internal/ports"
	"efr32-build/internal/types"
)

// ProjectTemplateAdapter reads slc project descriptors (.slcp).
type ProjectTemplateAdapter struct{}

func NewProjectTemplateAdapter() ProjectTemplateAdapter {
	return ProjectTemplateAdapter{}
}

type projectDescriptor struct {
	ProjectName string `yaml:"project_name"`
}

func (a ProjectTemplateAdapter) ReadProjectName(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg(fmt.Sprintf("project template not found: %s", path)).
			WithCause(err)
	}
	var descriptor projectDescriptor
	if err := yaml.Unmarshal(data, &descriptor); err != nil {
		return "", types.ParsingError(fmt.Sprintf("failed to parse project template %s", path), err)
	}
	name := strings.TrimSpace(descriptor.ProjectName)
	if name == "" {
		return "", types.ParsingError(fmt.Sprintf("project template %s has no project_name", path), nil)
	}
	return name, nil
}

var _ ports.ProjectTemplatePort = ProjectTemplateAdapter{}
