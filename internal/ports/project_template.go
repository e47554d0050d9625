package ports

type ProjectTemplatePort interface {
	ReadProjectName(path string) (string, error)
}
