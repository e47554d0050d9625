package adapters

import (
	"context"
	_ "embed"
	"os"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"gopkg.in/yaml.v3"

	"efr32-build/internal/core"
	"efr32-build/internal/ports"
	"efr32-build/internal/types"
)

//go:embed catalog/default.yaml
var defaultCatalog []byte

// CatalogFileAdapter loads the static catalog, either the built-in one or a
// replacement file.
type CatalogFileAdapter struct {
	Validator core.CatalogValidator
}

func NewCatalogFileAdapter() CatalogFileAdapter {
	return CatalogFileAdapter{Validator: core.NewCatalogValidator()}
}

// LoadCatalog reads the catalog at path, or the built-in catalog when path
// is empty.
func (a CatalogFileAdapter) LoadCatalog(path string) (types.Catalog, error) {
	data := defaultCatalog
	if strings.TrimSpace(path) != "" {
		content, err := os.ReadFile(path)
		if err != nil {
			return types.Catalog{}, errbuilder.New().
				WithCode(errbuilder.CodeNotFound).
				WithMsg("catalog file not found").
				WithCause(err)
		}
		data = content
	}
	return a.parse(data)
}

func (a CatalogFileAdapter) parse(data []byte) (types.Catalog, error) {
	var catalog types.Catalog
	if err := yaml.Unmarshal(data, &catalog); err != nil {
		return types.Catalog{}, types.ParsingError("failed to parse catalog yaml", err)
	}
	if err := a.Validator.Validate(context.Background(), catalog); err != nil {
		return types.Catalog{}, err
	}
	catalog.Index()
	return catalog, nil
}

var _ ports.CatalogPort = CatalogFileAdapter{}
