package ports

import "efr32-build/internal/types"

type CatalogPort interface {
	LoadCatalog(path string) (types.Catalog, error)
}
