package core

import (
	"testing"

	"github.com/stretchr/testify/require"

	"efr32-build/internal/types"
)

func TestCatalogValidatorAcceptsCatalog(t *testing.T) {
	require.NoError(t, NewCatalogValidator().Validate(t.Context(), testCatalog()))
}

func TestCatalogValidatorRejectsBrokenReferences(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*types.Catalog)
	}{
		{
			name: "unknown job",
			mutate: func(c *types.Catalog) {
				c.Targets[0].Jobs = append(c.Targets[0].Jobs, "soc/missing")
			},
		},
		{
			name: "unknown default target",
			mutate: func(c *types.Catalog) {
				c.Platforms[0].Targets = []string{"ot-missing"}
			},
		},
		{
			name: "duplicate job",
			mutate: func(c *types.Catalog) {
				c.Jobs = append(c.Jobs, c.Jobs[0])
			},
		},
		{
			name: "job without templates",
			mutate: func(c *types.Catalog) {
				c.Jobs[2].ExportTemplates = ""
			},
		},
		{
			name: "invalid rule",
			mutate: func(c *types.Catalog) {
				c.Options.Rules = append(c.Options.Rules, types.OptionRule{Match: "ot-[", Flag: "OT_BAD"})
			},
		},
		{
			name: "no targets",
			mutate: func(c *types.Catalog) {
				c.Targets = nil
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			catalog := testCatalog()
			tt.mutate(&catalog)
			require.Error(t, NewCatalogValidator().Validate(t.Context(), catalog))
		})
	}
}
