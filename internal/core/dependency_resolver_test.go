package core

import (
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"efr32-build/internal/types"
)

func testCatalog() types.Catalog {
	socTargets := []string{"ot-rcp", "ot-cli-ftd", "ot-cli-mtd", "ot-ncp-ftd", "ot-ncp-mtd"}
	catalog := types.Catalog{
		Jobs: []types.GenerationJobConfig{
			{
				Name:            "soc/platform",
				Project:         "src/platform_projects/openthread-efr32-soc.slcp",
				ExportTemplates: "third_party/silabs/slc/exporter_templates/platform_library",
				Rename: map[string]string{
					"openthread-efr32-soc.Makefile":    "CMakeLists.txt",
					"openthread-efr32-soc.project.mak": "openthread-efr32-soc-sdk.cmake",
				},
			},
			{
				Name:            "soc/mbedtls",
				Project:         "src/platform_projects/openthread-efr32-soc.slcp",
				ExportTemplates: "third_party/silabs/slc/exporter_templates/mbedtls",
				Rename:          map[string]string{"openthread-efr32-soc.Makefile": "CMakeLists.txt"},
				Remove:          []string{"openthread-efr32-soc.project.mak", "autogen/", "config/"},
			},
			{
				Name:            "rcp/platform",
				Project:         "src/platform_projects/openthread-efr32-rcp.slcp",
				ExportTemplates: "third_party/silabs/slc/exporter_templates/platform_library",
			},
			{
				Name:            "rcp/mbedtls",
				Project:         "src/platform_projects/openthread-efr32-rcp.slcp",
				ExportTemplates: "third_party/silabs/slc/exporter_templates/mbedtls",
			},
		},
		Targets: []types.TargetSpec{
			{Name: "ot-cli-ftd", Variant: "soc", Jobs: []string{"soc/platform", "soc/mbedtls"}},
			{Name: "ot-cli-mtd", Variant: "soc", Jobs: []string{"soc/platform", "soc/mbedtls"}},
			{Name: "ot-ncp-ftd", Variant: "soc", Jobs: []string{"soc/platform", "soc/mbedtls"}},
			{Name: "ot-ncp-mtd", Variant: "soc", Jobs: []string{"soc/platform", "soc/mbedtls"}},
			{Name: "ot-rcp", Variant: "rcp-uart", Jobs: []string{"rcp/platform", "rcp/mbedtls"}},
			{Name: "ot-rcp-uart", Ninja: "ot-rcp", Variant: "rcp-uart", Jobs: []string{"rcp/platform", "rcp/mbedtls"}},
			{Name: "ot-rcp-spi", Ninja: "ot-rcp", Variant: "rcp-spi", Jobs: []string{"rcp/platform", "rcp/mbedtls"}},
		},
		Platforms: []types.PlatformSpec{
			{Name: "efr32mg1", Targets: []string{"ot-rcp"}},
			{Name: "efr32mg12", Targets: socTargets},
			{Name: "efr32mg21", Targets: socTargets},
		},
		Options: types.OptionSet{
			Baseline: []string{"-DCMAKE_BUILD_TYPE=Debug", "-DOT_DIAGNOSTIC=ON"},
			Rules: []types.OptionRule{
				{Match: "*-ftd", Flag: "OT_FTD"},
				{Match: "*-mtd", Flag: "OT_MTD"},
				{Match: "ot-cli-*", Flag: "OT_APP_CLI"},
				{Match: "ot-ncp-*", Flag: "OT_APP_NCP"},
				{Match: "ot-rcp*", Flag: "OT_APP_RCP"},
				{Match: "*-spi", Flag: "OT_NCP_SPI"},
			},
			ExampleBaseline: []string{"-DCMAKE_BUILD_TYPE=Release"},
		},
		ExampleApps: []types.ExampleApp{
			{
				Name:            "sleepy-demo-ftd",
				Project:         "slc/platform_projects/openthread-efr32-soc-with-buttons.slcp",
				ExportTemplates: "third_party/silabs/slc/exporter_templates/platform_library",
				Option:          "EFR32_APP_SLEEPY_DEMO_FTD",
			},
		},
		ExampleAppsExcluded: []string{"efr32mg1"},
	}
	catalog.Index()
	return catalog
}

func testBoard() types.Board {
	return types.Board{
		ID:       "brd4166a",
		Platform: "efr32mg12",
		Device:   types.Device{Name: "efr32mg12p332f1024gl125", ProductLine: "mg", Series: "12"},
	}
}

func TestDependencyResolverSharesJobsBetweenTargets(t *testing.T) {
	resolver := NewDependencyResolver(testCatalog())
	plan := resolver.Resolve([]string{"ot-cli-ftd", "ot-cli-mtd"}, testBoard(), "/repo", "/build")

	if diff := cmp.Diff([]string{"soc/platform", "soc/mbedtls"}, plan.Order); diff != "" {
		t.Fatalf("unexpected job order (-want +got):\n%s", diff)
	}
	require.Len(t, plan.Projects, 2)

	platform := plan.Projects["soc/platform"]
	require.NotNil(t, platform)
	assert.Equal(t, filepath.Join("/build", "slc", "soc", "platform"), platform.Destination)
	assert.Equal(t, filepath.Join("/repo", "src", "platform_projects", "openthread-efr32-soc.slcp"), platform.Project)
	assert.Equal(t, "brd4166a", platform.Board.ID)
}

func TestDependencyResolverSingleInstancePerJob(t *testing.T) {
	resolver := NewDependencyResolver(testCatalog())
	plan := resolver.Resolve([]string{"ot-cli-ftd", "ot-ncp-mtd", "ot-rcp", "ot-rcp-spi"}, testBoard(), "/repo", "/build")

	if diff := cmp.Diff([]string{"soc/platform", "soc/mbedtls", "rcp/platform", "rcp/mbedtls"}, plan.Order); diff != "" {
		t.Fatalf("unexpected job order (-want +got):\n%s", diff)
	}
	seen := map[*types.GeneratedProject]struct{}{}
	require.NoError(t, plan.Each(func(project *types.GeneratedProject) error {
		seen[project] = struct{}{}
		return nil
	}))
	assert.Len(t, seen, 4)
}

func TestDependencyResolverSkipsUnknownTargets(t *testing.T) {
	resolver := NewDependencyResolver(testCatalog())
	plan := resolver.Resolve([]string{"sleepy-demo-ftd", "does-not-exist"}, testBoard(), "/repo", "/build")
	assert.Equal(t, 0, plan.Len())
	assert.Empty(t, plan.Projects)
}

func TestDependencyResolverIsDeterministic(t *testing.T) {
	resolver := NewDependencyResolver(testCatalog())
	targets := []string{"ot-rcp", "ot-cli-ftd", "ot-cli-mtd"}
	first := resolver.Resolve(targets, testBoard(), "/repo", "/build")
	second := resolver.Resolve(targets, testBoard(), "/repo", "/build")
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("resolution is not deterministic (-first +second):\n%s", diff)
	}
}

func TestDependencyResolverTransportVariantsShareJobs(t *testing.T) {
	board := types.Board{ID: "brd4150b", Platform: "efr32mg1", Device: types.Device{ProductLine: "mg", Series: "1"}}
	resolver := NewDependencyResolver(testCatalog())
	uart := resolver.Resolve([]string{"ot-rcp-uart"}, board, "/repo", "/build")
	spi := resolver.Resolve([]string{"ot-rcp-spi"}, board, "/repo", "/build")
	if diff := cmp.Diff(uart.Order, spi.Order); diff != "" {
		t.Fatalf("transport variants need different jobs (-uart +spi):\n%s", diff)
	}
}
