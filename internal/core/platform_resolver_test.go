package core

import (
	"io"
	"strings"
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"efr32-build/internal/types"
)

type memoryComponents map[string]string

func (m memoryComponents) MatchRecords(prefix string) ([]string, error) {
	var names []string
	for name := range m {
		if strings.HasPrefix(name, prefix) {
			names = append(names, name)
		}
	}
	return names, nil
}

func (m memoryComponents) OpenRecord(name string) (io.ReadCloser, error) {
	return io.NopCloser(strings.NewReader(m[name])), nil
}

func record(device string) string {
	return "id: brd\nlabel: Board\ntag:\n  - board:pn:BRD\n  - board:device:" + device + "\n  - board:device:efr32xg99z000\n"
}

func TestPlatformResolverSelectsLatestRevision(t *testing.T) {
	components := memoryComponents{
		"brd4161a_a02.slcc": record("efr32mg1p232f256gm48"),
		"brd4161a_a03.slcc": record("efr32mg12p432f1024gl125"),
		"brd4161a_a01.slcc": record("efr32mg13p632f512gm48"),
	}
	board, err := NewPlatformResolver(components).Resolve("brd4161a")
	require.NoError(t, err)
	if diff := cmp.Diff("efr32mg12", board.Platform); diff != "" {
		t.Fatalf("unexpected platform (-want +got):\n%s", diff)
	}
	assert.Equal(t, "brd4161a", board.ID)
	assert.Equal(t, "p", board.Device.Revision)
}

func TestPlatformResolverUnsupportedBoard(t *testing.T) {
	_, err := NewPlatformResolver(memoryComponents{}).Resolve("brd0000a")
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeNotFound, errbuilder.CodeOf(err))
}

func TestPlatformResolverMissingDeclaration(t *testing.T) {
	components := memoryComponents{"brd4166a.slcc": "id: brd4166a\nlabel: Thunderboard\n"}
	_, err := NewPlatformResolver(components).Resolve("brd4166a")
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeInvalidArgument, errbuilder.CodeOf(err))
}

func TestPlatformResolverUsesFirstDeclaration(t *testing.T) {
	components := memoryComponents{"brd4166a.slcc": record("not-a-device")}
	_, err := NewPlatformResolver(components).Resolve("brd4166a")
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeInvalidArgument, errbuilder.CodeOf(err))
}

func TestPlatformResolverPrefixIsCaseSensitive(t *testing.T) {
	components := memoryComponents{"BRD4166A.slcc": record("efr32mg12p332f1024gl125")}
	_, err := NewPlatformResolver(components).Resolve("brd4166a")
	require.Error(t, err)
}

func TestParseDevice(t *testing.T) {
	tests := []struct {
		name     string
		device   string
		platform string
		want     types.Device
	}{
		{
			name:     "series 1 soc",
			device:   "efr32mg12p432f1024gl125",
			platform: "efr32mg12",
			want: types.Device{
				Name: "efr32mg12p432f1024gl125", ProductLine: "mg", Series: "12",
				Revision: "p", Model: "432", Flash: "f1024", Variant: "gl125",
			},
		},
		{
			name:     "single digit series",
			device:   "EFR32MG1P232F256GM48",
			platform: "efr32mg1",
			want: types.Device{
				Name: "efr32mg1p232f256gm48", ProductLine: "mg", Series: "1",
				Revision: "p", Model: "232", Flash: "f256", Variant: "gm48",
			},
		},
		{
			name:     "series 2",
			device:   "efr32mg21a010f1024im32",
			platform: "efr32mg21",
			want: types.Device{
				Name: "efr32mg21a010f1024im32", ProductLine: "mg", Series: "21",
				Revision: "a", Model: "010", Flash: "f1024", Variant: "im32",
			},
		},
		{
			name:     "module",
			device:   "mgm12p32f1024ga",
			platform: "efr32mg12",
			want: types.Device{
				Name: "mgm12p32f1024ga", ProductLine: "mg", Module: true, Series: "12",
				Revision: "p", Model: "32", Flash: "f1024", Variant: "ga",
			},
		},
		{
			name:     "other product line",
			device:   "efr32bg22c224f512im40",
			platform: "efr32bg22",
			want: types.Device{
				Name: "efr32bg22c224f512im40", ProductLine: "bg", Series: "22",
				Revision: "c", Model: "224", Flash: "f512", Variant: "im40",
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDevice(tt.device)
			require.NoError(t, err)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Fatalf("unexpected device (-want +got):\n%s", diff)
			}
			assert.Equal(t, tt.platform, "efr32"+got.ProductLine+got.Series)
		})
	}
}

func TestParseDeviceRejectsGarbage(t *testing.T) {
	for _, name := range []string{"", "efr32", "nrf52840", "efr32mg"} {
		_, err := ParseDevice(name)
		assert.Error(t, err, name)
	}
}
