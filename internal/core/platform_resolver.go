package core

import (
	"bufio"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"efr32-build/internal/ports"
	"efr32-build/internal/types"
)

// deviceMarker precedes the device name on a record's declaration line.
const deviceMarker = "board:device:"

// devicePattern decomposes a device name such as efr32mg12p432f1024gl125 or
// mgm12p32f1024ga. Groups: product line, module marker, series, revision,
// model, flash size, variant.
var devicePattern = regexp.MustCompile(`^(?:efr32)?([a-z]{2})(m)?(\d{1,2})([a-z])(\d+)(f\d+)?([a-z][a-z0-9]*)?$`)

type PlatformResolver struct {
	Components ports.ComponentDatabasePort
}

func NewPlatformResolver(components ports.ComponentDatabasePort) PlatformResolver {
	return PlatformResolver{Components: components}
}

// Resolve derives the board's platform from the latest revision of its
// component record.
func (r PlatformResolver) Resolve(boardID string) (types.Board, error) {
	if strings.TrimSpace(boardID) == "" {
		return types.Board{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("board is required")
	}
	record, err := r.latestRecord(boardID)
	if err != nil {
		return types.Board{}, err
	}
	name, err := r.deviceName(record)
	if err != nil {
		return types.Board{}, err
	}
	device, err := ParseDevice(name)
	if err != nil {
		return types.Board{}, err
	}
	board := types.Board{
		ID:       boardID,
		Platform: "efr32" + device.ProductLine + device.Series,
		Device:   device,
	}
	log.Debug().
		Str("board", boardID).
		Str("record", record).
		Str("device", device.Name).
		Str("platform", board.Platform).
		Msg("resolved platform")
	return board, nil
}

func (r PlatformResolver) latestRecord(boardID string) (string, error) {
	records, err := r.Components.MatchRecords(boardID)
	if err != nil {
		return "", err
	}
	if len(records) == 0 {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg(fmt.Sprintf("unsupported board %s: no component record found", boardID))
	}
	sorted := append([]string(nil), records...)
	sort.Strings(sorted)
	return sorted[len(sorted)-1], nil
}

func (r PlatformResolver) deviceName(record string) (string, error) {
	reader, err := r.Components.OpenRecord(record)
	if err != nil {
		return "", err
	}
	defer reader.Close()

	scanner := bufio.NewScanner(reader)
	for scanner.Scan() {
		line := scanner.Text()
		idx := strings.Index(line, deviceMarker)
		if idx < 0 {
			continue
		}
		name := strings.TrimSpace(line[idx+len(deviceMarker):])
		name = strings.Trim(name, `"'`)
		if name == "" {
			continue
		}
		return name, nil
	}
	if err := scanner.Err(); err != nil {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg(fmt.Sprintf("failed to read component record %s", record)).
			WithCause(err)
	}
	return "", types.ParsingError(fmt.Sprintf("no device declaration in component record %s", record), nil)
}

// ParseDevice splits a device name into its parts. Names are matched
// case-insensitively.
func ParseDevice(name string) (types.Device, error) {
	normalized := strings.ToLower(strings.TrimSpace(name))
	match := devicePattern.FindStringSubmatch(normalized)
	if match == nil {
		return types.Device{}, types.ParsingError(fmt.Sprintf("error parsing platform from device %q", name), nil)
	}
	return types.Device{
		Name:        normalized,
		ProductLine: match[1],
		Module:      match[2] != "",
		Series:      match[3],
		Revision:    match[4],
		Model:       match[5],
		Flash:       match[6],
		Variant:     match[7],
	}, nil
}
