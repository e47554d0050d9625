package app

import (
	"context"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"efr32-build/internal/core"
)

func (s Service) Platform(_ context.Context, req PlatformRequest) (PlatformResult, error) {
	boardID := strings.TrimSpace(req.Board)
	if boardID == "" {
		return PlatformResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("board is required")
	}
	board, err := core.NewPlatformResolver(s.Components).Resolve(boardID)
	if err != nil {
		return PlatformResult{}, err
	}
	return PlatformResult{Board: board}, nil
}
