package app

import (
	"context"
	"os"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
)

// Convert runs the artifact post-processor over an existing build tree.
func (s Service) Convert(ctx context.Context, req ConvertRequest) (ConvertResult, error) {
	if strings.TrimSpace(req.Dir) == "" {
		return ConvertResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("directory is required")
	}
	info, err := os.Stat(req.Dir)
	if err != nil {
		return ConvertResult{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("build directory not found: " + req.Dir).
			WithCause(err)
	}
	if !info.IsDir() {
		return ConvertResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(req.Dir + " is not a directory")
	}
	images, err := s.Images.ConvertTree(ctx, req.Dir, "")
	if err != nil {
		return ConvertResult{}, err
	}
	return ConvertResult{Images: images}, nil
}
