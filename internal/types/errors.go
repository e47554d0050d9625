package types

import "github.com/ZanzyTHEbar/errbuilder-go"

// ConfigurationError reports an unsupported board, platform or feature.
func ConfigurationError(msg string) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeFailedPrecondition).
		WithMsg(msg)
}

// ParsingError reports input that could not be decoded.
func ParsingError(msg string, cause error) error {
	err := errbuilder.New().
		WithCode(errbuilder.CodeInvalidArgument).
		WithMsg(msg)
	if cause != nil {
		return err.WithCause(cause)
	}
	return err
}
