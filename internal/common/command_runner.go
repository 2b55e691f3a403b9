package common

import (
	"context"

	"talentsift/internal/errors"
)

// ProduceFunc computes a command's result, typically by driving the
// tracker service.
type ProduceFunc func(ctx context.Context) (any, error)

// RunCommand encapsulates the common logic for CLI commands: run the
// operation, then format and write the result per the command config.
func RunCommand(ctx context.Context, logger *errors.Logger, cmdConfig CommandConfig, produce ProduceFunc) error {
	outputHandler := NewOutputHandler(logger)

	result, err := produce(ctx)
	if err != nil {
		return err
	}

	return outputHandler.HandleOutput(result, cmdConfig)
}
