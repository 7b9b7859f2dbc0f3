package common

import (
	"context"
	"fmt"
	"os"

	"careerpath/internal/ai"
	"careerpath/internal/errors"
)

// CreateInputFunc builds the operation input from the raw file contents.
type CreateInputFunc[Input any] func(contents []string) (Input, error)

// LogDetailsFunc logs the start of an operation.
type LogDetailsFunc[Input any] func(input Input, cfg CommandConfig)

// OperationFunc is the shared signature for command operations.
// Deterministic operations (scoring, matching, parsing) return nil token
// usage; AI-backed operations report the tokens consumed.
type OperationFunc[Input, Output any] func(context.Context, Input) (Output, *ai.TokenUsage, error)

// RunCommand drives a file-based CLI command end to end: read and validate
// the input files, build the operation input, run the operation, report
// token usage when present, then format and write the result.
func RunCommand[Input, Output any](
	ctx context.Context,
	logger *errors.Logger,
	cmdConfig CommandConfig,
	args []string,
	createInput CreateInputFunc[Input],
	operation OperationFunc[Input, Output],
	logDetails LogDetailsFunc[Input],
) error {
	contents, err := NewFileProcessor(logger).ValidateAndReadFiles(args...)
	if err != nil {
		return err
	}

	input, err := createInput(contents)
	if err != nil {
		return fmt.Errorf("failed to create input from file contents: %w", err)
	}
	logDetails(input, cmdConfig)

	result, tokenUsage, err := operation(ctx, input)
	if err != nil {
		return err
	}
	reportTokenUsage(logger, tokenUsage)

	return NewOutputHandler(logger).HandleOutput(result, cmdConfig)
}

func reportTokenUsage(logger *errors.Logger, usage *ai.TokenUsage) {
	if usage == nil {
		return
	}
	if logger == nil {
		fmt.Fprintf(os.Stderr, "AI token usage: input=%d, output=%d, total=%d\n",
			usage.InputTokens, usage.OutputTokens, usage.TotalTokens)
		return
	}
	logger.Info("AI token usage",
		"input_tokens", usage.InputTokens,
		"output_tokens", usage.OutputTokens,
		"total_tokens", usage.TotalTokens)
}
