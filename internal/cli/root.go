package cli

import (
	"context"

	"careerpath/internal/config"
	"careerpath/internal/errors"

	"github.com/spf13/cobra"
)

// Private context key types keep the values package-scoped
type configKeyType struct{}
type loggerKeyType struct{}

var (
	configKey = configKeyType{}
	loggerKey = loggerKeyType{}
)

var rootCmd = &cobra.Command{
	Use:   "careerpath",
	Short: "A CLI tool for resume analysis and career planning",
	Long: `CareerPath analyzes resumes against ATS criteria, matches them to job
descriptions, and generates career roadmaps. Scoring and matching are fully
deterministic; roadmap generation uses AI with a deterministic fallback.`,
}

// Execute runs the CLI with config and logger carried on the command context
func Execute(ctx context.Context, cfg *config.Config, logger *errors.Logger) error {
	ctx = context.WithValue(ctx, configKey, cfg)
	ctx = context.WithValue(ctx, loggerKey, logger)
	rootCmd.SetContext(ctx)
	return rootCmd.Execute()
}

// Execute always seeds the context, so a miss here is a programming error

func getConfigFromContext(ctx context.Context) *config.Config {
	cfg, ok := ctx.Value(configKey).(*config.Config)
	if !ok {
		panic("config not found in context")
	}
	return cfg
}

func getLoggerFromContext(ctx context.Context) *errors.Logger {
	logger, ok := ctx.Value(loggerKey).(*errors.Logger)
	if !ok {
		panic("logger not found in context")
	}
	return logger
}

func init() {
	rootCmd.AddCommand(
		scoreCmd,
		matchCmd,
		parseCmd,
		roadmapCmd,
		historyCmd,
		versionCmd,
		serveCmd,
	)
}
