package cli

import (
	"context"
	"fmt"

	"careerpath/internal/ai"
	"careerpath/internal/common"
	"careerpath/internal/parser"
	"careerpath/internal/scoring"
	"careerpath/internal/types"

	"github.com/spf13/cobra"
)

var matchCmd = &cobra.Command{
	Use:   "match [resume-file] [job-description-file]",
	Short: "Match a resume against a job description",
	Long: `Match a resume against a job description, computing keyword overlap,
skill overlap, and an overall match percentage with a recommendation. The
resume can be a plain text file or a PDF/DOCX document.`,
	Args: cobra.ExactArgs(2),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := getConfigFromContext(cmd.Context())
		// Apply default format if not specified
		if matchConfig.OutputFormat == "" {
			matchConfig.OutputFormat = cfg.App.DefaultFormat
		}
		// Validate format against supported formats
		return common.ValidateOutputFormat(matchConfig.OutputFormat, cfg.App.SupportedFormats)
	},
	RunE: runMatch,
}

var matchConfig common.CommandConfig
var matchSkills []string

func init() {
	matchCmd.Flags().StringVarP(&matchConfig.OutputFile, "output", "o", "", "Output file path (default: stdout)")
	matchCmd.Flags().StringVar(&matchConfig.OutputFormat, "format", "", "Output format: json, text, or markdown")
	matchCmd.Flags().StringSliceVar(&matchSkills, "skills", nil, "Additional skills to include (comma-separated)")

	// Add completion for format flag
	_ = matchCmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		cfg := getConfigFromContext(cmd.Context())
		return common.GetSupportedFormats(cfg.App.SupportedFormats), cobra.ShellCompDirectiveNoFileComp
	})
}

func runMatch(cmd *cobra.Command, args []string) error {
	logger := getLoggerFromContext(cmd.Context())

	createInput := func(contents []string) (types.MatchJobInput, error) {
		if len(contents) != 2 {
			return types.MatchJobInput{}, fmt.Errorf("expected 2 file paths, got %d", len(contents))
		}
		return types.MatchJobInput{
			ResumeText:     contents[0],
			Skills:         mergeSkills(parser.ExtractSkills(contents[0]), matchSkills),
			JobDescription: contents[1],
		}, nil
	}

	logDetails := func(input types.MatchJobInput, cfg common.CommandConfig) {
		logger.Info("Starting job matching",
			"resume_chars", len(input.ResumeText),
			"job_chars", len(input.JobDescription),
			"skills", len(input.Skills),
			"output_format", cfg.OutputFormat)
	}

	matchOperation := func(ctx context.Context, input types.MatchJobInput) (types.MatchResult, *ai.TokenUsage, error) {
		return scoring.ComputeJobMatch(input), nil, nil
	}

	err := common.RunCommand(
		cmd.Context(),
		logger,
		matchConfig,
		args,
		createInput,
		matchOperation,
		logDetails,
	)

	if err != nil {
		return fmt.Errorf("failed to match resume: %w", err)
	}
	logger.Info("Job matching completed successfully")
	return nil
}
