package cli

import (
	"context"
	"fmt"
	"strings"

	"careerpath/internal/ai"
	"careerpath/internal/common"
	"careerpath/internal/parser"
	"careerpath/internal/scoring"
	"careerpath/internal/types"

	"github.com/spf13/cobra"
)

var scoreCmd = &cobra.Command{
	Use:   "score [resume-file] [job-description-file]",
	Short: "Score a resume against ATS criteria",
	Long: `Score a resume against ATS criteria: keyword usage, formatting,
skill coverage, and experience quality. The resume can be a plain text file
or a PDF/DOCX document. An optional job description file adds keyword
overlap to the analysis. Skills are extracted from the resume text; use
--skills to supply additional ones.`,
	Args: cobra.RangeArgs(1, 2),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := getConfigFromContext(cmd.Context())
		// Apply default format if not specified
		if scoreConfig.OutputFormat == "" {
			scoreConfig.OutputFormat = cfg.App.DefaultFormat
		}
		// Validate format against supported formats
		return common.ValidateOutputFormat(scoreConfig.OutputFormat, cfg.App.SupportedFormats)
	},
	RunE: runScore,
}

var scoreConfig common.CommandConfig
var scoreSkills []string

func init() {
	scoreCmd.Flags().StringVarP(&scoreConfig.OutputFile, "output", "o", "", "Output file path (default: stdout)")
	scoreCmd.Flags().StringVar(&scoreConfig.OutputFormat, "format", "", "Output format: json, text, or markdown")
	scoreCmd.Flags().StringSliceVar(&scoreSkills, "skills", nil, "Additional skills to include (comma-separated)")

	// Add completion for format flag
	_ = scoreCmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		cfg := getConfigFromContext(cmd.Context())
		return common.GetSupportedFormats(cfg.App.SupportedFormats), cobra.ShellCompDirectiveNoFileComp
	})
}

func runScore(cmd *cobra.Command, args []string) error {
	logger := getLoggerFromContext(cmd.Context())

	createInput := func(contents []string) (types.ScoreResumeInput, error) {
		if len(contents) == 0 {
			return types.ScoreResumeInput{}, fmt.Errorf("expected a resume file path")
		}
		input := types.ScoreResumeInput{
			ResumeText: contents[0],
			Skills:     mergeSkills(parser.ExtractSkills(contents[0]), scoreSkills),
		}
		if len(contents) > 1 {
			input.JobDescription = contents[1]
		}
		return input, nil
	}

	logDetails := func(input types.ScoreResumeInput, cfg common.CommandConfig) {
		logger.Info("Starting resume scoring",
			"resume_chars", len(input.ResumeText),
			"skills", len(input.Skills),
			"has_job_description", input.JobDescription != "",
			"output_format", cfg.OutputFormat)
	}

	scoreOperation := func(ctx context.Context, input types.ScoreResumeInput) (types.ATSResult, *ai.TokenUsage, error) {
		return scoring.ComputeATSScore(input), nil, nil
	}

	err := common.RunCommand(
		cmd.Context(),
		logger,
		scoreConfig,
		args,
		createInput,
		scoreOperation,
		logDetails,
	)

	if err != nil {
		return fmt.Errorf("failed to score resume: %w", err)
	}
	logger.Info("Resume scoring completed successfully")
	return nil
}

// mergeSkills combines extracted and user-supplied skills, deduplicated
// case-insensitively while preserving order.
func mergeSkills(extracted, extra []string) []string {
	seen := make(map[string]bool, len(extracted)+len(extra))
	merged := make([]string, 0, len(extracted)+len(extra))
	for _, skill := range append(append([]string{}, extracted...), extra...) {
		skill = strings.TrimSpace(skill)
		if skill == "" {
			continue
		}
		key := strings.ToLower(skill)
		if seen[key] {
			continue
		}
		seen[key] = true
		merged = append(merged, skill)
	}
	return merged
}
