package cli

import (
	"context"
	"fmt"

	"careerpath/internal/ai"
	"careerpath/internal/common"
	"careerpath/internal/parser"
	"careerpath/internal/types"

	"github.com/spf13/cobra"
)

var roadmapCmd = &cobra.Command{
	Use:   "roadmap [resume-file]",
	Short: "Generate a career roadmap",
	Long: `Generate a career roadmap using AI. Skills are extracted from the
resume file when one is given; use --skills to supply them directly. The
target role and experience level refine the plan. Without an API key
configured, a deterministic skill-driven fallback roadmap is produced.`,
	Args: cobra.MaximumNArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := getConfigFromContext(cmd.Context())
		// Apply default format if not specified
		if roadmapConfig.OutputFormat == "" {
			roadmapConfig.OutputFormat = cfg.App.DefaultFormat
		}
		// Validate format against supported formats
		return common.ValidateOutputFormat(roadmapConfig.OutputFormat, cfg.App.SupportedFormats)
	},
	RunE: runRoadmap,
}

var roadmapConfig common.CommandConfig
var (
	roadmapSkills     []string
	roadmapTargetRole string
	roadmapExperience string
)

func init() {
	roadmapCmd.Flags().StringVarP(&roadmapConfig.OutputFile, "output", "o", "", "Output file path (default: stdout)")
	roadmapCmd.Flags().StringVar(&roadmapConfig.OutputFormat, "format", "", "Output format: json, text, or markdown")
	roadmapCmd.Flags().StringSliceVar(&roadmapSkills, "skills", nil, "Skills to build the roadmap from (comma-separated)")
	roadmapCmd.Flags().StringVar(&roadmapTargetRole, "target-role", "", "Role to plan towards")
	roadmapCmd.Flags().StringVar(&roadmapExperience, "experience", "", "Current experience level (e.g. junior, mid, senior)")

	// Add completion for format flag
	_ = roadmapCmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		cfg := getConfigFromContext(cmd.Context())
		return common.GetSupportedFormats(cfg.App.SupportedFormats), cobra.ShellCompDirectiveNoFileComp
	})
}

func runRoadmap(cmd *cobra.Command, args []string) error {
	cfg := getConfigFromContext(cmd.Context())
	logger := getLoggerFromContext(cmd.Context())

	if len(args) == 0 && len(roadmapSkills) == 0 && roadmapTargetRole == "" {
		return fmt.Errorf("a resume file, --skills, or --target-role is required")
	}

	// Create AI service for roadmap operation
	roadmapAIConfig := cfg.GetRoadmapConfig()
	aiService, err := ai.NewService(&roadmapAIConfig, "roadmap", logger)
	if err != nil {
		return fmt.Errorf("failed to create AI service: %w", err)
	}

	createInput := func(contents []string) (types.RoadmapInput, error) {
		input := types.RoadmapInput{
			Skills:     roadmapSkills,
			Experience: roadmapExperience,
			TargetRole: roadmapTargetRole,
		}
		if len(contents) > 0 {
			input.Skills = mergeSkills(parser.ExtractSkills(contents[0]), roadmapSkills)
		}
		return input, nil
	}

	logDetails := func(input types.RoadmapInput, cfg common.CommandConfig) {
		logger.Info("Starting roadmap generation",
			"skills", len(input.Skills),
			"target_role", input.TargetRole,
			"ai_available", aiService.IsAvailable(),
			"output_format", cfg.OutputFormat)
	}

	roadmapOperation := func(ctx context.Context, input types.RoadmapInput) (types.RoadmapOutput, *ai.TokenUsage, error) {
		return aiService.GenerateRoadmap(ctx, input)
	}

	err = common.RunCommand(
		cmd.Context(),
		logger,
		roadmapConfig,
		args,
		createInput,
		roadmapOperation,
		logDetails,
	)

	if err != nil {
		return fmt.Errorf("failed to generate roadmap: %w", err)
	}
	logger.Info("Roadmap generation completed successfully")
	return nil
}
