package cli

import (
	"fmt"

	"careerpath/internal/common"
	"careerpath/internal/store"

	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent analysis history for a session",
	Long: `Show the most recent stored scoring, matching, and roadmap results
for a session. Requires storage to be enabled in the configuration.`,
	RunE: runHistory,
}

var historyConfig common.CommandConfig
var historySession string

// SessionHistory bundles the recent records stored for a session
type SessionHistory struct {
	SessionID string                 `json:"sessionId"`
	Analyses  []store.AnalysisRecord `json:"analyses"`
	Matches   []store.MatchRecord    `json:"matches"`
	Roadmaps  []store.RoadmapRecord  `json:"roadmaps"`
}

func init() {
	historyCmd.Flags().StringVarP(&historyConfig.OutputFile, "output", "o", "", "Output file path (default: stdout)")
	historyCmd.Flags().StringVar(&historySession, "session", "", "Session ID to show history for")
	_ = historyCmd.MarkFlagRequired("session")
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg := getConfigFromContext(cmd.Context())
	logger := getLoggerFromContext(cmd.Context())

	if !cfg.Storage.Enabled {
		return fmt.Errorf("storage is disabled; enable it in the configuration to record history")
	}

	st, err := store.Open(cfg.Storage.Path)
	if err != nil {
		return fmt.Errorf("failed to open history store: %w", err)
	}
	defer func() {
		if err := st.Close(); err != nil {
			logger.Warn("Failed to close history store", "error", err.Error())
		}
	}()

	ctx := cmd.Context()
	history := SessionHistory{SessionID: historySession}

	if history.Analyses, err = st.RecentAnalyses(ctx, historySession, store.DefaultHistoryLimit); err != nil {
		return fmt.Errorf("failed to read analysis history: %w", err)
	}
	if history.Matches, err = st.RecentMatches(ctx, historySession, store.DefaultHistoryLimit); err != nil {
		return fmt.Errorf("failed to read match history: %w", err)
	}
	if history.Roadmaps, err = st.RecentRoadmaps(ctx, historySession, store.DefaultHistoryLimit); err != nil {
		return fmt.Errorf("failed to read roadmap history: %w", err)
	}

	logger.Info("Loaded session history",
		"session_id", historySession,
		"analyses", len(history.Analyses),
		"matches", len(history.Matches),
		"roadmaps", len(history.Roadmaps))

	// History is structured data; always emit JSON
	historyConfig.OutputFormat = "json"
	return common.NewOutputHandler(logger).HandleOutput(history, historyConfig)
}
