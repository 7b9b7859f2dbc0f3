package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Overridden at build time via -ldflags
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  "Print version information for careerpath",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("careerpath version %s\ngit commit: %s\nbuild date: %s\n",
			Version, GitCommit, BuildDate)
	},
}
