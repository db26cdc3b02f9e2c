package main

import (
	"github.com/spf13/cobra"

	"errgen/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, _ []string) {
		cmd.Println("errgen", version.Version)
		if version.GitCommit != "" {
			cmd.Println("commit:", version.GitCommit)
		}
		if version.BuildDate != "" {
			cmd.Println("built:", version.BuildDate)
		}
	},
}
