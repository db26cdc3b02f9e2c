package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"errgen/internal/diag"
	"errgen/internal/diagfmt"
	"errgen/internal/source"
	"errgen/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "errgen",
	Short: "Error template generator for declaration files",
	Long:  `errgen processes *.errd declaration files and rewrites them with generated @template annotations`,
}

func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(processCmd)
	rootCmd.AddCommand(tokenizeCmd)
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().String("format", "pretty", "diagnostic format (pretty|short|json)")
	rootCmd.PersistentFlags().Int("max-diagnostics", 100, "maximum number of diagnostics to show")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "show only error diagnostics")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

func useColor(cmd *cobra.Command) bool {
	colorFlag, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return false
	}
	return colorFlag == "on" || (colorFlag == "auto" && isTerminal(os.Stdout))
}

func maxDiagnostics(cmd *cobra.Command) int {
	n, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil || n <= 0 {
		return 100
	}
	return n
}

// printDiagnostics writes the bag to stderr in the selected format.
// With --quiet only error diagnostics are shown.
func printDiagnostics(cmd *cobra.Command, bag *diag.Bag, fs *source.FileSet) error {
	if bag == nil || bag.Len() == 0 {
		return nil
	}
	bag.Sort()
	bag.Dedup()

	items := bag.Items()
	if quiet, err := cmd.Root().PersistentFlags().GetBool("quiet"); err == nil && quiet {
		filtered := make([]diag.Diagnostic, 0, len(items))
		for _, d := range items {
			if d.Severity >= diag.SevError {
				filtered = append(filtered, d)
			}
		}
		items = filtered
	}
	if len(items) == 0 {
		return nil
	}

	format, err := cmd.Root().PersistentFlags().GetString("format")
	if err != nil {
		format = "pretty"
	}

	switch format {
	case "short":
		out := diag.FormatShortDiagnostics(items, fs, true)
		if out != "" {
			cmd.PrintErrln(out)
		}
	case "json":
		return diagfmt.JSON(os.Stderr, items, fs)
	default:
		diagfmt.Pretty(os.Stderr, items, fs, diagfmt.Options{
			Color:    useColor(cmd),
			PathMode: "auto",
		})
	}
	return nil
}
