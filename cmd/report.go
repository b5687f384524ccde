package cmd

import (
	"github.com/spf13/cobra"
)

// reportCmd represents the report command.
var reportCmd = newReportCmd()

func newReportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report [binaries...]",
		Short: "Show the per-file map of coverable lines",
		Long: `Report resolves one or more test binaries and shows, per source file,
how many coverable lines were found and how many resolved to an instruction
address. Several binaries are processed concurrently and merged.`,
		Args: cobra.MinimumNArgs(1),
		RunE: runReport,
	}

	return cmd
}

func runReport(c *cobra.Command, args []string) error {
	cfg, err := buildConfig()
	if err != nil {
		return err
	}

	project, err := projectRoot()
	if err != nil {
		return err
	}

	tm, err := newWorkflow().TraceMapAll(c.Context(), project, parsePaths(args), cfg)
	if err != nil {
		return err
	}

	return ui.DisplayTraceMap(tm)
}

func init() {
	rootCmd.AddCommand(reportCmd)
}
