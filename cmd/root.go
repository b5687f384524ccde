// Package cmd provides the root command and CLI setup for covmap.
package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/mouse-blink/covmap/internal/adapter"
	"github.com/mouse-blink/covmap/internal/controller"
	"github.com/mouse-blink/covmap/internal/domain"
	m "github.com/mouse-blink/covmap/internal/model"
)

var binaryAdapter adapter.BinaryAdapter
var demangler adapter.Demangler
var analyzer adapter.SourceAnalyzer
var logger zerolog.Logger
var ui controller.UI

func init() {
	logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
	binaryAdapter = adapter.NewELFBinaryAdapter()
	demangler = adapter.NewSymbolDemangler()
	analyzer = adapter.NewNoopSourceAnalyzer()
	ui = controller.NewUI(rootCmd, controller.IsTTY(os.Stdout))
}

var rootFlag string
var verboseFlag bool
var ignoreTestsFlag bool
var excludeFlags []string

// rootCmd represents the base command when called without any subcommands.
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "covmap [binaries...]",
		Short: "Coverage address resolution for compiled test binaries",
		Long: `Covmap reads the debug information of compiled test binaries and
resolves, for every executable source line of the project under test, the
lowest machine-instruction address implementing it, whether the line enters a
function, and whether that function is a test case or a generated harness
entry point.

Running covmap without a subcommand shows the per-file report.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			return runReport(c, args)
		},
	}
	cmd.PersistentFlags().StringVarP(&rootFlag, "root", "r", ".", "project root used for containment checks")
	cmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "emit non-fatal diagnostic messages")
	cmd.PersistentFlags().BoolVar(&ignoreTestsFlag, "ignore-tests", false, "exclude the project's own tests directory")
	cmd.PersistentFlags().StringArrayVarP(&excludeFlags, "exclude", "x", nil, "exclude files matching regex (can be repeated)")

	return cmd
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

// newWorkflow builds the resolution workflow with the logger leveled
// according to the verbose flag.
func newWorkflow() domain.Workflow {
	level := zerolog.InfoLevel
	if verboseFlag {
		level = zerolog.DebugLevel
	}

	return domain.NewWorkflow(binaryAdapter, demangler, analyzer, logger.Level(level))
}

// buildConfig assembles the pipeline configuration from the global flags.
func buildConfig() (m.Config, error) {
	cfg := m.Config{
		Verbose:     verboseFlag,
		IgnoreTests: ignoreTestsFlag,
	}

	for _, pattern := range excludeFlags {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return m.Config{}, fmt.Errorf("invalid exclude pattern %q: %w", pattern, err)
		}

		cfg.Exclude = append(cfg.Exclude, re)
	}

	return cfg, nil
}

// projectRoot canonicalizes the configured project root so containment
// checks compare like with like.
func projectRoot() (m.Path, error) {
	abs, err := filepath.Abs(rootFlag)
	if err != nil {
		return "", fmt.Errorf("project root: %w", err)
	}

	if canonical, err := filepath.EvalSymlinks(abs); err == nil {
		abs = canonical
	}

	return m.Path(abs), nil
}

func parsePaths(args []string) []m.Path {
	paths := make([]m.Path, 0, len(args))
	for _, arg := range args {
		paths = append(paths, m.Path(arg))
	}

	return paths
}
