package cmd

import (
	"github.com/spf13/cobra"

	m "github.com/mouse-blink/covmap/internal/model"
)

// resolveCmd represents the resolve command.
var resolveCmd = newResolveCmd()

func newResolveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resolve [binary]",
		Short: "List every coverable line of one test binary",
		Long: `Resolve prints the flat collection of coverable lines for a single test
binary: path, line, lowest instruction address (when one exists) and the
line's classification. This is the view the instrumentation consumer uses.`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			cfg, err := buildConfig()
			if err != nil {
				return err
			}

			project, err := projectRoot()
			if err != nil {
				return err
			}

			data, err := newWorkflow().TracerData(project, m.Path(args[0]), cfg)
			if err != nil {
				return err
			}

			return ui.DisplayTracerData(data)
		},
	}

	return cmd
}

func init() {
	rootCmd.AddCommand(resolveCmd)
}
