package controller

import (
	"bytes"
	"fmt"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	m "github.com/mouse-blink/covmap/internal/model"
)

// SimpleUI implements UI using cobra Command's output.
type SimpleUI struct {
	cmd *cobra.Command
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{cmd: cmd}
}

// DisplayTraceMap prints a per-file table of coverable lines with a totals
// footer.
func (s *SimpleUI) DisplayTraceMap(tm *m.TraceMap) error {
	if tm.Len() == 0 {
		s.printf("No coverable lines found\n")
		return nil
	}

	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Path", "Lines", "Resolved"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_CENTER, tablewriter.ALIGN_CENTER})

	files := tm.Files()
	totalLines := 0
	totalResolved := 0

	for _, path := range files {
		traces := tm.Traces(path)
		resolved := countResolved(traces)

		table.Append([]string{string(path), fmt.Sprintf("%d", len(traces)), fmt.Sprintf("%d", resolved)})

		totalLines += len(traces)
		totalResolved += resolved
	}

	table.SetFooter([]string{
		fmt.Sprintf("Total Files %d", len(files)),
		fmt.Sprintf("%d", totalLines),
		fmt.Sprintf("%d", totalResolved),
	})

	table.Render()
	s.printf("\n%s", tableBuffer.String())

	return nil
}

// DisplayTracerData prints one line per entry, ordered by path and line.
func (s *SimpleUI) DisplayTracerData(data []m.TracerData) error {
	if len(data) == 0 {
		s.printf("No coverable lines found\n")
		return nil
	}

	sorted := append([]m.TracerData(nil), data...)
	m.SortTracerData(sorted)

	for _, td := range sorted {
		if td.Address != nil {
			s.printf("%s:%d 0x%x %s\n", td.Path, td.Line, *td.Address, td.Type.Kind)
		} else {
			s.printf("%s:%d - %s\n", td.Path, td.Line, td.Type.Kind)
		}
	}

	return nil
}

// countResolved counts traces carrying an instruction address.
func countResolved(traces []m.Trace) int {
	resolved := 0

	for _, trace := range traces {
		if trace.Address != nil {
			resolved++
		}
	}

	return resolved
}

func (s *SimpleUI) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}
