package controller

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	m "github.com/mouse-blink/covmap/internal/model"
)

// tuiPageSize is the default number of table rows shown before the view
// becomes interactive.
const tuiPageSize = 20

var tuiBaseStyle = lipgloss.NewStyle().
	BorderStyle(lipgloss.NormalBorder()).
	BorderForeground(lipgloss.Color("240"))

// TUI implements UI using Bubble Tea for interactive display.
type TUI struct {
	output io.Writer
}

// NewTUI creates a new TUI.
func NewTUI(output io.Writer) *TUI {
	return &TUI{output: output}
}

// DisplayTraceMap shows the per-file coverage table. Small tables are printed
// directly; larger ones open an interactive browser.
func (t *TUI) DisplayTraceMap(tm *m.TraceMap) error {
	if tm.Len() == 0 {
		_, err := fmt.Fprintln(t.output, "No coverable lines found")
		return err
	}

	return t.run(newReportModel(tm))
}

// DisplayTracerData shows one row per resolved line.
func (t *TUI) DisplayTracerData(data []m.TracerData) error {
	if len(data) == 0 {
		_, err := fmt.Fprintln(t.output, "No coverable lines found")
		return err
	}

	return t.run(newFlatModel(data))
}

func (t *TUI) run(model coverageModel) error {
	if f, ok := t.output.(*os.File); ok {
		if _, height, err := term.GetSize(int(f.Fd())); err == nil {
			model.setHeight(height)
		}
	}

	if !model.needsPagination() {
		_, err := fmt.Fprint(t.output, model.View())
		return err
	}

	program := tea.NewProgram(model, tea.WithOutput(t.output), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return err
	}

	return nil
}

// coverageModel is the shared Bubble Tea model over a prepared table.
type coverageModel struct {
	table    table.Model
	title    string
	rowCount int
	height   int
	quitting bool
}

func newReportModel(tm *m.TraceMap) coverageModel {
	columns := []table.Column{
		{Title: "Path", Width: 52},
		{Title: "Lines", Width: 8},
		{Title: "Resolved", Width: 8},
	}

	files := tm.Files()
	rows := make([]table.Row, 0, len(files))

	for _, path := range files {
		traces := tm.Traces(path)
		rows = append(rows, table.Row{
			string(path),
			strconv.Itoa(len(traces)),
			strconv.Itoa(countResolved(traces)),
		})
	}

	title := fmt.Sprintf("Coverable lines in %d file(s)", len(files))

	return newCoverageModel(columns, rows, title)
}

func newFlatModel(data []m.TracerData) coverageModel {
	columns := []table.Column{
		{Title: "Path", Width: 44},
		{Title: "Line", Width: 6},
		{Title: "Address", Width: 12},
		{Title: "Type", Width: 14},
	}

	sorted := append([]m.TracerData(nil), data...)
	m.SortTracerData(sorted)

	rows := make([]table.Row, 0, len(sorted))

	for _, td := range sorted {
		address := "-"
		if td.Address != nil {
			address = fmt.Sprintf("0x%x", *td.Address)
		}

		rows = append(rows, table.Row{
			string(td.Path),
			strconv.FormatUint(td.Line, 10),
			address,
			string(td.Type.Kind),
		})
	}

	title := fmt.Sprintf("%d coverable line(s)", len(sorted))

	return newCoverageModel(columns, rows, title)
}

func newCoverageModel(columns []table.Column, rows []table.Row, title string) coverageModel {
	height := len(rows)
	if height > tuiPageSize {
		height = tuiPageSize
	}

	tbl := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(height),
	)

	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		Bold(true)
	styles.Selected = styles.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57"))
	tbl.SetStyles(styles)

	return coverageModel{table: tbl, title: title, rowCount: len(rows)}
}

func (cm *coverageModel) setHeight(height int) {
	cm.height = height
}

// needsPagination reports whether the table is too large to print directly.
func (cm coverageModel) needsPagination() bool {
	return cm.rowCount > tuiPageSize
}

func (cm coverageModel) Init() tea.Cmd {
	return nil
}

func (cm coverageModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		cm.height = msg.Height

		// Reserve space for the title, borders and the help line.
		tableHeight := msg.Height - 6
		if tableHeight < 1 {
			tableHeight = 1
		}

		cm.table.SetHeight(tableHeight)

		return cm, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			cm.quitting = true
			return cm, tea.Quit
		}
	}

	var cmd tea.Cmd
	cm.table, cmd = cm.table.Update(msg)

	return cm, cmd
}

func (cm coverageModel) View() string {
	view := fmt.Sprintf("  %s\n", cm.title)
	view += tuiBaseStyle.Render(cm.table.View()) + "\n"

	if cm.needsPagination() {
		view += "  ↑/k: up | ↓/j: down | q: quit\n"
	}

	return view
}
