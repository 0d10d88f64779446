package cli

import (
	"fmt"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/fsgraph/pkg/graph"
	"github.com/matzehuels/fsgraph/pkg/graphio"
	"github.com/matzehuels/fsgraph/pkg/scan"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
	listDirStyle      = lipgloss.NewStyle().Foreground(colorBlue)
)

// newBrowseCmd creates the browse command for interactive graph exploration.
func newBrowseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "browse <file>",
		Short: "Browse a scanned graph interactively",
		Long: `Browse opens a scanned graph file in an interactive terminal list.

Navigate with the arrow keys (or j/k), press enter to print the selected
path, and q to quit.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBrowse(args[0])
		},
	}
}

// runBrowse loads the graph and runs the bubbletea program.
func runBrowse(input string) error {
	g, err := graphio.Import(input)
	if err != nil {
		return err
	}

	m := newEntryListModel(g)
	final, err := tea.NewProgram(m).Run()
	if err != nil {
		return fmt.Errorf("browse: %w", err)
	}

	if fm, ok := final.(entryListModel); ok && fm.selected != nil {
		fmt.Println(fm.selected.Path)
	}
	return nil
}

// browseRow is one line of the list: an entry plus its child count.
type browseRow struct {
	entry    scan.Entry
	children int
}

// entryListModel is the bubbletea model for browsing scanned entries.
type entryListModel struct {
	rows     []browseRow
	cursor   int
	offset   int
	height   int
	selected *scan.Entry
}

// newEntryListModel builds the list model from the graph, sorted by path
// so that directories precede their contents.
func newEntryListModel(g *graph.Graph[scan.Entry, scan.Link]) entryListModel {
	nodes := g.Nodes()
	rows := make([]browseRow, 0, len(nodes))
	for _, n := range nodes {
		rows = append(rows, browseRow{
			entry:    n.Data(),
			children: len(g.EdgesFrom(n.ID())),
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		return rows[i].entry.Path < rows[j].entry.Path
	})
	return entryListModel{rows: rows, height: 15}
}

func (m entryListModel) Init() tea.Cmd {
	return nil
}

func (m entryListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
				if m.cursor < m.offset {
					m.offset = m.cursor
				}
			}
		case "down", "j":
			if m.cursor < len(m.rows)-1 {
				m.cursor++
				if m.cursor >= m.offset+m.height {
					m.offset = m.cursor - m.height + 1
				}
			}
		case "enter":
			entry := m.rows[m.cursor].entry
			m.selected = &entry
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.height = msg.Height - 6
		if m.height < 5 {
			m.height = 5
		}
	}
	return m, nil
}

func (m entryListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Browse Graph"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	end := m.offset + m.height
	if end > len(m.rows) {
		end = len(m.rows)
	}

	for i := m.offset; i < end; i++ {
		row := m.rows[i]

		cursor := "  "
		if i == m.cursor {
			cursor = "▸ "
		}

		var detail string
		if row.entry.Kind == scan.KindDirectory {
			detail = fmt.Sprintf("%d entries", row.children)
		} else {
			detail = formatSize(row.entry.Size)
		}

		line := fmt.Sprintf("%s%-40s  %s", cursor, displayPath(row.entry), listDimStyle.Render(detail))

		switch {
		case i == m.cursor:
			b.WriteString(listSelectedStyle.Render(line))
		case row.entry.Kind == scan.KindDirectory:
			b.WriteString(listDirStyle.Render(line))
		default:
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.cursor+1, len(m.rows))))

	return b.String()
}

// displayPath renders directories with a trailing slash.
func displayPath(e scan.Entry) string {
	if e.Kind == scan.KindDirectory && e.Path != "." {
		return e.Path + "/"
	}
	return e.Path
}

// formatSize renders a byte count in human-readable units.
func formatSize(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
