package cli

import (
	"context"
	"fmt"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/jvalaj/gridai/pkg/diagram"
	"github.com/jvalaj/gridai/pkg/layout"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// nodeRow is one row in the inspect table, a node joined with its position.
type nodeRow struct {
	Node diagram.Node
	Pos  layout.Position
}

// NodeListModel is the bubbletea model for browsing placed nodes.
type NodeListModel struct {
	Title  string
	Rows   []nodeRow
	Cursor int
	Height int
	Offset int
}

// NewNodeListModel creates a node list model from a spec and its layout.
func NewNodeListModel(spec diagram.Spec, res layout.Result) NodeListModel {
	rows := make([]nodeRow, 0, len(spec.Nodes))
	for _, n := range spec.Nodes {
		rows = append(rows, nodeRow{Node: n, Pos: res.Positions[n.ID]})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Pos.Y != rows[j].Pos.Y {
			return rows[i].Pos.Y < rows[j].Pos.Y
		}
		return rows[i].Pos.X < rows[j].Pos.X
	})

	title := spec.Title
	if title == "" {
		title = string(spec.Type) + " diagram"
	}

	return NodeListModel{
		Title:  title,
		Rows:   rows,
		Height: 15,
	}
}

func (m NodeListModel) Init() tea.Cmd {
	return nil
}

func (m NodeListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc", "enter":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Rows)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 6
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m NodeListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(m.Title))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.Rows) {
		end = len(m.Rows)
	}

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		r := m.Rows[i]

		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		kind := r.Node.Kind
		if kind == "" {
			kind = "—"
		}

		rows = append(rows, []string{
			cursor,
			r.Node.ID,
			r.Node.Label,
			kind,
			fmt.Sprintf("%.0f", r.Pos.X),
			fmt.Sprintf("%.0f", r.Pos.Y),
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "ID", "Label", "Kind", "X", "Y").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			actualIdx := m.Offset + row
			if actualIdx == m.Cursor {
				return listSelectedStyle
			}
			if col == 4 || col == 5 {
				return lipgloss.NewStyle().Foreground(colorGray)
			}
			return lipgloss.NewStyle().Foreground(colorWhite)
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Rows))))

	return b.String()
}

// inspectCommand creates the inspect command, an interactive node browser.
func (c *CLI) inspectCommand() *cobra.Command {
	var (
		configPath    string
		engineName    string
		engineTimeout int
	)

	cmd := &cobra.Command{
		Use:   "inspect [layout.json|spec.json]",
		Short: "Browse the placed nodes of a diagram interactively",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runInspect(cmd.Context(), args[0], configPath, engineName, engineTimeout)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "layout config TOML file")
	cmd.Flags().StringVar(&engineName, "engine", engineDot, "external layout engine: dot (default), none")
	cmd.Flags().IntVar(&engineTimeout, "engine-timeout", defaultEngineTimeout, "timeout in seconds for the external engine")

	return cmd
}

func (c *CLI) runInspect(ctx context.Context, input, configPath, engineName string, engineTimeout int) error {
	doc, err := readDocument(input)
	if err != nil {
		return fmt.Errorf("load %s: %w", input, err)
	}

	if len(doc.Spec.Nodes) == 0 {
		printDetail("Diagram has no nodes")
		return nil
	}

	if doc.Layout == nil {
		cfg, err := loadConfig(configPath)
		if err != nil {
			return fmt.Errorf("load config %s: %w", configPath, err)
		}
		eng, err := newEngine(cfg, engineName, engineTimeout, c.Logger)
		if err != nil {
			return err
		}
		res := eng.Compute(ctx, doc.Spec)
		doc.Layout = &res
	}

	p := tea.NewProgram(NewNodeListModel(doc.Spec, *doc.Layout))
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}
