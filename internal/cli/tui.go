package cli

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/maskforge/maskforge/pkg/components"
	"github.com/maskforge/maskforge/pkg/pipeline"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// componentListModel - Interactive factory selection
// =============================================================================

// componentListModel is the bubbletea model for picking a factory to
// build.
type componentListModel struct {
	factories []components.Factory
	cursor    int
	height    int
	offset    int
	selected  string // factory name, empty until chosen
}

func newComponentListModel(factories []components.Factory) componentListModel {
	return componentListModel{factories: factories, height: 15}
}

func (m componentListModel) Init() tea.Cmd {
	return nil
}

func (m componentListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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
			if m.cursor < len(m.factories)-1 {
				m.cursor++
				if m.cursor >= m.offset+m.height {
					m.offset = m.cursor - m.height + 1
				}
			}
		case "enter":
			m.selected = m.factories[m.cursor].Name
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

func (m componentListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Component"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ build  q quit"))
	b.WriteString("\n\n")

	end := m.offset + m.height
	if end > len(m.factories) {
		end = len(m.factories)
	}

	rows := [][]string{}
	for i := m.offset; i < end; i++ {
		f := m.factories[i]
		cursor := "  "
		if i == m.cursor {
			cursor = "▸ "
		}
		rows = append(rows, []string{cursor, f.Name, f.Description})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Cell", "Description").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if m.offset+row == m.cursor {
				return listSelectedStyle
			}
			return lipgloss.NewStyle()
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.cursor+1, len(m.factories))))

	return b.String()
}

// =============================================================================
// cellDetailModel - Built cell summary
// =============================================================================

// cellDetailModel shows one built cell: geometry summary plus the port
// table a connecting design would target.
type cellDetailModel struct {
	result *pipeline.Result
	back   bool
}

func newCellDetailModel(result *pipeline.Result) cellDetailModel {
	return cellDetailModel{result: result}
}

func (m cellDetailModel) Init() tea.Cmd {
	return nil
}

func (m cellDetailModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "esc", "backspace", "enter":
			m.back = true
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m cellDetailModel) View() string {
	c := m.result.Component
	bounds := c.Bounds()

	var b strings.Builder
	b.WriteString(StyleTitle.Render(c.Name()))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("esc back  q quit"))
	b.WriteString("\n\n")

	keyStyle := lipgloss.NewStyle().Foreground(colorGray).Width(10)
	kv := func(k, v string) {
		b.WriteString(keyStyle.Render(k))
		b.WriteString(" " + StyleValue.Render(v) + "\n")
	}
	kv("Factory", m.result.Key.Factory())
	kv("Digest", m.result.Key.Digest()[:12])
	kv("Size", fmt.Sprintf("%.4g × %.4g µm", bounds.Width(), bounds.Height()))
	kv("Cells", strconv.Itoa(m.result.Stats.Cells))
	kv("Polygons", strconv.Itoa(m.result.Stats.Polygons))
	b.WriteString("\n")

	rows := [][]string{}
	for _, p := range c.Ports() {
		rows = append(rows, []string{
			p.Name,
			fmt.Sprintf("(%.4g, %.4g)", p.Position.X, p.Position.Y),
			fmt.Sprintf("%g°", p.Orientation),
			fmt.Sprintf("%g", p.Width),
			p.Layer.String(),
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Port", "Position", "Angle", "Width", "Layer").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if col == 0 {
				return StyleHighlight
			}
			return lipgloss.NewStyle()
		})

	b.WriteString(t.Render())
	return b.String()
}

// =============================================================================
// Helpers
// =============================================================================

// registryFactories lists the registry's factories in registration
// name order for the selection table.
func registryFactories(reg *components.Registry) []components.Factory {
	names := reg.Names()
	factories := make([]components.Factory, 0, len(names))
	for _, name := range names {
		f, err := reg.Get(name)
		if err != nil {
			continue
		}
		factories = append(factories, f)
	}
	return factories
}
