package cli

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/maskforge/maskforge/pkg/components"
)

// cellsCommand creates the cells command for inspecting the factory
// registry.
func (c *CLI) cellsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "cells [name]",
		Short: "List component factories and their parameters",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reg := components.DefaultRegistry()
			if len(args) == 1 {
				return showCell(reg, args[0])
			}
			return listCells(reg)
		},
	}
}

// listCells prints all registered factories as a table.
func listCells(reg *components.Registry) error {
	rows := [][]string{}
	for _, name := range reg.Names() {
		f, err := reg.Get(name)
		if err != nil {
			continue
		}
		rows = append(rows, []string{f.Name, f.Description})
	}

	fmt.Println(cellTable([]string{"Cell", "Description"}, rows))
	printNewline()
	printNextStep("Inspect one", appName+" cells straight")
	return nil
}

// showCell prints one factory's description and parameter defaults.
func showCell(reg *components.Registry, name string) error {
	f, err := reg.Get(name)
	if err != nil {
		return err
	}

	printKeyValue("Cell", f.Name)
	printKeyValue("Description", f.Description)
	printNewline()

	rows, err := defaultsRows(f.Defaults())
	if err != nil {
		return err
	}
	fmt.Println(cellTable([]string{"Parameter", "Default"}, rows))
	printNewline()
	printNextStep("Build it", fmt.Sprintf("%s build %s", appName, f.Name))
	return nil
}

// defaultsRows flattens a factory's typed defaults into sorted
// parameter/value rows, using the same JSON names builds accept.
func defaultsRows(defaults any) ([][]string, error) {
	data, err := json.Marshal(defaults)
	if err != nil {
		return nil, err
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}

	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	rows := make([][]string, 0, len(keys))
	for _, k := range keys {
		v, err := json.Marshal(m[k])
		if err != nil {
			return nil, err
		}
		rows = append(rows, []string{k, string(v)})
	}
	return rows, nil
}

// cellTable renders a bordered two-column table in the house style.
func cellTable(headers []string, rows [][]string) string {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true).Padding(0, 1)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if col == 0 {
				return StyleHighlight.Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		}).
		Render()
}
