package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/maskforge/maskforge/pkg/pdk"
)

// pdkCommand creates the pdk command for inspecting the active kit.
func (c *CLI) pdkCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "pdk",
		Short: "Show the active PDK's layers and cross-sections",
		Long: `Show the layers and waveguide cross-section profiles of the active
process design kit. Without --pdk the embedded generic kit is shown.

Examples:
  maskforge pdk
  maskforge pdk --pdk sin220.toml
  maskforge pdk --pdk https://example.com/kits/sin220.toml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			kit, err := c.pdkKit(cmd.Context())
			if err != nil {
				return err
			}
			return showPDK(kit)
		},
	}
}

func showPDK(kit *pdk.PDK) error {
	fmt.Println(StyleTitle.Render(kit.Name()))
	if kit.Description() != "" {
		printDetail("%s", kit.Description())
	}
	printNewline()

	layerRows := [][]string{}
	for _, name := range kit.LayerNames() {
		l, err := kit.Layer(name)
		if err != nil {
			continue
		}
		layerRows = append(layerRows, []string{name, l.String()})
	}
	fmt.Println(cellTable([]string{"Layer", "GDS"}, layerRows))
	printNewline()

	profileRows := [][]string{}
	for _, name := range kit.CrossSectionNames() {
		x, err := kit.CrossSection(name)
		if err != nil {
			continue
		}
		profileRows = append(profileRows, []string{
			name,
			formatMicrons(x.Width),
			x.Layer.String(),
			formatMicrons(x.Radius),
			formatMicrons(x.TaperLength),
			strconv.Itoa(len(x.Sections)),
		})
	}
	fmt.Println(cellTable([]string{"Profile", "Width", "Layer", "Radius", "Taper", "Strips"}, profileRows))
	return nil
}

// formatMicrons renders a length, with a dash for unset optional fields.
func formatMicrons(v float64) string {
	if v == 0 {
		return "—"
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}
