package components

import (
	"github.com/maskforge/maskforge/pkg/layout/cell"
	"github.com/maskforge/maskforge/pkg/pdk"
)

// resolveCrossSection looks up a cross section by name and applies an
// optional width override. A zero width keeps the profile's own width.
func resolveCrossSection(ctx *cell.Context, name string, width float64) (pdk.CrossSection, error) {
	xs, err := ctx.PDK.CrossSection(name)
	if err != nil {
		return pdk.CrossSection{}, err
	}
	if width > 0 {
		xs = xs.WithWidth(width)
	}
	return xs, nil
}
