package netlist

import (
	"github.com/maskforge/maskforge/pkg/errors"
)

// Validate checks the structural integrity of a design: unique cell names,
// a top cell that exists, instance targets that resolve, instance names
// unique within their cell, and no reference cycles.
func Validate(d Design) error {
	byName := make(map[string]Cell, len(d.Cells))
	for _, c := range d.Cells {
		if c.Name == "" {
			return errors.New(errors.ErrCodeConfiguration, "design %q has a cell with no name", d.Name)
		}
		if _, dup := byName[c.Name]; dup {
			return errors.New(errors.ErrCodeConfiguration, "design %q defines cell %q twice", d.Name, c.Name)
		}
		byName[c.Name] = c
	}
	if _, ok := byName[d.Top]; !ok {
		return errors.New(errors.ErrCodeConfiguration, "design %q has no top cell %q", d.Name, d.Top)
	}

	for _, c := range d.Cells {
		instNames := make(map[string]bool, len(c.Instances))
		for _, inst := range c.Instances {
			if instNames[inst.Name] {
				return errors.New(errors.ErrCodeConfiguration,
					"cell %q has two instances named %q", c.Name, inst.Name)
			}
			instNames[inst.Name] = true
			if _, ok := byName[inst.Cell]; !ok {
				return errors.New(errors.ErrCodeConfiguration,
					"cell %q instances unknown cell %q", c.Name, inst.Cell)
			}
		}
	}

	return checkCycles(d, byName)
}

// checkCycles runs a three-color depth-first search over the instance
// edges and reports the first back edge found.
func checkCycles(d Design, byName map[string]Cell) error {
	const (
		white = iota
		gray
		black
	)
	color := make(map[string]int, len(byName))

	var visit func(name string) error
	visit = func(name string) error {
		color[name] = gray
		for _, inst := range byName[name].Instances {
			switch color[inst.Cell] {
			case white:
				if err := visit(inst.Cell); err != nil {
					return err
				}
			case gray:
				return errors.New(errors.ErrCodeConfiguration,
					"design %q has a reference cycle through %q and %q", d.Name, name, inst.Cell)
			}
		}
		color[name] = black
		return nil
	}

	for _, c := range d.Cells {
		if color[c.Name] == white {
			if err := visit(c.Name); err != nil {
				return err
			}
		}
	}
	return nil
}
