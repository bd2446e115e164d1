package netlist

import (
	"encoding/json"
	"io"
	"os"

	"github.com/maskforge/maskforge/pkg/errors"
)

// Write encodes a design to w as indented JSON.
func Write(w io.Writer, d Design) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(d); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode design %q", d.Name)
	}
	return nil
}

// WriteFile writes a design to the file at path, creating or truncating it.
func WriteFile(path string, d Design) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "create %s", path)
	}
	defer f.Close()

	if err := Write(f, d); err != nil {
		return err
	}
	return nil
}
