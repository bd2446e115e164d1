package netlist

import (
	"encoding/json"
	"io"
	"os"

	"github.com/maskforge/maskforge/pkg/errors"
)

// Read decodes a design from r and validates it.
func Read(r io.Reader) (Design, error) {
	var d Design
	if err := json.NewDecoder(r).Decode(&d); err != nil {
		return Design{}, errors.Wrap(errors.ErrCodeConfiguration, err, "decode design")
	}
	if err := Validate(d); err != nil {
		return Design{}, err
	}
	return d, nil
}

// ReadFile reads and validates a design from the file at path.
func ReadFile(path string) (Design, error) {
	f, err := os.Open(path)
	if err != nil {
		return Design{}, errors.Wrap(errors.ErrCodeConfiguration, err, "open %s", path)
	}
	defer f.Close()

	return Read(f)
}
