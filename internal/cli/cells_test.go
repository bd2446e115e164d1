package cli

import (
	"strings"
	"testing"

	"github.com/maskforge/maskforge/pkg/components"
)

func TestDefaultsRows(t *testing.T) {
	reg := components.DefaultRegistry()
	f, err := reg.Get("straight")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}

	rows, err := defaultsRows(f.Defaults())
	if err != nil {
		t.Fatalf("defaultsRows: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("rows = %v", rows)
	}

	// Sorted by parameter name; values keep their JSON form.
	if rows[0][0] != "cross_section" || rows[0][1] != `"strip"` {
		t.Errorf("row 0 = %v", rows[0])
	}
	if rows[1][0] != "length" || rows[1][1] != "10" {
		t.Errorf("row 1 = %v", rows[1])
	}
}

func TestDefaultsRowsNonStruct(t *testing.T) {
	if _, err := defaultsRows("not an object"); err == nil {
		t.Error("non-object defaults should fail")
	}
}

func TestCellTable(t *testing.T) {
	out := cellTable([]string{"Cell", "Description"}, [][]string{
		{"straight", "Straight waveguide"},
	})
	for _, want := range []string{"Cell", "straight", "Straight waveguide"} {
		if !strings.Contains(out, want) {
			t.Errorf("table missing %q:\n%s", want, out)
		}
	}
}
