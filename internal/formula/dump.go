package formula

import (
	"fmt"
	"io"
	"math"

	"github.com/jedib0t/go-pretty/v6/table"

	"kformula/internal/series"
)

// DumpTable renders one or more derived series side by side for inspection,
// newest row last. Undefined values render as "-". Series of different
// lengths are shown trailing-aligned, the same way the kernel would align
// them.
func DumpTable(w io.Writer, names []string, cols ...*series.Numeric) {
	if len(cols) == 0 {
		return
	}
	n := cols[0].Len()
	for _, c := range cols[1:] {
		if c.Len() < n {
			n = c.Len()
		}
	}
	t := table.NewWriter()
	t.SetOutputMirror(w)
	header := table.Row{"#"}
	for i, c := range cols {
		name := c.Recipe().Transform
		if i < len(names) && names[i] != "" {
			name = names[i]
		}
		if name == "" {
			name = fmt.Sprintf("series%d", i)
		}
		header = append(header, name)
	}
	t.AppendHeader(header)
	for row := 0; row < n; row++ {
		r := table.Row{row}
		for _, c := range cols {
			v := c.At(c.Len() - n + row)
			if math.IsNaN(v) {
				r = append(r, "-")
			} else {
				r = append(r, fmt.Sprintf("%.4f", v))
			}
		}
		t.AppendRow(r)
	}
	t.Render()
}
