package cli

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"
)

// table writes tab-separated rows aligned in columns.
func table(w io.Writer, header string, rows [][]any) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, header)
	for _, r := range rows {
		for i, c := range r {
			if i > 0 {
				fmt.Fprint(tw, "\t")
			}
			fmt.Fprint(tw, c)
		}
		fmt.Fprintln(tw)
	}
	return tw.Flush()
}

// argID parses args[i] as a positive id named name.
func argID(args []string, i int, name string) (int64, error) {
	if i >= len(args) {
		return 0, fmt.Errorf("missing %s", name)
	}
	id, err := strconv.ParseInt(args[i], 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s %q", name, args[i])
	}
	return id, nil
}

func activeMark(active bool) string {
	if active {
		return "active"
	}
	return "inactive"
}
