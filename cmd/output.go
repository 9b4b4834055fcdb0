package cmd

import (
	"encoding/json"
	"fmt"
	"io"
)

// writeJSON encodes v as JSON to w, handling I/O errors at the boundary.
func writeJSON(w io.Writer, v any) {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		fmt.Fprintf(w, "{\"error\":%q}\n", err.Error())
	}
}

// writeLines prints each string on its own line.
func writeLines(w io.Writer, lines []string) {
	for _, l := range lines {
		fmt.Fprintln(w, l)
	}
}
