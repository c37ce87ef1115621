package tablestore

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/huangsam/repocat/schema"
)

const statusTimeFormat = "2006-01-02 15:04:05"

// PrintStoreStatus prints table store status information.
func PrintStoreStatus(w io.Writer, status schema.StoreStatus) {
	_, _ = fmt.Fprintf(w, "Table Backend: %s\n", status.Backend)
	_, _ = fmt.Fprintf(w, "Connected: %t\n", status.Connected)
	if !status.Connected {
		return
	}
	_, _ = fmt.Fprintf(w, "Schema Version: %d", status.SchemaVersion)
	if status.Dirty {
		_, _ = fmt.Fprint(w, " (dirty)")
	}
	_, _ = fmt.Fprintln(w)
	_, _ = fmt.Fprintf(w, "Total Projects: %s\n", humanize.Comma(status.TotalProjects))
	if status.TotalProjects == 0 {
		return
	}
	_, _ = fmt.Fprintf(w, "Last Import: %s\n", status.LastImportTime.Format(statusTimeFormat))
	_, _ = fmt.Fprintf(w, "Oldest Import: %s\n", status.OldestImportTime.Format(statusTimeFormat))
	_, _ = fmt.Fprintln(w, "Collections:")
	for _, c := range status.Collections {
		_, _ = fmt.Fprintf(w, "  %s: %s rows\n", c.Name, humanize.Comma(int64(c.Projects)))
	}
}
