package tablestore

import (
	"errors"
	"fmt"
	"io"

	"github.com/huangsam/repocat/internal/contract"
	"github.com/huangsam/repocat/internal/parquet"
)

// ExportTable writes the stored rows of collection, or every row when it is
// empty, to a Parquet file that can be classified later without the store.
func ExportTable(w io.Writer, store contract.TableStore, collection, outputFile string) error {
	if outputFile == "" {
		return errors.New("--output-file is required for export command")
	}
	if store == nil {
		return ErrNoStore
	}

	status, err := store.GetStatus()
	if err != nil {
		return fmt.Errorf("failed to get store status: %w", err)
	}
	if !status.Connected {
		return ErrNoStore
	}

	records, err := store.Load(collection)
	if err != nil {
		return fmt.Errorf("failed to load stored table: %w", err)
	}
	if len(records) == 0 {
		if collection != "" {
			return fmt.Errorf("no stored rows found for collection %q", collection)
		}
		return errors.New("no stored rows found to export")
	}

	if err := parquet.WriteProjectRowsParquet(parquet.ConvertProjectMetrics(records), outputFile); err != nil {
		return fmt.Errorf("failed to write exported table: %w", err)
	}
	_, _ = fmt.Fprintf(w, "Exported %d rows from %s backend to: %s\n", len(records), status.Backend, outputFile)
	return nil
}
