package core

import (
	"errors"
	"fmt"

	"github.com/huangsam/repocat/internal/contract"
	"github.com/huangsam/repocat/internal/table"
	"github.com/huangsam/repocat/schema"
)

// errNoSource is returned when neither a table file nor a store backend is configured.
var errNoSource = errors.New("no table given: pass a .csv or .parquet path or configure --backend")

// errEmptyStore is returned when the configured table store holds no rows.
var errEmptyStore = errors.New("table store is empty: run 'repocat table import <file>' first")

// LoadSource resolves the metrics table of a run. A positional file path wins;
// otherwise every row of the configured table store is read.
func LoadSource(cfg *contract.Config, mgr contract.TableManager) (*table.Table, error) {
	if cfg.SourcePath != "" {
		return table.LoadFile(cfg.SourcePath)
	}
	if cfg.Backend == schema.NoneBackend || cfg.Backend == "" || mgr == nil {
		return nil, errNoSource
	}
	store := mgr.GetTableStore()
	if store == nil {
		return nil, errNoSource
	}
	records, err := store.Load("")
	if err != nil {
		return nil, fmt.Errorf("failed to load table from %s store: %w", cfg.Backend, err)
	}
	if len(records) == 0 {
		return nil, errEmptyStore
	}
	return table.New(records), nil
}
