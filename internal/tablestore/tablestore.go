// Package tablestore persists imported metrics tables in SQLite, MySQL or
// PostgreSQL so later runs can classify without the source file.
package tablestore

import (
	"fmt"
	"sync"

	"github.com/benbjohnson/clock"
	"github.com/huangsam/repocat/internal/contract"
	"github.com/huangsam/repocat/schema"
)

// TableStoreManager holds the store opened for the current process.
type TableStoreManager struct {
	sync.RWMutex // Protects the store pointer during initialization
	store        contract.TableStore
}

var _ contract.TableManager = &TableStoreManager{} // Compile-time check

// GetTableStore returns the table store, or nil before InitTableStore.
func (mgr *TableStoreManager) GetTableStore() contract.TableStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.store
}

// Global Manager instance for main logic.
var (
	Manager   = &TableStoreManager{}
	initOnce  sync.Once
	closeOnce sync.Once
)

// InitTableStore opens the global table store. Later calls are no-ops.
func InitTableStore(backend schema.DatabaseBackend, connStr string, clk clock.Clock) error {
	var initErr error

	initOnce.Do(func() {
		store, err := NewTableStore(backend, connStr, clk)
		if err != nil {
			initErr = fmt.Errorf("failed to initialize table store: %w", err)
			return
		}
		Manager.Lock()
		Manager.store = store
		Manager.Unlock()
	})

	return initErr
}

// CloseTableStore should be called on application shutdown.
func CloseTableStore() { // called in main defer
	closeOnce.Do(func() {
		Manager.Lock()
		defer Manager.Unlock()
		if Manager.store != nil {
			_ = Manager.store.Close()
		}
	})
}
