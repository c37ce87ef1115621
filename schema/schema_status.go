package schema

import "time"

// StoreStatus represents the status of the table store.
type StoreStatus struct {
	Backend          string           `json:"backend"`
	Connected        bool             `json:"connected"`
	SchemaVersion    uint             `json:"schema_version"`
	Dirty            bool             `json:"dirty"`
	TotalProjects    int64            `json:"total_projects"`
	Collections      []CollectionInfo `json:"collections"`
	LastImportTime   time.Time        `json:"last_import_time"`
	OldestImportTime time.Time        `json:"oldest_import_time"`
}
