package tablestore

import (
	"github.com/huangsam/repocat/internal/contract"
	"github.com/huangsam/repocat/schema"
	"github.com/stretchr/testify/mock"
)

// MockTableManager is a mock implementation of TableManager for testing.
type MockTableManager struct {
	mock.Mock
}

var _ contract.TableManager = &MockTableManager{} // Compile-time check

// GetTableStore implements the TableManager interface.
func (m *MockTableManager) GetTableStore() contract.TableStore {
	ret := m.Called()
	store, _ := ret.Get(0).(contract.TableStore)
	return store
}

// MockTableStore is a mock implementation of TableStore for testing.
type MockTableStore struct {
	mock.Mock
}

var _ contract.TableStore = &MockTableStore{} // Compile-time check

// Import implements the TableStore interface.
func (m *MockTableStore) Import(records []schema.ProjectMetrics) (int, error) {
	args := m.Called(records)
	return args.Int(0), args.Error(1)
}

// Load implements the TableStore interface.
func (m *MockTableStore) Load(collection string) ([]schema.ProjectMetrics, error) {
	args := m.Called(collection)
	records, _ := args.Get(0).([]schema.ProjectMetrics)
	return records, args.Error(1)
}

// Collections implements the TableStore interface.
func (m *MockTableStore) Collections() ([]schema.CollectionInfo, error) {
	args := m.Called()
	infos, _ := args.Get(0).([]schema.CollectionInfo)
	return infos, args.Error(1)
}

// GetStatus implements the TableStore interface.
func (m *MockTableStore) GetStatus() (schema.StoreStatus, error) {
	args := m.Called()
	return args.Get(0).(schema.StoreStatus), args.Error(1)
}

// Clear implements the TableStore interface.
func (m *MockTableStore) Clear() error {
	args := m.Called()
	return args.Error(0)
}

// Close implements the TableStore interface.
func (m *MockTableStore) Close() error {
	args := m.Called()
	return args.Error(0)
}
