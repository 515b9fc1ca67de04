package store

import (
	"sync"

	"github.com/madlig/mygameon/internal/contract"
)

// StoreManager hands out the stores opened by InitStores.
type StoreManager struct {
	sync.RWMutex // Protects the store pointers during initialization
	catalog      *CatalogStoreImpl
	runs         contract.RunStore
}

var _ contract.StoreManager = &StoreManager{} // Compile-time check

// GetCatalogStore returns the catalog store.
func (mgr *StoreManager) GetCatalogStore() contract.CatalogStore {
	mgr.RLock()
	defer mgr.RUnlock()
	if mgr.catalog == nil {
		return nil
	}
	return mgr.catalog
}

// GetRequestStore returns the request store. It shares the catalog database.
func (mgr *StoreManager) GetRequestStore() contract.RequestStore {
	mgr.RLock()
	defer mgr.RUnlock()
	if mgr.catalog == nil {
		return nil
	}
	return mgr.catalog
}

// GetSearchIndex returns the search index mirror.
func (mgr *StoreManager) GetSearchIndex() contract.SearchIndex {
	mgr.RLock()
	defer mgr.RUnlock()
	if mgr.catalog == nil {
		return nil
	}
	return mgr.catalog
}

// GetRunStore returns the run tracking store.
func (mgr *StoreManager) GetRunStore() contract.RunStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.runs
}

// NewStoreManager wraps already opened stores. Either may be nil.
func NewStoreManager(catalog *CatalogStoreImpl, runs contract.RunStore) *StoreManager {
	return &StoreManager{catalog: catalog, runs: runs}
}
