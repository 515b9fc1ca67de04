package store

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/madlig/mygameon/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// resetGlobals lets a test run InitStores and CloseStores again.
func resetGlobals(t *testing.T) {
	t.Helper()
	initOnce = sync.Once{}
	closeOnce = sync.Once{}
	Manager = &StoreManager{}
	t.Cleanup(func() {
		CloseStores()
		initOnce = sync.Once{}
		closeOnce = sync.Once{}
		Manager = &StoreManager{}
	})
}

func TestInitStores(t *testing.T) {
	t.Run("sqlite catalog and runs", func(t *testing.T) {
		resetGlobals(t)
		dir := t.TempDir()
		catalogPath := filepath.Join(dir, "catalog.db")
		runsPath := filepath.Join(dir, "runs.db")

		require.NoError(t, InitStores(schema.SQLiteBackend, catalogPath, schema.SQLiteBackend, runsPath))
		assert.NotNil(t, Manager.GetCatalogStore())
		assert.NotNil(t, Manager.GetRequestStore())
		assert.NotNil(t, Manager.GetSearchIndex())
		assert.NotNil(t, Manager.GetRunStore())

		CloseStores()
		CloseStores()

		_, err := os.Stat(catalogPath)
		assert.NoError(t, err)
		_, err = os.Stat(runsPath)
		assert.NoError(t, err)
	})

	t.Run("idempotent setup", func(t *testing.T) {
		resetGlobals(t)
		for range 3 {
			assert.NoError(t, InitStores(schema.SQLiteBackend, ":memory:", "", ""))
		}
		assert.Nil(t, Manager.GetRunStore())
	})

	t.Run("none backend", func(t *testing.T) {
		resetGlobals(t)
		require.NoError(t, InitStores(schema.NoneBackend, "", schema.NoneBackend, ""))
		status, err := Manager.GetCatalogStore().GetStatus()
		require.NoError(t, err)
		assert.False(t, status.Connected)
	})

	t.Run("empty backends leave stores unset", func(t *testing.T) {
		resetGlobals(t)
		require.NoError(t, InitStores("", "", "", ""))
		assert.Nil(t, Manager.GetCatalogStore())
		assert.Nil(t, Manager.GetRequestStore())
		assert.Nil(t, Manager.GetSearchIndex())
		assert.Nil(t, Manager.GetRunStore())
	})

	t.Run("invalid runs backend", func(t *testing.T) {
		resetGlobals(t)
		err := InitStores(schema.SQLiteBackend, ":memory:", "mongo", "")
		assert.Error(t, err)
	})
}

func TestStoreManagerConcurrency(t *testing.T) {
	resetGlobals(t)
	require.NoError(t, InitStores(schema.SQLiteBackend, ":memory:", schema.SQLiteBackend, ":memory:"))

	var wg sync.WaitGroup
	for range 10 {
		wg.Go(func() {
			assert.NotNil(t, Manager.GetCatalogStore())
			assert.NotNil(t, Manager.GetRunStore())
		})
	}
	wg.Wait()
}

func TestClearStores(t *testing.T) {
	t.Run("sqlite file removed", func(t *testing.T) {
		dbPath := filepath.Join(t.TempDir(), "catalog.db")
		cs, err := NewCatalogStore(schema.SQLiteBackend, dbPath)
		require.NoError(t, err)
		require.NoError(t, cs.Close())

		require.NoError(t, ClearCatalog(schema.SQLiteBackend, dbPath))
		_, err = os.Stat(dbPath)
		assert.True(t, os.IsNotExist(err))

		// Missing file is not an error
		assert.NoError(t, ClearCatalog(schema.SQLiteBackend, dbPath))
	})

	t.Run("runs file removed", func(t *testing.T) {
		dbPath := filepath.Join(t.TempDir(), "runs.db")
		rs, err := NewRunStore(schema.SQLiteBackend, dbPath)
		require.NoError(t, err)
		_, err = rs.BeginRun(time.Now(), nil)
		require.NoError(t, err)
		require.NoError(t, rs.Close())

		require.NoError(t, ClearRuns(schema.SQLiteBackend, dbPath))
		_, err = os.Stat(dbPath)
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("memory and none are no-ops", func(t *testing.T) {
		assert.NoError(t, ClearCatalog(schema.SQLiteBackend, ":memory:"))
		assert.NoError(t, ClearRuns(schema.NoneBackend, ""))
	})

	t.Run("unsupported backend", func(t *testing.T) {
		assert.Error(t, ClearCatalog("mongo", ""))
	})
}
