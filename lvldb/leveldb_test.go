// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package lvldb

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/syndtr/goleveldb/leveldb/opt"

	"github.com/fuelcell/generator/kv"
)

func TestLevelDB(t *testing.T) {
	var (
		key        = []byte("123")
		value      = []byte("456")
		inValidKey = []byte("abc")
	)

	persisted, err := New(filepath.Join(t.TempDir(), "main.db"), Options{16, 16})
	require.NoError(t, err)
	defer persisted.Close()

	mem, err := NewMem()
	require.NoError(t, err)
	defer mem.Close()

	for _, db := range []*LevelDB{persisted, mem} {
		require.NoError(t, db.Put(key, value))

		got, err := db.Get(key)
		assert.NoError(t, err)
		assert.Equal(t, value, got)

		has, err := db.Has(key)
		assert.NoError(t, err)
		assert.True(t, has)

		has, err = db.Has(inValidKey)
		assert.NoError(t, err)
		assert.False(t, has)

		require.NoError(t, db.Delete(key))
		_, err = db.Get(key)
		assert.True(t, db.IsNotFound(err))
	}
}

func TestBatchAndBucket(t *testing.T) {
	db, err := NewMem()
	require.NoError(t, err)
	defer db.Close()

	bucket := kv.Bucket("b.").NewStore(db)
	batch := bucket.NewBatch()
	require.NoError(t, batch.Put([]byte("1"), []byte("one")))
	require.NoError(t, batch.Put([]byte("2"), []byte("two")))
	assert.Equal(t, 2, batch.Len())

	_, err = bucket.Get([]byte("1"))
	assert.True(t, bucket.IsNotFound(err), "batch must not be visible before write")

	require.NoError(t, batch.Write())

	raw, err := db.Get([]byte("b.1"))
	require.NoError(t, err)
	assert.Equal(t, []byte("one"), raw)

	var keys []string
	it := bucket.Iterate(kv.Range{})
	for it.Next() {
		keys = append(keys, string(it.Key()))
	}
	it.Release()
	require.NoError(t, it.Error())
	assert.Equal(t, []string{"1", "2"}, keys)
}

func TestOptions(t *testing.T) {
	o := Options{}.leveldb()
	assert.Equal(t, 8*opt.MiB, o.BlockCacheCapacity)
	assert.Equal(t, 4*opt.MiB, o.WriteBuffer)
	assert.Equal(t, 16, o.OpenFilesCacheCapacity)

	o = Options{CacheSize: 512, OpenFilesCacheCapacity: 64}.leveldb()
	assert.Equal(t, 256*opt.MiB, o.BlockCacheCapacity)
	assert.Equal(t, 64, o.OpenFilesCacheCapacity)
}
