// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"testing"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fuelcell/generator/gen"
	"github.com/fuelcell/generator/lvldb"
)

func newStater(t *testing.T) *Stater {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewStater(db)
}

func TestStorage(t *testing.T) {
	st := newStater(t).NewState()

	addr := gen.BytesToAddress([]byte("account1"))
	key := gen.BytesToBytes32([]byte("key"))
	value := gen.BytesToBytes32([]byte("value"))

	got, err := st.GetStorage(addr, key)
	require.NoError(t, err)
	assert.True(t, got.IsZero())

	st.SetStorage(addr, key, value)
	got, err = st.GetStorage(addr, key)
	require.NoError(t, err)
	assert.Equal(t, value, got)

	st.SetStorage(addr, key, gen.Bytes32{})
	raw, err := st.GetRawStorage(addr, key)
	require.NoError(t, err)
	assert.Len(t, raw, 0)
}

func TestStructedStorage(t *testing.T) {
	st := newStater(t).NewState()

	type record struct {
		Owner gen.Address
		Block uint32
	}

	addr := gen.BytesToAddress([]byte("contract"))
	key := gen.BytesToBytes32([]byte("record"))
	in := record{gen.BytesToAddress([]byte("owner")), 42}

	require.NoError(t, st.EncodeStorage(addr, key, func() ([]byte, error) {
		return rlp.EncodeToBytes(&in)
	}))

	var out record
	require.NoError(t, st.DecodeStorage(addr, key, func(raw []byte) error {
		return rlp.DecodeBytes(raw, &out)
	}))
	assert.Equal(t, in, out)

	// lists are summarized by their hash
	word, err := st.GetStorage(addr, key)
	require.NoError(t, err)
	assert.False(t, word.IsZero())
}

func TestCheckpoint(t *testing.T) {
	st := newStater(t).NewState()

	addr := gen.BytesToAddress([]byte("account1"))
	key := gen.BytesToBytes32([]byte("key"))
	v1 := gen.BytesToBytes32([]byte{1})
	v2 := gen.BytesToBytes32([]byte{2})

	st.SetStorage(addr, key, v1)
	cp := st.NewCheckpoint()
	st.SetStorage(addr, key, v2)

	got, _ := st.GetStorage(addr, key)
	assert.Equal(t, v2, got)

	st.RevertTo(cp)
	got, _ = st.GetStorage(addr, key)
	assert.Equal(t, v1, got)
}

func TestStageCommit(t *testing.T) {
	stater := newStater(t)
	st := stater.NewState()

	addr := gen.BytesToAddress([]byte("account1"))
	k1 := gen.BytesToBytes32([]byte("k1"))
	k2 := gen.BytesToBytes32([]byte("k2"))

	st.SetStorage(addr, k1, gen.BytesToBytes32([]byte{1}))
	st.SetStorage(addr, k2, gen.BytesToBytes32([]byte{2}))
	st.SetStorage(addr, k2, gen.BytesToBytes32([]byte{3}))

	stage := st.Stage()
	assert.Equal(t, 2, stage.Len())
	digest := stage.Digest(gen.Bytes32{})
	assert.Equal(t, digest, st.Stage().Digest(gen.Bytes32{}), "digest must be deterministic")
	require.NoError(t, stater.Commit(stage))

	reloaded := stater.NewState()
	got, err := reloaded.GetStorage(addr, k2)
	require.NoError(t, err)
	assert.Equal(t, gen.BytesToBytes32([]byte{3}), got)

	// clearing a slot deletes it from the store
	reloaded.SetStorage(addr, k1, gen.Bytes32{})
	require.NoError(t, stater.Commit(reloaded.Stage()))
	got, err = stater.NewState().GetStorage(addr, k1)
	require.NoError(t, err)
	assert.True(t, got.IsZero())
}
