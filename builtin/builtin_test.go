// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package builtin

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fuelcell/generator/builtin/generator"
	"github.com/fuelcell/generator/builtin/params"
	"github.com/fuelcell/generator/gen"
	"github.com/fuelcell/generator/lvldb"
	"github.com/fuelcell/generator/state"
	"github.com/fuelcell/generator/test/datagen"
)

func TestAddresses(t *testing.T) {
	addrs := map[string]bool{
		Params.Address.String():    true,
		Fuel.Address.String():      true,
		Energy.Address.String():    true,
		Generator.Address.String(): true,
	}
	assert.Len(t, addrs, 4)
	assert.Equal(t, "Generator", Generator.Name())

	for _, addr := range []gen.Address{Params.Address, Fuel.Address, Energy.Address, Generator.Address} {
		assert.True(t, IsBuiltin(addr), addr.String())
	}
	assert.False(t, IsBuiltin(datagen.RandAddress()))
	assert.False(t, IsBuiltin(gen.Address{}))
}

func TestNew(t *testing.T) {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	defer db.Close()
	st := state.New(db)

	clock := generator.TimeSourceFunc(func() uint32 { return 1 })
	c, err := New(st, clock)
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(5), c.Generator.RewardRate())

	require.NoError(t, c.Params.Set(params.KeyRewardRate, big.NewInt(7)))
	c, err = New(st, clock)
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(7), c.Generator.RewardRate())

	// the generator pulls fuel through the shared state
	admin, loader := datagen.RandAddress(), datagen.RandAddress()
	c.Fuel.SetAdmin(admin)
	id, err := c.Fuel.Mint(admin, loader)
	require.NoError(t, err)
	require.NoError(t, c.Fuel.SetApprovalForAll(loader, Generator.Address, true))
	require.NoError(t, c.Generator.Stake(loader, id))

	holder, err := c.Fuel.OwnerOf(id)
	require.NoError(t, err)
	assert.Equal(t, Generator.Address, holder)
}
